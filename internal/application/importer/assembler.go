package importer

import (
	"net/url"
	"strings"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/ports/inbound"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
)

// Assemble merges the extracted recipe with its normalized ingredients and
// provenance. rawURL is echoed back exactly as the caller sent it.
func Assemble(
	rawURL string,
	source *url.URL,
	extracted *outbound.ExtractedRecipe,
	ingredients []measurement.NormalizedIngredient,
	summary measurement.ConversionSummary,
) *inbound.ImportResult {
	instructions := make([]string, len(extracted.Instructions))
	copy(instructions, extracted.Instructions)

	return &inbound.ImportResult{
		RecipeDraft: inbound.RecipeDraft{
			Name:            strings.TrimSpace(extracted.Name),
			Description:     strings.TrimSpace(extracted.Description),
			Servings:        extracted.Servings,
			PrepTimeMinutes: extracted.PrepTimeMinutes,
			CookTimeMinutes: extracted.CookTimeMinutes,
			Ingredients:     ingredients,
			Instructions:    instructions,
			Macros:          extracted.Macros,
			SourceURL:       rawURL,
			RecipeSource:    strings.ToLower(source.Hostname()),
		},
		ConversionSummary: summary,
	}
}
