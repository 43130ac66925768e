// Package mock provides a deterministic extractor for local development and
// tests. It reads schema.org Recipe JSON-LD from the page instead of calling a model.
package mock

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/infrastructure/ai"
	"github.com/alchemorsel/kitchen/internal/infrastructure/ai/pageprep"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/alchemorsel/kitchen/pkg/errors"
)

// Extractor implements outbound.RecipeExtractor without a model
type Extractor struct{}

var _ outbound.RecipeExtractor = (*Extractor)(nil)

// New creates a structured-data extractor
func New() *Extractor {
	return &Extractor{}
}

// Name identifies the adapter in logs and metrics
func (e *Extractor) Name() string {
	return "mock"
}

type schemaRecipe struct {
	Name         json.RawMessage   `json:"name"`
	Description  json.RawMessage   `json:"description"`
	Yield        json.RawMessage   `json:"recipeYield"`
	PrepTime     json.RawMessage   `json:"prepTime"`
	CookTime     json.RawMessage   `json:"cookTime"`
	Ingredients  []json.RawMessage `json:"recipeIngredient"`
	Instructions json.RawMessage   `json:"recipeInstructions"`
	Nutrition    *struct {
		Calories json.RawMessage `json:"calories"`
		Protein  json.RawMessage `json:"proteinContent"`
		Carbs    json.RawMessage `json:"carbohydrateContent"`
		Fat      json.RawMessage `json:"fatContent"`
	} `json:"nutrition"`
}

// Extract maps the page's Recipe JSON-LD onto the model output format and
// decodes it with the same rules used for model responses
func (e *Extractor) Extract(_ context.Context, _ string, html string) (*outbound.ExtractedRecipe, error) {
	page, err := pageprep.Prepare(html, 0)
	if err != nil {
		return nil, errors.NewExtractionError(err)
	}
	if page.JSONLD == "" {
		return nil, errors.NewExtractionError(fmt.Errorf("page has no schema.org Recipe data"))
	}

	var src schemaRecipe
	if err := json.Unmarshal([]byte(page.JSONLD), &src); err != nil {
		return nil, errors.NewExtractionError(err)
	}

	ingredients := make([]measurement.Ingredient, 0, len(src.Ingredients))
	for _, raw := range src.Ingredients {
		var line string
		if json.Unmarshal(raw, &line) == nil {
			ingredients = append(ingredients, measurement.ParseIngredientLine(line))
		}
	}

	wire := map[string]interface{}{
		"name":            src.Name,
		"description":     src.Description,
		"servings":        firstOf(src.Yield),
		"prepTimeMinutes": src.PrepTime,
		"cookTimeMinutes": src.CookTime,
		"ingredients":     ingredients,
		"instructions":    flattenInstructions(src.Instructions),
	}
	if n := src.Nutrition; n != nil {
		wire["macros"] = map[string]json.RawMessage{
			"calories": n.Calories,
			"protein":  n.Protein,
			"carbs":    n.Carbs,
			"fat":      n.Fat,
		}
	}

	encoded, err := json.Marshal(wire)
	if err != nil {
		return nil, errors.NewExtractionError(err)
	}

	extracted, err := ai.DecodeRecipe(string(encoded))
	if err != nil {
		return nil, errors.NewExtractionError(err)
	}
	return extracted, nil
}

// firstOf unwraps ["4", "4 servings"] to its first element
func firstOf(raw json.RawMessage) json.RawMessage {
	var list []json.RawMessage
	if json.Unmarshal(raw, &list) == nil {
		if len(list) == 0 {
			return nil
		}
		return list[0]
	}
	return raw
}

// flattenInstructions accepts a string, a list of strings or HowToSteps, or
// HowToSections containing steps
func flattenInstructions(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}

	var single string
	if json.Unmarshal(raw, &single) == nil {
		encoded, _ := json.Marshal(single)
		return []json.RawMessage{encoded}
	}

	var items []json.RawMessage
	if json.Unmarshal(raw, &items) != nil {
		return nil
	}

	out := make([]json.RawMessage, 0, len(items))
	for _, item := range items {
		var section struct {
			Steps json.RawMessage `json:"itemListElement"`
		}
		if json.Unmarshal(item, &section) == nil && len(section.Steps) > 0 {
			out = append(out, flattenInstructions(section.Steps)...)
			continue
		}
		out = append(out, item)
	}
	return out
}
