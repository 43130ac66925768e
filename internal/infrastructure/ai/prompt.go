// Package ai holds the pieces shared by the recipe extractor adapters:
// the prompt and the decoding of model output into an extracted recipe.
package ai

import (
	"fmt"
	"strings"

	"github.com/alchemorsel/kitchen/internal/infrastructure/ai/pageprep"
)

// SystemPrompt instructs the model to return a single JSON object
const SystemPrompt = `You extract recipes from web pages. Copy what the page says; never invent ingredients or steps.

CRITICAL: Respond with ONLY a valid JSON object in this exact format:
{
  "name": "Recipe name",
  "description": "One or two sentences",
  "servings": 4,
  "prepTimeMinutes": 15,
  "cookTimeMinutes": 30,
  "ingredients": [
    {"quantity": "1 1/2", "unit": "cups", "name": "all-purpose flour", "notes": "sifted"}
  ],
  "instructions": ["First step", "Second step"],
  "macros": {"calories": 350, "protein": 12, "carbs": 40, "fat": 15}
}

Rules:
- Keep quantities and units exactly as written on the page. Do not convert units.
- Use an empty string for unit when the ingredient is counted (e.g. "2" eggs).
- Put preparation notes such as "chopped" in notes, not in name.
- Macros are per serving; use 0 when the page does not state them.
- Times are in whole minutes; use 0 when unknown.

Remember: Respond with ONLY valid JSON. No additional text, explanations, or formatting.`

// BuildUserPrompt renders the prepared page for the model
func BuildUserPrompt(sourceURL string, page *pageprep.Page) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Source URL: %s\n", sourceURL)
	if page.Title != "" {
		fmt.Fprintf(&b, "Page title: %s\n", page.Title)
	}
	if page.JSONLD != "" {
		b.WriteString("\nStructured data (schema.org Recipe JSON-LD):\n")
		b.WriteString(page.JSONLD)
		b.WriteString("\n")
	}
	if page.Markdown != "" {
		b.WriteString("\nPage content (Markdown):\n")
		b.WriteString(page.Markdown)
		b.WriteString("\n")
	}
	b.WriteString("\nExtract the recipe as JSON.")
	return b.String()
}

// PreparePrompt turns raw HTML into the user prompt. It fails when the page
// holds nothing a model could extract from.
func PreparePrompt(sourceURL, html string, maxChars int) (string, error) {
	page, err := pageprep.Prepare(html, maxChars)
	if err != nil {
		return "", err
	}
	if page.IsEmpty() {
		return "", fmt.Errorf("page has no readable content")
	}
	return BuildUserPrompt(sourceURL, page), nil
}
