package ai

import (
	"testing"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRecipeFromChattyResponse(t *testing.T) {
	response := "Sure! Here is the recipe:\n```json\n" + `{
  "name": "Pancakes",
  "description": "Fluffy breakfast pancakes",
  "servings": "4 servings",
  "prepTimeMinutes": 10,
  "cookTimeMinutes": "PT20M",
  "ingredients": [
    {"quantity": 1.5, "unit": "cups", "name": "flour"},
    {"quantity": "2", "unit": "", "name": "eggs", "notes": "beaten"},
    "a pinch of salt"
  ],
  "instructions": ["Mix.", {"@type": "HowToStep", "text": "Fry."}, ""],
  "macros": {"calories": "350 kcal", "protein": 9, "carbs": "52g", "fat": null}
}` + "\n```\nEnjoy!"

	got, err := DecodeRecipe(response)

	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	assert.Equal(t, 4, got.Servings)
	assert.Equal(t, 10, got.PrepTimeMinutes)
	assert.Equal(t, 20, got.CookTimeMinutes)
	assert.Equal(t, []measurement.Ingredient{
		{Quantity: "1.5", Unit: "cups", Name: "flour"},
		{Quantity: "2", Unit: "", Name: "eggs", Notes: "beaten"},
		{Name: "a pinch of salt"},
	}, got.Ingredients)
	assert.Equal(t, []string{"Mix.", "Fry."}, got.Instructions)
	assert.Equal(t, recipe.Macros{Calories: 350, Protein: 9, Carbs: 52}, got.Macros)
}

func TestDecodeRecipeFallsBackToTitleAndNutrition(t *testing.T) {
	got, err := DecodeRecipe(`{"title": "Soup", "ingredients": [{"amount": 2, "unit": "cups", "name": "stock"}],
		"instructions": ["Simmer."], "nutrition": {"calories": 120}}`)

	require.NoError(t, err)
	assert.Equal(t, "Soup", got.Name)
	assert.Equal(t, "2", got.Ingredients[0].Quantity)
	assert.Equal(t, float64(120), got.Macros.Calories)
}

func TestDecodeRecipeSplitsIngredientLines(t *testing.T) {
	got, err := DecodeRecipe(`{"name": "Bread", "ingredients": ["2 cups flour", "1 1/2 lb butter, softened"],
		"instructions": ["Bake."]}`)

	require.NoError(t, err)
	assert.Equal(t, []measurement.Ingredient{
		{Quantity: "2", Unit: "cups", Name: "flour"},
		{Quantity: "1 1/2", Unit: "lb", Name: "butter", Notes: "softened"},
	}, got.Ingredients)

	normalized, summary := measurement.NewNormalizer().Normalize(got.Ingredients)
	assert.Equal(t, "ml", normalized[0].Unit)
	assert.Equal(t, 2, summary.Converted)
}

func TestDecodeRecipeRejectsIncompleteOutput(t *testing.T) {
	tests := map[string]string{
		"NoJSON":          "I could not find a recipe on this page.",
		"Malformed":       `{"name": "Broken", "ingredients": [}`,
		"MissingName":     `{"ingredients": [{"name": "x"}], "instructions": ["y"]}`,
		"NoIngredients":   `{"name": "Toast", "ingredients": [], "instructions": ["Toast it."]}`,
		"UnnamedItem":     `{"name": "Toast", "ingredients": [{"quantity": "1"}], "instructions": ["Toast it."]}`,
		"NoInstructions":  `{"name": "Toast", "ingredients": [{"name": "bread"}], "instructions": []}`,
		"BlankSteps":      `{"name": "Toast", "ingredients": [{"name": "bread"}], "instructions": ["  "]}`,
		"ArrayForNameVal": `{"name": ["Toast"], "ingredients": [{"name": "bread"}], "instructions": ["Toast it."]}`,
	}

	for name, response := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := DecodeRecipe(response)

			assert.Error(t, err)
			assert.Nil(t, got)
		})
	}
}

func TestParseMinutes(t *testing.T) {
	assert.Equal(t, 0, parseMinutes(""))
	assert.Equal(t, 45, parseMinutes("45"))
	assert.Equal(t, 90, parseMinutes("PT1H30M"))
	assert.Equal(t, 75, parseMinutes("1 hr 15 min"))
	assert.Equal(t, 60, parseMinutes("1 hour"))
	assert.Equal(t, 25, parseMinutes("25 minutes"))
}
