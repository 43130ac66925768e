package mock

import (
	"context"
	"testing"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const structuredPage = `<html><head><script type="application/ld+json">
{"@context":"https://schema.org","@graph":[
  {"@type":"WebSite","name":"Example"},
  {"@type":["Recipe"],"name":"Pancakes","description":"Fluffy.",
   "recipeYield":["4","4 servings"],"prepTime":"PT10M","cookTime":"PT1H5M",
   "recipeIngredient":["1 1/2 cups flour, sifted","2 eggs","Salt, to taste"],
   "recipeInstructions":[
     {"@type":"HowToSection","name":"Batter","itemListElement":[{"@type":"HowToStep","text":"Whisk."}]},
     {"@type":"HowToStep","text":"Fry."}],
   "nutrition":{"calories":"350 kcal","proteinContent":"9 g","carbohydrateContent":"50 g","fatContent":"12 g"}}
]}
</script></head><body><p>Pancakes</p></body></html>`

func TestExtractFromJSONLD(t *testing.T) {
	// Arrange
	extractor := New()

	// Act
	got, err := extractor.Extract(context.Background(), "https://example.com/pancakes", structuredPage)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Pancakes", got.Name)
	assert.Equal(t, "Fluffy.", got.Description)
	assert.Equal(t, 4, got.Servings)
	assert.Equal(t, 10, got.PrepTimeMinutes)
	assert.Equal(t, 65, got.CookTimeMinutes)
	assert.Equal(t, []measurement.Ingredient{
		{Quantity: "1 1/2", Unit: "cups", Name: "flour", Notes: "sifted"},
		{Quantity: "2", Name: "eggs"},
		{Name: "Salt", Notes: "to taste"},
	}, got.Ingredients)
	assert.Equal(t, []string{"Whisk.", "Fry."}, got.Instructions)
	assert.Equal(t, 350.0, got.Macros.Calories)
	assert.Equal(t, 12.0, got.Macros.Fat)
}

func TestExtractWithoutStructuredData(t *testing.T) {
	_, err := New().Extract(context.Background(), "https://example.com", "<html><body><p>hello</p></body></html>")

	assert.True(t, errors.Is(err, errors.CodeExtractionFailed))
}

func TestName(t *testing.T) {
	assert.Equal(t, "mock", New().Name())
}
