// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/catalog"
	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/domain/pantry"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/alchemorsel/kitchen/internal/ports/inbound"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// DraftBuilder provides a fluent interface for building recipe drafts
type DraftBuilder struct {
	faker *gofakeit.Faker
	draft inbound.RecipeDraft
}

// NewDraftBuilder creates a draft with plausible default content
func NewDraftBuilder() *DraftBuilder {
	faker := gofakeit.New(time.Now().UnixNano())

	return &DraftBuilder{
		faker: faker,
		draft: inbound.RecipeDraft{
			Name:            fmt.Sprintf("%s %s", faker.Adjective(), faker.Dessert()),
			Description:     faker.Sentence(12),
			Servings:        faker.Number(1, 8),
			PrepTimeMinutes: faker.Number(5, 30),
			CookTimeMinutes: faker.Number(10, 90),
			Ingredients: []measurement.NormalizedIngredient{
				{Ingredient: measurement.Ingredient{Quantity: "240", Unit: "ml", Name: "milk"}},
				{Ingredient: measurement.Ingredient{Quantity: "2", Name: "eggs"}},
			},
			Instructions: []string{faker.Sentence(8), faker.Sentence(6)},
			Macros:       recipe.Macros{Calories: float64(faker.Number(100, 900))},
			SourceURL:    faker.URL(),
			RecipeSource: faker.DomainName(),
		},
	}
}

// WithName sets the recipe name
func (b *DraftBuilder) WithName(name string) *DraftBuilder {
	b.draft.Name = name
	return b
}

// WithDescription sets the recipe description
func (b *DraftBuilder) WithDescription(description string) *DraftBuilder {
	b.draft.Description = description
	return b
}

// WithIngredients replaces the ingredient list with unconverted lines
func (b *DraftBuilder) WithIngredients(ingredients ...measurement.Ingredient) *DraftBuilder {
	b.draft.Ingredients = make([]measurement.NormalizedIngredient, len(ingredients))
	for i, ing := range ingredients {
		b.draft.Ingredients[i] = measurement.NormalizedIngredient{Ingredient: ing}
	}
	return b
}

// WithInstructions replaces the instruction list
func (b *DraftBuilder) WithInstructions(steps ...string) *DraftBuilder {
	b.draft.Instructions = steps
	return b
}

// Build returns the draft
func (b *DraftBuilder) Build() inbound.RecipeDraft {
	return b.draft
}

// BuildRecipe creates a saved recipe entity for the owner
func (b *DraftBuilder) BuildRecipe(ownerID uuid.UUID) *recipe.Recipe {
	d := b.draft
	r, err := recipe.NewRecipe(ownerID, recipe.Details{
		Name:         d.Name,
		Description:  d.Description,
		Servings:     d.Servings,
		PrepMinutes:  d.PrepTimeMinutes,
		CookMinutes:  d.CookTimeMinutes,
		Ingredients:  d.Ingredients,
		Instructions: d.Instructions,
		Macros:       d.Macros,
		SourceURL:    d.SourceURL,
		RecipeSource: d.RecipeSource,
	})
	if err != nil {
		panic(fmt.Sprintf("invalid test recipe: %v", err))
	}
	r.Events()
	return r
}

// NewPantryItem creates a pantry item expiring in the given number of days.
// A nil days leaves the expiry unset.
func NewPantryItem(ownerID uuid.UUID, location pantry.Location, days *int) *pantry.Item {
	var expires *time.Time
	if days != nil {
		t := time.Now().AddDate(0, 0, *days)
		expires = &t
	}

	item, err := pantry.NewItem(ownerID, pantry.Fields{
		Name:      gofakeit.Vegetable(),
		Quantity:  fmt.Sprintf("%d", gofakeit.Number(1, 10)),
		Unit:      "pcs",
		Category:  "produce",
		Location:  location,
		ExpiresAt: expires,
	})
	if err != nil {
		panic(fmt.Sprintf("invalid test pantry item: %v", err))
	}
	return item
}

// Days is a helper for NewPantryItem
func Days(n int) *int {
	return &n
}

// NewMasterRecipe creates a valid catalog entry
func NewMasterRecipe(name, cuisine string, tags ...string) *catalog.MasterRecipe {
	return &catalog.MasterRecipe{
		ID:          uuid.New(),
		Name:        name,
		Description: gofakeit.Sentence(10),
		Cuisine:     cuisine,
		Tags:        tags,
		Servings:    4,
		PrepMinutes: 10,
		CookMinutes: 20,
		Ingredients: []measurement.NormalizedIngredient{
			{Ingredient: measurement.Ingredient{Quantity: "200", Unit: "g", Name: "pasta"}},
		},
		Instructions: []string{"Boil the pasta.", "Serve."},
		Macros:       recipe.Macros{Calories: 450, Protein: 15, Carbs: 70, Fat: 10},
		SourceURL:    "https://example.com/" + uuid.NewString(),
		RecipeSource: "example.com",
		CreatedAt:    time.Now(),
	}
}
