// Package catalog holds the shared, curated recipe collection users browse and copy from
package catalog

import (
	"errors"
	"strings"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/google/uuid"
)

var (
	ErrMasterRecipeNotFound = errors.New("master recipe not found")
	ErrInvalidMasterRecipe  = errors.New("master recipe needs a name and at least one instruction")
)

// MasterRecipe is a read-only catalog entry
type MasterRecipe struct {
	ID           uuid.UUID
	Name         string
	Description  string
	Cuisine      string
	Tags         []string
	Servings     int
	PrepMinutes  int
	CookMinutes  int
	Ingredients  []measurement.NormalizedIngredient
	Instructions []string
	Macros       recipe.Macros
	SourceURL    string
	RecipeSource string
	ImageURL     string
	CreatedAt    time.Time
}

// Validate checks the minimum content of a catalog entry
func (m MasterRecipe) Validate() error {
	if strings.TrimSpace(m.Name) == "" || len(m.Instructions) == 0 {
		return ErrInvalidMasterRecipe
	}
	return nil
}

// HasTag reports whether the entry carries the tag, ignoring case
func (m MasterRecipe) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// ToDetails converts the entry into library content linked back to the catalog
func (m MasterRecipe) ToDetails() recipe.Details {
	id := m.ID
	ingredients := make([]measurement.NormalizedIngredient, len(m.Ingredients))
	copy(ingredients, m.Ingredients)
	instructions := make([]string, len(m.Instructions))
	copy(instructions, m.Instructions)
	tags := make([]string, len(m.Tags))
	copy(tags, m.Tags)

	return recipe.Details{
		Name:           m.Name,
		Description:    m.Description,
		Servings:       m.Servings,
		PrepMinutes:    m.PrepMinutes,
		CookMinutes:    m.CookMinutes,
		Ingredients:    ingredients,
		Instructions:   instructions,
		Macros:         m.Macros,
		Tags:           tags,
		SourceURL:      m.SourceURL,
		RecipeSource:   m.RecipeSource,
		MasterRecipeID: &id,
	}
}
