// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the interfaces that the application exposes to the outside world
package inbound

import (
	"context"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/google/uuid"
)

// RecipeService defines the use cases for the personal recipe library
type RecipeService interface {
	// Commands - operations that modify state
	SaveRecipe(ctx context.Context, cmd SaveRecipeCommand) (*RecipeDTO, error)
	UpdateRecipe(ctx context.Context, cmd UpdateRecipeCommand) (*RecipeDTO, error)
	SetFavorite(ctx context.Context, userID, recipeID uuid.UUID, favorite bool) (*RecipeDTO, error)
	DeleteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error

	// Queries - operations that read state
	GetRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*RecipeDTO, error)
	ListRecipes(ctx context.Context, userID uuid.UUID, query ListQuery) (*RecipeList, error)
}

// RecipeDraft is recipe content that has not been saved yet. An import
// produces one; a manual entry is one.
type RecipeDraft struct {
	Name            string                             `json:"name"`
	Description     string                             `json:"description"`
	Servings        int                                `json:"servings"`
	PrepTimeMinutes int                                `json:"prepTimeMinutes"`
	CookTimeMinutes int                                `json:"cookTimeMinutes"`
	Ingredients     []measurement.NormalizedIngredient `json:"ingredients"`
	Instructions    []string                           `json:"instructions"`
	Macros          recipe.Macros                      `json:"macros"`
	SourceURL       string                             `json:"sourceUrl"`
	RecipeSource    string                             `json:"recipeSource"`
}

// SaveRecipeCommand contains data for saving a recipe into a library
type SaveRecipeCommand struct {
	UserID uuid.UUID
	Draft  RecipeDraft
	Tags   []string
}

// UpdateRecipeCommand contains data for a partial recipe update
type UpdateRecipeCommand struct {
	RecipeID     uuid.UUID
	UserID       uuid.UUID
	Name         *string
	Description  *string
	Servings     *int
	PrepMinutes  *int
	CookMinutes  *int
	Ingredients  *[]measurement.Ingredient
	Instructions *[]string
	Macros       *recipe.Macros
	Tags         *[]string
}

// ListQuery pages through a library
type ListQuery struct {
	Search    string
	Favorites bool
	Page      int
	PageSize  int
}

// RecipeDTO is a saved recipe as returned to clients
type RecipeDTO struct {
	ID             uuid.UUID  `json:"id"`
	RecipeDraft               // flattened content fields
	Tags           []string   `json:"tags"`
	Favorite       bool       `json:"favorite"`
	MasterRecipeID *uuid.UUID `json:"masterRecipeId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// RecipeList is one page of recipes
type RecipeList struct {
	Recipes    []*RecipeDTO `json:"recipes"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"pageSize"`
	TotalPages int          `json:"totalPages"`
}
