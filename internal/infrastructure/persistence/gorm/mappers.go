// Package gorm provides mapping between domain entities and GORM models
package gorm

import (
	"github.com/alchemorsel/kitchen/internal/domain/catalog"
	"github.com/alchemorsel/kitchen/internal/domain/pantry"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
)

// RecipeToModel converts a domain recipe to a GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	return &RecipeModel{
		ID:              r.ID(),
		Version:         r.Version(),
		OwnerID:         r.OwnerID(),
		Name:            r.Name(),
		Description:     r.Description(),
		Servings:        r.Servings(),
		PrepTimeMinutes: r.PrepMinutes(),
		CookTimeMinutes: r.CookMinutes(),
		Ingredients:     IngredientList(r.Ingredients()),
		Instructions:    StringSlice(r.Instructions()),
		Macros:          macrosToModel(r.Macros()),
		Tags:            StringSlice(r.Tags()),
		SourceURL:       r.SourceURL(),
		RecipeSource:    r.RecipeSource(),
		MasterRecipeID:  r.MasterRecipeID(),
		Favorite:        r.IsFavorite(),
		CreatedAt:       r.CreatedAt(),
		UpdatedAt:       r.UpdatedAt(),
		DeletedAt:       r.DeletedAt(),
	}
}

// ModelToRecipe converts a GORM model to a domain recipe
func ModelToRecipe(m *RecipeModel) *recipe.Recipe {
	return recipe.Rehydrate(recipe.Snapshot{
		ID:      m.ID,
		Version: m.Version,
		OwnerID: m.OwnerID,
		Details: recipe.Details{
			Name:           m.Name,
			Description:    m.Description,
			Servings:       m.Servings,
			PrepMinutes:    m.PrepTimeMinutes,
			CookMinutes:    m.CookTimeMinutes,
			Ingredients:    m.Ingredients,
			Instructions:   m.Instructions,
			Macros:         modelToMacros(m.Macros),
			Tags:           m.Tags,
			SourceURL:      m.SourceURL,
			RecipeSource:   m.RecipeSource,
			MasterRecipeID: m.MasterRecipeID,
		},
		Favorite:  m.Favorite,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		DeletedAt: m.DeletedAt,
	})
}

// PantryItemToModel converts a domain pantry item to a GORM model
func PantryItemToModel(i *pantry.Item) *PantryItemModel {
	return &PantryItemModel{
		ID:        i.ID(),
		OwnerID:   i.OwnerID(),
		Name:      i.Name(),
		Quantity:  i.Quantity(),
		Unit:      i.Unit(),
		Category:  i.Category(),
		Location:  string(i.Location()),
		ExpiresAt: i.ExpiresAt(),
		CreatedAt: i.AddedAt(),
		UpdatedAt: i.UpdatedAt(),
	}
}

// ModelToPantryItem converts a GORM model to a domain pantry item
func ModelToPantryItem(m *PantryItemModel) *pantry.Item {
	return pantry.Rehydrate(pantry.Snapshot{
		ID:      m.ID,
		OwnerID: m.OwnerID,
		Fields: pantry.Fields{
			Name:      m.Name,
			Quantity:  m.Quantity,
			Unit:      m.Unit,
			Category:  m.Category,
			Location:  pantry.Location(m.Location),
			ExpiresAt: m.ExpiresAt,
		},
		AddedAt:   m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	})
}

// MasterRecipeToModel converts a catalog entry to a GORM model
func MasterRecipeToModel(r *catalog.MasterRecipe) *MasterRecipeModel {
	return &MasterRecipeModel{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		Cuisine:         r.Cuisine,
		Tags:            StringSlice(r.Tags),
		Servings:        r.Servings,
		PrepTimeMinutes: r.PrepMinutes,
		CookTimeMinutes: r.CookMinutes,
		Ingredients:     IngredientList(r.Ingredients),
		Instructions:    StringSlice(r.Instructions),
		Macros:          macrosToModel(r.Macros),
		SourceURL:       r.SourceURL,
		RecipeSource:    r.RecipeSource,
		ImageURL:        r.ImageURL,
		CreatedAt:       r.CreatedAt,
	}
}

// ModelToMasterRecipe converts a GORM model to a catalog entry
func ModelToMasterRecipe(m *MasterRecipeModel) *catalog.MasterRecipe {
	return &catalog.MasterRecipe{
		ID:           m.ID,
		Name:         m.Name,
		Description:  m.Description,
		Cuisine:      m.Cuisine,
		Tags:         m.Tags,
		Servings:     m.Servings,
		PrepMinutes:  m.PrepTimeMinutes,
		CookMinutes:  m.CookTimeMinutes,
		Ingredients:  m.Ingredients,
		Instructions: m.Instructions,
		Macros:       modelToMacros(m.Macros),
		SourceURL:    m.SourceURL,
		RecipeSource: m.RecipeSource,
		ImageURL:     m.ImageURL,
		CreatedAt:    m.CreatedAt,
	}
}

func macrosToModel(m recipe.Macros) MacrosModel {
	return MacrosModel{Calories: m.Calories, Protein: m.Protein, Carbs: m.Carbs, Fat: m.Fat}
}

func modelToMacros(m MacrosModel) recipe.Macros {
	return recipe.Macros{Calories: m.Calories, Protein: m.Protein, Carbs: m.Carbs, Fat: m.Fat}
}
