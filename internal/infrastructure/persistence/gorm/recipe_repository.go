// Package gorm provides GORM-based repository implementations
package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeRepository implements the recipe repository interface using GORM
type RecipeRepository struct {
	db *gorm.DB
}

var _ outbound.RecipeRepository = (*RecipeRepository)(nil)

// NewRecipeRepository creates a new recipe repository
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Create creates a new recipe
func (r *RecipeRepository) Create(ctx context.Context, entity *recipe.Recipe) error {
	return r.db.WithContext(ctx).Create(RecipeToModel(entity)).Error
}

// Update writes every column of the recipe. The stored row must still be at
// the version the entity was loaded with.
func (r *RecipeRepository) Update(ctx context.Context, entity *recipe.Recipe) error {
	model := RecipeToModel(entity)

	result := r.db.WithContext(ctx).
		Model(&RecipeModel{}).
		Where("id = ? AND version = ?", model.ID, model.Version-1).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&RecipeModel{}).Where("id = ?", model.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return recipe.ErrRecipeNotFound
		}
		return outbound.ErrVersionConflict
	}

	return nil
}

// FindByID finds a recipe by ID, including soft-deleted ones
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	var model RecipeModel

	result := r.db.WithContext(ctx).First(&model, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, recipe.ErrRecipeNotFound
		}
		return nil, result.Error
	}

	return ModelToRecipe(&model), nil
}

// FindByOwner lists an owner's live recipes, newest first
func (r *RecipeRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, criteria outbound.RecipeCriteria) ([]*recipe.Recipe, int, error) {
	query := r.db.WithContext(ctx).Model(&RecipeModel{}).
		Where("owner_id = ? AND deleted_at IS NULL", ownerID)

	if criteria.FavoritesOnly {
		query = query.Where("favorite = ?", true)
	}
	if q := strings.TrimSpace(criteria.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []RecipeModel
	result := paginate(query.Session(&gorm.Session{}), criteria.Offset, criteria.Limit).
		Order("created_at DESC").
		Find(&models)
	if result.Error != nil {
		return nil, 0, result.Error
	}

	recipes := make([]*recipe.Recipe, len(models))
	for i := range models {
		recipes[i] = ModelToRecipe(&models[i])
	}

	return recipes, int(total), nil
}

// paginate applies offset and limit; a non-positive limit returns every row
func paginate(db *gorm.DB, offset, limit int) *gorm.DB {
	if offset > 0 {
		db = db.Offset(offset)
	}
	if limit > 0 {
		db = db.Limit(limit)
	}
	return db
}
