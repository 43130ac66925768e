package gorm

import (
	"context"
	"errors"
	"strings"

	"github.com/alchemorsel/kitchen/internal/domain/catalog"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CatalogRepository implements the catalog repository interface using GORM
type CatalogRepository struct {
	db *gorm.DB
}

var _ outbound.CatalogRepository = (*CatalogRepository)(nil)

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository(db *gorm.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) Create(ctx context.Context, entry *catalog.MasterRecipe) error {
	return r.db.WithContext(ctx).Create(MasterRecipeToModel(entry)).Error
}

func (r *CatalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.MasterRecipe, error) {
	var model MasterRecipeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrMasterRecipeNotFound
		}
		return nil, err
	}
	return ModelToMasterRecipe(&model), nil
}

// Search filters by name, cuisine and tag, ordered by name
func (r *CatalogRepository) Search(ctx context.Context, criteria outbound.CatalogCriteria) ([]*catalog.MasterRecipe, int, error) {
	query := r.db.WithContext(ctx).Model(&MasterRecipeModel{})

	if q := strings.TrimSpace(criteria.Query); q != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
	}
	if c := strings.TrimSpace(criteria.Cuisine); c != "" {
		query = query.Where("LOWER(cuisine) = ?", strings.ToLower(c))
	}
	if t := strings.TrimSpace(criteria.Tag); t != "" {
		// tags are stored as a JSON array of strings
		query = query.Where("LOWER(tags) LIKE ?", `%"`+strings.ToLower(t)+`"%`)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var models []MasterRecipeModel
	err := paginate(query.Session(&gorm.Session{}), criteria.Offset, criteria.Limit).
		Order("name ASC").
		Find(&models).Error
	if err != nil {
		return nil, 0, err
	}

	entries := make([]*catalog.MasterRecipe, len(models))
	for i := range models {
		entries[i] = ModelToMasterRecipe(&models[i])
	}
	return entries, int(total), nil
}

func (r *CatalogRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&MasterRecipeModel{}).Count(&count).Error
	return count, err
}
