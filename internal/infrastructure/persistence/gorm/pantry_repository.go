package gorm

import (
	"context"
	"errors"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/pantry"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PantryRepository implements the pantry repository interface using GORM
type PantryRepository struct {
	db *gorm.DB
}

var _ outbound.PantryRepository = (*PantryRepository)(nil)

// NewPantryRepository creates a new pantry repository
func NewPantryRepository(db *gorm.DB) *PantryRepository {
	return &PantryRepository{db: db}
}

func (r *PantryRepository) Create(ctx context.Context, item *pantry.Item) error {
	return r.db.WithContext(ctx).Create(PantryItemToModel(item)).Error
}

func (r *PantryRepository) Update(ctx context.Context, item *pantry.Item) error {
	model := PantryItemToModel(item)

	result := r.db.WithContext(ctx).
		Model(&PantryItemModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pantry.ErrItemNotFound
	}
	return nil
}

func (r *PantryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&PantryItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pantry.ErrItemNotFound
	}
	return nil
}

func (r *PantryRepository) FindByID(ctx context.Context, id uuid.UUID) (*pantry.Item, error) {
	var model PantryItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pantry.ErrItemNotFound
		}
		return nil, err
	}
	return ModelToPantryItem(&model), nil
}

// FindByOwner lists an owner's items by name, optionally for one location
func (r *PantryRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, location pantry.Location) ([]*pantry.Item, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if location != "" {
		query = query.Where("location = ?", string(location))
	}

	var models []PantryItemModel
	if err := query.Order("name ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toPantryItems(models), nil
}

// FindExpiringBefore lists dated items expiring before the cutoff, soonest first
func (r *PantryRepository) FindExpiringBefore(ctx context.Context, ownerID uuid.UUID, before time.Time) ([]*pantry.Item, error) {
	var models []PantryItemModel
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND expires_at IS NOT NULL AND expires_at < ?", ownerID, before).
		Order("expires_at ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toPantryItems(models), nil
}

func toPantryItems(models []PantryItemModel) []*pantry.Item {
	items := make([]*pantry.Item, len(models))
	for i := range models {
		items[i] = ModelToPantryItem(&models[i])
	}
	return items
}
