package inbound

import (
	"context"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/pantry"
	"github.com/google/uuid"
)

// PantryService defines the use cases for pantry inventory
type PantryService interface {
	AddItem(ctx context.Context, cmd AddPantryItemCommand) (*PantryItemDTO, error)
	UpdateItem(ctx context.Context, cmd UpdatePantryItemCommand) (*PantryItemDTO, error)
	RemoveItem(ctx context.Context, userID, itemID uuid.UUID) error
	ConsumeItem(ctx context.Context, userID, itemID uuid.UUID, amount float64) (*PantryItemDTO, error)
	ListItems(ctx context.Context, userID uuid.UUID, location pantry.Location) ([]*PantryItemDTO, error)
	ListExpiring(ctx context.Context, userID uuid.UUID, withinDays int) ([]*PantryItemDTO, error)
}

// AddPantryItemCommand adds stock
type AddPantryItemCommand struct {
	UserID    uuid.UUID
	Name      string
	Quantity  string
	Unit      string
	Category  string
	Location  pantry.Location
	ExpiresAt *time.Time
}

// UpdatePantryItemCommand partially updates an item
type UpdatePantryItemCommand struct {
	UserID    uuid.UUID
	ItemID    uuid.UUID
	Name      *string
	Quantity  *string
	Unit      *string
	Category  *string
	Location  *pantry.Location
	ExpiresAt *time.Time
	// ClearExpiry removes the expiry date
	ClearExpiry bool
}

// PantryItemDTO is a pantry item as returned to clients
type PantryItemDTO struct {
	ID              uuid.UUID           `json:"id"`
	Name            string              `json:"name"`
	Quantity        string              `json:"quantity"`
	Unit            string              `json:"unit"`
	Category        string              `json:"category,omitempty"`
	Location        pantry.Location     `json:"location"`
	ExpiresAt       *time.Time          `json:"expiresAt,omitempty"`
	Status          pantry.ExpiryStatus `json:"status"`
	DaysUntilExpiry *int                `json:"daysUntilExpiry,omitempty"`
	AddedAt         time.Time           `json:"addedAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}
