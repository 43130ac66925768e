package inbound

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// CatalogService exposes the shared master recipe catalog
type CatalogService interface {
	Browse(ctx context.Context, query BrowseQuery) (*CatalogPage, error)
	Get(ctx context.Context, id uuid.UUID) (*MasterRecipeDTO, error)
	AddToLibrary(ctx context.Context, userID, masterID uuid.UUID) (*RecipeDTO, error)
}

// BrowseQuery filters the catalog
type BrowseQuery struct {
	Search   string
	Cuisine  string
	Tag      string
	Page     int
	PageSize int
}

// MasterRecipeDTO is a catalog entry as returned to clients
type MasterRecipeDTO struct {
	ID          uuid.UUID `json:"id"`
	RecipeDraft           // flattened content fields
	Cuisine     string    `json:"cuisine,omitempty"`
	Tags        []string  `json:"tags"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CatalogPage is one page of catalog entries
type CatalogPage struct {
	Recipes    []*MasterRecipeDTO `json:"recipes"`
	Total      int                `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"pageSize"`
	TotalPages int                `json:"totalPages"`
}
