// Package outbound defines the interfaces for outbound ports (secondary/driven adapters)
// These are the interfaces that the application uses to interact with external systems
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/catalog"
	"github.com/alchemorsel/kitchen/internal/domain/pantry"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/google/uuid"
)

var (
	// ErrCacheMiss is returned by CacheRepository.Get when the key is absent or expired
	ErrCacheMiss = errors.New("cache miss")
	// ErrVersionConflict is returned when an update lost an optimistic locking race
	ErrVersionConflict = errors.New("record was modified concurrently")
)

// RecipeRepository defines persistence for the personal recipe library
type RecipeRepository interface {
	Create(ctx context.Context, recipe *recipe.Recipe) error
	Update(ctx context.Context, recipe *recipe.Recipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, criteria RecipeCriteria) ([]*recipe.Recipe, int, error)
}

// RecipeCriteria filters a library listing
type RecipeCriteria struct {
	Query         string
	FavoritesOnly bool
	Offset        int
	Limit         int
}

// PantryRepository defines persistence for pantry items
type PantryRepository interface {
	Create(ctx context.Context, item *pantry.Item) error
	Update(ctx context.Context, item *pantry.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*pantry.Item, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, location pantry.Location) ([]*pantry.Item, error)
	FindExpiringBefore(ctx context.Context, ownerID uuid.UUID, before time.Time) ([]*pantry.Item, error)
}

// CatalogRepository defines persistence for the shared master recipe catalog
type CatalogRepository interface {
	Create(ctx context.Context, recipe *catalog.MasterRecipe) error
	FindByID(ctx context.Context, id uuid.UUID) (*catalog.MasterRecipe, error)
	Search(ctx context.Context, criteria CatalogCriteria) ([]*catalog.MasterRecipe, int, error)
	Count(ctx context.Context) (int64, error)
}

// CatalogCriteria filters catalog browsing
type CatalogCriteria struct {
	Query   string
	Cuisine string
	Tag     string
	Offset  int
	Limit   int
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Ping(ctx context.Context) error
}
