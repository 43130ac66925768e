// Package testutils provides mock implementations for testing
package testutils

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/catalog"
	"github.com/alchemorsel/kitchen/internal/domain/pantry"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/alchemorsel/kitchen/internal/domain/shared"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockEventDispatcher records dispatched events
type MockEventDispatcher struct {
	mock.Mock
}

// Dispatch records the event
func (m *MockEventDispatcher) Dispatch(ctx context.Context, event shared.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

// Register records the handler registration
func (m *MockEventDispatcher) Register(eventName string, handler shared.EventHandler) {
	m.Called(eventName, handler)
}

// InMemoryRecipeRepository is a map-backed RecipeRepository
type InMemoryRecipeRepository struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]*recipe.Recipe
	// Err, when set, is returned by every call
	Err error
}

var _ outbound.RecipeRepository = (*InMemoryRecipeRepository)(nil)

// NewInMemoryRecipeRepository creates an empty repository
func NewInMemoryRecipeRepository() *InMemoryRecipeRepository {
	return &InMemoryRecipeRepository{recipes: make(map[uuid.UUID]*recipe.Recipe)}
}

func (r *InMemoryRecipeRepository) Create(_ context.Context, entity *recipe.Recipe) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[entity.ID()] = entity
	return nil
}

func (r *InMemoryRecipeRepository) Update(ctx context.Context, entity *recipe.Recipe) error {
	return r.Create(ctx, entity)
}

func (r *InMemoryRecipeRepository) FindByID(_ context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	entity, ok := r.recipes[id]
	if !ok {
		return nil, recipe.ErrRecipeNotFound
	}
	return entity, nil
}

func (r *InMemoryRecipeRepository) FindByOwner(_ context.Context, ownerID uuid.UUID, criteria outbound.RecipeCriteria) ([]*recipe.Recipe, int, error) {
	if r.Err != nil {
		return nil, 0, r.Err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*recipe.Recipe
	for _, entity := range r.recipes {
		if !entity.IsOwnedBy(ownerID) || entity.DeletedAt() != nil {
			continue
		}
		if criteria.FavoritesOnly && !entity.IsFavorite() {
			continue
		}
		if criteria.Query != "" && !strings.Contains(strings.ToLower(entity.Name()), strings.ToLower(criteria.Query)) {
			continue
		}
		matched = append(matched, entity)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt().After(matched[j].CreatedAt())
	})

	return window(matched, criteria.Offset, criteria.Limit), len(matched), nil
}

// Len returns the number of stored recipes, deleted ones included
func (r *InMemoryRecipeRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.recipes)
}

// InMemoryPantryRepository is a map-backed PantryRepository
type InMemoryPantryRepository struct {
	mu    sync.RWMutex
	items map[uuid.UUID]*pantry.Item
}

var _ outbound.PantryRepository = (*InMemoryPantryRepository)(nil)

// NewInMemoryPantryRepository creates an empty repository
func NewInMemoryPantryRepository() *InMemoryPantryRepository {
	return &InMemoryPantryRepository{items: make(map[uuid.UUID]*pantry.Item)}
}

func (r *InMemoryPantryRepository) Create(_ context.Context, item *pantry.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID()] = item
	return nil
}

func (r *InMemoryPantryRepository) Update(ctx context.Context, item *pantry.Item) error {
	return r.Create(ctx, item)
}

func (r *InMemoryPantryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pantry.ErrItemNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *InMemoryPantryRepository) FindByID(_ context.Context, id uuid.UUID) (*pantry.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, pantry.ErrItemNotFound
	}
	return item, nil
}

func (r *InMemoryPantryRepository) FindByOwner(_ context.Context, ownerID uuid.UUID, location pantry.Location) ([]*pantry.Item, error) {
	return r.filter(func(item *pantry.Item) bool {
		return item.OwnerID() == ownerID && (location == "" || item.Location() == location)
	}), nil
}

func (r *InMemoryPantryRepository) FindExpiringBefore(_ context.Context, ownerID uuid.UUID, before time.Time) ([]*pantry.Item, error) {
	items := r.filter(func(item *pantry.Item) bool {
		return item.OwnerID() == ownerID && item.ExpiresAt() != nil && item.ExpiresAt().Before(before)
	})
	sort.Slice(items, func(i, j int) bool {
		return items[i].ExpiresAt().Before(*items[j].ExpiresAt())
	})
	return items, nil
}

func (r *InMemoryPantryRepository) filter(keep func(*pantry.Item) bool) []*pantry.Item {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*pantry.Item
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// InMemoryCatalogRepository is a map-backed CatalogRepository
type InMemoryCatalogRepository struct {
	mu       sync.RWMutex
	recipes  map[uuid.UUID]*catalog.MasterRecipe
	Searches int
}

var _ outbound.CatalogRepository = (*InMemoryCatalogRepository)(nil)

// NewInMemoryCatalogRepository creates a repository holding the given entries
func NewInMemoryCatalogRepository(entries ...*catalog.MasterRecipe) *InMemoryCatalogRepository {
	repo := &InMemoryCatalogRepository{recipes: make(map[uuid.UUID]*catalog.MasterRecipe)}
	for _, e := range entries {
		repo.recipes[e.ID] = e
	}
	return repo
}

func (r *InMemoryCatalogRepository) Create(_ context.Context, entry *catalog.MasterRecipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes[entry.ID] = entry
	return nil
}

func (r *InMemoryCatalogRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.MasterRecipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.recipes[id]
	if !ok {
		return nil, catalog.ErrMasterRecipeNotFound
	}
	return entry, nil
}

func (r *InMemoryCatalogRepository) Search(_ context.Context, criteria outbound.CatalogCriteria) ([]*catalog.MasterRecipe, int, error) {
	r.mu.Lock()
	r.Searches++
	r.mu.Unlock()

	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*catalog.MasterRecipe
	for _, e := range r.recipes {
		if criteria.Query != "" && !strings.Contains(strings.ToLower(e.Name), strings.ToLower(criteria.Query)) {
			continue
		}
		if criteria.Cuisine != "" && !strings.EqualFold(e.Cuisine, criteria.Cuisine) {
			continue
		}
		if criteria.Tag != "" && !e.HasTag(criteria.Tag) {
			continue
		}
		matched = append(matched, e)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Name < matched[j].Name })

	return window(matched, criteria.Offset, criteria.Limit), len(matched), nil
}

func (r *InMemoryCatalogRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.recipes)), nil
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
