// Package catalog provides the application layer for the shared master recipe catalog
package catalog

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/alchemorsel/kitchen/internal/application/recipe"
	"github.com/alchemorsel/kitchen/internal/domain/catalog"
	domainrecipe "github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/alchemorsel/kitchen/internal/ports/inbound"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/alchemorsel/kitchen/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCacheTTL applies when the configured TTL is not positive
const DefaultCacheTTL = 5 * time.Minute

// Library saves catalog copies into a user's recipe library
type Library interface {
	SaveDetails(ctx context.Context, userID uuid.UUID, details domainrecipe.Details) (*inbound.RecipeDTO, error)
}

// Config holds catalog settings
type Config struct {
	CacheTTL time.Duration
}

// CatalogService implements the catalog use cases
type CatalogService struct {
	repo    outbound.CatalogRepository
	cache   outbound.CacheRepository
	library Library
	ttl     time.Duration
	logger  *zap.Logger
}

var _ inbound.CatalogService = (*CatalogService)(nil)

// NewCatalogService creates a new catalog service. A nil cache disables caching.
func NewCatalogService(
	repo outbound.CatalogRepository,
	cache outbound.CacheRepository,
	library Library,
	cfg Config,
	logger *zap.Logger,
) *CatalogService {
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CatalogService{
		repo:    repo,
		cache:   cache,
		library: library,
		ttl:     ttl,
		logger:  logger.Named("catalog-service"),
	}
}

// Browse pages through the catalog. Pages are cached by query.
func (s *CatalogService) Browse(ctx context.Context, query inbound.BrowseQuery) (*inbound.CatalogPage, error) {
	page, pageSize := recipe.Paginate(query.Page, query.PageSize)
	criteria := outbound.CatalogCriteria{
		Query:   strings.TrimSpace(query.Search),
		Cuisine: strings.TrimSpace(query.Cuisine),
		Tag:     strings.TrimSpace(query.Tag),
		Offset:  (page - 1) * pageSize,
		Limit:   pageSize,
	}

	key := browseKey(criteria)
	if cached, ok := s.cached(ctx, key); ok {
		return cached, nil
	}

	entries, total, err := s.repo.Search(ctx, criteria)
	if err != nil {
		return nil, errors.NewDatabaseError("search catalog", err)
	}

	result := &inbound.CatalogPage{
		Recipes:    make([]*inbound.MasterRecipeDTO, len(entries)),
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}
	for i, e := range entries {
		result.Recipes[i] = toDTO(e)
	}

	s.store(ctx, key, result)
	return result, nil
}

// Get returns one catalog entry
func (s *CatalogService) Get(ctx context.Context, id uuid.UUID) (*inbound.MasterRecipeDTO, error) {
	entry, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(entry), nil
}

// AddToLibrary copies a catalog entry into the user's library
func (s *CatalogService) AddToLibrary(ctx context.Context, userID, masterID uuid.UUID) (*inbound.RecipeDTO, error) {
	entry, err := s.load(ctx, masterID)
	if err != nil {
		return nil, err
	}

	dto, err := s.library.SaveDetails(ctx, userID, entry.ToDetails())
	if err != nil {
		return nil, err
	}

	s.logger.Info("Catalog recipe added to library",
		zap.String("master_recipe_id", masterID.String()),
		zap.String("recipe_id", dto.ID.String()),
		zap.String("user_id", userID.String()),
	)
	return dto, nil
}

// Seed inserts entries when the catalog is empty and reports how many were added
func (s *CatalogService) Seed(ctx context.Context, entries []*catalog.MasterRecipe) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, errors.NewDatabaseError("count catalog", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return 0, fmt.Errorf("seed entry %q: %w", e.Name, err)
		}
		if err := s.repo.Create(ctx, e); err != nil {
			return 0, errors.NewDatabaseError("seed catalog", err)
		}
	}

	s.logger.Info("Catalog seeded", zap.Int("entries", len(entries)))
	return len(entries), nil
}

func (s *CatalogService) load(ctx context.Context, id uuid.UUID) (*catalog.MasterRecipe, error) {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, catalog.ErrMasterRecipeNotFound) {
			return nil, errors.NewMasterRecipeNotFoundError(id.String())
		}
		return nil, errors.NewDatabaseError("find master recipe", err)
	}
	if entry == nil {
		return nil, errors.NewMasterRecipeNotFoundError(id.String())
	}
	return entry, nil
}

func (s *CatalogService) cached(ctx context.Context, key string) (*inbound.CatalogPage, bool) {
	if s.cache == nil {
		return nil, false
	}

	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !stderrors.Is(err, outbound.ErrCacheMiss) {
			s.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return nil, false
	}

	var page inbound.CatalogPage
	if err := json.Unmarshal(data, &page); err != nil {
		s.logger.Warn("Discarding corrupt catalog cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return &page, true
}

func (s *CatalogService) store(ctx context.Context, key string, page *inbound.CatalogPage) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func browseKey(c outbound.CatalogCriteria) string {
	return fmt.Sprintf("catalog:browse:%s|%s|%s|%d|%d",
		strings.ToLower(c.Query), strings.ToLower(c.Cuisine), strings.ToLower(c.Tag), c.Offset, c.Limit)
}

func toDTO(m *catalog.MasterRecipe) *inbound.MasterRecipeDTO {
	tags := m.Tags
	if tags == nil {
		tags = []string{}
	}
	return &inbound.MasterRecipeDTO{
		ID: m.ID,
		RecipeDraft: inbound.RecipeDraft{
			Name:            m.Name,
			Description:     m.Description,
			Servings:        m.Servings,
			PrepTimeMinutes: m.PrepMinutes,
			CookTimeMinutes: m.CookMinutes,
			Ingredients:     m.Ingredients,
			Instructions:    m.Instructions,
			Macros:          m.Macros,
			SourceURL:       m.SourceURL,
			RecipeSource:    m.RecipeSource,
		},
		Cuisine:   m.Cuisine,
		Tags:      tags,
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
	}
}
