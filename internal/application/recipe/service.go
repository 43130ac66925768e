// Package recipe provides the application layer for the personal recipe library
// This implements the use cases defined in the inbound ports
package recipe

import (
	"context"
	stderrors "errors"
	"strings"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/alchemorsel/kitchen/internal/domain/shared"
	"github.com/alchemorsel/kitchen/internal/ports/inbound"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/alchemorsel/kitchen/pkg/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// RecipeService implements the recipe library use cases
type RecipeService struct {
	recipeRepo outbound.RecipeRepository
	normalizer *measurement.Normalizer
	events     shared.EventDispatcher
	logger     *zap.Logger
}

var _ inbound.RecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new recipe service
func NewRecipeService(
	recipeRepo outbound.RecipeRepository,
	normalizer *measurement.Normalizer,
	events shared.EventDispatcher,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		normalizer: normalizer,
		events:     events,
		logger:     logger.Named("recipe-service"),
	}
}

// SaveRecipe stores a draft in the user's library
func (s *RecipeService) SaveRecipe(ctx context.Context, cmd inbound.SaveRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Saving recipe",
		zap.String("name", cmd.Draft.Name),
		zap.String("user_id", cmd.UserID.String()),
	)

	ingredients, _ := s.normalizer.Renormalize(cmd.Draft.Ingredients)

	entity, err := recipe.NewRecipe(cmd.UserID, recipe.Details{
		Name:         cmd.Draft.Name,
		Description:  cmd.Draft.Description,
		Servings:     cmd.Draft.Servings,
		PrepMinutes:  cmd.Draft.PrepTimeMinutes,
		CookMinutes:  cmd.Draft.CookTimeMinutes,
		Ingredients:  ingredients,
		Instructions: cmd.Draft.Instructions,
		Macros:       cmd.Draft.Macros,
		Tags:         cmd.Tags,
		SourceURL:    cmd.Draft.SourceURL,
		RecipeSource: cmd.Draft.RecipeSource,
	})
	if err != nil {
		return nil, domainError(err)
	}

	return s.create(ctx, entity)
}

// SaveDetails stores already-built library content, such as a catalog copy
func (s *RecipeService) SaveDetails(ctx context.Context, userID uuid.UUID, details recipe.Details) (*inbound.RecipeDTO, error) {
	details.Ingredients, _ = s.normalizer.Renormalize(details.Ingredients)

	entity, err := recipe.NewRecipe(userID, details)
	if err != nil {
		return nil, domainError(err)
	}
	return s.create(ctx, entity)
}

func (s *RecipeService) create(ctx context.Context, entity *recipe.Recipe) (*inbound.RecipeDTO, error) {
	if err := s.recipeRepo.Create(ctx, entity); err != nil {
		return nil, errors.NewDatabaseError("create recipe", err)
	}

	s.publishEvents(ctx, entity)

	s.logger.Info("Recipe saved successfully",
		zap.String("recipe_id", entity.ID().String()),
		zap.Int("ingredients", len(entity.Ingredients())),
	)

	return ToDTO(entity), nil
}

// UpdateRecipe applies a partial update
func (s *RecipeService) UpdateRecipe(ctx context.Context, cmd inbound.UpdateRecipeCommand) (*inbound.RecipeDTO, error) {
	s.logger.Info("Updating recipe",
		zap.String("recipe_id", cmd.RecipeID.String()),
		zap.String("user_id", cmd.UserID.String()),
	)

	entity, err := s.load(ctx, cmd.UserID, cmd.RecipeID)
	if err != nil {
		return nil, err
	}

	details := entity.Details()
	if cmd.Name != nil {
		details.Name = *cmd.Name
	}
	if cmd.Description != nil {
		details.Description = *cmd.Description
	}
	if cmd.Servings != nil {
		details.Servings = *cmd.Servings
	}
	if cmd.PrepMinutes != nil {
		details.PrepMinutes = *cmd.PrepMinutes
	}
	if cmd.CookMinutes != nil {
		details.CookMinutes = *cmd.CookMinutes
	}
	if cmd.Ingredients != nil {
		details.Ingredients, _ = s.normalizer.Normalize(*cmd.Ingredients)
	}
	if cmd.Instructions != nil {
		details.Instructions = *cmd.Instructions
	}
	if cmd.Macros != nil {
		details.Macros = *cmd.Macros
	}
	if cmd.Tags != nil {
		details.Tags = *cmd.Tags
	}

	if err := entity.Update(details); err != nil {
		return nil, domainError(err)
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, persistError("update recipe", err)
	}

	s.publishEvents(ctx, entity)

	return ToDTO(entity), nil
}

// SetFavorite marks or unmarks a recipe as favorite
func (s *RecipeService) SetFavorite(ctx context.Context, userID, recipeID uuid.UUID, favorite bool) (*inbound.RecipeDTO, error) {
	entity, err := s.load(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if entity.IsFavorite() == favorite {
		return ToDTO(entity), nil
	}

	if err := entity.SetFavorite(favorite); err != nil {
		return nil, domainError(err)
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return nil, persistError("update recipe favorite", err)
	}

	s.publishEvents(ctx, entity)

	return ToDTO(entity), nil
}

// DeleteRecipe soft-deletes a recipe
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID, recipeID uuid.UUID) error {
	s.logger.Info("Deleting recipe",
		zap.String("recipe_id", recipeID.String()),
		zap.String("user_id", userID.String()),
	)

	entity, err := s.load(ctx, userID, recipeID)
	if err != nil {
		return err
	}

	if err := entity.Delete(); err != nil {
		return domainError(err)
	}

	if err := s.recipeRepo.Update(ctx, entity); err != nil {
		return persistError("delete recipe", err)
	}

	s.publishEvents(ctx, entity)

	s.logger.Info("Recipe deleted successfully",
		zap.String("recipe_id", recipeID.String()),
	)

	return nil
}

// GetRecipe retrieves one recipe from the user's library
func (s *RecipeService) GetRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*inbound.RecipeDTO, error) {
	entity, err := s.load(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	return ToDTO(entity), nil
}

// ListRecipes pages through the user's library, newest first
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, query inbound.ListQuery) (*inbound.RecipeList, error) {
	page, pageSize := Paginate(query.Page, query.PageSize)

	recipes, total, err := s.recipeRepo.FindByOwner(ctx, userID, outbound.RecipeCriteria{
		Query:         strings.TrimSpace(query.Search),
		FavoritesOnly: query.Favorites,
		Offset:        (page - 1) * pageSize,
		Limit:         pageSize,
	})
	if err != nil {
		return nil, errors.NewDatabaseError("find user recipes", err)
	}

	dtos := make([]*inbound.RecipeDTO, len(recipes))
	for i, r := range recipes {
		dtos[i] = ToDTO(r)
	}

	return &inbound.RecipeList{
		Recipes:    dtos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (total + pageSize - 1) / pageSize,
	}, nil
}

// load fetches a live recipe owned by the user. Other owners' recipes
// are reported as not found.
func (s *RecipeService) load(ctx context.Context, userID, recipeID uuid.UUID) (*recipe.Recipe, error) {
	entity, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if stderrors.Is(err, recipe.ErrRecipeNotFound) {
			return nil, errors.NewRecipeNotFoundError(recipeID.String())
		}
		return nil, errors.NewDatabaseError("find recipe", err)
	}
	if entity == nil || !entity.IsOwnedBy(userID) || entity.DeletedAt() != nil {
		return nil, errors.NewRecipeNotFoundError(recipeID.String())
	}
	return entity, nil
}

// publishEvents dispatches pending domain events. Failures are logged only.
func (s *RecipeService) publishEvents(ctx context.Context, entity *recipe.Recipe) {
	if s.events == nil {
		entity.Events()
		return
	}
	for _, event := range entity.Events() {
		if err := s.events.Dispatch(ctx, event); err != nil {
			s.logger.Error("Failed to publish event",
				zap.String("event", event.EventName()),
				zap.Error(err),
			)
		}
	}
}

// Paginate applies default and maximum page sizes to 1-based paging input
func Paginate(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// domainError maps recipe sentinels onto application errors
func domainError(err error) error {
	switch {
	case stderrors.Is(err, recipe.ErrRecipeDeleted), stderrors.Is(err, recipe.ErrRecipeNotFound):
		return errors.NewAppError(errors.CodeRecipeNotFound, "Recipe not found", err.Error())
	case stderrors.Is(err, recipe.ErrMissingOwner):
		return errors.NewUnauthorizedError(err.Error())
	default:
		return errors.NewValidationError(err.Error())
	}
}

func persistError(operation string, err error) error {
	if stderrors.Is(err, outbound.ErrVersionConflict) {
		return errors.NewAppError(errors.CodeConflict, "Recipe was modified by another request", err.Error())
	}
	if stderrors.Is(err, recipe.ErrRecipeNotFound) {
		return errors.NewAppError(errors.CodeRecipeNotFound, "Recipe not found", err.Error())
	}
	return errors.NewDatabaseError(operation, err)
}

// ToDTO converts a domain entity to its client representation
func ToDTO(entity *recipe.Recipe) *inbound.RecipeDTO {
	tags := entity.Tags()
	if tags == nil {
		tags = []string{}
	}
	return &inbound.RecipeDTO{
		ID: entity.ID(),
		RecipeDraft: inbound.RecipeDraft{
			Name:            entity.Name(),
			Description:     entity.Description(),
			Servings:        entity.Servings(),
			PrepTimeMinutes: entity.PrepMinutes(),
			CookTimeMinutes: entity.CookMinutes(),
			Ingredients:     entity.Ingredients(),
			Instructions:    entity.Instructions(),
			Macros:          entity.Macros(),
			SourceURL:       entity.SourceURL(),
			RecipeSource:    entity.RecipeSource(),
		},
		Tags:           tags,
		Favorite:       entity.IsFavorite(),
		MasterRecipeID: entity.MasterRecipeID(),
		CreatedAt:      entity.CreatedAt(),
		UpdatedAt:      entity.UpdatedAt(),
	}
}
