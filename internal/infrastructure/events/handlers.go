package events

import (
	"context"

	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/alchemorsel/kitchen/internal/domain/shared"
	"go.uber.org/zap"
)

// RegisterLibraryHandlers subscribes the library audit log to recipe events
func RegisterLibraryHandlers(d shared.EventDispatcher, log *zap.Logger) {
	audit := log.Named("library-audit")

	d.Register(recipe.RecipeSavedEvent{}.EventName(), func(ctx context.Context, event shared.DomainEvent) error {
		e, ok := event.(recipe.RecipeSavedEvent)
		if !ok {
			return nil
		}
		fields := []zap.Field{
			zap.String("recipe_id", e.RecipeID.String()),
			zap.String("owner_id", e.OwnerID.String()),
			zap.String("name", e.Name),
		}
		if e.MasterRecipeID != nil {
			fields = append(fields, zap.String("master_recipe_id", e.MasterRecipeID.String()))
		} else if e.SourceURL != "" {
			fields = append(fields, zap.String("source_url", e.SourceURL))
		}
		audit.Info("Recipe saved", fields...)
		return nil
	})

	d.Register(recipe.RecipeUpdatedEvent{}.EventName(), func(ctx context.Context, event shared.DomainEvent) error {
		if e, ok := event.(recipe.RecipeUpdatedEvent); ok {
			audit.Info("Recipe updated",
				zap.String("recipe_id", e.RecipeID.String()),
				zap.Strings("fields", e.Fields))
		}
		return nil
	})

	d.Register(recipe.RecipeDeletedEvent{}.EventName(), func(ctx context.Context, event shared.DomainEvent) error {
		if e, ok := event.(recipe.RecipeDeletedEvent); ok {
			audit.Info("Recipe deleted",
				zap.String("recipe_id", e.RecipeID.String()),
				zap.String("owner_id", e.OwnerID.String()))
		}
		return nil
	})
}
