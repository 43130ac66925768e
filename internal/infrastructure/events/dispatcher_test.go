package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/recipe"
	"github.com/alchemorsel/kitchen/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatchRunsEveryHandler(t *testing.T) {
	// Arrange
	d := NewDispatcher(zap.NewNop())
	var calls []string

	d.Register("recipe.saved", func(ctx context.Context, event shared.DomainEvent) error {
		calls = append(calls, "first")
		return errors.New("boom")
	})
	d.Register("recipe.saved", func(ctx context.Context, event shared.DomainEvent) error {
		saved, ok := event.(recipe.RecipeSavedEvent)
		require.True(t, ok)
		calls = append(calls, saved.Name)
		return nil
	})
	d.Register("recipe.deleted", func(ctx context.Context, event shared.DomainEvent) error {
		calls = append(calls, "deleted")
		return nil
	})

	// Act
	err := d.Dispatch(context.Background(), recipe.RecipeSavedEvent{
		RecipeID: uuid.New(),
		Name:     "Shakshuka",
		SavedAt:  time.Now(),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "Shakshuka"}, calls)
}

func TestDispatchWithoutHandlers(t *testing.T) {
	d := NewDispatcher(zap.NewNop())

	err := d.Dispatch(context.Background(), recipe.RecipeDeletedEvent{RecipeID: uuid.New()})

	assert.NoError(t, err)
}

func TestLibraryHandlersLogRecipeEvents(t *testing.T) {
	// Arrange
	core, logs := observer.New(zap.InfoLevel)
	d := NewDispatcher(zap.NewNop())
	RegisterLibraryHandlers(d, zap.New(core))
	masterID := uuid.New()

	// Act
	require.NoError(t, d.Dispatch(context.Background(), recipe.RecipeSavedEvent{
		RecipeID:       uuid.New(),
		OwnerID:        uuid.New(),
		Name:           "Dal",
		MasterRecipeID: &masterID,
		SavedAt:        time.Now(),
	}))
	require.NoError(t, d.Dispatch(context.Background(), recipe.RecipeUpdatedEvent{
		RecipeID: uuid.New(),
		Fields:   []string{"name"},
	}))
	require.NoError(t, d.Dispatch(context.Background(), recipe.RecipeDeletedEvent{RecipeID: uuid.New()}))

	// Assert
	require.Equal(t, 3, logs.Len())
	entries := logs.All()
	assert.Equal(t, "Recipe saved", entries[0].Message)
	assert.Equal(t, masterID.String(), entries[0].ContextMap()["master_recipe_id"])
	assert.Equal(t, "Recipe updated", entries[1].Message)
	assert.Equal(t, "Recipe deleted", entries[2].Message)
}
