package recipe

import (
	"time"

	"github.com/google/uuid"
)

// RecipeSavedEvent is raised when a recipe enters a user's library
type RecipeSavedEvent struct {
	RecipeID       uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	SourceURL      string
	MasterRecipeID *uuid.UUID
	SavedAt        time.Time
}

func (e RecipeSavedEvent) EventName() string {
	return "recipe.saved"
}

func (e RecipeSavedEvent) OccurredAt() time.Time {
	return e.SavedAt
}

// RecipeUpdatedEvent is raised when recipe content or flags change
type RecipeUpdatedEvent struct {
	RecipeID  uuid.UUID
	Fields    []string
	UpdatedAt time.Time
}

func (e RecipeUpdatedEvent) EventName() string {
	return "recipe.updated"
}

func (e RecipeUpdatedEvent) OccurredAt() time.Time {
	return e.UpdatedAt
}

// RecipeDeletedEvent is raised when a recipe is soft-deleted
type RecipeDeletedEvent struct {
	RecipeID  uuid.UUID
	OwnerID   uuid.UUID
	DeletedAt time.Time
}

func (e RecipeDeletedEvent) EventName() string {
	return "recipe.deleted"
}

func (e RecipeDeletedEvent) OccurredAt() time.Time {
	return e.DeletedAt
}
