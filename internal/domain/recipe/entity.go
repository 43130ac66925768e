// Package recipe contains the core domain logic for a user's recipe library.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"strings"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/domain/shared"
	"github.com/google/uuid"
)

// Recipe is a recipe saved in one user's library
type Recipe struct {
	// Aggregate root identifier
	id      uuid.UUID
	version int64 // Optimistic locking
	ownerID uuid.UUID

	// Basic attributes
	name        string
	description string
	servings    int
	prepMinutes int
	cookMinutes int

	// Recipe details
	ingredients  []measurement.NormalizedIngredient
	instructions []string
	macros       Macros
	tags         []string

	// Provenance
	sourceURL      string
	recipeSource   string
	masterRecipeID *uuid.UUID

	favorite bool

	// Metadata
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time

	// Domain events to be dispatched
	events []shared.DomainEvent
}

// Details carries the user-editable content of a recipe
type Details struct {
	Name           string
	Description    string
	Servings       int
	PrepMinutes    int
	CookMinutes    int
	Ingredients    []measurement.NormalizedIngredient
	Instructions   []string
	Macros         Macros
	Tags           []string
	SourceURL      string
	RecipeSource   string
	MasterRecipeID *uuid.UUID
}

// NewRecipe creates a new Recipe with validation
func NewRecipe(ownerID uuid.UUID, d Details) (*Recipe, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	if err := validateDetails(d); err != nil {
		return nil, err
	}

	now := time.Now()
	recipe := &Recipe{
		id:             uuid.New(),
		version:        1,
		ownerID:        ownerID,
		name:           strings.TrimSpace(d.Name),
		description:    d.Description,
		servings:       d.Servings,
		prepMinutes:    d.PrepMinutes,
		cookMinutes:    d.CookMinutes,
		ingredients:    d.Ingredients,
		instructions:   cleanInstructions(d.Instructions),
		macros:         d.Macros,
		tags:           normalizeTags(d.Tags),
		sourceURL:      d.SourceURL,
		recipeSource:   d.RecipeSource,
		masterRecipeID: d.MasterRecipeID,
		createdAt:      now,
		updatedAt:      now,
		events:         []shared.DomainEvent{},
	}

	recipe.addEvent(RecipeSavedEvent{
		RecipeID:       recipe.id,
		OwnerID:        ownerID,
		Name:           recipe.name,
		SourceURL:      recipe.sourceURL,
		MasterRecipeID: recipe.masterRecipeID,
		SavedAt:        now,
	})

	return recipe, nil
}

// Snapshot is the persisted state of a recipe
type Snapshot struct {
	ID        uuid.UUID
	Version   int64
	OwnerID   uuid.UUID
	Details   Details
	Favorite  bool
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// Rehydrate rebuilds a recipe from storage without validation or events
func Rehydrate(s Snapshot) *Recipe {
	d := s.Details
	return &Recipe{
		id:             s.ID,
		version:        s.Version,
		ownerID:        s.OwnerID,
		name:           d.Name,
		description:    d.Description,
		servings:       d.Servings,
		prepMinutes:    d.PrepMinutes,
		cookMinutes:    d.CookMinutes,
		ingredients:    d.Ingredients,
		instructions:   d.Instructions,
		macros:         d.Macros,
		tags:           d.Tags,
		sourceURL:      d.SourceURL,
		recipeSource:   d.RecipeSource,
		masterRecipeID: d.MasterRecipeID,
		favorite:       s.Favorite,
		createdAt:      s.CreatedAt,
		updatedAt:      s.UpdatedAt,
		deletedAt:      s.DeletedAt,
		events:         []shared.DomainEvent{},
	}
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Version returns the recipe's version
func (r *Recipe) Version() int64 {
	return r.version
}

// OwnerID returns the user who owns the recipe
func (r *Recipe) OwnerID() uuid.UUID {
	return r.ownerID
}

// Name returns the recipe's name
func (r *Recipe) Name() string {
	return r.name
}

// Description returns the recipe's description
func (r *Recipe) Description() string {
	return r.description
}

// Servings returns the number of servings
func (r *Recipe) Servings() int {
	return r.servings
}

// PrepMinutes returns the preparation time in minutes
func (r *Recipe) PrepMinutes() int {
	return r.prepMinutes
}

// CookMinutes returns the cooking time in minutes
func (r *Recipe) CookMinutes() int {
	return r.cookMinutes
}

// Ingredients returns the recipe's ingredients
func (r *Recipe) Ingredients() []measurement.NormalizedIngredient {
	return r.ingredients
}

// Instructions returns the recipe's instruction steps
func (r *Recipe) Instructions() []string {
	return r.instructions
}

// Macros returns the per-serving macros
func (r *Recipe) Macros() Macros {
	return r.macros
}

// Tags returns the recipe's tags
func (r *Recipe) Tags() []string {
	return r.tags
}

// SourceURL returns the page the recipe was imported from
func (r *Recipe) SourceURL() string {
	return r.sourceURL
}

// RecipeSource returns the host the recipe was imported from
func (r *Recipe) RecipeSource() string {
	return r.recipeSource
}

// MasterRecipeID returns the catalog entry this recipe was copied from, if any
func (r *Recipe) MasterRecipeID() *uuid.UUID {
	return r.masterRecipeID
}

// IsFavorite reports whether the owner marked the recipe as a favorite
func (r *Recipe) IsFavorite() bool {
	return r.favorite
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// DeletedAt returns when the recipe was deleted
func (r *Recipe) DeletedAt() *time.Time {
	return r.deletedAt
}

// IsOwnedBy reports whether the recipe belongs to the user
func (r *Recipe) IsOwnedBy(userID uuid.UUID) bool {
	return r.ownerID == userID
}

// Details returns a copy of the editable content
func (r *Recipe) Details() Details {
	return Details{
		Name:           r.name,
		Description:    r.description,
		Servings:       r.servings,
		PrepMinutes:    r.prepMinutes,
		CookMinutes:    r.cookMinutes,
		Ingredients:    r.ingredients,
		Instructions:   r.instructions,
		Macros:         r.macros,
		Tags:           r.tags,
		SourceURL:      r.sourceURL,
		RecipeSource:   r.recipeSource,
		MasterRecipeID: r.masterRecipeID,
	}
}

// Update replaces the editable content after validating it
func (r *Recipe) Update(d Details) error {
	if r.deletedAt != nil {
		return ErrRecipeDeleted
	}
	if err := validateDetails(d); err != nil {
		return err
	}

	changed := changedFields(r.Details(), d)

	r.name = strings.TrimSpace(d.Name)
	r.description = d.Description
	r.servings = d.Servings
	r.prepMinutes = d.PrepMinutes
	r.cookMinutes = d.CookMinutes
	r.ingredients = d.Ingredients
	r.instructions = cleanInstructions(d.Instructions)
	r.macros = d.Macros
	r.tags = normalizeTags(d.Tags)
	r.touch()

	r.addEvent(RecipeUpdatedEvent{
		RecipeID:  r.id,
		Fields:    changed,
		UpdatedAt: r.updatedAt,
	})

	return nil
}

// SetFavorite marks or unmarks the recipe as a favorite
func (r *Recipe) SetFavorite(favorite bool) error {
	if r.deletedAt != nil {
		return ErrRecipeDeleted
	}
	if r.favorite == favorite {
		return nil
	}

	r.favorite = favorite
	r.touch()

	r.addEvent(RecipeUpdatedEvent{
		RecipeID:  r.id,
		Fields:    []string{"favorite"},
		UpdatedAt: r.updatedAt,
	})

	return nil
}

// Delete soft-deletes the recipe
func (r *Recipe) Delete() error {
	if r.deletedAt != nil {
		return ErrRecipeDeleted
	}

	now := time.Now()
	r.deletedAt = &now
	r.touch()

	r.addEvent(RecipeDeletedEvent{
		RecipeID:  r.id,
		OwnerID:   r.ownerID,
		DeletedAt: now,
	})

	return nil
}

func (r *Recipe) touch() {
	r.updatedAt = time.Now()
	r.version++
}

// addEvent adds a domain event to be dispatched
func (r *Recipe) addEvent(event shared.DomainEvent) {
	r.events = append(r.events, event)
}

// Events returns and clears pending domain events
func (r *Recipe) Events() []shared.DomainEvent {
	events := r.events
	r.events = []shared.DomainEvent{}
	return events
}

func validateDetails(d Details) error {
	if err := validateName(d.Name); err != nil {
		return err
	}
	if err := validateDescription(d.Description); err != nil {
		return err
	}
	if d.Servings < 0 {
		return ErrInvalidServings
	}
	if d.PrepMinutes < 0 || d.CookMinutes < 0 {
		return ErrInvalidDuration
	}
	if len(cleanInstructions(d.Instructions)) == 0 {
		return ErrNoInstructions
	}
	for _, ing := range d.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return ErrIngredientNameRequired
		}
	}
	return d.Macros.Validate()
}

// validateName validates recipe name
func validateName(name string) error {
	n := len([]rune(strings.TrimSpace(name)))
	if n < 3 {
		return ErrNameTooShort
	}
	if n > 200 {
		return ErrNameTooLong
	}
	return nil
}

// validateDescription validates recipe description
func validateDescription(description string) error {
	if len([]rune(description)) > 2000 {
		return ErrDescriptionTooLong
	}
	return nil
}

func cleanInstructions(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func changedFields(before, after Details) []string {
	var fields []string
	if strings.TrimSpace(after.Name) != before.Name {
		fields = append(fields, "name")
	}
	if after.Description != before.Description {
		fields = append(fields, "description")
	}
	if after.Servings != before.Servings {
		fields = append(fields, "servings")
	}
	if after.PrepMinutes != before.PrepMinutes || after.CookMinutes != before.CookMinutes {
		fields = append(fields, "times")
	}
	if len(after.Ingredients) != len(before.Ingredients) {
		fields = append(fields, "ingredients")
	}
	if len(after.Instructions) != len(before.Instructions) {
		fields = append(fields, "instructions")
	}
	if after.Macros != before.Macros {
		fields = append(fields, "macros")
	}
	return fields
}
