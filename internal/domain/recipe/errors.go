package recipe

import "errors"

// Domain errors for recipe operations

var (
	// Entity validation errors
	ErrNameTooShort           = errors.New("recipe name must be at least 3 characters")
	ErrNameTooLong            = errors.New("recipe name must not exceed 200 characters")
	ErrDescriptionTooLong     = errors.New("recipe description must not exceed 2000 characters")
	ErrInvalidServings        = errors.New("servings cannot be negative")
	ErrInvalidDuration        = errors.New("prep and cook time cannot be negative")
	ErrInvalidMacros          = errors.New("macros cannot be negative")
	ErrNoInstructions         = errors.New("recipe must have at least one instruction")
	ErrIngredientNameRequired = errors.New("ingredient name is required")
	ErrMissingOwner           = errors.New("recipe must have an owner")

	// State errors
	ErrRecipeNotFound = errors.New("recipe not found")
	ErrRecipeDeleted  = errors.New("recipe has been deleted")
)
