package pantry

import "errors"

var (
	ErrNameRequired       = errors.New("pantry item name is required")
	ErrNameTooLong        = errors.New("pantry item name must not exceed 100 characters")
	ErrInvalidLocation    = errors.New("location must be fridge, freezer or pantry")
	ErrInvalidAmount      = errors.New("amount must be greater than 0")
	ErrNonNumericQuantity = errors.New("item quantity is not a single number")
	ErrMissingOwner       = errors.New("pantry item must have an owner")
	ErrItemNotFound       = errors.New("pantry item not found")
)
