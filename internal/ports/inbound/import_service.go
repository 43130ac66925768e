package inbound

import (
	"context"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/google/uuid"
)

// ImportService turns a recipe page URL into a metric recipe draft
type ImportService interface {
	ImportFromURL(ctx context.Context, cmd ImportCommand) (*ImportResult, error)
}

// ImportCommand requests an import on behalf of a user
type ImportCommand struct {
	UserID uuid.UUID
	URL    string
}

// ImportResult is the assembled draft plus how many ingredient lines were converted
type ImportResult struct {
	RecipeDraft
	ConversionSummary measurement.ConversionSummary `json:"conversionSummary"`
}
