package outbound

import (
	"context"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/domain/recipe"
)

// FetchedPage is the raw result of retrieving a recipe page
type FetchedPage struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	HTML        string
}

// PageFetcher retrieves a web page. Any transport failure or non-2xx status is
// reported as an error; no retries are attempted.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (*FetchedPage, error)
}

// ExtractedRecipe is the structured recipe a model pulled out of a page.
// Ingredient quantities are still in the units the page used.
type ExtractedRecipe struct {
	Name            string                   `validate:"required"`
	Description     string
	Servings        int                      `validate:"gte=0"`
	PrepTimeMinutes int                      `validate:"gte=0"`
	CookTimeMinutes int                      `validate:"gte=0"`
	Ingredients     []measurement.Ingredient `validate:"required,min=1,dive"`
	Instructions    []string                 `validate:"required,min=1,dive,required"`
	Macros          recipe.Macros
}

// RecipeExtractor turns page content into a structured recipe
type RecipeExtractor interface {
	Extract(ctx context.Context, sourceURL, html string) (*ExtractedRecipe, error)
	Name() string
}

// ImportMetrics records pipeline outcomes
type ImportMetrics interface {
	RecordImport(outcome string, duration time.Duration)
	RecordStage(stage string, duration time.Duration)
	RecordConversions(summary measurement.ConversionSummary)
}
