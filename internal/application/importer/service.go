// Package importer implements the recipe import pipeline:
// fetch the page, extract a recipe with a model, normalize units, assemble a draft.
package importer

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/ports/inbound"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/alchemorsel/kitchen/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/alchemorsel/kitchen/internal/application/importer"

// Import outcomes reported to metrics
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidInput    = "invalid_input"
	OutcomeFetchFailed     = "fetch_failed"
	OutcomeExtractFailed   = "extraction_failed"
	OutcomeInternalFailure = "internal_error"
)

// ImportService implements the import use case
type ImportService struct {
	fetcher    outbound.PageFetcher
	extractor  outbound.RecipeExtractor
	normalizer *measurement.Normalizer
	metrics    outbound.ImportMetrics
	tracer     trace.Tracer
	logger     *zap.Logger
}

// NewImportService creates a new import service
func NewImportService(
	fetcher outbound.PageFetcher,
	extractor outbound.RecipeExtractor,
	normalizer *measurement.Normalizer,
	metrics outbound.ImportMetrics,
	logger *zap.Logger,
) *ImportService {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &ImportService{
		fetcher:    fetcher,
		extractor:  extractor,
		normalizer: normalizer,
		metrics:    metrics,
		tracer:     otel.Tracer(tracerName),
		logger:     logger.Named("import-service"),
	}
}

// ImportFromURL runs the pipeline once. It either returns a complete draft or
// an error; partial results are never returned.
func (s *ImportService) ImportFromURL(ctx context.Context, cmd inbound.ImportCommand) (result *inbound.ImportResult, err error) {
	started := time.Now()
	ctx, span := s.tracer.Start(ctx, "importer.ImportFromURL",
		trace.WithAttributes(attribute.String("import.url", cmd.URL)))
	defer func() {
		outcome := outcomeOf(err)
		s.metrics.RecordImport(outcome, time.Since(started))
		span.SetAttributes(attribute.String("import.outcome", outcome))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	log := s.logger.With(
		zap.String("user_id", cmd.UserID.String()),
		zap.String("url", cmd.URL),
	)

	sourceURL, err := ValidateURL(cmd.URL)
	if err != nil {
		log.Info("Rejected import URL", zap.Error(err))
		return nil, err
	}

	log.Info("Importing recipe")

	page, err := s.fetch(ctx, sourceURL.String())
	if err != nil {
		log.Warn("Failed to fetch recipe page", zap.Error(err))
		return nil, err
	}

	extracted, err := s.extract(ctx, cmd.URL, page.HTML)
	if err != nil {
		log.Error("Failed to extract recipe", zap.String("extractor", s.extractor.Name()), zap.Error(err))
		return nil, err
	}

	stageStart := time.Now()
	normalized, summary := s.normalizer.Normalize(extracted.Ingredients)
	s.metrics.RecordStage("normalize", time.Since(stageStart))
	s.metrics.RecordConversions(summary)

	result = Assemble(strings.TrimSpace(cmd.URL), sourceURL, extracted, normalized, summary)

	log.Info("Recipe imported",
		zap.String("name", result.Name),
		zap.Int("ingredients", summary.Total),
		zap.Int("converted", summary.Converted),
		zap.Duration("duration", time.Since(started)),
	)

	return result, nil
}

func (s *ImportService) fetch(ctx context.Context, rawURL string) (*outbound.FetchedPage, error) {
	ctx, span := s.tracer.Start(ctx, "importer.fetch")
	defer span.End()

	start := time.Now()
	page, err := s.fetcher.Fetch(ctx, rawURL)
	s.metrics.RecordStage("fetch", time.Since(start))
	if err != nil {
		if errors.Is(err, errors.CodeUpstreamFetchFailed) {
			return nil, err
		}
		return nil, errors.NewUpstreamFetchError(rawURL, err)
	}

	span.SetAttributes(
		attribute.Int("http.status_code", page.StatusCode),
		attribute.Int("page.bytes", len(page.HTML)),
	)
	return page, nil
}

func (s *ImportService) extract(ctx context.Context, sourceURL, html string) (*outbound.ExtractedRecipe, error) {
	ctx, span := s.tracer.Start(ctx, "importer.extract",
		trace.WithAttributes(attribute.String("extractor", s.extractor.Name())))
	defer span.End()

	start := time.Now()
	extracted, err := s.extractor.Extract(ctx, sourceURL, html)
	s.metrics.RecordStage("extract", time.Since(start))
	if err != nil {
		if errors.Is(err, errors.CodeExtractionFailed) {
			return nil, err
		}
		return nil, errors.NewExtractionError(err)
	}
	if extracted == nil {
		return nil, errors.NewExtractionError(nil)
	}
	return extracted, nil
}

// ValidateURL checks that the input is an absolute http(s) URL with a host
func ValidateURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, errors.NewInvalidInputError("url is required")
	}

	u, err := url.ParseRequestURI(trimmed)
	if err != nil {
		return nil, errors.NewInvalidInputError("url is not a valid absolute URL").WithCause(err)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, errors.NewInvalidInputError("url must use http or https")
	}
	if u.Hostname() == "" {
		return nil, errors.NewInvalidInputError("url must include a host")
	}

	return u, nil
}

func outcomeOf(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	switch errors.GetCode(err) {
	case errors.CodeInvalidInput:
		return OutcomeInvalidInput
	case errors.CodeUpstreamFetchFailed:
		return OutcomeFetchFailed
	case errors.CodeExtractionFailed:
		return OutcomeExtractFailed
	default:
		return OutcomeInternalFailure
	}
}

type nopMetrics struct{}

func (nopMetrics) RecordImport(string, time.Duration)              {}
func (nopMetrics) RecordStage(string, time.Duration)               {}
func (nopMetrics) RecordConversions(measurement.ConversionSummary) {}
