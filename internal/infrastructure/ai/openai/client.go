// Package openai extracts recipes with any OpenAI-compatible chat endpoint
package openai

import (
	"context"
	"fmt"
	"time"

	"github.com/alchemorsel/kitchen/internal/infrastructure/ai"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/alchemorsel/kitchen/pkg/errors"
	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// Config configures the OpenAI extractor
type Config struct {
	BaseURL      string
	APIKey       string
	Model        string
	Temperature  float64
	MaxTokens    int
	Timeout      time.Duration
	MaxPageChars int
}

// contentGenerator is the part of a langchaingo model the extractor uses
type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// Extractor implements outbound.RecipeExtractor on top of langchaingo
type Extractor struct {
	llm    contentGenerator
	cfg    Config
	logger *zap.Logger
}

var _ outbound.RecipeExtractor = (*Extractor)(nil)

// New creates an extractor talking to an OpenAI-compatible API
func New(cfg Config, logger *zap.Logger) (*Extractor, error) {
	opts := []lcopenai.Option{
		lcopenai.WithModel(cfg.Model),
		lcopenai.WithToken(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, lcopenai.WithBaseURL(cfg.BaseURL))
	}

	llm, err := lcopenai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	logger.Info("OpenAI extractor initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model))

	return newWithModel(llm, cfg, logger), nil
}

func newWithModel(llm contentGenerator, cfg Config, logger *zap.Logger) *Extractor {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 2000
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Extractor{llm: llm, cfg: cfg, logger: logger.Named("openai-extractor")}
}

// Name identifies the adapter in logs and metrics
func (e *Extractor) Name() string {
	return "openai"
}

// Extract asks the model for the recipe on the page
func (e *Extractor) Extract(ctx context.Context, sourceURL, html string) (*outbound.ExtractedRecipe, error) {
	prompt, err := ai.PreparePrompt(sourceURL, html, e.cfg.MaxPageChars)
	if err != nil {
		return nil, errors.NewExtractionError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, e.cfg.Timeout)
	defer cancel()

	start := time.Now()
	resp, err := e.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, ai.SystemPrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, prompt),
		},
		llms.WithTemperature(e.cfg.Temperature),
		llms.WithMaxTokens(e.cfg.MaxTokens),
	)
	if err != nil {
		return nil, errors.NewExtractionError(fmt.Errorf("chat completion failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		return nil, errors.NewExtractionError(fmt.Errorf("model returned no choices"))
	}

	e.logger.Debug("Model responded",
		zap.String("url", sourceURL),
		zap.Int("prompt_chars", len(prompt)),
		zap.Duration("duration", time.Since(start)))

	extracted, err := ai.DecodeRecipe(resp.Choices[0].Content)
	if err != nil {
		return nil, errors.NewExtractionError(err)
	}
	return extracted, nil
}
