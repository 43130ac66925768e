// Package ollama provides Ollama integration for local recipe extraction
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alchemorsel/kitchen/internal/infrastructure/ai"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/alchemorsel/kitchen/pkg/errors"
	"go.uber.org/zap"
)

// Config configures the Ollama client
type Config struct {
	BaseURL      string
	Model        string
	Temperature  float64
	Timeout      time.Duration
	MaxPageChars int
}

// Client implements outbound.RecipeExtractor using the Ollama chat API
type Client struct {
	baseURL      string
	model        string
	temperature  float64
	maxPageChars int
	client       *http.Client
	logger       *zap.Logger
}

var _ outbound.RecipeExtractor = (*Client)(nil)

// NewClient creates a new Ollama client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:11434"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3.2:3b"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}

	logger.Info("Ollama client initialized",
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout))

	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		model:        cfg.Model,
		temperature:  cfg.Temperature,
		maxPageChars: cfg.MaxPageChars,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		logger: logger.Named("ollama-client"),
	}
}

// Ollama API structures
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string                 `json:"model"`
	Messages []ChatMessage          `json:"messages"`
	Stream   bool                   `json:"stream"`
	Format   string                 `json:"format,omitempty"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type ChatResponse struct {
	Model           string      `json:"model"`
	Message         ChatMessage `json:"message"`
	Done            bool        `json:"done"`
	TotalDuration   int64       `json:"total_duration,omitempty"`
	PromptEvalCount int         `json:"prompt_eval_count,omitempty"`
	EvalCount       int         `json:"eval_count,omitempty"`
}

// Name identifies the adapter in logs and metrics
func (c *Client) Name() string {
	return "ollama"
}

// HealthCheck verifies the Ollama service is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/tags", nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama health check failed with status %d", resp.StatusCode)
	}
	return nil
}

// Extract asks the local model for the recipe on the page
func (c *Client) Extract(ctx context.Context, sourceURL, html string) (*outbound.ExtractedRecipe, error) {
	prompt, err := ai.PreparePrompt(sourceURL, html, c.maxPageChars)
	if err != nil {
		return nil, errors.NewExtractionError(err)
	}

	response, err := c.generateChatCompletion(ctx, ai.SystemPrompt, prompt)
	if err != nil {
		c.logger.Error("Ollama chat completion failed", zap.Error(err))
		return nil, errors.NewExtractionError(err)
	}

	extracted, err := ai.DecodeRecipe(response)
	if err != nil {
		c.logger.Warn("Failed to parse Ollama response",
			zap.Error(err),
			zap.Int("response_chars", len(response)))
		return nil, errors.NewExtractionError(err)
	}

	c.logger.Info("Recipe extracted via Ollama",
		zap.String("name", extracted.Name),
		zap.Int("ingredients", len(extracted.Ingredients)))

	return extracted, nil
}

// generateChatCompletion uses Ollama's chat API in JSON mode
func (c *Client) generateChatCompletion(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	reqBody := ChatRequest{
		Model: c.model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream: false,
		Format: "json",
		Options: map[string]interface{}{
			"temperature": c.temperature,
			"num_predict": 2000,
			"num_ctx":     8192,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	c.logger.Debug("Ollama chat completion",
		zap.Int("prompt_tokens", chatResp.PromptEvalCount),
		zap.Int("eval_tokens", chatResp.EvalCount),
		zap.Duration("duration", time.Duration(chatResp.TotalDuration)))

	return chatResp.Message.Content, nil
}
