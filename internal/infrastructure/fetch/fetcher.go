// Package fetch retrieves recipe pages over HTTP
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/alchemorsel/kitchen/pkg/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const (
	DefaultUserAgent    = "AlchemorselKitchen/1.0 (+https://alchemorsel.com/bot)"
	DefaultTimeout      = 15 * time.Second
	DefaultMaxBodyBytes = 5 << 20
)

// Config configures the page fetcher
type Config struct {
	UserAgent    string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// HTTPFetcher fetches web pages with a single GET request
type HTTPFetcher struct {
	client       *http.Client
	userAgent    string
	maxBodyBytes int64
	logger       *zap.Logger
}

// New creates an HTTPFetcher. Zero config values fall back to defaults.
func New(cfg Config, logger *zap.Logger) *HTTPFetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &HTTPFetcher{
		client: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		userAgent:    cfg.UserAgent,
		maxBodyBytes: cfg.MaxBodyBytes,
		logger:       logger.Named("fetcher"),
	}
}

// Fetch retrieves the HTML of the given URL. Transport errors and non-2xx
// responses are both reported as upstream fetch failures.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*outbound.FetchedPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.NewUpstreamFetchError(rawURL, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.NewUpstreamFetchError(rawURL, fmt.Errorf("fetching page: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return nil, errors.NewUpstreamFetchError(rawURL, fmt.Errorf("upstream returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodyBytes))
	if err != nil {
		return nil, errors.NewUpstreamFetchError(rawURL, fmt.Errorf("reading response body: %w", err))
	}

	f.logger.Debug("Fetched page",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
		zap.Duration("duration", time.Since(start)),
	)

	return &outbound.FetchedPage{
		URL:         rawURL,
		FinalURL:    resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		HTML:        string(body),
	}, nil
}
