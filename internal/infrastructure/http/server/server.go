// Package server provides the HTTP server for the kitchen API
package server

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/alchemorsel/kitchen/internal/infrastructure/config"
	"github.com/alchemorsel/kitchen/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/kitchen/internal/infrastructure/http/middleware"
	"github.com/alchemorsel/kitchen/internal/infrastructure/monitoring"
	"github.com/alchemorsel/kitchen/pkg/healthcheck"
	"github.com/andybalholm/brotli"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/net/http2"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	handlers *handlers.Handlers
	verifier middleware.TokenValidator
	limiter  middleware.Limiter
	metrics  *monitoring.MetricsCollector
	health   *healthcheck.HealthCheck
	handler  http.Handler
	server   *http.Server
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	h *handlers.Handlers,
	verifier middleware.TokenValidator,
	limiter middleware.Limiter,
	metrics *monitoring.MetricsCollector,
	health *healthcheck.HealthCheck,
) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger.Named("http-server"),
		handlers: h,
		verifier: verifier,
		limiter:  limiter,
		metrics:  metrics,
		health:   health,
	}

	s.handler = otelhttp.NewHandler(s.setupRouter(), "http.server")

	s.server = &http.Server{
		Addr:              cfg.Address(),
		Handler:           s.handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		MaxHeaderBytes:    cfg.Server.MaxHeaderBytes,
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(middleware.Recovery(s.logger))
	r.Use(middleware.Security())
	r.Use(middleware.CORS(s.config.Server.AllowedOrigins))
	if s.config.Monitoring.EnableMetrics {
		r.Use(middleware.Metrics(s.metrics))
	}
	if s.config.Server.EnableCompression {
		r.Use(newCompressor().Handler)
	}

	// Operational endpoints
	r.Get("/health", s.health.LivenessHandler())
	r.Get("/ready", s.health.ReadinessHandler())
	if s.config.Monitoring.EnableMetrics {
		r.Handle("/metrics", s.metrics.Handler())
	}

	authenticate := middleware.Authenticate(s.verifier, s.logger)
	importLimit := middleware.RateLimit(s.limiter, s.logger)
	r.Mount("/api/v1", s.handlers.Routes(authenticate, importLimit))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"error":"Not found"}`)
	})

	return r
}

// newCompressor negotiates brotli ahead of gzip and deflate
func newCompressor() *chimiddleware.Compressor {
	c := chimiddleware.NewCompressor(5, "application/json", "text/plain")
	c.SetEncoder("br", func(w io.Writer, level int) io.Writer {
		return brotli.NewWriterLevel(w, level)
	})
	return c
}

// Handler returns the fully wrapped handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)

	// Enable HTTP/2
	if err := http2.ConfigureServer(s.server, nil); err != nil {
		s.logger.Error("Failed to configure HTTP/2", zap.Error(err))
	}

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
