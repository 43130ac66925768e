package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alchemorsel/kitchen/internal/application/catalog"
	"github.com/alchemorsel/kitchen/internal/application/pantry"
	"github.com/alchemorsel/kitchen/internal/application/recipe"
	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/infrastructure/config"
	"github.com/alchemorsel/kitchen/internal/infrastructure/http/handlers"
	"github.com/alchemorsel/kitchen/internal/infrastructure/monitoring"
	"github.com/alchemorsel/kitchen/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/kitchen/internal/infrastructure/security"
	"github.com/alchemorsel/kitchen/internal/testutils"
	"github.com/alchemorsel/kitchen/pkg/healthcheck"
	"github.com/andybalholm/brotli"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

const testSecret = "server-test-secret-with-enough-bytes"

type ServerTestSuite struct {
	suite.Suite
	cache   *memory.CacheRepository
	metrics *monitoring.MetricsCollector
	server  *Server
}

func (s *ServerTestSuite) SetupTest() {
	logger := zap.NewNop()
	s.cache = memory.NewCacheRepository(time.Minute)
	s.metrics = monitoring.NewMetricsCollector()

	events := &testutils.MockEventDispatcher{}
	events.On("Dispatch", mock.Anything, mock.Anything).Return(nil)
	recipeService := recipe.NewRecipeService(testutils.NewInMemoryRecipeRepository(), measurement.NewNormalizer(), events, logger)
	pantryService := pantry.NewPantryService(testutils.NewInMemoryPantryRepository(), pantry.Config{}, logger)
	catalogService := catalog.NewCatalogService(
		testutils.NewInMemoryCatalogRepository(testutils.NewMasterRecipe("Shakshuka", "middle eastern", "eggs")),
		s.cache, recipeService, catalog.Config{}, logger)

	h := handlers.NewHandlers(nil, recipeService, pantryService, catalogService, logger)
	verifier := security.NewTokenVerifier(security.AuthConfig{JWTSecret: testSecret}, s.cache, logger)
	limiter := security.NewKeyedRateLimiter(security.RateLimitConfig{RequestsPerMinute: 1, Burst: 1})

	health := healthcheck.New("test", logger)
	health.Register("database", healthcheck.NewPingChecker(func(context.Context) error { return nil }))

	cfg := &config.Config{
		App:    config.AppConfig{Name: "kitchen", Environment: "test"},
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080, AllowedOrigins: []string{"*"}, EnableCompression: true},
		Monitoring: config.MonitoringConfig{
			EnableMetrics: true,
		},
	}

	s.server = NewServer(cfg, logger, h, verifier, limiter, s.metrics, health)
}

func (s *ServerTestSuite) TearDownTest() {
	s.cache.Close()
}

func (s *ServerTestSuite) token() string {
	claims := jwt.MapClaims{
		"sub": uuid.NewString(),
		"exp": time.Now().Add(time.Hour).Unix(),
		"jti": uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	s.Require().NoError(err)
	return signed
}

func (s *ServerTestSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.server.Handler().ServeHTTP(rec, req)
	return rec
}

func (s *ServerTestSuite) TestHealthAndReadiness() {
	rec := s.serve(httptest.NewRequest(http.MethodGet, "/health", nil))
	s.Equal(http.StatusOK, rec.Code)

	rec = s.serve(httptest.NewRequest(http.MethodGet, "/ready", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `"database"`)
}

func (s *ServerTestSuite) TestMetricsEndpointCountsRequests() {
	s.serve(httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))

	rec := s.serve(httptest.NewRequest(http.MethodGet, "/metrics", nil))

	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), `kitchen_http_requests_total{method="GET",route="/api/v1/catalog`)
}

func (s *ServerTestSuite) TestCatalogIsPublicButLibraryIsNot() {
	rec := s.serve(httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Shakshuka")

	rec = s.serve(httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil))
	s.Equal(http.StatusUnauthorized, rec.Code)
	s.JSONEq(`{"error":"Authorization header required"}`, rec.Body.String())
}

func (s *ServerTestSuite) TestAuthenticatedRequest() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/pantry", nil)
	req.Header.Set("Authorization", "Bearer "+s.token())

	rec := s.serve(req)

	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"items":[]}`, rec.Body.String())
}

func (s *ServerTestSuite) TestImportIsRateLimited() {
	token := s.token()
	send := func() *httptest.ResponseRecorder {
		// an empty body is rejected by the handler before any import runs
		req := httptest.NewRequest(http.MethodPost, "/api/v1/recipes/import", strings.NewReader(""))
		req.Header.Set("Authorization", "Bearer "+token)
		return s.serve(req)
	}

	first := send()
	s.Equal(http.StatusBadRequest, first.Code)

	second := send()
	s.Equal(http.StatusTooManyRequests, second.Code)
	s.NotEmpty(second.Header().Get("Retry-After"))
}

func (s *ServerTestSuite) TestBrotliCompression() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/catalog", nil)
	req.Header.Set("Accept-Encoding", "br")

	rec := s.serve(req)

	s.Require().Equal(http.StatusOK, rec.Code)
	s.Equal("br", rec.Header().Get("Content-Encoding"))
	body, err := io.ReadAll(brotli.NewReader(rec.Body))
	s.Require().NoError(err)
	s.Contains(string(body), "Shakshuka")
}

func (s *ServerTestSuite) TestUnknownRouteUsesErrorEnvelope() {
	rec := s.serve(httptest.NewRequest(http.MethodGet, "/nope", nil))

	s.Equal(http.StatusNotFound, rec.Code)
	s.JSONEq(`{"error":"Not found"}`, rec.Body.String())
}

func TestServerTestSuite(t *testing.T) {
	suite.Run(t, new(ServerTestSuite))
}
