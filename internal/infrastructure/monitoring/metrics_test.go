package monitoring

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/infrastructure/persistence/memory"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRecordImportAndConversions(t *testing.T) {
	// Arrange
	m := NewMetricsCollector()

	// Act
	m.RecordImport("success", 2*time.Second)
	m.RecordImport("success", time.Second)
	m.RecordImport("fetch_failed", 100*time.Millisecond)
	m.RecordConversions(measurement.ConversionSummary{Total: 5, Converted: 3})

	// Assert
	assert.Equal(t, 2.0, testutil.ToFloat64(m.importsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.importsTotal.WithLabelValues("fetch_failed")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.ingredientsTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.ingredientsConverted))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := NewMetricsCollector()
	m.RecordHTTPRequest("GET", "/api/v1/recipes", 200, 10*time.Millisecond)
	m.RecordCacheLookup("catalog", true)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, string(body), `kitchen_http_requests_total{method="GET",route="/api/v1/recipes",status_code="200"} 1`)
	assert.Contains(t, string(body), `kitchen_cache_operations_total{cache="catalog",result="hit"} 1`)
}

func TestCollectorsAreIndependent(t *testing.T) {
	// each collector owns a registry, so building two must not panic
	assert.NotPanics(t, func() {
		NewMetricsCollector()
		NewMetricsCollector()
	})
}

func TestDisabledTracing(t *testing.T) {
	tp, err := NewTracingProvider(context.Background(), TracingConfig{Enabled: false}, zap.NewNop())

	require.NoError(t, err)
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestInstrumentedCacheCountsHitsAndMisses(t *testing.T) {
	// Arrange
	m := NewMetricsCollector()
	backing := memory.NewCacheRepository(time.Minute)
	defer backing.Close()
	cache := InstrumentCache(backing, "catalog", m)
	ctx := context.Background()

	// Act
	_, missErr := cache.Get(ctx, "page:1")
	require.NoError(t, cache.Set(ctx, "page:1", []byte("{}"), time.Minute))
	value, hitErr := cache.Get(ctx, "page:1")

	// Assert
	assert.ErrorIs(t, missErr, outbound.ErrCacheMiss)
	require.NoError(t, hitErr)
	assert.Equal(t, []byte("{}"), value)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheOperations.WithLabelValues("catalog", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheOperations.WithLabelValues("catalog", "miss")))
}
