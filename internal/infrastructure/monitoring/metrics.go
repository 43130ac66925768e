package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/alchemorsel/kitchen/internal/domain/measurement"
	"github.com/alchemorsel/kitchen/internal/ports/outbound"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "kitchen"

// MetricsCollector handles Prometheus metrics collection
type MetricsCollector struct {
	registry *prometheus.Registry

	// HTTP metrics
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpInFlight        prometheus.Gauge

	// Import pipeline metrics
	importsTotal         *prometheus.CounterVec
	importDuration       *prometheus.HistogramVec
	stageDuration        *prometheus.HistogramVec
	ingredientsTotal     prometheus.Counter
	ingredientsConverted prometheus.Counter

	// Cache metrics
	cacheOperations *prometheus.CounterVec
}

var _ outbound.ImportMetrics = (*MetricsCollector)(nil)

// NewMetricsCollector creates a collector with its own registry
func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &MetricsCollector{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		httpInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests being served",
			},
		),

		importsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "imports_total",
				Help:      "Recipe imports by outcome",
			},
			[]string{"outcome"},
		),
		importDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "import_duration_seconds",
				Help:      "End to end import duration in seconds",
				Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
			},
			[]string{"outcome"},
		),
		stageDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "import_stage_duration_seconds",
				Help:      "Duration of each import pipeline stage in seconds",
				Buckets:   []float64{0.001, 0.01, 0.1, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"stage"},
		),
		ingredientsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ingredients_normalized_total",
				Help:      "Ingredient lines passed through the unit normalizer",
			},
		),
		ingredientsConverted: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ingredients_converted_total",
				Help:      "Ingredient lines converted to metric units",
			},
		),

		cacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_operations_total",
				Help:      "Cache lookups by result",
			},
			[]string{"cache", "result"},
		),
	}
}

// RecordImport records the outcome of one pipeline run
func (m *MetricsCollector) RecordImport(outcome string, duration time.Duration) {
	m.importsTotal.WithLabelValues(outcome).Inc()
	m.importDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

// RecordStage records the duration of one pipeline stage
func (m *MetricsCollector) RecordStage(stage string, duration time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordConversions records a normalizer summary
func (m *MetricsCollector) RecordConversions(summary measurement.ConversionSummary) {
	m.ingredientsTotal.Add(float64(summary.Total))
	m.ingredientsConverted.Add(float64(summary.Converted))
}

// RecordCacheLookup records a hit or miss
func (m *MetricsCollector) RecordCacheLookup(cache string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheOperations.WithLabelValues(cache, result).Inc()
}

// RecordHTTPRequest records a served request. route is the matched pattern,
// not the raw path, to keep label cardinality bounded.
func (m *MetricsCollector) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// InFlight returns the in-flight request gauge
func (m *MetricsCollector) InFlight() prometheus.Gauge {
	return m.httpInFlight
}

// Registry exposes the underlying registry
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the metrics in the Prometheus exposition format
func (m *MetricsCollector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
