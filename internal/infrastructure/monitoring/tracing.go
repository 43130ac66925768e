package monitoring

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/zap"
)

// TracingConfig holds tracing configuration
type TracingConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	OTLPEndpoint   string
	Insecure       bool
	SamplingRate   float64
	Enabled        bool
}

// TracingProvider owns the global tracer provider
type TracingProvider struct {
	provider *sdktrace.TracerProvider
	logger   *zap.Logger
}

// NewTracingProvider installs an OTLP/HTTP tracer provider. When tracing is
// disabled the global no-op provider is left in place.
func NewTracingProvider(ctx context.Context, config TracingConfig, logger *zap.Logger) (*TracingProvider, error) {
	logger = logger.Named("tracing")

	if !config.Enabled {
		logger.Info("Tracing is disabled")
		return &TracingProvider{logger: logger}, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(config.OTLPEndpoint)}
	if config.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(config.ServiceName),
			semconv.ServiceVersion(config.ServiceVersion),
			semconv.DeploymentEnvironment(config.Environment),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(config.SamplingRate))),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	logger.Info("Tracing initialized",
		zap.String("service", config.ServiceName),
		zap.String("endpoint", config.OTLPEndpoint),
		zap.Float64("sampling_rate", config.SamplingRate),
	)

	return &TracingProvider{provider: tp, logger: logger}, nil
}

// Shutdown flushes pending spans
func (t *TracingProvider) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	if err := t.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	return nil
}
