package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName    = "dispocli"
	ServiceVersion = "1.0.0"
	MeterName      = "dispocli"
)

// OTelProviders holds the OpenTelemetry providers for one process.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	MeterProvider  *sdkmetric.MeterProvider
	Tracer         trace.Tracer
	Meter          metric.Meter
	PrometheusHTTP http.Handler
}

// InitializeOTel sets up metrics (Prometheus exporter) and tracing (stdout
// exporter, development-grade) and registers the global providers.
func InitializeOTel(logger *slog.Logger) (*OTelProviders, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(ServiceVersion),
	)

	promExporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create prometheus exporter: %w", err)
	}
	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(promExporter),
	)
	otel.SetMeterProvider(meterProvider)

	traceExporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}
	tracerProvider := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tracerProvider)

	logger.Info("observability initialized",
		slog.String("service", ServiceName),
		slog.String("version", ServiceVersion))

	return &OTelProviders{
		TracerProvider: tracerProvider,
		MeterProvider:  meterProvider,
		Tracer:         tracerProvider.Tracer(ServiceName),
		Meter:          meterProvider.Meter(MeterName),
		PrometheusHTTP: promhttp.Handler(),
	}, nil
}

// Shutdown flushes and stops the providers.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var firstErr error
	if err := p.TracerProvider.Shutdown(ctx); err != nil {
		firstErr = err
	}
	if err := p.MeterProvider.Shutdown(ctx); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

// RunMetrics carries the instruments recorded by a classification run.
type RunMetrics struct {
	RecordsFetched metric.Int64Counter
	ParseFailures  metric.Int64Counter
	BucketSize     metric.Int64Gauge
	RunDuration    metric.Float64Histogram
}

// NewRunMetrics creates the run instruments on the given meter.
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	fetched, err := meter.Int64Counter("dispo_records_fetched_total",
		metric.WithDescription("Raw disposal rows fetched, by source"))
	if err != nil {
		return nil, err
	}
	failures, err := meter.Int64Counter("dispo_parse_failures_total",
		metric.WithDescription("Feed rows dropped due to parse failures, by source"))
	if err != nil {
		return nil, err
	}
	bucketSize, err := meter.Int64Gauge("dispo_bucket_size",
		metric.WithDescription("Classified records per source and bucket in the latest run"))
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram("dispo_run_duration_seconds",
		metric.WithDescription("End-to-end duration of a classification run"))
	if err != nil {
		return nil, err
	}
	return &RunMetrics{
		RecordsFetched: fetched,
		ParseFailures:  failures,
		BucketSize:     bucketSize,
		RunDuration:    duration,
	}, nil
}

// SourceAttr builds the standard source attribute set.
func SourceAttr(source string) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("source", source))
}

// BucketAttr builds the source+bucket attribute set.
func BucketAttr(source, bucket string) metric.MeasurementOption {
	return metric.WithAttributes(
		attribute.String("source", source),
		attribute.String("bucket", bucket),
	)
}
