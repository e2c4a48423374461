// Package observability provides OpenTelemetry-backed metrics and
// tracing setup for the question orchestrator. Metrics instruments are
// recorded through the OTel Metrics API and exported to Prometheus,
// mirroring services/trace/eval/telemetry's OTelSink — a meter-backed
// set of named instruments rather than the teacher's other packages'
// direct promauto vectors — trimmed from a generic benchmark/comparison
// surface to the request, novelty, and generation signals this
// service's core actually produces.
package observability

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const meterName = "github.com/kocory1/AllFamilyAI/internal/observability"

// Metrics holds the OTel instruments for the orchestrator's three
// request-driven question flows and the novelty controller they share.
type Metrics struct {
	registry *prometheus.Registry
	provider *sdkmetric.MeterProvider

	requestsTotal             metric.Int64Counter
	noveltyRegenerationsTotal metric.Int64Counter
	similarityWarningsTotal   metric.Int64Counter
	contractViolationsTotal   metric.Int64Counter
	generationDuration        metric.Float64Histogram
}

// NewMetrics wires an OTel MeterProvider backed by a dedicated
// Prometheus registry and registers this service's instruments against
// it. Grounded on services/trace/eval/telemetry/otel.go's
// initializeMetrics — named instruments created once from a meter,
// rather than label-vector globals.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()
	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return nil, err
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)
	meter := provider.Meter(meterName)

	m := &Metrics{registry: registry, provider: provider}

	if m.requestsTotal, err = meter.Int64Counter("requests_total",
		metric.WithDescription("Total number of requests by endpoint and status")); err != nil {
		return nil, err
	}
	if m.noveltyRegenerationsTotal, err = meter.Int64Counter("novelty_regenerations_total",
		metric.WithDescription("Total regenerations performed by the novelty controller")); err != nil {
		return nil, err
	}
	if m.similarityWarningsTotal, err = meter.Int64Counter("similarity_warnings_total",
		metric.WithDescription("Total responses returned with a similarity warning")); err != nil {
		return nil, err
	}
	if m.contractViolationsTotal, err = meter.Int64Counter("contract_violations_total",
		metric.WithDescription("Total generator responses that failed the JSON contract")); err != nil {
		return nil, err
	}
	if m.generationDuration, err = meter.Float64Histogram("generation_duration_seconds",
		metric.WithDescription("End-to-end use-case duration in seconds"),
		metric.WithUnit("s")); err != nil {
		return nil, err
	}

	return m, nil
}

// Handler returns the /metrics HTTP handler for this service's
// dedicated Prometheus registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops the underlying meter provider.
func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

// RecordRequest records a completed request's outcome.
func (m *Metrics) RecordRequest(ctx context.Context, endpoint string, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	m.requestsTotal.Add(ctx, 1, metric.WithAttributes(
		attrString("endpoint", endpoint),
		attrString("status", status),
	))
}

// RecordNovelty records a use case's regeneration count and whether it
// returned with a similarity warning.
func (m *Metrics) RecordNovelty(ctx context.Context, endpoint string, regenerations int, warning bool) {
	if regenerations > 0 {
		m.noveltyRegenerationsTotal.Add(ctx, int64(regenerations), metric.WithAttributes(attrString("endpoint", endpoint)))
	}
	if warning {
		m.similarityWarningsTotal.Add(ctx, 1, metric.WithAttributes(attrString("endpoint", endpoint)))
	}
}

// RecordContractViolation records a generator response that failed the
// required-keys JSON contract.
func (m *Metrics) RecordContractViolation(ctx context.Context, endpoint string) {
	m.contractViolationsTotal.Add(ctx, 1, metric.WithAttributes(attrString("endpoint", endpoint)))
}

// RecordDuration records the seconds a use-case execution took.
func (m *Metrics) RecordDuration(ctx context.Context, endpoint string, seconds float64) {
	m.generationDuration.Record(ctx, seconds, metric.WithAttributes(attrString("endpoint", endpoint)))
}
