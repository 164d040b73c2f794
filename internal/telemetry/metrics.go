package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ServerMetrics holds the HTTP server instruments. Create once at startup
// and share; the instruments are safe for concurrent use.
type ServerMetrics struct {
	RequestCounter  metric.Int64Counter
	RequestDuration metric.Float64Histogram
	ErrorCounter    metric.Int64Counter
}

// NewServerMetrics creates the HTTP instruments on the global meter
// provider. Before telemetry Init (or without it) the instruments are
// noops, so construction never has to be conditional.
func NewServerMetrics() (*ServerMetrics, error) {
	meter := otel.Meter("connecthub/http")

	requestCounter, err := meter.Int64Counter(
		"http.server.request.count",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000),
	)
	if err != nil {
		return nil, err
	}

	errorCounter, err := meter.Int64Counter(
		"http.server.error.count",
		metric.WithDescription("Total number of HTTP server errors (5xx)"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	return &ServerMetrics{
		RequestCounter:  requestCounter,
		RequestDuration: requestDuration,
		ErrorCounter:    errorCounter,
	}, nil
}

// RecordRequest records one served request. Route should be the matched
// route pattern, not the raw path, to keep cardinality bounded.
func (m *ServerMetrics) RecordRequest(ctx context.Context, method, route string, status int, durationMs float64) {
	attrs := metric.WithAttributes(
		attribute.String("http.method", method),
		attribute.String("http.route", route),
		attribute.Int("http.status_code", status),
	)

	m.RequestCounter.Add(ctx, 1, attrs)
	m.RequestDuration.Record(ctx, durationMs, attrs)

	if status >= 500 {
		m.ErrorCounter.Add(ctx, 1, attrs)
	}
}
