// Package telemetry wires OpenTelemetry metrics for the API server. When no
// OTLP endpoint is configured the package stays in noop mode: instruments
// are created against the default noop meter and recording costs nothing.
package telemetry

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"github.com/jagan25-mj/startup-connect-hub/internal/config"
)

// Init initializes the OpenTelemetry meter provider from configuration. If
// the OTLP endpoint is not set, telemetry stays disabled and the returned
// shutdown function is a noop.
func Init(ctx context.Context, cfg config.ObservabilityConfig) (shutdown func(context.Context) error, err error) {
	if cfg.OTLPEndpoint == "" {
		log.Println("Telemetry disabled (OTEL_EXPORTER_OTLP_ENDPOINT not set)")
		return func(context.Context) error { return nil }, nil
	}

	log.Printf("Initializing OpenTelemetry: endpoint=%s, service=%s", cfg.OTLPEndpoint, cfg.ServiceName)

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("create telemetry resource: %w", err)
	}

	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.OTLPEndpoint),
	}
	if cfg.OTLPInsecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create OTLP metric exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(30*time.Second))),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	return func(ctx context.Context) error {
		if err := provider.Shutdown(ctx); err != nil {
			return fmt.Errorf("shutdown meter provider: %w", err)
		}
		return nil
	}, nil
}

// newResource builds the OTEL resource carrying service identification.
func newResource(cfg config.ObservabilityConfig) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
			semconv.DeploymentEnvironment(cfg.Environment),
		),
	)
}
