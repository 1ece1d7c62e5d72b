// Package telemetry installs the OpenTelemetry tracer provider.
package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
)

// Config selects the OTLP collector
type Config struct {
	// Endpoint is host:port or an http(s) URL; empty disables export
	Endpoint    string
	ServiceName string
	Environment string
}

// Provider owns the SDK tracer provider. A nil Provider is valid and does nothing.
type Provider struct {
	provider *sdktrace.TracerProvider
}

// Setup installs a global tracer provider exporting to cfg.Endpoint.
// It returns nil when no endpoint is configured; spans then go to the no-op provider.
func Setup(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.Endpoint == "" {
		return nil, nil
	}

	var opts []otlptracehttp.Option
	switch {
	case strings.HasPrefix(cfg.Endpoint, "http://"):
		opts = append(opts, otlptracehttp.WithEndpointURL(cfg.Endpoint), otlptracehttp.WithInsecure())
	case strings.HasPrefix(cfg.Endpoint, "https://"):
		opts = append(opts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	default:
		opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint), otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "portfolio-site"
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceNameKey.String(serviceName),
		semconv.DeploymentEnvironmentKey.String(cfg.Environment),
	)

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return &Provider{provider: provider}, nil
}

// Shutdown flushes and closes the exporter
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil {
		return nil
	}
	return p.provider.Shutdown(ctx)
}
