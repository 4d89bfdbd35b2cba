// Package telemetry traces command invocations with OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/cchalm/svgtsx/internal/logging"
)

const (
	serviceName = "svgtsx"
	tracerName  = "github.com/cchalm/svgtsx"
)

// TelemetryConfig holds the configuration for telemetry
type TelemetryConfig struct {
	Enabled bool
	// Endpoint is the OTLP/HTTP collector, host:port
	Endpoint string
	// Insecure sends spans over plain HTTP
	Insecure bool
	Version  string
}

// Provider manages the tracer provider's lifetime
type Provider struct {
	shutdown func(context.Context) error
}

// NewProvider installs a global tracer provider. When telemetry is disabled a no-op provider is installed
func NewProvider(ctx context.Context, config TelemetryConfig) (*Provider, error) {
	if !config.Enabled {
		otel.SetTracerProvider(noop.NewTracerProvider())
		logging.Logger().Debug("telemetry disabled")
		return &Provider{shutdown: func(context.Context) error { return nil }}, nil
	}

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(config.Endpoint)}
	if config.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(
		attribute.String("service.name", serviceName),
		attribute.String("service.version", config.Version),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	logging.Logger().Info("telemetry enabled", zap.String("endpoint", config.Endpoint))

	return &Provider{shutdown: tp.Shutdown}, nil
}

// Shutdown flushes pending spans
func (p *Provider) Shutdown(ctx context.Context) error {
	return p.shutdown(ctx)
}

// StartCommandSpan starts a span for one command invocation
func StartCommandSpan(ctx context.Context, command string, invocationID string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, "command."+command,
		trace.WithAttributes(
			attribute.String("command.name", command),
			attribute.String("command.id", invocationID),
		),
	)
}

// RecordError records an error on the span and sets error status
func RecordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetOK sets the span status to OK
func SetOK(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// NewInvocationID generates a new command invocation UUID
func NewInvocationID() string {
	return uuid.New().String()
}
