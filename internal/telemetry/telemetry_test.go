package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestNewProvider_Disabled(t *testing.T) {
	p, err := NewProvider(context.Background(), TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	require.NoError(t, p.Shutdown(context.Background()))
}

func TestStartCommandSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartCommandSpan(context.Background(), "read_svg_file", "id-1")
	RecordError(span, errors.New("File not found"))
	span.End()

	_, span = StartCommandSpan(context.Background(), "save_tsx_file", "id-2")
	SetOK(span)
	span.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "command.read_svg_file", spans[0].Name())
	require.Contains(t, spans[0].Attributes(), attribute.String("command.id", "id-1"))
	require.Equal(t, codes.Error, spans[0].Status().Code)
	require.Equal(t, codes.Ok, spans[1].Status().Code)
}

func TestNewInvocationID(t *testing.T) {
	require.NotEqual(t, NewInvocationID(), NewInvocationID())
}
