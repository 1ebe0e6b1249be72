package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer uses the global OTel tracer provider.
var tracer = otel.Tracer("eventhub")

// SpanManager handles trace span lifecycle around emits.
// Use NewSpanManager() for OTel tracing or NoopSpanManager{} when disabled.
type SpanManager interface {
	// StartEmitSpan starts a span covering one Emit call.
	StartEmitSpan(ctx context.Context, hubName, names string, argCount int) (context.Context, trace.Span)

	// EndEmitSpan records the outcome of the emit and ends the span.
	EndEmitSpan(span trace.Span, listeners int, passed bool)

	// AddSpanEvent adds an event to the current span in context.
	AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue)
}

type otelSpanManager struct{}

// NewSpanManager returns a SpanManager that uses OpenTelemetry.
//
// The span manager uses the global OTel tracer provider. Configure the provider
// before calling this function:
//
//	otel.SetTracerProvider(yourProvider)
func NewSpanManager() SpanManager {
	return &otelSpanManager{}
}

func (m *otelSpanManager) StartEmitSpan(ctx context.Context, hubName, names string, argCount int) (context.Context, trace.Span) {
	return StartEmitSpan(ctx, hubName, names, argCount)
}

func (m *otelSpanManager) EndEmitSpan(span trace.Span, listeners int, passed bool) {
	EndEmitSpan(span, listeners, passed)
}

func (m *otelSpanManager) AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	AddSpanEvent(ctx, name, attrs...)
}

// StartEmitSpan starts a span covering one Emit call.
// Uses the global OTel tracer.
func StartEmitSpan(ctx context.Context, hubName, names string, argCount int) (context.Context, trace.Span) {
	return tracer.Start(ctx, "eventhub.emit",
		trace.WithAttributes(
			attribute.String("hub.name", hubName),
			attribute.String("event.names", names),
			attribute.Int("event.args", argCount),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// EndEmitSpan records the emit outcome and ends the span.
// A listener returning false sets the span status to Error.
func EndEmitSpan(span trace.Span, listeners int, passed bool) {
	if span == nil {
		return
	}
	span.SetAttributes(
		attribute.Int("event.listeners", listeners),
		attribute.Bool("event.passed", passed),
	)
	if passed {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, fmt.Sprintf("%d listeners ran, at least one returned false", listeners))
	}
	span.End()
}

// AddSpanEvent adds an event to the current span in context.
func AddSpanEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	if span == nil || !span.IsRecording() {
		return
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}
