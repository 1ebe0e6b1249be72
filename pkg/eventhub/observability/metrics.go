package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records eventhub metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordEmit records the dispatch of one event name: how many listeners
	// ran, whether they all passed, and how long it took.
	RecordEmit(ctx context.Context, hubName, eventName string, listeners int, passed bool, duration time.Duration)

	// RecordBindings records a change in the number of registered bindings.
	RecordBindings(ctx context.Context, hubName, eventName string, delta int64)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	emits          metric.Int64Counter
	emitListeners  metric.Int64Histogram
	emitFailures   metric.Int64Counter
	emitLatency    metric.Float64Histogram
	activeBindings metric.Int64UpDownCounter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("eventhub")

	emits, err := meter.Int64Counter("eventhub.emit.count",
		metric.WithDescription("Number of event names dispatched"),
	)
	if err != nil {
		return nil, err
	}

	emitListeners, err := meter.Int64Histogram("eventhub.emit.listeners",
		metric.WithDescription("Listeners invoked per dispatched event name"),
	)
	if err != nil {
		return nil, err
	}

	emitFailures, err := meter.Int64Counter("eventhub.emit.failures",
		metric.WithDescription("Dispatches where at least one listener returned false"),
	)
	if err != nil {
		return nil, err
	}

	emitLatency, err := meter.Float64Histogram("eventhub.emit.latency_ms",
		metric.WithDescription("Dispatch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	activeBindings, err := meter.Int64UpDownCounter("eventhub.bindings.active",
		metric.WithDescription("Currently registered bindings"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		emits:          emits,
		emitListeners:  emitListeners,
		emitFailures:   emitFailures,
		emitLatency:    emitLatency,
		activeBindings: activeBindings,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordEmit records the dispatch of one event name.
func (m *otelMetrics) RecordEmit(ctx context.Context, hubName, eventName string, listeners int, passed bool, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("hub_name", hubName),
		attribute.String("event", eventName),
	)

	m.emits.Add(ctx, 1, attrs)
	m.emitListeners.Record(ctx, int64(listeners), attrs)
	m.emitLatency.Record(ctx, float64(duration.Microseconds())/1000, attrs)

	if !passed {
		m.emitFailures.Add(ctx, 1, attrs)
	}
}

// RecordBindings records a change in registered bindings.
func (m *otelMetrics) RecordBindings(ctx context.Context, hubName, eventName string, delta int64) {
	if delta == 0 {
		return
	}
	m.activeBindings.Add(ctx, delta, metric.WithAttributes(
		attribute.String("hub_name", hubName),
		attribute.String("event", eventName),
	))
}
