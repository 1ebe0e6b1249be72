// Package observability provides logging, metrics, and tracing hooks for
// eventhub.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds hub context to a logger.
// Returns a new logger with the hub_name field.
//
// Example:
//
//	enriched := EnrichLogger(logger, "ui")
//	enriched.Info("ready") // includes hub_name
func EnrichLogger(logger *slog.Logger, hubName string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(slog.String("hub_name", hubName))
}

// LogRegister logs a listener being bound to an event name.
func LogRegister(logger *slog.Logger, eventName, listenerID string, once bool) {
	if logger == nil {
		return
	}
	logger.Debug("listener registered",
		slog.String("event", eventName),
		slog.String("listener_id", listenerID),
		slog.Bool("once", once),
	)
}

// LogDeregister logs bindings being removed from an event name.
func LogDeregister(logger *slog.Logger, eventName string, removed int) {
	if logger == nil {
		return
	}
	logger.Debug("listeners removed",
		slog.String("event", eventName),
		slog.Int("removed", removed),
	)
}

// LogClear logs the hub being emptied.
func LogClear(logger *slog.Logger, eventCount int) {
	if logger == nil {
		return
	}
	logger.Debug("hub cleared",
		slog.Int("events", eventCount),
	)
}

// LogEmit logs the dispatch of one event name.
func LogEmit(logger *slog.Logger, eventName string, listeners int, passed bool, duration time.Duration) {
	if logger == nil {
		return
	}
	logger.Debug("event emitted",
		slog.String("event", eventName),
		slog.Int("listeners", listeners),
		slog.Bool("passed", passed),
		slog.Float64("duration_ms", float64(duration.Microseconds())/1000),
	)
}

// LogListenerLimit warns that an event name has more bindings than the
// configured limit. This usually means listeners are being leaked.
func LogListenerLimit(logger *slog.Logger, eventName string, count, limit int) {
	if logger == nil {
		return
	}
	logger.Warn("possible listener leak",
		slog.String("event", eventName),
		slog.Int("listeners", count),
		slog.Int("max_listeners", limit),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the time elapsed since
// TimedOperation was called.
//
// Example:
//
//	done := TimedOperation()
//	// ... dispatch ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}
