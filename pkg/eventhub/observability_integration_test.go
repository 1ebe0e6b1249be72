package eventhub

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// decodeLogs parses JSON log lines written by slog.
func decodeLogs(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var records []map[string]any
	for _, line := range bytes.Split(buf.Bytes(), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal(line, &m))
		records = append(records, m)
	}
	return records
}

func messages(records []map[string]any) []string {
	msgs := make([]string, 0, len(records))
	for _, r := range records {
		msgs = append(msgs, r["msg"].(string))
	}
	return msgs
}

func TestHub_Logging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	hub := New(WithName("ui"), WithLogger(logger), WithMaxListeners(1))
	s := newSpy()

	hub.On("a", s.l, nil)
	hub.Once("a", s.l, nil)
	hub.Emit("a", 1)
	hub.Off("a", nil, nil)
	hub.Clear()

	records := decodeLogs(t, &buf)
	assert.Equal(t, []string{
		"listener registered",
		"listener registered",
		"possible listener leak",
		"listeners removed", // once wrapper removing itself
		"event emitted",
		"listeners removed",
		"hub cleared",
	}, messages(records))

	for _, r := range records {
		assert.Equal(t, "ui", r["hub_name"])
	}

	assert.Equal(t, true, records[1]["once"])
	assert.Equal(t, s.l.ID(), records[1]["listener_id"])
	assert.Equal(t, float64(2), records[4]["listeners"])
	assert.Equal(t, true, records[4]["passed"])
}

func TestHub_NoLoggerIsSilent(t *testing.T) {
	hub := New()
	assert.Nil(t, hub.logger)
	assert.NotPanics(t, func() {
		hub.On("a", newSpy().l, nil).Emit("a")
		hub.Clear()
	})
}

// TestHub_MetricsAndTracing is the only test in this package that installs
// OTel providers, because the shared instruments bind to the first provider.
func TestHub_MetricsAndTracing(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))

	origMP, origTP := otel.GetMeterProvider(), otel.GetTracerProvider()
	otel.SetMeterProvider(mp)
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetMeterProvider(origMP)
		otel.SetTracerProvider(origTP)
		_ = mp.Shutdown(context.Background())
		_ = tp.Shutdown(context.Background())
	})

	hub := New(WithName("traced"), WithMetrics(true), WithTracing(true))
	ok, bad := newSpy(), newSpy()
	bad.returns = false

	hub.On("a", ok.l, nil)
	hub.On("b", bad.l, nil)

	assert.Equal(t, Failed, hub.EmitContext(context.Background(), "a b", "payload"))
	assert.Equal(t, Passed, hub.Emit("a"))

	t.Run("spans", func(t *testing.T) {
		spans := exporter.GetSpans()
		require.Len(t, spans, 2)

		assert.Equal(t, "eventhub.emit", spans[0].Name)
		assert.Equal(t, codes.Error, spans[0].Status.Code)
		assert.Equal(t, codes.Ok, spans[1].Status.Code)

		for _, a := range spans[0].Attributes {
			switch a.Key {
			case "hub.name":
				assert.Equal(t, "traced", a.Value.AsString())
			case "event.names":
				assert.Equal(t, "a b", a.Value.AsString())
			case "event.listeners":
				assert.Equal(t, int64(2), a.Value.AsInt64())
			}
		}

		events := spans[0].Events
		require.Len(t, events, 2)
		for i, want := range []struct {
			name   string
			passed bool
		}{{"a", true}, {"b", false}} {
			assert.Equal(t, "event.dispatched", events[i].Name)
			for _, a := range events[i].Attributes {
				switch a.Key {
				case "event.name":
					assert.Equal(t, want.name, a.Value.AsString())
				case "event.listeners":
					assert.Equal(t, int64(1), a.Value.AsInt64())
				case "event.passed":
					assert.Equal(t, want.passed, a.Value.AsBool())
				}
			}
		}
		assert.Len(t, spans[1].Events, 1)
	})

	t.Run("metrics", func(t *testing.T) {
		var rm metricdata.ResourceMetrics
		require.NoError(t, reader.Collect(context.Background(), &rm))

		values := map[string]map[string]int64{}
		for _, sm := range rm.ScopeMetrics {
			for _, m := range sm.Metrics {
				sum, ok := m.Data.(metricdata.Sum[int64])
				if !ok {
					continue
				}
				values[m.Name] = map[string]int64{}
				for _, dp := range sum.DataPoints {
					if v, ok := dp.Attributes.Value("event"); ok {
						values[m.Name][v.AsString()] += dp.Value
					}
				}
			}
		}

		assert.Equal(t, int64(2), values["eventhub.emit.count"]["a"])
		assert.Equal(t, int64(1), values["eventhub.emit.count"]["b"])
		assert.Equal(t, int64(1), values["eventhub.emit.failures"]["b"])
		assert.Equal(t, int64(1), values["eventhub.bindings.active"]["a"])
	})

	t.Run("no span without bindings", func(t *testing.T) {
		exporter.Reset()
		hub.Clear()
		assert.Equal(t, NoListeners, hub.Emit("a"))
		assert.Empty(t, exporter.GetSpans())
	})
}
