package eventhub

import (
	"context"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/eventhub/pkg/eventhub/observability"
)

// Result is the outcome of an Emit call.
type Result int

const (
	// NoListeners means the hub had no bindings for any name when Emit was
	// called, so nothing ran.
	NoListeners Result = iota

	// Passed means no invoked listener returned false.
	Passed

	// Failed means at least one invoked listener returned false.
	Failed
)

// OK reports whether no listener returned false.
func (r Result) OK() bool {
	return r != Failed
}

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case NoListeners:
		return "no listeners"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Emit invokes, in order, every listener bound to each name in names.
// See EmitContext.
func (h *Hub) Emit(names string, args ...any) Result {
	return h.EmitContext(context.Background(), names, args...)
}

// EmitContext invokes every listener bound to each name in names, passing
// args unchanged. Names are processed left to right and the listeners of a
// name in registration order.
//
// The binding list of a name is copied before its first listener runs:
// listeners bound during the pass do not run in it, and listeners unbound
// during the pass still run unless they were already gone when the copy was
// taken.
//
// A panicking listener is not recovered. The panic propagates to the caller
// and the remaining listeners and names are skipped.
//
// ctx is only used for tracing and metrics.
func (h *Hub) EmitContext(ctx context.Context, names string, args ...any) Result {
	if h.empty() {
		return NoListeners
	}

	ctx, span := h.spans.StartEmitSpan(ctx, h.name, names, len(args))
	passed, invoked := true, 0
	defer func() {
		h.spans.EndEmitSpan(span, invoked, passed)
	}()

	for _, name := range splitNames(names) {
		list := h.snapshot(name)
		if len(list) == 0 {
			continue
		}

		done := observability.TimedOperation()
		ok := h.callEach(list, args)
		elapsed := done()

		invoked += len(list)
		passed = ok && passed

		h.spans.AddSpanEvent(ctx, "event.dispatched",
			attribute.String("event.name", name),
			attribute.Int("event.listeners", len(list)),
			attribute.Bool("event.passed", ok),
		)
		h.metrics.RecordEmit(ctx, h.name, name, len(list), ok, elapsed)
		observability.LogEmit(h.logger, name, len(list), ok, elapsed)
	}

	if passed {
		return Passed
	}
	return Failed
}

// callEach invokes every binding and reports whether none returned false.
// Each invocation gets its own copy of args.
func (h *Hub) callEach(list []binding, args []any) bool {
	pass := true
	for _, b := range list {
		callArgs := args
		if len(args) > 0 {
			callArgs = slices.Clone(args)
		}
		if failed(b.listener.fn(b.receiver(h), callArgs...)) {
			pass = false
		}
	}
	return pass
}
