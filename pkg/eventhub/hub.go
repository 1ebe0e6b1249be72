package eventhub

import (
	"context"
	"log/slog"
	"slices"
	"sort"
	"sync"

	"github.com/randalmurphal/eventhub/pkg/eventhub/observability"
)

// binding is one registration of a listener under an event name.
type binding struct {
	listener *Listener
	ctx      any
}

// receiver returns what the listener is invoked on.
func (b binding) receiver(h *Hub) any {
	if present(b.ctx) {
		return b.ctx
	}
	return h
}

// Hub maps event names to ordered lists of bindings and dispatches emitted
// events to them synchronously.
//
// The mutex guards the map only. It is never held while a listener runs, so
// listeners may call On, Once, Off, Clear and Emit on the same hub.
type Hub struct {
	mu       sync.RWMutex
	bindings map[string][]binding

	name         string
	logger       *slog.Logger
	metrics      observability.MetricsRecorder
	spans        observability.SpanManager
	maxListeners int
}

// New creates an empty hub.
func New(opts ...Option) *Hub {
	cfg := defaultHubConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Hub{
		bindings:     make(map[string][]binding),
		name:         cfg.name,
		logger:       observability.EnrichLogger(cfg.logger, cfg.name),
		metrics:      observability.NoopMetrics{},
		spans:        observability.NoopSpanManager{},
		maxListeners: cfg.maxListeners,
	}
	if cfg.metrics {
		h.metrics = observability.NewMetricsRecorder()
	}
	if cfg.tracing {
		h.spans = observability.NewSpanManager()
	}
	return h
}

// Name returns the hub name.
func (h *Hub) Name() string {
	return h.name
}

// On binds l to every event name in names. ctx, when non-nil, becomes the
// receiver l is invoked on; otherwise the hub is.
//
// A nil listener is ignored. The same listener may be bound any number of
// times and fires once per binding.
//
// A nil ctx, including a typed nil pointer, map, slice or func, counts as no
// context.
func (h *Hub) On(names string, l *Listener, ctx any) *Hub {
	return h.register(names, l, ctx, false)
}

// Once binds l so that it fires at most one time across all of names.
// The first emit of any of the names unbinds it from every name before l runs.
func (h *Hub) Once(names string, l *Listener, ctx any) *Hub {
	if !l.callable() {
		return h
	}

	var w *Listener
	w = &Listener{
		id: l.id,
		fn: func(recv any, args ...any) any {
			h.Off(names, w, nil)
			return l.fn(recv, args...)
		},
	}
	return h.register(names, w, ctx, true)
}

func (h *Hub) register(names string, l *Listener, ctx any, once bool) *Hub {
	if !l.callable() {
		return h
	}

	for _, name := range splitNames(names) {
		h.mu.Lock()
		h.bindings[name] = append(h.bindings[name], binding{listener: l, ctx: ctx})
		count := len(h.bindings[name])
		h.mu.Unlock()

		observability.LogRegister(h.logger, name, l.id, once)
		h.metrics.RecordBindings(context.Background(), h.name, name, 1)
		if h.maxListeners > 0 && count == h.maxListeners+1 {
			observability.LogListenerLimit(h.logger, name, count, h.maxListeners)
		}
	}
	return h
}

// Off removes bindings from every event name in names.
//
// With a nil listener and nil ctx (typed nils included), each name loses all
// of its bindings.
// Otherwise a binding is removed if it holds l or if it was registered with
// ctx; either match is enough. Names without bindings are skipped.
func (h *Hub) Off(names string, l *Listener, ctx any) *Hub {
	for _, name := range splitNames(names) {
		removed := h.remove(name, l, ctx)
		if removed == 0 {
			continue
		}
		observability.LogDeregister(h.logger, name, removed)
		h.metrics.RecordBindings(context.Background(), h.name, name, -int64(removed))
	}
	return h
}

// remove drops matching bindings of one name and returns how many went.
func (h *Hub) remove(name string, l *Listener, ctx any) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	list, ok := h.bindings[name]
	if !ok {
		return 0
	}

	if !present(ctx) {
		ctx = nil
	}
	if l == nil && ctx == nil {
		delete(h.bindings, name)
		return len(list)
	}

	// Walk backwards so splicing never shifts an unvisited binding.
	removed := 0
	for i := len(list) - 1; i >= 0; i-- {
		b := list[i]
		if (l != nil && b.listener == l) || sameContext(ctx, b.ctx) {
			list = slices.Delete(list, i, i+1)
			removed++
		}
	}

	if len(list) == 0 {
		delete(h.bindings, name)
	} else {
		h.bindings[name] = list
	}
	return removed
}

// Clear removes every binding for every event name.
func (h *Hub) Clear() *Hub {
	h.mu.Lock()
	old := h.bindings
	h.bindings = make(map[string][]binding)
	h.mu.Unlock()

	for name, list := range old {
		h.metrics.RecordBindings(context.Background(), h.name, name, -int64(len(list)))
	}
	observability.LogClear(h.logger, len(old))
	return h
}

// ListenerCount returns the number of bindings registered under name.
func (h *Hub) ListenerCount(name string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.bindings[name])
}

// EventNames returns every event name that currently has bindings, sorted.
func (h *Hub) EventNames() []string {
	h.mu.RLock()
	names := make([]string, 0, len(h.bindings))
	for name := range h.bindings {
		names = append(names, name)
	}
	h.mu.RUnlock()

	sort.Strings(names)
	return names
}

// empty reports whether the hub has no bindings at all.
func (h *Hub) empty() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.bindings) == 0
}

// snapshot copies the binding list of name so dispatch is unaffected by
// registrations and removals made while it runs.
func (h *Hub) snapshot(name string) []binding {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return slices.Clone(h.bindings[name])
}
