package eventhub

import (
	"github.com/google/uuid"
)

// Func is the signature of a listener callback.
//
// recv is the receiver the binding was registered with, or the *Hub when the
// binding has no context. args are exactly the arguments passed to Emit.
// Returning the bool false marks the invocation as failed; any other value,
// including nil, counts as passed.
type Func func(recv any, args ...any) any

// Listener is a registered callback with identity.
// Two bindings refer to the same listener only if they hold the same pointer,
// which is what Off matches on.
type Listener struct {
	id string
	fn Func
}

// NewListener wraps fn in a Listener. A nil fn yields a nil Listener, which
// On and Once ignore.
func NewListener(fn Func) *Listener {
	if fn == nil {
		return nil
	}
	return &Listener{
		id: uuid.New().String(),
		fn: fn,
	}
}

// Listen wraps a callback that neither needs the receiver nor reports
// failure. Its invocations always count as passed.
func Listen(fn func(args ...any)) *Listener {
	if fn == nil {
		return nil
	}
	return NewListener(func(_ any, args ...any) any {
		fn(args...)
		return nil
	})
}

// ID returns a unique identifier used in logs and traces.
func (l *Listener) ID() string {
	return l.id
}

// Call invokes the listener directly, outside of any hub.
// Calling a zero Listener does nothing and returns nil.
func (l *Listener) Call(recv any, args ...any) any {
	if !l.callable() {
		return nil
	}
	return l.fn(recv, args...)
}

// callable reports whether l can be invoked. A nil or zero Listener cannot.
func (l *Listener) callable() bool {
	return l != nil && l.fn != nil
}

// failed reports whether a listener's return value is exactly false.
func failed(ret any) bool {
	b, ok := ret.(bool)
	return ok && !b
}
