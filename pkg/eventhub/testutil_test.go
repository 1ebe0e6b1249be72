package eventhub

// call records one invocation seen by a spy.
type call struct {
	recv any
	args []any
}

// spy is a listener that records its invocations and returns a
// configurable value.
type spy struct {
	calls   []call
	returns any
	l       *Listener
}

// newSpy creates a spy whose listener returns nil.
func newSpy() *spy {
	s := &spy{}
	s.l = NewListener(func(recv any, args ...any) any {
		s.calls = append(s.calls, call{recv: recv, args: args})
		return s.returns
	})
	return s
}

// count returns how many times the spy ran.
func (s *spy) count() int {
	return len(s.calls)
}

// last returns the most recent invocation.
func (s *spy) last() call {
	return s.calls[len(s.calls)-1]
}

// reset forgets recorded invocations.
func (s *spy) reset() {
	s.calls = nil
}

// listenerFunc wraps a plain function with no return value.
func listenerFunc(fn func()) *Listener {
	return Listen(func(...any) { fn() })
}
