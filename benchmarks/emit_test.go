package benchmarks

import (
	"fmt"
	"testing"

	"github.com/randalmurphal/eventhub/pkg/eventhub"
)

var sink any

func countingListener() *eventhub.Listener {
	return eventhub.NewListener(func(_ any, args ...any) any {
		sink = len(args)
		return nil
	})
}

// newHub builds a hub with n listeners bound to "tick".
func newHub(n int) *eventhub.Hub {
	hub := eventhub.New()
	for i := 0; i < n; i++ {
		hub.On("tick", countingListener(), nil)
	}
	return hub
}

// BenchmarkEmit_Args measures dispatch cost across argument counts.
func BenchmarkEmit_Args(b *testing.B) {
	args := []any{1, "two", 3.0, true, nil}
	for argc := 0; argc <= len(args); argc++ {
		b.Run(fmt.Sprintf("args=%d", argc), func(b *testing.B) {
			hub := newHub(1)
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				hub.Emit("tick", args[:argc]...)
			}
		})
	}
}

// BenchmarkEmit_Listeners measures dispatch cost as a name's list grows.
func BenchmarkEmit_Listeners(b *testing.B) {
	for _, n := range []int{1, 10, 100} {
		b.Run(fmt.Sprintf("listeners=%d", n), func(b *testing.B) {
			hub := newHub(n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				hub.Emit("tick", i)
			}
		})
	}
}

// BenchmarkEmit_MultipleNames emits three names in one call.
func BenchmarkEmit_MultipleNames(b *testing.B) {
	hub := eventhub.New()
	hub.On("a b c", countingListener(), nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hub.Emit("a b c")
	}
}

// BenchmarkEmit_NoListeners measures the empty-hub path.
func BenchmarkEmit_NoListeners(b *testing.B) {
	hub := eventhub.New()
	for i := 0; i < b.N; i++ {
		hub.Emit("tick", i)
	}
}

// BenchmarkOnOff measures registering and removing one listener.
func BenchmarkOnOff(b *testing.B) {
	hub := newHub(10)
	l := countingListener()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hub.On("tick", l, nil)
		hub.Off("tick", l, nil)
	}
}

// BenchmarkOnce measures a once binding firing and removing itself.
func BenchmarkOnce(b *testing.B) {
	hub := newHub(1)
	l := countingListener()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		hub.Once("tick", l, nil)
		hub.Emit("tick")
	}
}
