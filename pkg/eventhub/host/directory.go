package host

import (
	"sort"
	"sync"

	"github.com/randalmurphal/eventhub/pkg/eventhub"
)

// Directory holds shared hubs by name, for programs that need more than one
// logical hub. It is safe for concurrent use.
type Directory struct {
	mu   sync.RWMutex
	hubs map[string]*eventhub.Hub
	opts []eventhub.Option
}

// NewDirectory creates an empty directory. opts are applied to every hub it
// creates, before the hub's name.
func NewDirectory(opts ...eventhub.Option) *Directory {
	return &Directory{
		hubs: make(map[string]*eventhub.Hub),
		opts: opts,
	}
}

// Get returns the hub registered under name.
func (d *Directory) Get(name string) (*eventhub.Hub, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	hub, ok := d.hubs[name]
	return hub, ok
}

// GetOrCreate returns the hub registered under name, creating it if needed.
// Concurrent callers asking for the same name get the same hub.
func (d *Directory) GetOrCreate(name string) *eventhub.Hub {
	d.mu.RLock()
	hub, ok := d.hubs[name]
	d.mu.RUnlock()
	if ok {
		return hub
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if hub, ok := d.hubs[name]; ok {
		return hub
	}

	opts := append(append([]eventhub.Option(nil), d.opts...), eventhub.WithName(name))
	hub = eventhub.New(opts...)
	d.hubs[name] = hub
	return hub
}

// Delete tears down the hub registered under name: its bindings are
// cleared and the name is released. It reports whether the name existed.
func (d *Directory) Delete(name string) bool {
	d.mu.Lock()
	hub, ok := d.hubs[name]
	delete(d.hubs, name)
	d.mu.Unlock()

	if ok {
		hub.Clear()
	}
	return ok
}

// Names returns the registered hub names, sorted.
func (d *Directory) Names() []string {
	d.mu.RLock()
	names := make([]string, 0, len(d.hubs))
	for name := range d.hubs {
		names = append(names, name)
	}
	d.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Len returns the number of registered hubs.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.hubs)
}
