package host

import "sync"

// Properties is an in-memory Host. Instances read instance-scoped values
// through a shared table, the way prototype properties resolve, so a value
// set after an instance was created is still visible to it.
type Properties struct {
	mu       sync.RWMutex
	globals  map[string]any
	instance map[string]any
}

var _ Host = (*Properties)(nil)

// NewProperties creates an empty host.
func NewProperties() *Properties {
	return &Properties{
		globals:  make(map[string]any),
		instance: make(map[string]any),
	}
}

// SetGlobal implements Host.
func (p *Properties) SetGlobal(key string, v any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.globals[key] = v
}

// SetInstance implements Host.
func (p *Properties) SetInstance(key string, v any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.instance[key] = v
}

// Global returns a framework-wide value, or nil.
func (p *Properties) Global(key string) any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.globals[key]
}

// NewInstance creates an object of the host framework.
func (p *Properties) NewInstance() *Instance {
	return &Instance{host: p, own: make(map[string]any)}
}

// Instance is one object created by a Properties host.
// It is safe for concurrent use.
type Instance struct {
	host *Properties
	mu   sync.RWMutex
	own  map[string]any
}

// Set stores a value on this instance only, shadowing instance-scoped
// values of the host.
func (i *Instance) Set(key string, v any) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.own[key] = v
}

// Get returns the instance's own value for key, falling back to the host's
// instance-scoped value.
func (i *Instance) Get(key string) any {
	i.mu.RLock()
	v, ok := i.own[key]
	i.mu.RUnlock()
	if ok {
		return v
	}
	i.host.mu.RLock()
	defer i.host.mu.RUnlock()
	return i.host.instance[key]
}
