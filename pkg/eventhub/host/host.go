// Package host publishes a shared eventhub.Hub to a host framework.
//
// A host exposes values in two scopes: globally, and on every instance it
// creates. Install builds one hub and publishes the same pointer in both
// scopes, so framework-level code and every instance talk to one hub.
//
//	props := host.NewProperties()
//	hub := host.Install(props)
//
//	props.Global(host.GlobalKey)                  // hub
//	props.NewInstance().Get(host.InstanceKey)     // same hub
//
// Hosts that are set up before the hub library is initialized can be
// registered with SetAmbient and picked up with AttachAmbient.
package host

import (
	"sync"

	"github.com/randalmurphal/eventhub/pkg/eventhub"
)

// Keys under which Install publishes the hub.
const (
	GlobalKey   = "eventHub"
	InstanceKey = "$eventHub"
)

// Host is a framework that can expose a value globally and on each of its
// instances.
type Host interface {
	// SetGlobal publishes v in the framework-wide scope.
	SetGlobal(key string, v any)

	// SetInstance publishes v to every instance the framework creates,
	// including ones created before the call.
	SetInstance(key string, v any)
}

// Install creates one hub and publishes it on h under GlobalKey and
// InstanceKey.
func Install(h Host, opts ...eventhub.Option) *eventhub.Hub {
	hub := eventhub.New(opts...)
	h.SetGlobal(GlobalKey, hub)
	h.SetInstance(InstanceKey, hub)
	return hub
}

var (
	ambientMu sync.Mutex
	ambient   Host
)

// SetAmbient registers the host found in the running environment. Passing
// nil removes it.
func SetAmbient(h Host) {
	ambientMu.Lock()
	defer ambientMu.Unlock()
	ambient = h
}

// AttachAmbient installs a hub into the ambient host if one is registered.
// It reports false, and creates nothing, when there is none.
func AttachAmbient(opts ...eventhub.Option) (*eventhub.Hub, bool) {
	ambientMu.Lock()
	h := ambient
	ambientMu.Unlock()

	if h == nil {
		return nil, false
	}
	return Install(h, opts...), true
}
