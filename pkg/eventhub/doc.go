// Package eventhub provides a synchronous, in-process event hub.
//
// # Overview
//
// Listeners are bound to event names with On or Once and unbound with Off or
// Clear. Emit invokes every listener bound to the emitted names, in the
// calling goroutine, before it returns.
//
//	hub := eventhub.New()
//
//	saved := eventhub.NewListener(func(recv any, args ...any) any {
//	    fmt.Println("saved", args[0])
//	    return nil
//	})
//
//	hub.On("saved", saved, nil)
//	hub.Emit("saved", "report.pdf")
//
// # Event Names
//
// Every names argument may hold several names separated by whitespace. Each
// name is handled independently and in order:
//
//	hub.On("open close", onToggle, nil) // bound to both
//	hub.Emit("open close")              // open listeners, then close listeners
//	hub.Off("open", nil, nil)           // close stays bound
//
// Names joins a list of names into such a directive.
//
// # Receivers
//
// A Func receives the value it runs "on" as its first argument: the context
// given at registration, or the *Hub when the context was nil. The same
// context can later be passed to Off to unbind everything registered with it:
//
//	hub.On("resize", onResize, widget)
//	hub.Off("resize", nil, widget)
//
// # Results
//
// A listener that returns the bool false fails the emit. Emit reports
// Failed if any listener anywhere in the call failed, Passed otherwise, and
// NoListeners when the hub had no bindings at all.
//
// # Re-entrancy
//
// Listeners may register, unregister and emit on the hub that is running
// them. Each name's bindings are copied before dispatch, so such changes
// take effect from the next emit. Panics raised by listeners are not
// recovered and abort the emit.
//
// # Observability
//
// WithLogger, WithMetrics and WithTracing hook the hub into slog and
// OpenTelemetry. See the observability package.
package eventhub
