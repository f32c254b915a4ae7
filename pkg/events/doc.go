// Package events provides the application-wide event target for appshell.
//
// The bus carries the named signals that decouple the session store from
// the router (login and logout), plus transient UI events such as toasts.
// It is the Go stand-in for dispatching CustomEvents on a browser window.
//
// Usage:
//
//	bus := events.NewBus()
//
//	unsub := bus.Subscribe(events.UserLoggedIn, func(e events.Event) {
//	    router.NavigateTo("/dashboard")
//	})
//	defer unsub()
//
//	bus.Publish(events.UserLoggedIn, nil)
//
// Handlers for a given event name run synchronously in subscription order.
// A panicking handler is recovered and logged; it never prevents the
// remaining handlers from running.
package events
