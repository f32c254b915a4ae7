package events

import (
	"log/slog"
	"sync"
)

// Signal names dispatched by the session store and consumed by the router.
// Both carry no detail payload beyond their name.
const (
	// UserLoggedIn is published after a login completes. Hydrating a
	// persisted session does not publish it; restored sessions keep
	// their place instead of being forced to the dashboard.
	UserLoggedIn = "appshell:login"

	// UserLoggedOut is published after a logout completes.
	UserLoggedOut = "appshell:logout"
)

// Event is a named notification with an optional detail payload.
type Event struct {
	// Name is the event name it was published under.
	Name string

	// Detail carries event-specific data. May be nil.
	Detail map[string]any
}

// Handler receives published events.
type Handler func(Event)

type subscriber struct {
	id uint64
	fn Handler
}

// Bus is an in-process event target with ordered, panic-isolated delivery.
// It is safe for concurrent use.
type Bus struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string][]subscriber
	logger *slog.Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the structured logger used to report handler panics.
// Defaults to slog.Default().
func WithLogger(logger *slog.Logger) BusOption {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBus creates a new event bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		subs:   make(map[string][]subscriber),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers a handler for the given event name and returns a
// function that removes exactly that handler. Handlers are notified in
// subscription order; duplicate registrations of the same function are
// distinct subscriptions.
func (b *Bus) Subscribe(name string, fn Handler) func() {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[name] = append(b.subs[name], subscriber{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		list := b.subs[name]
		for i, s := range list {
			if s.id == id {
				// Preserve order of the remaining handlers.
				b.subs[name] = append(list[:i:i], list[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers an event to all handlers subscribed to name.
// Delivery is synchronous. Handlers are invoked on a snapshot of the
// subscriber list, so subscribing or unsubscribing during delivery does
// not affect the current dispatch.
func (b *Bus) Publish(name string, detail map[string]any) {
	b.mu.RLock()
	list := b.subs[name]
	snapshot := make([]subscriber, len(list))
	copy(snapshot, list)
	b.mu.RUnlock()

	evt := Event{Name: name, Detail: detail}
	for _, s := range snapshot {
		b.dispatch(s, evt)
	}
}

// dispatch invokes a single handler, recovering and logging any panic so
// one failing handler cannot halt the rest.
func (b *Bus) dispatch(s subscriber, evt Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"event", evt.Name,
				"panic", r,
			)
		}
	}()
	s.fn(evt)
}

// SubscriberCount returns the number of handlers registered for name.
// This is for monitoring/testing purposes.
func (b *Bus) SubscriberCount(name string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[name])
}
