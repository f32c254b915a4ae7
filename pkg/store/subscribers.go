package store

// Subscribe registers a callback for future state notifications and
// returns a function that removes exactly that callback. Callbacks are
// notified in registration order with their own snapshot of the state.
//
// A callback that panics during notification is recovered and logged; it
// neither prevents the remaining callbacks from running nor corrupts the
// store.
func (s *Store) Subscribe(fn func(State)) func() {
	if fn == nil {
		return func() {}
	}

	s.subMu.Lock()
	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				// Preserve registration order of the rest.
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// notify delivers the current state to every subscriber in registration
// order. The subscriber list is snapshotted first, so callbacks may
// subscribe or unsubscribe without affecting the current dispatch.
func (s *Store) notify() {
	s.subMu.Lock()
	snapshot := make([]subscription, len(s.subs))
	copy(snapshot, s.subs)
	s.subMu.Unlock()

	for _, sub := range snapshot {
		s.dispatch(sub)
	}
}

// dispatch invokes a single subscriber with its own state copy, recovering
// panics so one failing subscriber cannot halt the rest.
func (s *Store) dispatch(sub subscription) {
	defer func() {
		if r := recover(); r != nil {
			s.metrics.incSubscriberPanic()
			s.logger.Error("state subscriber panicked", "panic", r)
		}
	}()
	sub.fn(s.Snapshot())
}

// SubscriberCount returns the number of registered callbacks.
// This is for monitoring/testing purposes.
func (s *Store) SubscriberCount() int {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	return len(s.subs)
}
