// Package store provides the observable session state store for appshell.
//
// The store owns the process-wide session record: whether a user is logged
// in, their profile, and their credentials. Every mutation replaces the
// whole state value, persists the durable subset to a storage backend, and
// notifies subscribers in registration order.
//
// Usage:
//
//	st := store.New(
//	    store.WithStorage(storage.NewMemoryStore()),
//	    store.WithBus(bus),
//	)
//
//	unsub := st.Subscribe(func(s store.State) {
//	    log.Printf("loading=%v err=%q", s.Loading, s.Err)
//	})
//	defer unsub()
//
//	st.Hydrate(ctx) // restore a persisted session, at most once
//	st.Login(ctx, map[string]any{"email": "ada@example.com"}, at, rt)
//
// IsAuthenticated is the sole authority other components may rely on for
// auth decisions: it re-checks both the authenticated flag and the access
// token instead of trusting the stored flag alone.
//
// Storage failures are logged and never propagated to callers; a corrupt
// persisted record is wiped during hydration so the shell starts from the
// unauthenticated defaults instead of a half-restored session.
package store
