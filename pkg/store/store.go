package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"maps"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/filedrop-dev/appshell/pkg/events"
	"github.com/filedrop-dev/appshell/pkg/storage"
)

// Store holds the session state, persists the durable subset, and notifies
// subscribers on every mutation. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	state    State
	hydrated bool

	storage storage.Store
	bus     *events.Bus
	logger  *slog.Logger
	metrics *storeMetrics

	subMu  sync.Mutex
	nextID uint64
	subs   []subscription
}

type subscription struct {
	id uint64
	fn func(State)
}

// Option configures a Store.
type Option func(*Store)

// WithStorage sets the durable storage backend.
// Defaults to an in-memory store.
func WithStorage(s storage.Store) Option {
	return func(st *Store) {
		if s != nil {
			st.storage = s
		}
	}
}

// WithBus sets the event bus the store publishes login/logout signals on.
// If nil, no signals are published.
func WithBus(bus *events.Bus) Option {
	return func(st *Store) {
		st.bus = bus
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(st *Store) {
		if logger != nil {
			st.logger = logger
		}
	}
}

// WithRegisterer enables Prometheus metrics, registered with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(st *Store) {
		if reg != nil {
			st.metrics = newStoreMetrics(reg)
		}
	}
}

// New creates a session store with all fields empty and unauthenticated.
func New(opts ...Option) *Store {
	st := &Store{
		storage: storage.NewMemoryStore(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Snapshot returns a copy of the current session state. Mutating the
// returned value (including its user map) has no effect on the store.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// IsAuthenticated reports whether a valid session is held. It requires
// both the authenticated flag and a non-empty access token, guarding
// against partial or stale state.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Authenticated && s.state.AccessToken != ""
}

// CurrentUser returns a copy of the user profile record, or nil when
// logged out.
func (s *Store) CurrentUser() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.User == nil {
		return nil
	}
	return maps.Clone(s.state.User)
}

// AccessToken returns the current access token, or "" when logged out.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.AccessToken
}

// SetLoading replaces the state with the loading flag changed and
// notifies subscribers.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	next := s.state.clone()
	next.Loading = loading
	s.state = next
	s.mu.Unlock()

	s.metrics.incMutation("set_loading")
	s.notify()
}

// SetError replaces the state with the error field changed and notifies
// subscribers. Pass "" to clear the error.
func (s *Store) SetError(msg string) {
	s.mu.Lock()
	next := s.state.clone()
	next.Err = msg
	s.state = next
	s.mu.Unlock()

	s.metrics.incMutation("set_error")
	s.notify()
}

// Login replaces the state with an authenticated session, persists the
// durable fields, publishes the login signal, and notifies subscribers.
// Storage write failures are logged, never returned.
func (s *Store) Login(ctx context.Context, user map[string]any, accessToken, refreshToken string) {
	next := State{
		Authenticated: true,
		User:          maps.Clone(user),
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
	}

	s.mu.Lock()
	s.state = next
	s.mu.Unlock()

	s.persistSession(ctx, next)
	s.metrics.incMutation("login")
	s.notify()

	if s.bus != nil {
		s.bus.Publish(events.UserLoggedIn, nil)
	}
	s.logger.Info("user logged in")
}

// Logout resets the state to the unauthenticated defaults, clears the
// durable storage entries, publishes the logout signal, and notifies
// subscribers.
func (s *Store) Logout(ctx context.Context) {
	s.mu.Lock()
	s.state = State{}
	s.mu.Unlock()

	s.clearPersisted(ctx)
	s.metrics.incMutation("logout")
	s.notify()

	if s.bus != nil {
		s.bus.Publish(events.UserLoggedOut, nil)
	}
	s.logger.Info("user logged out")
}

// UpdateUser merges partial profile fields into the current user record:
// given keys override, unspecified keys are retained. It warns and leaves
// the state unchanged when no user is authenticated.
func (s *Store) UpdateUser(ctx context.Context, partial map[string]any) {
	s.mu.Lock()
	if !(s.state.Authenticated && s.state.AccessToken != "") {
		s.mu.Unlock()
		s.logger.Warn("update user ignored: not authenticated")
		return
	}

	next := s.state.clone()
	if next.User == nil {
		next.User = make(map[string]any, len(partial))
	}
	for k, v := range partial {
		next.User[k] = v
	}
	s.state = next
	s.mu.Unlock()

	s.persistUser(ctx, next.User)
	s.metrics.incMutation("update_user")
	s.notify()
}

// persistSession writes the four durable keys. Failures are logged.
func (s *Store) persistSession(ctx context.Context, st State) {
	s.setItem(ctx, KeyAccessToken, st.AccessToken)
	s.setItem(ctx, KeyRefreshToken, st.RefreshToken)
	s.setItem(ctx, KeyAuthenticated, boolString(st.Authenticated))
	s.persistUser(ctx, st.User)
}

// persistUser writes the serialized user record. Failures are logged.
func (s *Store) persistUser(ctx context.Context, user map[string]any) {
	data, err := json.Marshal(user)
	if err != nil {
		s.logger.Error("serializing user record", "error", err)
		return
	}
	s.setItem(ctx, KeyUserData, string(data))
}

func (s *Store) setItem(ctx context.Context, key, value string) {
	if err := s.storage.Set(ctx, key, value); err != nil {
		s.logger.Error("persisting session field", "key", key, "error", err)
	}
}

// clearPersisted removes all four durable keys. Failures are logged.
func (s *Store) clearPersisted(ctx context.Context) {
	for _, key := range []string{KeyAccessToken, KeyRefreshToken, KeyUserData, KeyAuthenticated} {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Error("clearing session field", "key", key, "error", err)
		}
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
