package store

import (
	"context"
	"encoding/json"
)

// Hydrate restores the session state from durable storage. It is intended
// to run exactly once at startup; later calls are no-ops. It reports
// whether a session was restored.
//
// A session is restored only when the access token, the authenticated
// flag, and the user record are all present simultaneously; partial
// records are never restored. Corrupt data triggers a full clear of the
// persisted keys so the next start doesn't retry the same broken load.
// Hydrate never panics and never surfaces storage errors to the caller.
func (s *Store) Hydrate(ctx context.Context) bool {
	s.mu.Lock()
	if s.hydrated {
		s.mu.Unlock()
		s.logger.Debug("hydrate skipped: already attempted")
		return false
	}
	s.hydrated = true
	s.mu.Unlock()

	token, tokenOK := s.getItem(ctx, KeyAccessToken)
	flag, flagOK := s.getItem(ctx, KeyAuthenticated)
	userRaw, userOK := s.getItem(ctx, KeyUserData)

	if !tokenOK || !flagOK || !userOK || token == "" || flag != "true" {
		s.metrics.incHydration("empty")
		s.logger.Info("no persisted session to restore")
		return false
	}

	var user map[string]any
	if err := json.Unmarshal([]byte(userRaw), &user); err != nil || user == nil {
		// Corrupt record: wipe it so we don't retry forever.
		s.clearPersisted(ctx)
		s.metrics.incHydration("corrupt")
		s.logger.Warn("persisted session corrupt, cleared storage", "error", err)
		return false
	}

	refresh, _ := s.getItem(ctx, KeyRefreshToken)

	s.mu.Lock()
	s.state = State{
		Authenticated: true,
		User:          user,
		AccessToken:   token,
		RefreshToken:  refresh,
	}
	s.mu.Unlock()

	s.metrics.incHydration("restored")
	s.notify()
	s.logger.Info("session restored from storage")
	return true
}

// getItem reads one key, treating backend errors as absence. Read failures
// are logged and must not abort hydration.
func (s *Store) getItem(ctx context.Context, key string) (string, bool) {
	v, ok, err := s.storage.Get(ctx, key)
	if err != nil {
		s.logger.Error("reading session field", "key", key, "error", err)
		return "", false
	}
	return v, ok
}
