package store

import "maps"

// Durable storage keys. Only these four fields of State survive a restart.
const (
	KeyAccessToken   = "access_token"
	KeyRefreshToken  = "refresh_token"
	KeyUserData      = "user_data"
	KeyAuthenticated = "is_authenticated"
)

// State is the session state record. The store replaces it wholesale on
// every mutation; callers only ever see copies.
//
// Invariant: Authenticated == true implies AccessToken != "". The store's
// IsAuthenticated method re-checks both fields rather than trusting the
// flag.
type State struct {
	// Authenticated reports whether a login has completed.
	Authenticated bool

	// User is the opaque profile record. Nil when logged out.
	User map[string]any

	// AccessToken and RefreshToken are opaque credentials.
	// Empty string means absent.
	AccessToken  string
	RefreshToken string

	// Loading and Err are transient UI-facing fields, unrelated to auth
	// correctness. Err is empty when there is no error.
	Loading bool
	Err     string
}

// clone returns a copy of the state with its own user map, so holders of
// the copy cannot mutate store internals.
func (s State) clone() State {
	c := s
	if s.User != nil {
		c.User = maps.Clone(s.User)
	}
	return c
}
