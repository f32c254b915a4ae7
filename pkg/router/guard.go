package router

import "github.com/filedrop-dev/appshell/pkg/store"

// Decision is the outcome of a guard: allow the navigation, or redirect
// it to another path.
type Decision struct {
	allow    bool
	redirect string
}

// Allow permits the navigation to proceed.
func Allow() Decision {
	return Decision{allow: true}
}

// RedirectTo diverts the navigation to path.
func RedirectTo(path string) Decision {
	return Decision{redirect: path}
}

// Allowed reports whether the navigation may proceed.
func (d Decision) Allowed() bool { return d.allow }

// Redirect returns the redirect target, if any.
func (d Decision) Redirect() (string, bool) {
	return d.redirect, !d.allow && d.redirect != ""
}

// Guard inspects a session-state snapshot and decides whether navigation
// may proceed. Guards are pure: they read the snapshot they are given and
// hold no state of their own.
type Guard func(st store.State) Decision

// authenticated applies the same dual check as store.IsAuthenticated to a
// snapshot: the flag alone is never trusted.
func authenticated(st store.State) bool {
	return st.Authenticated && st.AccessToken != ""
}

// PublicOnly guards routes meant for anonymous users (home, login,
// register): an already-authenticated user is sent to the dashboard
// instead of, say, being shown the login form again.
func PublicOnly(st store.State) Decision {
	if authenticated(st) {
		return RedirectTo(PathDashboard)
	}
	return Allow()
}

// Protected guards routes that require a session: an anonymous user is
// sent to the login page.
func Protected(st store.State) Decision {
	if !authenticated(st) {
		return RedirectTo(PathLogin)
	}
	return Allow()
}

// AllowAll permits navigation unconditionally. Used by the catch-all
// not-found route.
func AllowAll(store.State) Decision {
	return Allow()
}
