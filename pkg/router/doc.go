// Package router maps URL paths to lazily-loaded pages and enforces the
// shell's authentication guards.
//
// The route table is pure data: an ordered list of (pattern, guard, loader)
// entries with the catch-all evaluated last. Guards are pure functions from
// a session-state snapshot to a navigation decision (allow, or redirect to
// another path), so the table stays separate from guard evaluation.
//
//	r := router.New(sessionStore,
//	    router.WithRoutes(router.DefaultRoutes(pages)),
//	    router.WithBus(bus),
//	)
//	if err := r.Init(outlet); err != nil {
//	    log.Fatal(err) // misconfiguration, caught at startup
//	}
//	r.NavigateTo("/dashboard")
//
// Public routes (home, login, register) bounce an already-authenticated
// user to the dashboard; protected routes (dashboard, my-files, upload,
// profile) bounce an anonymous user to login; the catch-all loads the
// not-found page unconditionally.
//
// The router also listens for the login and logout signals on the event
// bus: login navigates to the dashboard, logout navigates home.
package router
