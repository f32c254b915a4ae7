package router

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/filedrop-dev/appshell/pkg/events"
	"github.com/filedrop-dev/appshell/pkg/store"
)

var (
	// ErrNilOutlet is returned by Init when no rendering target is
	// supplied. This is the one fatal, user-facing misconfiguration:
	// it is raised immediately so it is caught at startup rather than
	// failing silently later.
	ErrNilOutlet = errors.New("router: outlet is required")

	// ErrNotInitialized is returned when navigation is attempted before
	// Init. The operation is a no-op.
	ErrNotInitialized = errors.New("router: not initialized")
)

// maxRedirectHops bounds guard-redirect chains. The shipped guards
// terminate in at most two hops; hitting the bound means a misconfigured
// custom table.
const maxRedirectHops = 8

// Router dispatches navigations through the route table's guards and
// renders the loaded pages into the outlet. It is safe for concurrent use.
type Router struct {
	session *store.Store
	routes  []Route
	history History
	bus     *events.Bus
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *routerMetrics

	mu          sync.RWMutex
	outlet      Outlet
	current     *Location
	initialized bool
	unsubs      []func()
}

// Option configures a Router.
type Option func(*Router)

// WithRoutes sets the route table. Defaults to DefaultRoutes over
// PlaceholderPages.
func WithRoutes(routes []Route) Option {
	return func(r *Router) {
		if len(routes) > 0 {
			r.routes = routes
		}
	}
}

// WithHistory sets the history backend. Defaults to an in-memory history.
func WithHistory(h History) Option {
	return func(r *Router) {
		if h != nil {
			r.history = h
		}
	}
}

// WithBus sets the event bus the router listens to for login and logout
// signals. If nil, no signal listeners are bound.
func WithBus(bus *events.Bus) Option {
	return func(r *Router) {
		r.bus = bus
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithRegisterer enables Prometheus metrics, registered with reg.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(r *Router) {
		if reg != nil {
			r.metrics = newRouterMetrics(reg)
		}
	}
}

// New creates a router bound to the given session store.
func New(session *store.Store, opts ...Option) *Router {
	r := &Router{
		session: session,
		routes:  DefaultRoutes(PlaceholderPages()),
		history: NewMemoryHistory(),
		logger:  slog.Default(),
		tracer:  otel.Tracer("github.com/filedrop-dev/appshell/pkg/router"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Init binds the router to its rendering target and subscribes to the
// login/logout signals. It is intended to be called once; re-binding is
// not guaranteed to behave.
func (r *Router) Init(outlet Outlet) error {
	if outlet == nil {
		return ErrNilOutlet
	}

	r.mu.Lock()
	r.outlet = outlet
	r.initialized = true
	r.mu.Unlock()

	if r.bus != nil {
		r.unsubs = append(r.unsubs,
			r.bus.Subscribe(events.UserLoggedIn, func(events.Event) {
				r.NavigateTo(PathDashboard)
			}),
			r.bus.Subscribe(events.UserLoggedOut, func(events.Event) {
				r.NavigateTo(PathLanding)
			}),
		)
	}

	r.logger.Info("router initialized", "routes", len(r.routes))
	return nil
}

// Close removes the router's signal listeners.
func (r *Router) Close() {
	for _, unsub := range r.unsubs {
		unsub()
	}
	r.unsubs = nil
}

// NavigateTo performs a programmatic navigation to path.
// It is a logged-error no-op before Init.
func (r *Router) NavigateTo(path string) error {
	return r.Navigate(context.Background(), path)
}

// Navigate is NavigateTo with a caller-supplied context, which flows into
// the page loader.
func (r *Router) Navigate(ctx context.Context, path string) error {
	return r.navigate(ctx, path, 0)
}

func (r *Router) navigate(ctx context.Context, rawPath string, hops int) error {
	r.mu.RLock()
	initialized := r.initialized
	outlet := r.outlet
	r.mu.RUnlock()

	if !initialized {
		r.logger.Error("navigation before router init", "path", rawPath)
		return ErrNotInitialized
	}

	u, err := url.Parse(rawPath)
	if err != nil {
		r.logger.Error("unparseable navigation target", "path", rawPath, "error", err)
		return fmt.Errorf("router: invalid path %q: %w", rawPath, err)
	}
	path := u.Path
	if path == "" {
		path = PathLanding
	}

	ctx, span := r.tracer.Start(ctx, "router.navigate",
		trace.WithAttributes(attribute.String("nav.path", path)),
	)
	defer span.End()

	route := r.match(path)
	span.SetAttributes(attribute.String("nav.route", route.Name))

	if route.Guard != nil {
		decision := route.Guard(r.session.Snapshot())
		if target, redirect := decision.Redirect(); redirect {
			span.SetAttributes(attribute.String("nav.redirect", target))
			r.metrics.incRedirect(route.Name)
			r.logger.Info("navigation redirected", "from", path, "to", target)
			if hops >= maxRedirectHops {
				return fmt.Errorf("router: redirect loop at %q", path)
			}
			return r.navigate(ctx, target, hops+1)
		}
	}

	// Suspension point: awaiting the page module.
	page, err := route.Load(ctx)
	if err != nil {
		r.metrics.incLoadError(route.Name)
		r.logger.Error("page load failed", "route", route.Name, "error", err)
		return fmt.Errorf("router: loading %s: %w", route.Name, err)
	}

	if err := outlet.Render(page); err != nil {
		r.logger.Error("page render failed", "route", route.Name, "error", err)
		return fmt.Errorf("router: rendering %s: %w", route.Name, err)
	}

	loc := &Location{
		Path:    path,
		Query:   u.RawQuery,
		Hash:    u.Fragment,
		FullURL: fullURL(u, path),
	}

	r.mu.Lock()
	r.current = loc
	r.mu.Unlock()
	r.history.Push(loc.FullURL)

	r.metrics.incNavigation(route.Name)
	r.logger.Debug("navigated", "route", route.Name, "path", path)
	return nil
}

// match finds the route for path: exact pattern match, with the catch-all
// (always last in the table) picking up everything else.
func (r *Router) match(path string) Route {
	var catchAll *Route
	for i := range r.routes {
		route := &r.routes[i]
		if route.Pattern == CatchAll {
			catchAll = route
			continue
		}
		if route.Pattern == path {
			return *route
		}
	}
	if catchAll != nil {
		return *catchAll
	}
	// No catch-all configured; fall back to a built-in not-found page.
	return Route{
		Pattern: CatchAll,
		Name:    "not-found",
		Guard:   AllowAll,
		Load:    StaticPage("not-found", "<h1>Page not found</h1>"),
	}
}

// CurrentRoute returns a snapshot of the current location, or nil if the
// router has not navigated yet.
func (r *Router) CurrentRoute() *Location {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.current == nil {
		return nil
	}
	loc := *r.current
	return &loc
}

// IsRouteActive reports whether path matches the current location: exact
// match, or, for non-root paths, a prefix match. This drives nav
// highlighting and must not be used for auth decisions.
func (r *Router) IsRouteActive(path string) bool {
	cur := r.CurrentRoute()
	if cur == nil {
		return false
	}
	if cur.Path == path {
		return true
	}
	return path != PathLanding && len(cur.Path) > len(path) &&
		cur.Path[:len(path)] == path
}

// HandleAuthRedirect re-derives whether the current path requires a
// redirect under the current auth state, and issues it. It reports
// whether a redirect was issued.
func (r *Router) HandleAuthRedirect() bool {
	cur := r.CurrentRoute()
	if cur == nil {
		return false
	}

	authed := r.session.IsAuthenticated()
	switch {
	case RequiresAuth(cur.Path) && !authed:
		r.NavigateTo(PathLogin)
		return true
	case IsPublicRoute(cur.Path) && authed:
		r.NavigateTo(PathDashboard)
		return true
	default:
		return false
	}
}

// fullURL reattaches query and fragment to the cleaned path.
func fullURL(u *url.URL, path string) string {
	full := path
	if u.RawQuery != "" {
		full += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		full += "#" + u.Fragment
	}
	return full
}
