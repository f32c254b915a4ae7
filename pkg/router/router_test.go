package router

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/filedrop-dev/appshell/pkg/events"
	"github.com/filedrop-dev/appshell/pkg/store"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recordingOutlet captures every page rendered into it.
type recordingOutlet struct {
	pages []string
}

func (o *recordingOutlet) Render(p Page) error {
	o.pages = append(o.pages, p.Name())
	return nil
}

func (o *recordingOutlet) last() string {
	if len(o.pages) == 0 {
		return ""
	}
	return o.pages[len(o.pages)-1]
}

func newTestRouter(t *testing.T, st *store.Store, opts ...Option) (*Router, *recordingOutlet) {
	t.Helper()
	opts = append([]Option{WithLogger(quietLogger())}, opts...)
	r := New(st, opts...)
	outlet := &recordingOutlet{}
	if err := r.Init(outlet); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(r.Close)
	return r, outlet
}

func newSessionStore() *store.Store {
	return store.New(store.WithLogger(quietLogger()))
}

func TestInitRequiresOutlet(t *testing.T) {
	r := New(newSessionStore(), WithLogger(quietLogger()))

	if err := r.Init(nil); !errors.Is(err, ErrNilOutlet) {
		t.Errorf("Init(nil) = %v, want ErrNilOutlet", err)
	}
}

func TestNavigateBeforeInitIsNoOp(t *testing.T) {
	r := New(newSessionStore(), WithLogger(quietLogger()))

	if err := r.NavigateTo(PathDashboard); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("NavigateTo before Init = %v, want ErrNotInitialized", err)
	}
	if r.CurrentRoute() != nil {
		t.Error("CurrentRoute non-nil before init")
	}
}

func TestProtectedRouteRedirectsAnonymousToLogin(t *testing.T) {
	r, outlet := newTestRouter(t, newSessionStore())

	if err := r.NavigateTo(PathDashboard); err != nil {
		t.Fatalf("NavigateTo failed: %v", err)
	}

	if got := outlet.last(); got != "login" {
		t.Errorf("rendered page = %q, want %q", got, "login")
	}
	if got := r.CurrentRoute().Path; got != PathLogin {
		t.Errorf("current path = %q, want %q", got, PathLogin)
	}
}

func TestPublicRouteRedirectsAuthenticatedToDashboard(t *testing.T) {
	st := newSessionStore()
	st.Login(context.Background(), map[string]any{"id": "u1"}, "AT1", "RT1")
	r, outlet := newTestRouter(t, st)

	if err := r.NavigateTo(PathLogin); err != nil {
		t.Fatalf("NavigateTo failed: %v", err)
	}

	if got := outlet.last(); got != "dashboard" {
		t.Errorf("rendered page = %q, want %q", got, "dashboard")
	}
	if got := r.CurrentRoute().Path; got != PathDashboard {
		t.Errorf("current path = %q, want %q", got, PathDashboard)
	}
}

func TestUnknownPathLoadsNotFoundWithoutRedirect(t *testing.T) {
	r, outlet := newTestRouter(t, newSessionStore())

	if err := r.NavigateTo("/xyz"); err != nil {
		t.Fatalf("NavigateTo failed: %v", err)
	}

	if got := outlet.last(); got != "not-found" {
		t.Errorf("rendered page = %q, want %q", got, "not-found")
	}
	// No redirect: the current path stays the unmatched one.
	if got := r.CurrentRoute().Path; got != "/xyz" {
		t.Errorf("current path = %q, want %q", got, "/xyz")
	}
}

func TestNotFoundIgnoresAuthState(t *testing.T) {
	st := newSessionStore()
	st.Login(context.Background(), map[string]any{"id": "u1"}, "AT1", "RT1")
	r, outlet := newTestRouter(t, st)

	if err := r.NavigateTo("/does/not/exist"); err != nil {
		t.Fatalf("NavigateTo failed: %v", err)
	}
	if got := outlet.last(); got != "not-found" {
		t.Errorf("rendered page = %q, want %q", got, "not-found")
	}
}

func TestProtectedRouteAllowsAuthenticated(t *testing.T) {
	st := newSessionStore()
	st.Login(context.Background(), map[string]any{"id": "u1"}, "AT1", "RT1")
	r, outlet := newTestRouter(t, st)

	for path, page := range map[string]string{
		PathDashboard: "dashboard",
		PathFiles:     "my-files",
		PathUpload:    "upload",
		PathProfile:   "profile",
	} {
		if err := r.NavigateTo(path); err != nil {
			t.Fatalf("NavigateTo(%q) failed: %v", path, err)
		}
		if got := outlet.last(); got != page {
			t.Errorf("NavigateTo(%q) rendered %q, want %q", path, got, page)
		}
	}
}

func TestCurrentRouteSnapshot(t *testing.T) {
	r, _ := newTestRouter(t, newSessionStore())

	if err := r.NavigateTo("/register?plan=pro#pricing"); err != nil {
		t.Fatalf("NavigateTo failed: %v", err)
	}

	loc := r.CurrentRoute()
	if loc == nil {
		t.Fatal("CurrentRoute = nil after navigation")
	}
	if loc.Path != PathRegister {
		t.Errorf("Path = %q, want %q", loc.Path, PathRegister)
	}
	if loc.Query != "plan=pro" {
		t.Errorf("Query = %q, want %q", loc.Query, "plan=pro")
	}
	if loc.Hash != "pricing" {
		t.Errorf("Hash = %q, want %q", loc.Hash, "pricing")
	}
	if loc.FullURL != "/register?plan=pro#pricing" {
		t.Errorf("FullURL = %q", loc.FullURL)
	}

	// The snapshot is a copy.
	loc.Path = "/mutated"
	if got := r.CurrentRoute().Path; got != PathRegister {
		t.Errorf("current mutated through snapshot: %q", got)
	}
}

func TestLoginSignalNavigatesToDashboard(t *testing.T) {
	bus := events.NewBus(events.WithLogger(quietLogger()))
	st := store.New(store.WithLogger(quietLogger()), store.WithBus(bus))
	r, outlet := newTestRouter(t, st, WithBus(bus))

	st.Login(context.Background(), map[string]any{"id": "u1"}, "AT1", "RT1")

	if got := outlet.last(); got != "dashboard" {
		t.Errorf("rendered page after login signal = %q, want %q", got, "dashboard")
	}
	if got := r.CurrentRoute().Path; got != PathDashboard {
		t.Errorf("current path = %q, want %q", got, PathDashboard)
	}
}

func TestLogoutSignalNavigatesHome(t *testing.T) {
	bus := events.NewBus(events.WithLogger(quietLogger()))
	st := store.New(store.WithLogger(quietLogger()), store.WithBus(bus))
	ctx := context.Background()
	st.Login(ctx, map[string]any{"id": "u1"}, "AT1", "RT1")

	r, outlet := newTestRouter(t, st, WithBus(bus))

	st.Logout(ctx)

	if got := outlet.last(); got != "landing" {
		t.Errorf("rendered page after logout signal = %q, want %q", got, "landing")
	}
	if got := r.CurrentRoute().Path; got != PathLanding {
		t.Errorf("current path = %q, want %q", got, PathLanding)
	}
}

func TestHandleAuthRedirect(t *testing.T) {
	t.Run("ProtectedPathLoggedOut", func(t *testing.T) {
		st := newSessionStore()
		ctx := context.Background()
		st.Login(ctx, map[string]any{"id": "u1"}, "AT1", "RT1")
		r, _ := newTestRouter(t, st)

		if err := r.NavigateTo(PathFiles); err != nil {
			t.Fatalf("NavigateTo failed: %v", err)
		}
		st.Logout(ctx)

		if !r.HandleAuthRedirect() {
			t.Fatal("HandleAuthRedirect did not redirect a logged-out user off a protected path")
		}
		if got := r.CurrentRoute().Path; got != PathLogin {
			t.Errorf("current path = %q, want %q", got, PathLogin)
		}
	})

	t.Run("PublicPathLoggedIn", func(t *testing.T) {
		st := newSessionStore()
		r, _ := newTestRouter(t, st)

		if err := r.NavigateTo(PathLogin); err != nil {
			t.Fatalf("NavigateTo failed: %v", err)
		}
		st.Login(context.Background(), map[string]any{"id": "u1"}, "AT1", "RT1")

		if !r.HandleAuthRedirect() {
			t.Fatal("HandleAuthRedirect did not redirect a logged-in user off the login page")
		}
		if got := r.CurrentRoute().Path; got != PathDashboard {
			t.Errorf("current path = %q, want %q", got, PathDashboard)
		}
	})

	t.Run("NoRedirectNeeded", func(t *testing.T) {
		r, _ := newTestRouter(t, newSessionStore())

		if err := r.NavigateTo("/xyz"); err != nil {
			t.Fatalf("NavigateTo failed: %v", err)
		}
		if r.HandleAuthRedirect() {
			t.Error("HandleAuthRedirect redirected on a catch-all path")
		}
	})

	t.Run("BeforeAnyNavigation", func(t *testing.T) {
		r, _ := newTestRouter(t, newSessionStore())
		if r.HandleAuthRedirect() {
			t.Error("HandleAuthRedirect redirected with no current route")
		}
	})
}

func TestPageLoadFailureIsReported(t *testing.T) {
	errLoad := errors.New("chunk fetch failed")
	routes := DefaultRoutes(PlaceholderPages())
	for i := range routes {
		if routes[i].Pattern == PathLanding {
			routes[i].Load = func(context.Context) (Page, error) {
				return nil, errLoad
			}
		}
	}

	r, outlet := newTestRouter(t, newSessionStore(), WithRoutes(routes))

	err := r.NavigateTo(PathLanding)
	if !errors.Is(err, errLoad) {
		t.Errorf("NavigateTo = %v, want wrapped %v", err, errLoad)
	}
	if len(outlet.pages) != 0 {
		t.Errorf("outlet rendered %v despite load failure", outlet.pages)
	}
	if r.CurrentRoute() != nil {
		t.Error("current route recorded despite load failure")
	}
}

func TestNavigationRecordsHistory(t *testing.T) {
	hist := NewMemoryHistory()
	r, _ := newTestRouter(t, newSessionStore(), WithHistory(hist))

	r.NavigateTo(PathLanding)
	r.NavigateTo(PathRegister)

	if got := hist.Len(); got != 2 {
		t.Fatalf("history length = %d, want 2", got)
	}
	cur, ok := hist.Current()
	if !ok || cur != PathRegister {
		t.Errorf("history current = (%q, %v), want (%q, true)", cur, ok, PathRegister)
	}
}

func TestStaticPageRenders(t *testing.T) {
	load := StaticPage("landing", "<h1>FileDrop</h1>")
	page, err := load(context.Background())
	if err != nil {
		t.Fatalf("loader failed: %v", err)
	}

	var sb strings.Builder
	if err := page.Render(&sb); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if sb.String() != "<h1>FileDrop</h1>" {
		t.Errorf("rendered %q", sb.String())
	}
}
