package appshell_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/filedrop-dev/appshell"
	"github.com/filedrop-dev/appshell/pkg/events"
	"github.com/filedrop-dev/appshell/pkg/router"
	"github.com/filedrop-dev/appshell/pkg/storage"
	"github.com/filedrop-dev/appshell/pkg/store"
	"github.com/filedrop-dev/appshell/pkg/toast"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingOutlet struct {
	pages []string
}

func (o *recordingOutlet) Render(p router.Page) error {
	o.pages = append(o.pages, p.Name())
	return nil
}

func (o *recordingOutlet) last() string {
	if len(o.pages) == 0 {
		return ""
	}
	return o.pages[len(o.pages)-1]
}

func newTestApp(t *testing.T, cfg appshell.Config) (*appshell.App, *recordingOutlet) {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = quietLogger()
	}
	app, err := appshell.New(cfg)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(func() { app.Close() })

	outlet := &recordingOutlet{}
	if err := app.Start(context.Background(), outlet); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	return app, outlet
}

func TestZeroConfigStartsOnLanding(t *testing.T) {
	_, outlet := newTestApp(t, appshell.Config{})

	if got := outlet.last(); got != "landing" {
		t.Errorf("initial page = %q, want %q", got, "landing")
	}
}

func TestStartRequiresOutlet(t *testing.T) {
	app, err := appshell.New(appshell.Config{Logger: quietLogger()})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer app.Close()

	if err := app.Start(context.Background(), nil); !errors.Is(err, router.ErrNilOutlet) {
		t.Errorf("Start(nil outlet) = %v, want ErrNilOutlet", err)
	}
}

func TestStartTwiceFails(t *testing.T) {
	app, _ := newTestApp(t, appshell.Config{})

	if err := app.Start(context.Background(), &recordingOutlet{}); err == nil {
		t.Error("second Start did not fail")
	}
}

func TestStartHydratesPersistedSession(t *testing.T) {
	ctx := context.Background()
	persisted := storage.NewMemoryStore()
	persisted.Set(ctx, store.KeyAccessToken, "AT1")
	persisted.Set(ctx, store.KeyRefreshToken, "RT1")
	persisted.Set(ctx, store.KeyUserData, `{"id":"u1","email":"u1@example.com"}`)
	persisted.Set(ctx, store.KeyAuthenticated, "true")

	app, outlet := newTestApp(t, appshell.Config{Storage: persisted})

	if !app.Store().IsAuthenticated() {
		t.Fatal("session not restored from storage")
	}
	// The landing route is public-only, so the restored session is
	// redirected straight to the dashboard.
	if got := outlet.last(); got != "dashboard" {
		t.Errorf("initial page = %q, want %q", got, "dashboard")
	}
}

func TestStartRestoresHistoryEntry(t *testing.T) {
	hist := router.NewMemoryHistory()
	hist.Push("/register")

	_, outlet := newTestApp(t, appshell.Config{History: hist})

	if got := outlet.last(); got != "register" {
		t.Errorf("initial page = %q, want %q", got, "register")
	}
}

func TestLoginNavigatesToDashboard(t *testing.T) {
	app, outlet := newTestApp(t, appshell.Config{})

	app.Store().Login(context.Background(),
		map[string]any{"id": "u1"}, "AT1", "RT1")

	if got := outlet.last(); got != "dashboard" {
		t.Errorf("page after login = %q, want %q", got, "dashboard")
	}
}

func TestLogoutNavigatesToLanding(t *testing.T) {
	app, outlet := newTestApp(t, appshell.Config{})
	ctx := context.Background()
	app.Store().Login(ctx, map[string]any{"id": "u1"}, "AT1", "RT1")

	app.Store().Logout(ctx)

	if got := outlet.last(); got != "landing" {
		t.Errorf("page after logout = %q, want %q", got, "landing")
	}
	if app.Store().IsAuthenticated() {
		t.Error("still authenticated after logout")
	}
}

func TestSessionSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	persisted := storage.NewMemoryStore()

	first, _ := newTestApp(t, appshell.Config{Storage: persisted})
	first.Store().Login(ctx, map[string]any{"id": "u1"}, "AT1", "RT1")
	first.Router().Close()

	second, outlet := newTestApp(t, appshell.Config{Storage: persisted})

	if !second.Store().IsAuthenticated() {
		t.Fatal("session did not survive the restart")
	}
	if got := outlet.last(); got != "dashboard" {
		t.Errorf("page after restart = %q, want %q", got, "dashboard")
	}
	if got := second.Store().AccessToken(); got != "AT1" {
		t.Errorf("access token = %q, want %q", got, "AT1")
	}
}

func TestToastsFlowThroughTheBus(t *testing.T) {
	app, _ := newTestApp(t, appshell.Config{})

	var got map[string]any
	unsub := app.Bus().Subscribe(toast.EventName, func(e events.Event) {
		got = e.Detail
	})
	defer unsub()

	toast.Success(app.Bus(), "Upload complete")

	if got == nil {
		t.Fatal("toast event not delivered")
	}
	if got["level"] != "success" || got["message"] != "Upload complete" {
		t.Errorf("toast detail = %v", got)
	}
}
