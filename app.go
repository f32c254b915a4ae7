package appshell

import (
	"context"
	"fmt"

	"github.com/filedrop-dev/appshell/pkg/events"
	"github.com/filedrop-dev/appshell/pkg/router"
	"github.com/filedrop-dev/appshell/pkg/storage"
	"github.com/filedrop-dev/appshell/pkg/store"
)

// App is the assembled shell. Create one with New, start it with Start.
type App struct {
	cfg     Config
	bus     *events.Bus
	session *store.Store
	router  *router.Router
	storage storage.Store
	started bool
}

// New assembles a shell from cfg. The shell is inert until Start is called:
// no hydration happens and the router rejects navigation.
func New(cfg Config) (*App, error) {
	logger := cfg.logger()

	st := cfg.Storage
	if st == nil {
		st = storage.NewMemoryStore()
	}

	bus := events.NewBus(events.WithLogger(logger))

	sessionOpts := []store.Option{
		store.WithStorage(st),
		store.WithBus(bus),
		store.WithLogger(logger),
	}
	routerOpts := []router.Option{
		router.WithBus(bus),
		router.WithLogger(logger),
		router.WithRoutes(cfg.Routes),
	}
	if cfg.History != nil {
		routerOpts = append(routerOpts, router.WithHistory(cfg.History))
	}
	if cfg.Metrics != nil {
		sessionOpts = append(sessionOpts, store.WithRegisterer(cfg.Metrics))
		routerOpts = append(routerOpts, router.WithRegisterer(cfg.Metrics))
	}

	session := store.New(sessionOpts...)

	return &App{
		cfg:     cfg,
		bus:     bus,
		session: session,
		router:  router.New(session, routerOpts...),
		storage: st,
	}, nil
}

// Start hydrates the session from storage, binds the router to the outlet,
// and performs the initial navigation. The landing path is navigated unless
// the history already holds a current entry, in which case that entry is
// restored; either way the route guards decide what actually renders.
func (a *App) Start(ctx context.Context, outlet router.Outlet) error {
	if a.started {
		return fmt.Errorf("appshell: already started")
	}

	a.session.Hydrate(ctx)

	if err := a.router.Init(outlet); err != nil {
		return err
	}
	a.started = true

	initial := router.PathLanding
	if a.cfg.History != nil {
		if cur, ok := a.cfg.History.Current(); ok {
			initial = cur
		}
	}
	if err := a.router.Navigate(ctx, initial); err != nil {
		return fmt.Errorf("appshell: initial navigation: %w", err)
	}
	return nil
}

// Close releases the shell's resources: the router's signal listeners and
// the storage backend.
func (a *App) Close() error {
	a.router.Close()
	return a.storage.Close()
}

// Store returns the session store.
func (a *App) Store() *store.Store { return a.session }

// Router returns the router.
func (a *App) Router() *router.Router { return a.router }

// Bus returns the shell's event bus.
func (a *App) Bus() *events.Bus { return a.bus }
