package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/filedrop-dev/appshell"
	"github.com/filedrop-dev/appshell/pkg/router"
	"github.com/filedrop-dev/appshell/pkg/storage"
	"github.com/filedrop-dev/appshell/pkg/store"
)

func serveCmd() *cobra.Command {
	var (
		addr      string
		backend   string
		boltPath  string
		redisAddr string
		jwtSecret string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the shell as an HTTP server",
		Long: `Run the application shell as an HTTP server.

Endpoints:
  GET  /*            navigate the shell and render the current page
  POST /api/login    authenticate and establish a session
  POST /api/logout   end the session
  GET  /api/session  inspect the current session state
  GET  /ws           WebSocket feed of session state changes
  GET  /metrics      Prometheus metrics

Session persistence backends:
  memory   nothing survives a restart (default)
  bolt     a bbolt file at --bolt-path
  redis    a Redis server at --redis-addr

Examples:
  appshell serve
  appshell serve --store=bolt --bolt-path=shell.db
  appshell serve --store=redis --redis-addr=localhost:6379`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(addr, backend, boltPath, redisAddr, jwtSecret)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", ":8080", "Address to listen on")
	cmd.Flags().StringVar(&backend, "store", "memory", "Session persistence backend (memory, bolt, redis)")
	cmd.Flags().StringVar(&boltPath, "bolt-path", "appshell.db", "Path to the bbolt file for --store=bolt")
	cmd.Flags().StringVar(&redisAddr, "redis-addr", "localhost:6379", "Redis address for --store=redis")
	cmd.Flags().StringVar(&jwtSecret, "jwt-secret", "", "HMAC secret for access tokens (random if empty)")

	return cmd
}

func openStorage(backend, boltPath, redisAddr string) (storage.Store, error) {
	switch backend {
	case "memory":
		return storage.NewMemoryStore(), nil
	case "bolt":
		return storage.OpenBoltStore(boltPath, nil)
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		return storage.NewRedisStore(client), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func runServe(addr, backend, boltPath, redisAddr, jwtSecret string) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if jwtSecret == "" {
		jwtSecret = uuid.NewString()
		logger.Warn("no --jwt-secret given, using a random one; tokens will not survive a restart")
	}

	st, err := openStorage(backend, boltPath, redisAddr)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	app, err := appshell.New(appshell.Config{
		Storage: st,
		Logger:  logger,
		Metrics: reg,
	})
	if err != nil {
		return err
	}
	defer app.Close()

	outlet := newBufferOutlet()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := app.Start(ctx, outlet); err != nil {
		return err
	}

	srv := newShellServer(app, outlet, logger, jwtSecret)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/api/login", srv.handleLogin)
	r.Post("/api/logout", srv.handleLogout)
	r.Get("/api/session", srv.handleSession)
	r.Get("/ws", srv.handleStateFeed)
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/*", srv.handlePage)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("shutting down")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
		cancel()
	}()

	logger.Info("appshell listening", "addr", addr, "store", backend)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// accessTokenTTL bounds how long a minted access token is honored.
const accessTokenTTL = 15 * time.Minute

type shellServer struct {
	app       *appshell.App
	outlet    *bufferOutlet
	logger    *slog.Logger
	jwtSecret []byte
}

func newShellServer(app *appshell.App, outlet *bufferOutlet, logger *slog.Logger, secret string) *shellServer {
	return &shellServer{
		app:       app,
		outlet:    outlet,
		logger:    logger,
		jwtSecret: []byte(secret),
	}
}

// handlePage navigates the shell to the request URL and renders whatever
// page the guards settled on.
func (s *shellServer) handlePage(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Router().Navigate(r.Context(), r.URL.RequestURI()); err != nil {
		s.logger.Error("navigation failed", "path", r.URL.Path, "error", err)
		http.Error(w, "navigation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(s.outlet.HTML()))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	User         map[string]any `json:"user"`
}

// handleLogin mints a token pair and establishes the session. This is a
// demo credential check: any non-empty email and password are accepted.
func (s *shellServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" || req.Password == "" {
		http.Error(w, "email and password are required", http.StatusBadRequest)
		return
	}

	userID := uuid.NewString()
	now := time.Now()
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID,
		"email": req.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTokenTTL).Unix(),
	}).SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("token signing failed", "error", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	refreshToken := uuid.NewString()

	user := map[string]any{
		"id":    userID,
		"email": req.Email,
	}
	s.app.Store().Login(r.Context(), user, accessToken, refreshToken)

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	})
}

func (s *shellServer) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.app.Store().Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

func (s *shellServer) handleSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stateView(s.app.Store().Snapshot()))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// stateView is the wire shape of a session state snapshot. Tokens are
// reduced to presence flags; they never leave the process through the
// state feed.
func stateView(st store.State) map[string]any {
	return map[string]any{
		"is_authenticated": st.Authenticated,
		"user":             st.User,
		"has_access_token": st.AccessToken != "",
		"loading":          st.Loading,
		"error":            st.Err,
	}
}

var _ router.Outlet = (*bufferOutlet)(nil)
