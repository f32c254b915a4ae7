package appshell

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/filedrop-dev/appshell/pkg/router"
	"github.com/filedrop-dev/appshell/pkg/storage"
)

// Config is the main shell configuration.
// The zero value is usable: it yields an in-memory shell with placeholder
// pages, suitable for tests and prototypes.
type Config struct {
	// Storage persists the session between runs.
	// If nil, an in-memory store is used and nothing survives a restart.
	Storage storage.Store

	// Routes is the navigation surface. If empty, the default route table
	// over placeholder pages is used.
	Routes []router.Route

	// History records visited URLs. If nil, an in-memory history is used.
	History router.History

	// Logger is the structured logger for the shell.
	// If nil, slog.Default() is used.
	Logger *slog.Logger

	// Metrics, when set, registers the shell's Prometheus collectors.
	Metrics prometheus.Registerer
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
