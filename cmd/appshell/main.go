package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "appshell",
		Short: "The FileDrop application shell",
		Long: `appshell runs the FileDrop application shell as an HTTP server.

The shell owns the session store, the guarded router, and the event
bus. The serve command exposes it over HTTP with a JSON auth API,
a WebSocket state feed, and Prometheus metrics.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
