// Package app wires configuration, the event bridge, the tray and the
// engine together into a running application.
package app

import (
	"log/slog"
	"os"
)

// Options come from the command line and override their configuration
// counterparts.
type Options struct {
	// ConfigPath replaces the default configuration file location.
	ConfigPath string
	Verbose    bool
	NoTray     bool
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
