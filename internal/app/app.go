package app

import (
	"context"
	"time"

	"portwatch/internal/config"
	"portwatch/internal/lsof"
)

// Options configures the top-level controller.
type Options struct {
	// ConfigPath points to the optional config file.
	ConfigPath string
}

// App exposes high-level operations that the CLI/TUI can reuse.
type App struct {
	cfg    config.Config
	source snapshotter
}

// New constructs the shared controller facade.
func New(opts Options) (*App, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return &App{
		cfg:    cfg,
		source: newSource(cfg.LsofPath),
	}, nil
}

// Snapshot runs one enumeration and returns the current listening entries.
func (a *App) Snapshot(ctx context.Context) ([]lsof.Entry, error) {
	return a.source.Snapshot(ctx)
}

// RefreshInterval returns the configured UI poll cadence.
func (a *App) RefreshInterval() time.Duration {
	return a.cfg.RefreshInterval
}
