package main

import (
	"context"
	"time"

	"portwatch/internal/app"
	"portwatch/internal/lsof"
)

// controllerAPI is the slice of app.App the commands rely on; tests swap the
// factory for a stub.
type controllerAPI interface {
	Snapshot(ctx context.Context) ([]lsof.Entry, error)
	Terminate(pid int) error
	Kill(ctx context.Context, params app.KillParams) (app.KillResult, error)
	RefreshInterval() time.Duration
}

var controllerFactory = func() (controllerAPI, error) {
	return app.New(app.Options{ConfigPath: configPath})
}

func controller() (controllerAPI, error) {
	return controllerFactory()
}
