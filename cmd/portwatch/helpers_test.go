package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"portwatch/internal/app"
	"portwatch/internal/lsof"

	"github.com/spf13/cobra"
)

type stubController struct {
	snapshotFunc func(ctx context.Context) ([]lsof.Entry, error)
	killFunc     func(ctx context.Context, params app.KillParams) (app.KillResult, error)
}

func (s *stubController) Snapshot(ctx context.Context) ([]lsof.Entry, error) {
	if s.snapshotFunc != nil {
		return s.snapshotFunc(ctx)
	}
	return nil, errors.New("Snapshot not stubbed")
}

func (s *stubController) Terminate(pid int) error {
	panic("Terminate not implemented")
}

func (s *stubController) Kill(ctx context.Context, params app.KillParams) (app.KillResult, error) {
	if s.killFunc != nil {
		return s.killFunc(ctx, params)
	}
	return app.KillResult{}, errors.New("Kill not stubbed")
}

func (s *stubController) RefreshInterval() time.Duration {
	return 500 * time.Millisecond
}

func withController(t *testing.T, stub controllerAPI) {
	t.Helper()
	origFactory := controllerFactory
	controllerFactory = func() (controllerAPI, error) {
		return stub, nil
	}
	t.Cleanup(func() {
		controllerFactory = origFactory
	})
}

func captureOutput(t *testing.T, cmd *cobra.Command) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	orig := cmd.OutOrStdout()
	cmd.SetOut(buf)
	t.Cleanup(func() { cmd.SetOut(orig) })
	return buf
}
