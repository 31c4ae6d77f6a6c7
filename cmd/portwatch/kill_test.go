package main

import (
	"context"
	"errors"
	"testing"

	"portwatch/internal/app"
	"portwatch/internal/lsof"
)

func setKillFlags(t *testing.T, pids, ports []int, all bool) {
	t.Helper()
	origPIDs, origPorts, origAll := killPIDs, killPorts, killAll
	killPIDs, killPorts, killAll = pids, ports, all
	t.Cleanup(func() {
		killPIDs, killPorts, killAll = origPIDs, origPorts, origAll
	})
}

func TestKillPassesSelectors(t *testing.T) {
	var captured app.KillParams
	withController(t, &stubController{
		killFunc: func(ctx context.Context, params app.KillParams) (app.KillResult, error) {
			captured = params
			return app.KillResult{
				Events: []app.KillEvent{{
					Kind: "success",
					Proc: lsof.Entry{PID: 200, Command: "nginx", Ports: []string{"0.0.0.0:8080"}},
				}},
				TotalMatches: 1,
				Successes:    1,
			}, nil
		},
	})
	setKillFlags(t, nil, []int{8080}, false)
	buf := captureOutput(t, cmdKill)

	if err := cmdKill.RunE(cmdKill, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if !captured.RequireSelector || len(captured.Ports) != 1 || captured.Ports[0] != 8080 {
		t.Fatalf("selectors not passed correctly: %+v", captured)
	}
	if got := buf.String(); got != "Killed pid=200 cmd=nginx\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestKillPrintsFailures(t *testing.T) {
	denied := errors.New("operation not permitted")
	withController(t, &stubController{
		killFunc: func(ctx context.Context, params app.KillParams) (app.KillResult, error) {
			return app.KillResult{
				Events: []app.KillEvent{{
					Kind: "kill_failure",
					Proc: lsof.Entry{PID: 1, Command: "init", Ports: []string{"0.0.0.0:111"}},
					Err:  denied,
				}},
				TotalMatches: 1,
			}, errors.New("no processes were killed (see output above)")
		},
	})
	setKillFlags(t, []int{1}, nil, false)
	buf := captureOutput(t, cmdKill)

	err := cmdKill.RunE(cmdKill, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := buf.String(); got != "Failed to kill pid=1 cmd=init: operation not permitted\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestKillNoMatchesMessage(t *testing.T) {
	withController(t, &stubController{
		killFunc: func(ctx context.Context, params app.KillParams) (app.KillResult, error) {
			return app.KillResult{Message: "No listening processes match the provided selectors"}, nil
		},
	})
	setKillFlags(t, nil, []int{9999}, false)
	buf := captureOutput(t, cmdKill)

	if err := cmdKill.RunE(cmdKill, nil); err != nil {
		t.Fatalf("RunE error: %v", err)
	}
	if got := buf.String(); got != "No listening processes match the provided selectors\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
