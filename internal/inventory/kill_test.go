package inventory

import (
	"errors"
	"testing"

	"github.com/shirou/gopsutil/v3/process"
)

func stubSignals(t *testing.T) (*int32, *string) {
	t.Helper()
	var pid int32
	var sig string

	origFind, origTerm, origKill := findProcess, terminateSig, killSig
	findProcess = func(p int32) (*process.Process, error) {
		pid = p
		return &process.Process{Pid: p}, nil
	}
	terminateSig = func(*process.Process) error {
		sig = "term"
		return nil
	}
	killSig = func(*process.Process) error {
		sig = "kill"
		return nil
	}
	t.Cleanup(func() {
		findProcess, terminateSig, killSig = origFind, origTerm, origKill
	})
	return &pid, &sig
}

func TestKillerSendsTerm(t *testing.T) {
	pid, sig := stubSignals(t)
	if err := (Killer{}).Terminate(1234); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *pid != 1234 || *sig != "term" {
		t.Fatalf("expected SIGTERM to pid 1234, got pid=%d sig=%q", *pid, *sig)
	}
}

func TestKillerForceSendsKill(t *testing.T) {
	pid, sig := stubSignals(t)
	if err := (Killer{Force: true}).Terminate(1234); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *pid != 1234 || *sig != "kill" {
		t.Fatalf("expected SIGKILL to pid 1234, got pid=%d sig=%q", *pid, *sig)
	}
}

func TestKillerVanishedProcess(t *testing.T) {
	stubSignals(t)
	gone := errors.New("process does not exist")
	findProcess = func(int32) (*process.Process, error) {
		return nil, gone
	}
	err := (Killer{}).Terminate(99999)
	if !errors.Is(err, gone) {
		t.Fatalf("expected lookup error, got %v", err)
	}
}

func TestKillerSignalFailure(t *testing.T) {
	stubSignals(t)
	denied := errors.New("operation not permitted")
	terminateSig = func(*process.Process) error {
		return denied
	}
	err := (Killer{}).Terminate(1)
	if !errors.Is(err, denied) {
		t.Fatalf("expected signal error, got %v", err)
	}
}
