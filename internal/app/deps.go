package app

import (
	"context"

	"portwatch/internal/inventory"
	"portwatch/internal/lsof"
)

type snapshotter interface {
	Snapshot(ctx context.Context) ([]lsof.Entry, error)
}

// Collaborator seams, swapped in tests.
var (
	newSource = func(path string) snapshotter {
		return lsof.NewSource(path)
	}
	terminatePID = func(force bool, pid int) error {
		return inventory.Killer{Force: force}.Terminate(pid)
	}
)

func resetDeps() {
	newSource = func(path string) snapshotter {
		return lsof.NewSource(path)
	}
	terminatePID = func(force bool, pid int) error {
		return inventory.Killer{Force: force}.Terminate(pid)
	}
}
