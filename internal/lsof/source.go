package lsof

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// enumerate shells out to lsof. Swapped in tests.
// -n = don't resolve hostnames
// -P = don't resolve port names
// -F pcTPn0R = field output: pid, command, TCP state, protocol, name,
// NUL-terminated, parent pid
// -i = internet sockets only
var enumerate = func(ctx context.Context, path string) ([]byte, error) {
	return exec.CommandContext(ctx, path, "-nP", "-F", "pcTPn0R", "-i").Output()
}

// Source produces inventory snapshots by running the system lsof binary.
type Source struct {
	path string
}

// NewSource builds a Source. An empty path means "lsof" from PATH.
func NewSource(path string) *Source {
	if path == "" {
		path = "lsof"
	}
	return &Source{path: path}
}

// Snapshot runs one enumeration and returns the listening entries.
// Processes without a listening port are dropped here, so callers only ever
// see port-holding entries.
func (s *Source) Snapshot(ctx context.Context) ([]Entry, error) {
	out, err := enumerate(ctx, s.path)
	if err != nil {
		// lsof exits non-zero when it cannot inspect every process (common
		// without root) while still printing what it could see. Only a run
		// that produced no output at all is a failure.
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) || len(out) == 0 {
			return nil, fmt.Errorf("run %s: %w", s.path, err)
		}
	}

	entries := Decode(out)
	listening := entries[:0]
	for _, entry := range entries {
		if len(entry.Ports) > 0 {
			listening = append(listening, entry)
		}
	}
	return listening, nil
}
