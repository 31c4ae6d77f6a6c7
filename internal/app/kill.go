package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"portwatch/internal/lsof"
)

// KillParams selects which listening processes to terminate.
type KillParams struct {
	PIDs            []int
	Ports           []int
	AllowAll        bool
	RequireSelector bool
}

// KillEvent describes one termination attempt.
type KillEvent struct {
	Kind string
	Proc lsof.Entry
	Err  error
}

// KillResult aggregates the command outcome.
type KillResult struct {
	Events       []KillEvent
	Message      string
	TotalMatches int
	Successes    int
}

// Terminate signals one pid, fire-and-forget. Callers re-enumerate
// immediately to observe the effect.
func (a *App) Terminate(pid int) error {
	return terminatePID(a.cfg.ForceKill, pid)
}

// Kill terminates every listening process matched by the selectors.
func (a *App) Kill(ctx context.Context, params KillParams) (KillResult, error) {
	var result KillResult
	if params.RequireSelector && len(params.PIDs) == 0 && len(params.Ports) == 0 {
		return result, errors.New("provide at least one selector (--pid/--port)")
	}

	entries, err := a.Snapshot(ctx)
	if err != nil {
		return result, err
	}

	matched := make([]lsof.Entry, 0, len(entries))
	for _, entry := range entries {
		if matchesSelectors(entry, params) {
			matched = append(matched, entry)
		}
	}
	result.TotalMatches = len(matched)
	if result.TotalMatches == 0 {
		result.Message = "No listening processes match the provided selectors"
		return result, nil
	}

	if len(matched) > 1 && !params.AllowAll {
		return result, fmt.Errorf("multiple processes match selectors (pids: %s). Use --all to terminate all or narrow the selection", joinEntriesSample(matched))
	}

	for _, entry := range matched {
		if err := a.Terminate(entry.PID); err != nil {
			result.Events = append(result.Events, KillEvent{
				Kind: "kill_failure",
				Proc: entry,
				Err:  err,
			})
			continue
		}
		result.Events = append(result.Events, KillEvent{
			Kind: "success",
			Proc: entry,
		})
		result.Successes++
	}

	switch {
	case result.Successes == result.TotalMatches:
		return result, nil
	case result.Successes == 0:
		return result, errors.New("no processes were killed (see output above)")
	default:
		return result, fmt.Errorf("partially successful: killed %d/%d processes", result.Successes, result.TotalMatches)
	}
}

func matchesSelectors(entry lsof.Entry, params KillParams) bool {
	for _, pid := range params.PIDs {
		if entry.PID == pid {
			return true
		}
	}
	for _, port := range params.Ports {
		if listensOn(entry, port) {
			return true
		}
	}
	return false
}

// listensOn matches the numeric port after the final ':' of each listening
// address, so 8080 matches "0.0.0.0:8080" and "[::]:8080" but not ":80".
func listensOn(entry lsof.Entry, port int) bool {
	for _, addr := range entry.Ports {
		idx := strings.LastIndex(addr, ":")
		if idx < 0 {
			continue
		}
		if n, err := strconv.Atoi(addr[idx+1:]); err == nil && n == port {
			return true
		}
	}
	return false
}

func joinEntriesSample(entries []lsof.Entry) string {
	limit := 5
	pids := make([]string, 0, limit+1)
	for i := 0; i < len(entries) && i < limit; i++ {
		pids = append(pids, strconv.Itoa(entries[i].PID))
	}
	if len(entries) > limit {
		pids = append(pids, "...")
	}
	return strings.Join(pids, ", ")
}
