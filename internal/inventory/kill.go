package inventory

import (
	"fmt"

	"github.com/shirou/gopsutil/v3/process"
)

// Seams for tests; gopsutil talks to the real process table otherwise.
var (
	findProcess  = process.NewProcess
	terminateSig = (*process.Process).Terminate
	killSig      = (*process.Process).Kill
)

// Killer terminates processes. The default sends SIGTERM; Force escalates to
// SIGKILL.
type Killer struct {
	Force bool
}

// Terminate signals pid once and returns. It does not wait for the process
// to exit; callers re-enumerate right after to observe the result.
func (k Killer) Terminate(pid int) error {
	proc, err := findProcess(int32(pid))
	if err != nil {
		return fmt.Errorf("find pid %d: %w", pid, err)
	}
	sig := terminateSig
	if k.Force {
		sig = killSig
	}
	if err := sig(proc); err != nil {
		return fmt.Errorf("signal pid %d: %w", pid, err)
	}
	return nil
}
