//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// KillTree force-kills pid and its children with taskkill.
// Non-positive pids are ignored.
func KillTree(pid int) error {
	if pid <= 0 {
		return nil
	}
	// taskkill exits non-zero when the process is already gone; that is fine.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
	return nil
}
