//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// SetProcessGroup starts cmd in a new process group, so KillProcessGroup
// reaches the children it spawns.
func SetProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; the caller still kills the direct child.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
