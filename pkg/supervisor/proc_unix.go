//go:build !windows

package supervisor

import (
	"os"
	"os/exec"
	"syscall"
)

// configureProcAttr detaches the child into a new session so terminal
// signals delivered to this process do not propagate to it.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}

// terminate sends SIGTERM to proc. Errors are ignored: the process may
// already be gone.
func terminate(proc *os.Process) {
	_ = proc.Signal(syscall.SIGTERM)
}
