//go:build windows

package supervisor

import (
	"os"
	"os/exec"
	"strconv"
	"syscall"

	"golang.org/x/sys/windows"
)

// configureProcAttr isolates the child into its own process group with no
// console window.
func configureProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.CREATE_NEW_PROCESS_GROUP | windows.CREATE_NO_WINDOW,
	}
}

// terminate force-kills proc via "taskkill /F /PID <pid>". Errors are
// ignored: the process may already be gone.
func terminate(proc *os.Process) {
	cmd := exec.Command("taskkill", "/F", "/PID", strconv.Itoa(proc.Pid))
	_ = cmd.Run()
}
