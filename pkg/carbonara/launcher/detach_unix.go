//go:build !windows

package launcher

import (
	"os/exec"
	"syscall"
)

// detach starts the emulator in its own session so it outlives us.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
