//go:build !windows

package mpv

import (
	"os/exec"
	"syscall"
	"time"
)

// detach puts mpv in its own process group so helper processes it spawns
// go down with it.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// terminate asks the process group to exit and escalates to SIGKILL once
// grace has passed without exited being closed.
func terminate(cmd *exec.Cmd, exited <-chan struct{}, grace time.Duration) {
	if cmd == nil || cmd.Process == nil {
		return
	}

	group := -cmd.Process.Pid
	if err := syscall.Kill(group, syscall.SIGTERM); err != nil {
		_ = cmd.Process.Signal(syscall.SIGTERM)
	}

	select {
	case <-exited:
	case <-time.After(grace):
		_ = syscall.Kill(group, syscall.SIGKILL)
		_ = cmd.Process.Kill()
	}
}
