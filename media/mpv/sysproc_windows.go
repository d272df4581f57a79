//go:build windows

package mpv

import (
	"os/exec"
	"time"
)

func detach(*exec.Cmd) {}

// terminate kills mpv right away, windows has no SIGTERM to offer first.
func terminate(cmd *exec.Cmd, exited <-chan struct{}, _ time.Duration) {
	if cmd == nil || cmd.Process == nil {
		return
	}

	_ = cmd.Process.Kill()
	<-exited
}
