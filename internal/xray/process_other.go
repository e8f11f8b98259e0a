//go:build !unix

package xray

import (
	"os/exec"
)

func setProcessGroup(cmd *exec.Cmd) {}

// No SIGTERM here, so a graceful stop is a kill.
func terminate(cmd *exec.Cmd) error {
	return cmd.Process.Kill()
}

func killGroup(cmd *exec.Cmd) {
	cmd.Process.Kill()
}
