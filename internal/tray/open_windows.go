//go:build windows

package tray

import (
	"os/exec"
	"syscall"
)

// openEditor opens the file with its associated application.
func openEditor(path string) error {
	cmd := exec.Command("cmd", "/c", "start", "", path)
	cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	return cmd.Start()
}
