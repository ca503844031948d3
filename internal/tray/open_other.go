//go:build !windows

package tray

import "os/exec"

func openEditor(path string) error {
	return exec.Command("xdg-open", path).Start()
}
