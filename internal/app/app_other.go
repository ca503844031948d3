//go:build !windows

package app

import "errors"

// Run reports that this platform has no taskbar compositor to drive.
// The rest of the module still builds and tests everywhere.
func Run(Options) error {
	return errors.New("this application only runs on Windows")
}
