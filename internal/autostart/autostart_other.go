//go:build !windows

package autostart

import "errors"

var errUnsupported = errors.New("autostart is only supported on Windows")

func Enabled() (bool, error) { return false, errUnsupported }

func Enable() error { return errUnsupported }

func Disable() error { return errUnsupported }
