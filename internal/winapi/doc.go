// Package winapi implements the platform interfaces on top of the
// Win32 window manager and the desktop compositor. Everything in it
// is behind a windows build tag; other platforms only see the
// interfaces in internal/platform.
package winapi
