// Package tray implements the system tray icon and menu.
package tray

import (
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/getlantern/systray"

	"github.com/AbhinandAK350/TranslucentTB/internal/autostart"
	"github.com/AbhinandAK350/TranslucentTB/internal/buildinfo"
	"github.com/AbhinandAK350/TranslucentTB/internal/config"
)

// Tray owns the menu and dispatches its actions. systray is a
// process-wide singleton, so at most one Tray may run.
type Tray struct {
	logger *slog.Logger

	// OnExit requests application shutdown when the user picks Exit.
	OnExit func()

	autostartItem *systray.MenuItem
	openItem      *systray.MenuItem
	copyItem      *systray.MenuItem
	exitItem      *systray.MenuItem

	done chan struct{}
}

// New creates the tray controller.
func New(logger *slog.Logger, onExit func()) *Tray {
	return &Tray{
		logger: logger,
		OnExit: onExit,
		done:   make(chan struct{}),
	}
}

// Run starts the tray and blocks the calling goroutine until Quit.
// Platform tray implementations require this to be the main thread on
// some systems, so callers run the rest of the app elsewhere.
func (t *Tray) Run() {
	systray.Run(t.onReady, t.onQuit)
}

// Quit asks the tray loop to exit. Safe to call from any goroutine.
func (t *Tray) Quit() {
	systray.Quit()
}

func (t *Tray) onReady() {
	systray.SetIcon(icon())
	systray.SetTitle("TranslucentTB")
	systray.SetTooltip("TranslucentTB " + buildinfo.Version)

	header := systray.AddMenuItem("TranslucentTB "+buildinfo.Version, "")
	header.Disable()
	systray.AddSeparator()

	t.autostartItem = systray.AddMenuItemCheckbox("Open at boot", "Start when you log in", false)
	if enabled, err := autostart.Enabled(); err == nil && enabled {
		t.autostartItem.Check()
	}

	t.openItem = systray.AddMenuItem("Edit settings", "Open the configuration file")
	t.copyItem = systray.AddMenuItem("Copy settings path", "Copy the configuration file path")
	systray.AddSeparator()
	t.exitItem = systray.AddMenuItem("Exit", "Restore the taskbar and quit")

	go t.handleClicks()
}

func (t *Tray) onQuit() {
	close(t.done)
	if t.OnExit != nil {
		t.OnExit()
	}
}

func (t *Tray) handleClicks() {
	for {
		select {
		case <-t.done:
			return

		case <-t.autostartItem.ClickedCh:
			t.toggleAutostart()

		case <-t.openItem.ClickedCh:
			path, err := config.Path()
			if err == nil {
				err = openEditor(path)
			}
			if err != nil {
				t.logger.Warn("could not open settings", "error", err)
			}

		case <-t.copyItem.ClickedCh:
			path, err := config.Path()
			if err == nil {
				err = clipboard.WriteAll(path)
			}
			if err != nil {
				t.logger.Warn("could not copy settings path", "error", err)
			}

		case <-t.exitItem.ClickedCh:
			systray.Quit()
			return
		}
	}
}

func (t *Tray) toggleAutostart() {
	if t.autostartItem.Checked() {
		if err := autostart.Disable(); err != nil {
			t.logger.Warn("could not disable autostart", "error", err)
			return
		}
		t.autostartItem.Uncheck()
	} else {
		if err := autostart.Enable(); err != nil {
			t.logger.Warn("could not enable autostart", "error", err)
			return
		}
		t.autostartItem.Check()
	}
}
