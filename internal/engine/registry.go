package engine

import (
	"github.com/AbhinandAK350/TranslucentTB/internal/platform"
)

// Rebuild discards every tracked surface and relocates the shell's
// taskbars. Called once at startup and again whenever a topology
// event arrives: older handles are invalid by then, so the map is
// replaced wholesale rather than patched. Any appearance state
// accumulated mid-tick is lost and re-derived on the next heavy tick.
func (e *Engine) Rebuild() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rebuildLocked()
}

func (e *Engine) rebuildLocked() {
	if e.cfg.Verbose {
		e.logger.Debug("refreshing taskbar handles")
	}

	e.surfaces = make(map[platform.MonitorID]*Surface)

	e.main = e.desktop.FindWindow(classTaskbar)
	if e.main != platform.NullWindow {
		e.surfaces[e.desktop.MonitorFor(e.main)] = &Surface{Handle: e.main}
	}

	for _, w := range e.desktop.FindWindows(classSecondaryTaskbar) {
		e.surfaces[e.desktop.MonitorFor(w)] = &Surface{Handle: w}
	}
}
