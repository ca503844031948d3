package engine

import (
	"github.com/AbhinandAK350/TranslucentTB/internal/config"
	"github.com/AbhinandAK350/TranslucentTB/internal/platform"
)

// scanMaximised walks every top-level window and marks the taskbar of
// each monitor holding a qualifying maximised window. Surfaces whose
// monitors hold none keep whatever the reset step assigned. The scan
// is the expensive part of a heavy tick and only runs when the
// maximised layer or dynamic peek needs it.
func (e *Engine) scanMaximised() {
	err := e.desktop.EnumTopLevelWindows(func(w platform.WindowID) bool {
		e.lastScanned = w

		if !e.qualifies(w) {
			return true
		}
		surf, ok := e.surfaces[e.desktop.MonitorFor(w)]
		if !ok {
			return true
		}

		if e.cfg.Maximised.Enabled {
			surf.Kind = KindMaximised
		}

		if e.cfg.Peek == config.PeekDynamic {
			if e.cfg.PeekOnlyMain {
				if surf.Handle == e.main {
					e.shouldShowPeek = true
				}
			} else {
				e.shouldShowPeek = true
			}
		}
		return true
	})
	if err != nil {
		// Treated as "no qualifying window this tick".
		e.logger.Debug("window enumeration failed", "error", err)
	}
}
