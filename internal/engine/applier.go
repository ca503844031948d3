package engine

import (
	"github.com/AbhinandAK350/TranslucentTB/internal/platform"
)

// SwapRedBlue reorders a 0xAARRGGBB color into the 0xAABBGGRR layout
// the native attribute call expects. Applying it twice returns the
// input.
func SwapRedBlue(color uint32) uint32 {
	return color&0xFF00FF00 | (color&0x00FF0000)>>16 | (color&0x000000FF)<<16
}

// apply pushes one surface's appearance to the compositor. With the
// attribute entry point unavailable this is a no-op for the process
// lifetime. Failures of the call itself are logged and dropped; the
// next tick retries naturally.
func (e *Engine) apply(surf *Surface) {
	app := appearanceFor(e.cfg, surf.Kind)
	e.applyAccent(surf, app.State(), app.Packed())
}

func (e *Engine) applyAccent(surf *Surface, state platform.AccentState, color uint32) {
	if !e.compositor.Available() {
		return
	}

	color = SwapRedBlue(color)

	if state == platform.AccentNormal {
		if !surf.wasNormal {
			// A theme-changed notification makes the shell reload its
			// theme and restore the stock look. Memoized per surface
			// because repeating it every tick drives the shell's CPU
			// usage up.
			if err := e.compositor.NotifyThemeChanged(surf.Handle); err != nil {
				e.logger.Debug("theme notification failed", "error", err)
			}
			surf.wasNormal = true
		}
		return
	}

	// The fluent accent renders broken at exactly zero opacity.
	if state == platform.AccentFluent && color>>24 == 0x00 {
		color = 0x01<<24 | color&0x00FFFFFF
	}

	if err := e.compositor.SetAccent(surf.Handle, state, color); err != nil {
		e.logger.Debug("accent call failed", "error", err)
	}
	surf.wasNormal = false
}
