package engine

import (
	"strings"

	"github.com/AbhinandAK350/TranslucentTB/internal/config"
	"github.com/AbhinandAK350/TranslucentTB/internal/platform"
)

const (
	// Timeline/Task View detection. Builds with the fluent design
	// system host Task View in a CoreWindow owned by the shell;
	// earlier builds use a dedicated frame class.
	minFluentBuild      = 17063
	coreWindowClass     = "Windows.UI.Core.CoreWindow"
	legacyTimelineClass = "MultitaskingViewFrame"
)

func isSearchUI(exe string) bool {
	return strings.EqualFold(exe, "SearchUI.exe") || strings.EqualFold(exe, "SearchApp.exe")
}

// rescan re-resolves every surface's appearance from the current
// signals. Layers run in fixed order; later layers overwrite earlier
// ones for the surfaces they touch.
func (e *Engine) rescan() {
	cfg := e.cfg

	// Reset. The dynamic scan below re-derives shouldShowPeek.
	e.shouldShowPeek = cfg.Peek == config.PeekEnabled
	for _, surf := range e.surfaces {
		surf.Kind = KindRegular
	}

	if cfg.Maximised.Enabled || cfg.Peek == config.PeekDynamic {
		e.scanMaximised()
	}

	fg := e.desktop.ForegroundWindow()

	// Foreground overlay layer: start menu and search both anchor to
	// the foreground window's taskbar. The gate tests lastScanned, the
	// window the maximised scan saw last (it keeps its value across
	// ticks when the scan is skipped), not the foreground window.
	if fg != platform.NullWindow {
		if fgSurf, ok := e.surfaces[e.desktop.MonitorFor(fg)]; ok {
			last := e.lastScanned
			if last != platform.NullWindow && e.qualifies(last) {
				if _, ok := e.surfaces[e.desktop.MonitorFor(last)]; ok {
					if cfg.Cortana.Enabled && !e.startOpened && !e.desktop.Cloaked(fg) {
						if isSearchUI(e.desktop.ExecutableName(fg)) {
							fgSurf.Kind = KindMaximised
						}
					} else if isSearchUI(e.desktop.ExecutableName(fg)) {
						fgSurf.Kind = KindCortana
					}

					// Runs whether or not the search branch matched.
					if cfg.Start.Enabled && e.startOpened {
						fgSurf.Kind = KindMaximised
					} else {
						fgSurf.Kind = KindStart
					}
				}
			}
		}
	}

	// Between the overlay layer and timeline: Task View and Timeline
	// show over peek, but start and search do not.
	if cfg.Maximised.Enabled && cfg.Maximised.RegularOnPeek && e.peekActive {
		for _, surf := range e.surfaces {
			surf.Kind = KindRegular
		}
	}

	if fg != platform.NullWindow && cfg.Timeline.Enabled {
		var match bool
		if e.desktop.IsAtLeastBuild(minFluentBuild) {
			match = e.desktop.ClassName(fg) == coreWindowClass &&
				strings.EqualFold(e.desktop.ExecutableName(fg), "explorer.exe")
		} else {
			match = e.desktop.ClassName(fg) == legacyTimelineClass
		}
		if match {
			for _, surf := range e.surfaces {
				surf.Kind = KindTimeline
			}
		}
	}

	if cfg.Verbose {
		for monitor, surf := range e.surfaces {
			e.logger.Debug("resolved appearance", "monitor", monitor, "kind", surf.Kind.String())
		}
	}
}
