// Package engine decides what accent treatment each monitor's taskbar
// should display and applies it through the compositor attribute
// interface. A background poll loop resolves competing visual-state
// signals (maximised windows, peek, start menu, search, timeline)
// into one appearance per taskbar and re-applies it every tick.
package engine

import (
	"log/slog"
	"sync"

	"github.com/AbhinandAK350/TranslucentTB/internal/config"
	"github.com/AbhinandAK350/TranslucentTB/internal/platform"
)

const (
	classTaskbar          = "Shell_TrayWnd"
	classSecondaryTaskbar = "Shell_SecondaryTrayWnd"
)

// Excluder exempts windows from the maximised/overlay logic.
type Excluder interface {
	Excluded(class, exe, title string) bool
}

// Surface is one taskbar window bound to a monitor.
type Surface struct {
	Handle platform.WindowID
	Kind   Kind

	// wasNormal memoizes that the last application left the surface in
	// its stock appearance, so steady-state normal ticks cost nothing.
	wasNormal bool
}

// Engine owns the surface map, the shared signal flags and the poll
// loop. All mutable state lives here; event callbacks reach it only
// through the queue.
type Engine struct {
	desktop    platform.Desktop
	compositor platform.Compositor
	logger     *slog.Logger

	// OnPeekChanged, when set before Run, is called from the poll loop
	// whenever the desired peek-button visibility changes (and once
	// after the first tick to push the initial state).
	OnPeekChanged func(show bool)

	events chan Event

	// mu serializes registry rebuilds against resolve+apply passes.
	// Coarse on purpose: the tick rate is human-perceptible.
	mu       sync.Mutex
	cfg      *config.Config
	excluder Excluder
	main     platform.WindowID
	surfaces map[platform.MonitorID]*Surface

	counter        int
	peekActive     bool
	startOpened    bool
	shouldShowPeek bool
	peekPushed     bool
	lastPeekShown  bool

	// lastScanned is the most recent window seen by the maximised
	// scan. It persists across ticks and gates the foreground overlay
	// layer; see resolver.go.
	lastScanned platform.WindowID
}

// New creates an engine. The first tick performs a full rescan.
func New(cfg *config.Config, excluder Excluder, desktop platform.Desktop, compositor platform.Compositor, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		desktop:    desktop,
		compositor: compositor,
		logger:     logger,
		events:     make(chan Event, 64),
		cfg:        cfg,
		excluder:   excluder,
		surfaces:   make(map[platform.MonitorID]*Surface),
		counter:    heavyTickThreshold,
	}
}

// UpdateConfig swaps in a reloaded configuration and exclusion
// matcher. The next tick re-resolves everything.
func (e *Engine) UpdateConfig(cfg *config.Config, excluder Excluder) {
	e.mu.Lock()
	e.cfg = cfg
	e.excluder = excluder
	e.counter = heavyTickThreshold
	e.mu.Unlock()
	e.logger.Info("configuration updated")
}

// ShouldShowPeek reports whether the peek button should currently be
// visible, per the configured peek mode and the last scan. The value
// is only re-derived on heavy ticks, so it can lag a window change by
// up to the rescan period; OnPeekChanged consumers inherit the same
// latency.
func (e *Engine) ShouldShowPeek() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shouldShowPeek
}

// SurfaceCount returns the number of tracked taskbars.
func (e *Engine) SurfaceCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.surfaces)
}

func (e *Engine) excluded(w platform.WindowID) bool {
	if e.excluder == nil {
		return false
	}
	return e.excluder.Excluded(e.desktop.ClassName(w), e.desktop.ExecutableName(w), e.desktop.Title(w))
}

// qualifies reports whether a window drives the maximised signal:
// visible, maximised, uncloaked, not excluded and on the current
// virtual desktop. Query failures read as false, so a failed lookup
// simply leaves the surface alone this tick.
func (e *Engine) qualifies(w platform.WindowID) bool {
	d := e.desktop
	return d.Visible(w) && d.Maximized(w) && !d.Cloaked(w) && !e.excluded(w) && d.OnCurrentDesktop(w)
}
