package engine

import (
	"context"
	"time"

	"github.com/AbhinandAK350/TranslucentTB/internal/platform"
)

// heavyTickThreshold is how many light ticks pass between rescans.
// With the stock 10 ms interval a rescan runs every ~100 ms, which is
// below what users notice while keeping enumeration off the steady
// path.
const heavyTickThreshold = 10

// Run drives the poll loop until ctx is cancelled, then restores
// every surface to its stock appearance before returning. It blocks;
// callers run it on a dedicated goroutine and wait for it to return
// before exiting.
func (e *Engine) Run(ctx context.Context) {
	interval := e.interval()
	e.logger.Info("engine started", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			e.Restore()
			e.logger.Info("engine stopped")
			return
		case <-ticker.C:
			if next := e.Tick(); next != interval {
				interval = next
				ticker.Reset(interval)
				e.logger.Info("poll interval changed", "interval", interval)
			}
		}
	}
}

// Tick performs one poll iteration: drain queued events, rescan when
// the counter hits the threshold, re-apply every surface's current
// appearance either way, and push peek-button visibility when it
// changed. Returns the configured interval so the loop can follow
// config reloads.
func (e *Engine) Tick() time.Duration {
	e.drainEvents()

	e.mu.Lock()

	if e.counter >= heavyTickThreshold {
		e.rescan()
		e.counter = 0
	} else {
		e.counter++
	}

	for _, surf := range e.surfaces {
		e.apply(surf)
	}

	interval := e.cfg.Interval()
	show := e.shouldShowPeek
	pushPeek := e.OnPeekChanged != nil && (!e.peekPushed || show != e.lastPeekShown)
	if pushPeek {
		e.peekPushed = true
		e.lastPeekShown = show
	}
	e.mu.Unlock()

	// Outside the lock: the consumer talks to the window system.
	if pushPeek {
		e.OnPeekChanged(show)
	}

	return interval
}

// Restore puts every tracked surface back to its stock appearance.
func (e *Engine) Restore() {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, surf := range e.surfaces {
		e.applyAccent(surf, platform.AccentNormal, 0)
	}
}

func (e *Engine) interval() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg.Interval()
}
