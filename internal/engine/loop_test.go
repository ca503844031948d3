package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/AbhinandAK350/TranslucentTB/internal/config"
)

func TestRunCancelRestoresEverySurface(t *testing.T) {
	d := &fakeDesktop{windows: []*fakeWindow{
		taskbar(1, 100),
		secondaryTaskbar(2, 200),
	}}
	e, c := testEngine(t, testConfig(t), d)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}

	// One theme-reload notification per surface on the way out.
	if len(c.notified) != 2 {
		t.Fatalf("theme notifications=%d, want 2", len(c.notified))
	}
	seen := map[int64]bool{}
	for _, w := range c.notified {
		seen[int64(w)] = true
	}
	if !seen[1] || !seen[2] {
		t.Fatalf("restored windows %v, want 1 and 2", c.notified)
	}
}

func TestRunWithUnavailableCompositorStaysSilent(t *testing.T) {
	d := &fakeDesktop{windows: []*fakeWindow{taskbar(1, 100)}}
	c := &fakeCompositor{unavailable: true}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := New(testConfig(t), nil, d, c, logger)
	e.Rebuild()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		e.Run(ctx)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}

	if len(c.calls) != 0 || len(c.notified) != 0 {
		t.Fatalf("calls=%d notifications=%d, want 0 and 0", len(c.calls), len(c.notified))
	}
}

func TestTickReturnsConfiguredInterval(t *testing.T) {
	d := &fakeDesktop{windows: []*fakeWindow{taskbar(1, 100)}}
	e, _ := testEngine(t, testConfig(t), d)

	if got := e.Tick(); got != 10*time.Millisecond {
		t.Fatalf("interval=%v, want 10ms", got)
	}

	cfg := testConfig(t)
	cfg.PollIntervalMS = 30
	e.UpdateConfig(cfg, nil)
	if got := e.Tick(); got != 30*time.Millisecond {
		t.Fatalf("interval after reload=%v, want 30ms", got)
	}
}

func TestPeekVisibilityPushedOnlyOnChange(t *testing.T) {
	d := &fakeDesktop{windows: []*fakeWindow{taskbar(1, 100)}}
	cfg := testConfig(t)
	cfg.Peek = config.PeekDynamic
	cfg.PeekOnlyMain = false
	e, _ := testEngine(t, cfg, d)

	var pushes []bool
	e.OnPeekChanged = func(show bool) { pushes = append(pushes, show) }

	// No maximised window: the first tick pushes the initial "hide".
	e.Tick()
	if len(pushes) != 1 || pushes[0] {
		t.Fatalf("pushes=%v, want [false]", pushes)
	}

	// Steady state: no further pushes.
	e.Tick()
	e.Tick()
	if len(pushes) != 1 {
		t.Fatalf("pushes=%v, want no change in steady state", pushes)
	}

	// A maximised window appears: the next heavy tick pushes "show".
	d.windows = append(d.windows, maximisedWindow(10, 100))
	for i := 0; i < heavyTickThreshold; i++ {
		e.Tick()
	}
	if len(pushes) != 2 || !pushes[1] {
		t.Fatalf("pushes=%v, want [false true]", pushes)
	}

	// It goes away again.
	d.windows = d.windows[:1]
	for i := 0; i <= heavyTickThreshold; i++ {
		e.Tick()
	}
	if len(pushes) != 3 || pushes[2] {
		t.Fatalf("pushes=%v, want [false true false]", pushes)
	}
}
