package engine

import (
	"testing"

	"github.com/AbhinandAK350/TranslucentTB/internal/config"
	"github.com/AbhinandAK350/TranslucentTB/internal/platform"
)

func TestSwapRedBlue(t *testing.T) {
	tests := []struct {
		in, want uint32
	}{
		{0x00000000, 0x00000000},
		{0xFF112233, 0xFF332211},
		{0x80FF0000, 0x800000FF},
		{0x010000FF, 0x01FF0000},
		{0x4400FF00, 0x4400FF00},
	}
	for _, tt := range tests {
		if got := SwapRedBlue(tt.in); got != tt.want {
			t.Fatalf("SwapRedBlue(%#08x)=%#08x, want %#08x", tt.in, got, tt.want)
		}
		// Swapping twice round-trips.
		if got := SwapRedBlue(SwapRedBlue(tt.in)); got != tt.in {
			t.Fatalf("SwapRedBlue twice on %#08x=%#08x", tt.in, got)
		}
	}
}

func TestFluentZeroOpacityBumped(t *testing.T) {
	d := &fakeDesktop{windows: []*fakeWindow{taskbar(1, 100)}}
	cfg := testConfig(t)
	cfg.Regular = config.Appearance{Accent: config.AccentFluent, Color: "#112233", Opacity: 0}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	e, c := testEngine(t, cfg, d)

	e.Tick()

	call := c.lastCallFor(t, 1)
	if call.color>>24 != 0x01 {
		t.Fatalf("alpha=%#02x, want 0x01", call.color>>24)
	}
	if want := SwapRedBlue(0x00112233) & 0x00FFFFFF; call.color&0x00FFFFFF != want {
		t.Fatalf("rgb lanes=%#06x, want %#06x", call.color&0x00FFFFFF, want)
	}
}

func TestNormalAppearanceMemoized(t *testing.T) {
	d := &fakeDesktop{windows: []*fakeWindow{taskbar(1, 100)}}
	cfg := testConfig(t)
	cfg.Regular = config.Appearance{Accent: config.AccentNormal, Color: "#000000", Opacity: 0}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	e, c := testEngine(t, cfg, d)

	e.Tick()
	e.Tick()
	e.Tick()

	if len(c.calls) != 0 {
		t.Fatalf("accent calls=%d, want 0", len(c.calls))
	}
	if len(c.notified) != 1 {
		t.Fatalf("theme notifications=%d, want 1", len(c.notified))
	}
}

func TestNormalMemoResetByAccentedState(t *testing.T) {
	d := &fakeDesktop{windows: []*fakeWindow{
		taskbar(1, 100),
		maximisedWindow(10, 100),
	}}
	cfg := testConfig(t)
	cfg.Regular = config.Appearance{Accent: config.AccentNormal, Color: "#000000", Opacity: 0}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	e, c := testEngine(t, cfg, d)

	// Maximised window present: opaque is applied, not normal.
	e.Tick()
	if len(c.notified) != 0 {
		t.Fatalf("theme notifications=%d, want 0", len(c.notified))
	}

	// Window unmaximises: back to normal, one fresh notification.
	d.windows[1].maximized = false
	for i := 0; i <= heavyTickThreshold; i++ {
		e.Tick()
	}
	if len(c.notified) != 1 {
		t.Fatalf("theme notifications=%d, want 1", len(c.notified))
	}
}

func TestRestorePutsSurfacesBackToNormal(t *testing.T) {
	d := &fakeDesktop{windows: []*fakeWindow{
		taskbar(1, 100),
		secondaryTaskbar(2, 200),
	}}
	e, c := testEngine(t, testConfig(t), d)

	e.Tick()
	e.Restore()

	if len(c.notified) != 2 {
		t.Fatalf("theme notifications=%d, want 2", len(c.notified))
	}
	// Restoring again changes nothing.
	e.Restore()
	if len(c.notified) != 2 {
		t.Fatalf("theme notifications after second restore=%d, want 2", len(c.notified))
	}
}

func TestUnavailableCompositorIsANoOp(t *testing.T) {
	d := &fakeDesktop{windows: []*fakeWindow{taskbar(1, 100)}}
	c := &fakeCompositor{unavailable: true}
	e := New(testConfig(t), nil, d, c, nil)
	e.Rebuild()

	e.Tick()
	e.Restore()

	if len(c.calls) != 0 || len(c.notified) != 0 {
		t.Fatalf("calls=%d notifications=%d, want 0 and 0", len(c.calls), len(c.notified))
	}
}

func TestAppearanceForSelectsConfiguredLayer(t *testing.T) {
	cfg := testConfig(t)
	tests := []struct {
		kind Kind
		want platform.AccentState
	}{
		{KindRegular, platform.AccentBlur},
		{KindMaximised, platform.AccentOpaque},
		{KindStart, platform.AccentNormal},
		{KindCortana, platform.AccentNormal},
		{KindTimeline, platform.AccentNormal},
	}
	for _, tt := range tests {
		if got := appearanceFor(cfg, tt.kind).State(); got != tt.want {
			t.Fatalf("appearanceFor(%s).State()=%d, want %d", tt.kind, got, tt.want)
		}
	}
}
