package engine

import (
	"testing"

	"github.com/AbhinandAK350/TranslucentTB/internal/config"
	"github.com/AbhinandAK350/TranslucentTB/internal/platform"
)

// overlayConfig gives every overlay layer a distinct accent so the
// recorded calls identify which layer won.
func overlayConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := testConfig(t)
	cfg.Start.Appearance = config.Appearance{Accent: config.AccentClear, Color: "#00FF00", Opacity: 0x10}
	cfg.Cortana.Appearance = config.Appearance{Accent: config.AccentFluent, Color: "#FF0000", Opacity: 0x20}
	cfg.Timeline.Appearance = config.Appearance{Accent: config.AccentOpaque, Color: "#123456", Opacity: 0x30}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	return cfg
}

func TestMaximisedWindowMarksItsTaskbarOnly(t *testing.T) {
	d := &fakeDesktop{windows: []*fakeWindow{
		taskbar(1, 100),
		secondaryTaskbar(2, 200),
		maximisedWindow(10, 200),
	}}
	e, c := testEngine(t, testConfig(t), d)

	e.Tick()

	if call := c.lastCallFor(t, 2); call.state != platform.AccentOpaque {
		t.Fatalf("secondary state=%d, want maximised opaque %d", call.state, platform.AccentOpaque)
	}
	if call := c.lastCallFor(t, 1); call.state != platform.AccentBlur {
		t.Fatalf("main state=%d, want regular blur %d", call.state, platform.AccentBlur)
	}
}

// The foreground layer keys off the window the maximised scan saw
// last, not the foreground window. A foreground search overlay with no
// qualifying window in the scan therefore changes nothing.
func TestForegroundLayerGatedByLastScannedWindow(t *testing.T) {
	search := &fakeWindow{id: 20, class: "Windows.UI.Core.CoreWindow", exe: "SearchApp.exe", monitor: 100, visible: true}
	d := &fakeDesktop{
		windows:    []*fakeWindow{taskbar(1, 100), search},
		foreground: 20,
	}
	e, c := testEngine(t, overlayConfig(t), d)

	e.Tick()

	if call := c.lastCallFor(t, 1); call.state != platform.AccentBlur {
		t.Fatalf("state=%d, want regular blur %d", call.state, platform.AccentBlur)
	}
}

// Once the gate passes, the trailing start-menu assignment runs whether
// or not a search match occurred, so with the start menu closed the
// foreground taskbar always lands on the start appearance.
func TestForegroundLayerOverwritesWithStartAppearance(t *testing.T) {
	d := &fakeDesktop{
		windows: []*fakeWindow{
			taskbar(1, 100),
			maximisedWindow(10, 100),
		},
		foreground: 10,
	}
	e, c := testEngine(t, overlayConfig(t), d)

	e.Tick()

	if call := c.lastCallFor(t, 1); call.state != platform.AccentClear {
		t.Fatalf("state=%d, want start clear %d", call.state, platform.AccentClear)
	}
}

func TestStartOpenedAssignsMaximisedAppearance(t *testing.T) {
	d := &fakeDesktop{
		windows: []*fakeWindow{
			taskbar(1, 100),
			maximisedWindow(10, 100),
		},
		foreground: 10,
	}
	e, c := testEngine(t, overlayConfig(t), d)

	e.Post(Event{Kind: EventStartOpened})
	e.Tick()

	if call := c.lastCallFor(t, 1); call.state != platform.AccentOpaque {
		t.Fatalf("state=%d, want maximised opaque %d", call.state, platform.AccentOpaque)
	}

	e.Post(Event{Kind: EventStartClosed})
	for i := 0; i <= heavyTickThreshold; i++ {
		e.Tick()
	}
	if call := c.lastCallFor(t, 1); call.state != platform.AccentClear {
		t.Fatalf("state after close=%d, want start clear %d", call.state, platform.AccentClear)
	}
}

func TestPeekRestoresRegularAppearance(t *testing.T) {
	d := &fakeDesktop{windows: []*fakeWindow{
		taskbar(1, 100),
		maximisedWindow(10, 100),
	}}
	cfg := testConfig(t)
	cfg.Maximised.RegularOnPeek = true
	e, c := testEngine(t, cfg, d)

	e.Tick()
	if call := c.lastCallFor(t, 1); call.state != platform.AccentOpaque {
		t.Fatalf("state=%d, want maximised opaque %d", call.state, platform.AccentOpaque)
	}

	e.Post(Event{Kind: EventPeekStarted})
	for i := 0; i <= heavyTickThreshold; i++ {
		e.Tick()
	}
	if call := c.lastCallFor(t, 1); call.state != platform.AccentBlur {
		t.Fatalf("state during peek=%d, want regular blur %d", call.state, platform.AccentBlur)
	}
}

func TestTimelineOverridesEverySurface(t *testing.T) {
	timeline := &fakeWindow{id: 30, class: "Windows.UI.Core.CoreWindow", exe: "explorer.exe", monitor: 900, visible: true}
	d := &fakeDesktop{
		windows: []*fakeWindow{
			taskbar(1, 100),
			secondaryTaskbar(2, 200),
			maximisedWindow(10, 200),
			timeline,
		},
		foreground: 30,
		build:      minFluentBuild,
	}
	cfg := overlayConfig(t)
	e, c := testEngine(t, cfg, d)

	e.Tick()

	want := SwapRedBlue(cfg.Timeline.Appearance.Packed())
	for _, w := range []platform.WindowID{1, 2} {
		call := c.lastCallFor(t, w)
		if call.state != platform.AccentOpaque || call.color != want {
			t.Fatalf("window %d state=%d color=%#08x, want timeline opaque %d color %#08x",
				w, call.state, call.color, platform.AccentOpaque, want)
		}
	}
}

func TestTimelineLegacyClassOnOlderBuilds(t *testing.T) {
	timeline := &fakeWindow{id: 30, class: legacyTimelineClass, exe: "explorer.exe", monitor: 900, visible: true}
	d := &fakeDesktop{
		windows:    []*fakeWindow{taskbar(1, 100), timeline},
		foreground: 30,
		build:      minFluentBuild - 1,
	}
	cfg := overlayConfig(t)
	e, c := testEngine(t, cfg, d)

	e.Tick()

	call := c.lastCallFor(t, 1)
	if want := SwapRedBlue(cfg.Timeline.Appearance.Packed()); call.color != want {
		t.Fatalf("color=%#08x, want timeline color %#08x", call.color, want)
	}
}

func TestIsSearchUI(t *testing.T) {
	for _, exe := range []string{"SearchUI.exe", "searchui.exe", "SearchApp.exe", "SEARCHAPP.EXE"} {
		if !isSearchUI(exe) {
			t.Fatalf("isSearchUI(%q)=false, want true", exe)
		}
	}
	for _, exe := range []string{"explorer.exe", "Search.exe", ""} {
		if isSearchUI(exe) {
			t.Fatalf("isSearchUI(%q)=true, want false", exe)
		}
	}
}
