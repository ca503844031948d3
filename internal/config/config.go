package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/AbhinandAK350/TranslucentTB/internal/platform"
)

// Accent names accepted in configuration files.
type Accent string

const (
	AccentNormal Accent = "normal"
	AccentOpaque Accent = "opaque"
	AccentClear  Accent = "clear"
	AccentBlur   Accent = "blur"
	AccentFluent Accent = "fluent"
)

// State maps the configured accent name to its native state value.
func (a Accent) State() platform.AccentState {
	switch a {
	case AccentOpaque:
		return platform.AccentOpaque
	case AccentClear:
		return platform.AccentClear
	case AccentBlur:
		return platform.AccentBlur
	case AccentFluent:
		return platform.AccentFluent
	default:
		return platform.AccentNormal
	}
}

// PeekMode controls the peek-button behaviour.
type PeekMode string

const (
	PeekEnabled  PeekMode = "enabled"  // always show
	PeekDynamic  PeekMode = "dynamic"  // show only when a maximised window exists
	PeekDisabled PeekMode = "disabled" // never show
)

// Appearance is one named accent/color pair. Color is the packed
// 0xAARRGGBB value derived from the configured color and opacity.
type Appearance struct {
	Accent  Accent `yaml:"accent"`
	Color   string `yaml:"color"`
	Opacity int    `yaml:"opacity"`

	packed uint32
}

// Packed returns the 0xAARRGGBB color for the native call.
func (a Appearance) Packed() uint32 { return a.packed }

// State returns the native accent state.
func (a Appearance) State() platform.AccentState { return a.Accent.State() }

// MaximisedOptions configures the maximised-window layer.
type MaximisedOptions struct {
	Enabled       bool       `yaml:"enabled"`
	RegularOnPeek bool       `yaml:"regular_on_peek"`
	Appearance    Appearance `yaml:",inline"`
}

// OverlayOptions configures one of the shell overlay layers
// (start menu, search, timeline).
type OverlayOptions struct {
	Enabled    bool       `yaml:"enabled"`
	Appearance Appearance `yaml:",inline"`
}

// Config is the effective daemon configuration.
type Config struct {
	Regular   Appearance       `yaml:"regular"`
	Maximised MaximisedOptions `yaml:"maximised"`
	Start     OverlayOptions   `yaml:"start"`
	Cortana   OverlayOptions   `yaml:"cortana"`
	Timeline  OverlayOptions   `yaml:"timeline"`

	Peek         PeekMode `yaml:"peek"`
	PeekOnlyMain bool     `yaml:"peek_only_main"`

	// PollIntervalMS is the tick interval in milliseconds.
	PollIntervalMS int  `yaml:"poll_interval_ms"`
	Verbose        bool `yaml:"verbose"`
	NoTray         bool `yaml:"no_tray"`
}

// Interval returns the poll interval as a duration.
func (c *Config) Interval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Regular:   Appearance{Accent: AccentBlur, Color: "#000000", Opacity: 0},
		Maximised: MaximisedOptions{Enabled: true, Appearance: Appearance{Accent: AccentOpaque, Color: "#000000", Opacity: 255}},
		Start:     OverlayOptions{Enabled: true, Appearance: Appearance{Accent: AccentNormal, Color: "#000000", Opacity: 0}},
		Cortana:   OverlayOptions{Enabled: true, Appearance: Appearance{Accent: AccentNormal, Color: "#000000", Opacity: 0}},
		Timeline:  OverlayOptions{Enabled: true, Appearance: Appearance{Accent: AccentNormal, Color: "#000000", Opacity: 0}},

		Peek:         PeekDynamic,
		PeekOnlyMain: true,

		PollIntervalMS: 10,
	}
}

// Validate checks the configuration and packs every appearance color.
// It must be called (via the loader) before the config is used.
func (c *Config) Validate() error {
	if c.PollIntervalMS <= 0 {
		return fmt.Errorf("poll_interval_ms: must be positive, got %d", c.PollIntervalMS)
	}

	switch c.Peek {
	case PeekEnabled, PeekDynamic, PeekDisabled:
	default:
		return fmt.Errorf("peek: unknown mode %q (expected enabled, dynamic or disabled)", c.Peek)
	}

	appearances := []struct {
		name string
		app  *Appearance
	}{
		{"regular", &c.Regular},
		{"maximised", &c.Maximised.Appearance},
		{"start", &c.Start.Appearance},
		{"cortana", &c.Cortana.Appearance},
		{"timeline", &c.Timeline.Appearance},
	}
	for _, entry := range appearances {
		if err := entry.app.pack(); err != nil {
			return fmt.Errorf("%s: %w", entry.name, err)
		}
	}
	return nil
}

func (a *Appearance) pack() error {
	switch a.Accent {
	case AccentNormal, AccentOpaque, AccentClear, AccentBlur, AccentFluent:
	default:
		return fmt.Errorf("accent: unknown value %q", a.Accent)
	}
	if a.Opacity < 0 || a.Opacity > 255 {
		return fmt.Errorf("opacity: must be in [0, 255], got %d", a.Opacity)
	}
	rgb, err := ParseColor(a.Color)
	if err != nil {
		return fmt.Errorf("color: %w", err)
	}
	a.packed = uint32(a.Opacity)<<24 | rgb
	return nil
}

// ParseColor parses an "#RRGGBB" hex color into its 0x00RRGGBB value.
func ParseColor(s string) (uint32, error) {
	raw := strings.TrimPrefix(s, "#")
	if len(raw) != 6 {
		return 0, fmt.Errorf("expected #RRGGBB, got %q", s)
	}
	var rgb uint32
	for _, r := range raw {
		var nibble uint32
		switch {
		case r >= '0' && r <= '9':
			nibble = uint32(r - '0')
		case r >= 'a' && r <= 'f':
			nibble = uint32(r-'a') + 10
		case r >= 'A' && r <= 'F':
			nibble = uint32(r-'A') + 10
		default:
			return 0, fmt.Errorf("invalid hex digit %q in %q", r, s)
		}
		rgb = rgb<<4 | nibble
	}
	return rgb, nil
}
