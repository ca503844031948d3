package engine

import (
	"github.com/AbhinandAK350/TranslucentTB/internal/config"
)

// Kind selects one of the named appearances owned by the
// configuration. The zero value is KindRegular.
type Kind int

const (
	KindRegular Kind = iota
	KindMaximised
	KindStart
	KindCortana
	KindTimeline
)

func (k Kind) String() string {
	switch k {
	case KindRegular:
		return "regular"
	case KindMaximised:
		return "maximised"
	case KindStart:
		return "start"
	case KindCortana:
		return "cortana"
	case KindTimeline:
		return "timeline"
	default:
		return "unknown"
	}
}

func appearanceFor(cfg *config.Config, k Kind) config.Appearance {
	switch k {
	case KindMaximised:
		return cfg.Maximised.Appearance
	case KindStart:
		return cfg.Start.Appearance
	case KindCortana:
		return cfg.Cortana.Appearance
	case KindTimeline:
		return cfg.Timeline.Appearance
	default:
		return cfg.Regular
	}
}
