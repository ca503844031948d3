//go:build windows

package winapi

import (
	"fmt"
	"unsafe"

	"github.com/AbhinandAK350/TranslucentTB/internal/platform"
)

var procSetWindowCompositionAttribute = user32.NewProc("SetWindowCompositionAttribute")

const (
	wcaAccentPolicy = 19
	wmThemeChanged  = 0x031A
)

// accentPolicy is the native attribute payload. Field layout and
// values are fixed by the host and must match exactly.
type accentPolicy struct {
	AccentState   int32
	AccentFlags   int32
	GradientColor uint32
	AnimationID   int32
}

type windowCompositionAttributeData struct {
	Attribute  uintptr
	Data       unsafe.Pointer
	SizeOfData uintptr
}

// Compositor applies accent attributes through the undocumented
// SetWindowCompositionAttribute entry point.
type Compositor struct {
	available bool
}

// NewCompositor probes the attribute entry point once. On hosts where
// it is missing, Available reports false and the engine runs as a
// no-op for the process lifetime.
func NewCompositor() *Compositor {
	return &Compositor{available: procSetWindowCompositionAttribute.Find() == nil}
}

func (c *Compositor) Available() bool {
	return c.available
}

func (c *Compositor) SetAccent(w platform.WindowID, state platform.AccentState, color uint32) error {
	if !c.available {
		return nil
	}

	policy := accentPolicy{
		AccentState:   int32(state),
		AccentFlags:   2,
		GradientColor: color,
	}
	data := windowCompositionAttributeData{
		Attribute:  wcaAccentPolicy,
		Data:       unsafe.Pointer(&policy),
		SizeOfData: unsafe.Sizeof(policy),
	}

	ret, _, err := procSetWindowCompositionAttribute.Call(uintptr(w), uintptr(unsafe.Pointer(&data)))
	if ret == 0 {
		return fmt.Errorf("SetWindowCompositionAttribute failed: %w", err)
	}
	return nil
}

func (c *Compositor) NotifyThemeChanged(w platform.WindowID) error {
	ret, _, err := procSendNotifyMessageW.Call(uintptr(w), wmThemeChanged, 0, 0)
	if ret == 0 {
		return fmt.Errorf("WM_THEMECHANGED notification failed: %w", err)
	}
	return nil
}
