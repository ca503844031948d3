package platform

// WindowID is a platform-neutral top-level window identifier.
type WindowID uintptr

// MonitorID is a platform-neutral monitor identifier.
type MonitorID uintptr

// NullWindow is the zero window identifier.
const NullWindow WindowID = 0

// AccentState is the compositor accent mode for a surface. The numeric
// values are part of the native attribute payload and must not change.
type AccentState int32

const (
	AccentDisabled AccentState = 0
	AccentOpaque   AccentState = 1 // gradient fill
	AccentClear    AccentState = 2 // transparent gradient
	AccentBlur     AccentState = 3 // blur behind
	AccentFluent   AccentState = 4 // acrylic blur behind
	AccentNormal   AccentState = 150
)

// Desktop abstracts the window-system queries the engine needs. All
// query methods treat failures as "signal absent": they return zero
// values rather than errors, matching how the enumeration APIs behave.
type Desktop interface {
	// EnumTopLevelWindows calls fn for every top-level window, in
	// z-order. Enumeration stops early when fn returns false.
	EnumTopLevelWindows(fn func(WindowID) bool) error

	// FindWindow returns the first top-level window with the given
	// class name, or NullWindow.
	FindWindow(class string) WindowID

	// FindWindows returns every top-level window with the given class name.
	FindWindows(class string) []WindowID

	// ForegroundWindow returns the currently focused top-level window,
	// or NullWindow.
	ForegroundWindow() WindowID

	// MonitorFor returns the monitor containing the window's largest area.
	MonitorFor(WindowID) MonitorID

	Visible(WindowID) bool
	Maximized(WindowID) bool

	// Cloaked reports whether the compositor renders the window
	// invisibly (other virtual desktop, suspended UWP shell, ...).
	Cloaked(WindowID) bool

	// OnCurrentDesktop reports whether the window belongs to the
	// active virtual desktop. True when the query is unsupported.
	OnCurrentDesktop(WindowID) bool

	ClassName(WindowID) string
	Title(WindowID) string

	// ExecutableName returns the base name of the process image owning
	// the window, e.g. "explorer.exe".
	ExecutableName(WindowID) string

	// IsAtLeastBuild reports whether the host OS build number is at
	// least the given value.
	IsAtLeastBuild(build uint32) bool
}

// Compositor abstracts the native surface attribute interface.
type Compositor interface {
	// Available reports whether the attribute entry point resolved on
	// this host. When false the engine runs as a no-op.
	Available() bool

	// SetAccent applies an accent state and 0xAABBGGRR color to a surface.
	SetAccent(w WindowID, state AccentState, color uint32) error

	// NotifyThemeChanged asks the surface to reload its theme, which
	// restores the stock appearance.
	NotifyThemeChanged(w WindowID) error
}
