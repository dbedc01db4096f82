package retype

import "time"

// WindowInfo describes the foreground target of keyboard input.
type WindowInfo struct {
	Title string
	// ProcessName is the executable file name, empty when it could not be
	// resolved.
	ProcessName string
	// InputType is a hint about the focused control, e.g. "password".
	InputType string
}

// ContextOracle answers questions about the current foreground window.
// Both methods return an error wrapping ErrNoForegroundWindow when nothing
// has focus.
type ContextOracle interface {
	ActiveWindowInfo() (WindowInfo, error)
	ActiveLangID() (uint16, error)
}

type LayoutSwitcher interface {
	SetLayoutByLangID(langID uint16) error
	SwitchToNextLayout() error
}

type Injector interface {
	SendBackspaces(n int) error
	SendText(text string) error
}

// Capture is a running keyboard listener. Stop blocks until the listener is
// torn down.
type Capture interface {
	Stop() error
}

type CorrectionStore interface {
	Increment(app string, direction string, at time.Time) error
}
