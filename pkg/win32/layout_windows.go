//go:build windows

package win32

import (
	"fmt"

	"codeberg.org/miketth/retype/pkg/retype"
	"github.com/lxn/win"
)

const primaryLangMask = 0x03FF

// Layouts asks the foreground window to change its input language.
type Layouts struct{}

func NewLayouts() *Layouts {
	return &Layouts{}
}

// SetLayoutByLangID requests the installed layout whose language matches
// langID exactly, falling back to one with the same primary language.
func (l *Layouts) SetLayoutByLangID(langID uint16) error {
	hwnd := win.GetForegroundWindow()
	if hwnd == 0 {
		return retype.ErrNoForegroundWindow
	}

	hkl, ok := findLayout(keyboardLayoutList(), langID)
	if !ok {
		return fmt.Errorf("%w: no installed layout for 0x%04X", retype.ErrNotSupported, langID)
	}

	return requestLayout(hwnd, hkl)
}

// SwitchToNextLayout moves the foreground window to the layout after its
// current one in the installed list, wrapping around.
func (l *Layouts) SwitchToNextLayout() error {
	hwnd := win.GetForegroundWindow()
	if hwnd == 0 {
		return retype.ErrNoForegroundWindow
	}

	list := keyboardLayoutList()
	if len(list) == 0 {
		return fmt.Errorf("%w: keyboard layout list is empty", retype.ErrOSQuery)
	}

	current := keyboardLayout(win.GetWindowThreadProcessId(hwnd, nil))
	return requestLayout(hwnd, nextLayout(list, current))
}

func findLayout(list []uintptr, langID uint16) (uintptr, bool) {
	for _, hkl := range list {
		if langIDOf(hkl) == langID {
			return hkl, true
		}
	}
	for _, hkl := range list {
		if langIDOf(hkl)&primaryLangMask == langID&primaryLangMask {
			return hkl, true
		}
	}
	return 0, false
}

func nextLayout(list []uintptr, current uintptr) uintptr {
	for i, hkl := range list {
		if hkl == current {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}

func requestLayout(hwnd win.HWND, hkl uintptr) error {
	if win.PostMessage(hwnd, win.WM_INPUTLANGCHANGEREQUEST, 0, hkl) == 0 {
		return fmt.Errorf("%w: post WM_INPUTLANGCHANGEREQUEST", retype.ErrOSQuery)
	}
	return nil
}

var _ retype.LayoutSwitcher = (*Layouts)(nil)
