package hyprland

import (
	"fmt"
	"strings"

	"codeberg.org/miketth/retype/pkg/retype"
	"codeberg.org/miketth/retype/pkg/translit"
)

const primaryLangMask = 0x03FF

// Layouts switches the xkb layout of one keyboard through hyprctl. Hyprland
// keeps a layout per device, so keyboards that type on our behalf (the
// injector's virtual device) are switched along with it.
type Layouts struct {
	ctl       KeyboardLayoutSwitcher
	keyboard  string
	followers []string
}

// NewLayouts controls the named keyboard, or the main one when name is
// empty. Followers are device names as given to DeviceName.
func NewLayouts(ctl KeyboardLayoutSwitcher, name string, followers ...string) *Layouts {
	names := make([]string, 0, len(followers))
	for _, f := range followers {
		names = append(names, DeviceName(f))
	}
	return &Layouts{ctl: ctl, keyboard: name, followers: names}
}

// DeviceName turns a kernel device name into the name hyprctl lists it under.
func DeviceName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// SetLayoutByLangID activates the first configured layout whose language
// matches langID, falling back to the same primary language.
func (l *Layouts) SetLayoutByLangID(langID uint16) error {
	keyboards, err := getKeyboards(l.ctl)
	if err != nil {
		return err
	}

	kb, err := pickKeyboard(keyboards, l.keyboard)
	if err != nil {
		return err
	}
	if err := l.switchTo(kb, langID); err != nil {
		return err
	}

	for _, name := range l.followers {
		follower, err := pickKeyboard(keyboards, name)
		if err != nil {
			return err
		}
		if err := l.switchTo(follower, langID); err != nil {
			return err
		}
	}

	return nil
}

func (l *Layouts) switchTo(kb Keyboard, langID uint16) error {
	idx := layoutIndex(kb, langID)
	if idx < 0 {
		return fmt.Errorf("%w: keyboard %q has no layout for 0x%04X", retype.ErrNotSupported, kb.Name, langID)
	}

	if err := l.ctl.SwitchToLayout(kb.Name, idx); err != nil {
		return fmt.Errorf("%w: switch layout of %q: %v", retype.ErrOSQuery, kb.Name, err)
	}
	return nil
}

func (l *Layouts) SwitchToNextLayout() error {
	kb, err := selectKeyboard(l.ctl, l.keyboard)
	if err != nil {
		return err
	}

	if err := l.ctl.SwitchToNext(kb.Name); err != nil {
		return fmt.Errorf("%w: switch to next layout: %v", retype.ErrOSQuery, err)
	}
	return nil
}

func layoutIndex(kb Keyboard, langID uint16) int {
	for i, code := range kb.Layouts {
		if id, ok := translit.LangIDs[code]; ok && id == langID {
			return i
		}
	}
	for i, code := range kb.Layouts {
		if id, ok := translit.LangIDs[code]; ok && id&primaryLangMask == langID&primaryLangMask {
			return i
		}
	}
	return -1
}

var _ retype.LayoutSwitcher = (*Layouts)(nil)
