//go:build windows

package win32

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"codeberg.org/miketth/retype/pkg/retype"
	"github.com/lxn/win"
)

// Injector synthesizes keystrokes with SendInput. Events it sends carry
// LLKHF_INJECTED, so the hook sees them flagged.
type Injector struct{}

func NewInjector() *Injector {
	return &Injector{}
}

func (i *Injector) SendBackspaces(n int) error {
	inputs := make([]win.KEYBD_INPUT, 0, 2*n)
	for k := 0; k < n; k++ {
		inputs = append(inputs, vkPair(win.VK_BACK)...)
	}
	return send(inputs)
}

// SendText types text as unicode input, one down/up pair per UTF-16 unit.
// Newlines are sent as Enter.
func (i *Injector) SendText(text string) error {
	var inputs []win.KEYBD_INPUT
	for _, r := range text {
		if r == '\n' {
			inputs = append(inputs, vkPair(win.VK_RETURN)...)
			continue
		}
		for _, unit := range utf16.Encode([]rune{r}) {
			inputs = append(inputs, unicodePair(unit)...)
		}
	}
	return send(inputs)
}

func vkPair(vk uint16) []win.KEYBD_INPUT {
	return []win.KEYBD_INPUT{
		{Type: win.INPUT_KEYBOARD, Ki: win.KEYBDINPUT{WVk: vk}},
		{Type: win.INPUT_KEYBOARD, Ki: win.KEYBDINPUT{WVk: vk, DwFlags: win.KEYEVENTF_KEYUP}},
	}
}

func unicodePair(unit uint16) []win.KEYBD_INPUT {
	return []win.KEYBD_INPUT{
		{Type: win.INPUT_KEYBOARD, Ki: win.KEYBDINPUT{WScan: unit, DwFlags: win.KEYEVENTF_UNICODE}},
		{Type: win.INPUT_KEYBOARD, Ki: win.KEYBDINPUT{WScan: unit, DwFlags: win.KEYEVENTF_UNICODE | win.KEYEVENTF_KEYUP}},
	}
}

func send(inputs []win.KEYBD_INPUT) error {
	if len(inputs) == 0 {
		return nil
	}

	sent := win.SendInput(uint32(len(inputs)), unsafe.Pointer(&inputs[0]), int32(unsafe.Sizeof(inputs[0])))
	if int(sent) != len(inputs) {
		return fmt.Errorf("%w: SendInput accepted %d of %d events", retype.ErrInjection, sent, len(inputs))
	}
	return nil
}

var _ retype.Injector = (*Injector)(nil)
