// Package evdev is the Linux capture and injection backend. Key events are
// read from /dev/input/event* and synthetic input goes through a uinput
// virtual keyboard. Linux key codes are translated to the virtual-key space
// the engine works in.
package evdev

import (
	"codeberg.org/miketth/retype/pkg/keyboard"
	"codeberg.org/miketth/retype/pkg/translit"
)

// Linux input-event-codes.h
const (
	keyEsc        uint16 = 1
	keyMinus      uint16 = 12
	keyEqual      uint16 = 13
	keyBackspace  uint16 = 14
	keyTab        uint16 = 15
	keyLeftBrace  uint16 = 26
	keyRightBrace uint16 = 27
	keyEnter      uint16 = 28
	keyLeftCtrl   uint16 = 29
	keySemicolon  uint16 = 39
	keyApostrophe uint16 = 40
	keyGrave      uint16 = 41
	keyLeftShift  uint16 = 42
	keyBackslash  uint16 = 43
	keyComma      uint16 = 51
	keyDot        uint16 = 52
	keySlash      uint16 = 53
	keyRightShift uint16 = 54
	keyLeftAlt    uint16 = 56
	keySpace      uint16 = 57
	keyCapsLock   uint16 = 58
	keyRightCtrl  uint16 = 97
	keyRightAlt   uint16 = 100
	keyLeftMeta   uint16 = 125
	keyRightMeta  uint16 = 126
)

// unmappedBase moves unknown key codes above the letter range so the engine
// treats them as plain word boundaries.
const unmappedBase uint32 = 0x1000

var letterCodes = [26]uint16{
	30, 48, 46, 32, 18, 33, 34, 35, 23, 36, 37, 38, 50, // a-m
	49, 24, 25, 16, 19, 31, 20, 22, 47, 17, 45, 21, 44, // n-z
}

var codeToVK = func() map[uint16]uint32 {
	m := map[uint16]uint32{
		keyEsc:        keyboard.VKEscape,
		keyBackspace:  keyboard.VKBack,
		keyTab:        keyboard.VKTab,
		keyEnter:      keyboard.VKReturn,
		keySpace:      keyboard.VKSpace,
		keyCapsLock:   keyboard.VKCapital,
		keyLeftShift:  keyboard.VKLShift,
		keyRightShift: keyboard.VKRShift,
		keyLeftCtrl:   keyboard.VKLCtrl,
		keyRightCtrl:  keyboard.VKRCtrl,
		keyLeftAlt:    keyboard.VKLMenu,
		keyRightAlt:   keyboard.VKRMenu,
		keyLeftMeta:   keyboard.VKLWin,
		keyRightMeta:  keyboard.VKRWin,
		keyMinus:      0xBD,
		keyEqual:      0xBB,
		keyLeftBrace:  0xDB,
		keyRightBrace: 0xDD,
		keySemicolon:  0xBA,
		keyApostrophe: 0xDE,
		keyGrave:      0xC0,
		keyBackslash:  0xDC,
		keyComma:      0xBC,
		keyDot:        0xBE,
		keySlash:      0xBF,
	}
	for i, code := range letterCodes {
		m[code] = keyboard.VKA + uint32(i)
	}
	// digit row: KEY_1..KEY_9 are 2..10, KEY_0 is 11
	for i := uint16(0); i < 9; i++ {
		m[2+i] = 0x31 + uint32(i)
	}
	m[11] = 0x30
	return m
}()

// VKFromCode translates a Linux key code to a virtual-key code.
func VKFromCode(code uint16) uint32 {
	if vk, ok := codeToVK[code]; ok {
		return vk
	}
	return unmappedBase + uint32(code)
}

// Cyrillic letters that sit on punctuation keys in ЙЦУКЕН.
var cyrillicPunctuation = map[rune]uint16{
	'х': keyLeftBrace,
	'ъ': keyRightBrace,
	'ж': keySemicolon,
	'э': keyApostrophe,
	'б': keyComma,
	'ю': keyDot,
	'ё': keyGrave,
}

// KeyForRune returns the physical key producing r under a Latin (QWERTY) or
// Cyrillic (ЙЦУКЕН) layout, and whether shift is needed. The caller must make
// sure the matching layout is active.
func KeyForRune(r rune) (code uint16, shift bool, ok bool) {
	switch r {
	case ' ':
		return keySpace, false, true
	case '\n':
		return keyEnter, false, true
	}

	if vk, shift, ok := keyboard.LetterKey(translit.LatinRune(r)); ok {
		return letterCodes[vk-keyboard.VKA], shift, true
	}

	lower := r
	upper := false
	if l := toLowerCyrillic(r); l != r {
		lower, upper = l, true
	}
	if code, ok := cyrillicPunctuation[lower]; ok {
		return code, upper, true
	}

	return 0, false, false
}

func toLowerCyrillic(r rune) rune {
	switch {
	case r >= 'А' && r <= 'Я':
		return r + ('а' - 'А')
	case r == 'Ё':
		return 'ё'
	}
	return r
}
