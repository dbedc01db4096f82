package evdev

import (
	"testing"

	"codeberg.org/miketth/retype/pkg/keyboard"
	"codeberg.org/miketth/retype/pkg/translit"
	"github.com/stretchr/testify/assert"
)

func TestVKFromCode(t *testing.T) {
	tests := []struct {
		code uint16
		want uint32
	}{
		{30, keyboard.VKA},
		{44, keyboard.VKZ},
		{34, 0x47}, // g
		{keySpace, keyboard.VKSpace},
		{keyBackspace, keyboard.VKBack},
		{keyEnter, keyboard.VKReturn},
		{keyLeftAlt, keyboard.VKLMenu},
		{keyRightShift, keyboard.VKRShift},
		{2, 0x31},
		{11, 0x30},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, VKFromCode(tt.code), "code %d", tt.code)
	}

	unknown := VKFromCode(183) // KEY_F13
	assert.False(t, keyboard.IsLetter(unknown))
	assert.False(t, keyboard.IsModifier(unknown))
}

func TestLetterCodesRoundTrip(t *testing.T) {
	for r := 'a'; r <= 'z'; r++ {
		code, shift, ok := KeyForRune(r)
		assert.True(t, ok)
		assert.False(t, shift)

		got, _ := keyboard.Letter(VKFromCode(code), false)
		assert.Equal(t, r, got)
	}
}

func TestKeyForRune(t *testing.T) {
	tests := []struct {
		r     rune
		code  uint16
		shift bool
	}{
		{'g', 34, false},
		{'G', 34, true},
		{'п', 34, false},
		{'П', 34, true},
		{'х', keyLeftBrace, false},
		{'Ж', keySemicolon, true},
		{'ю', keyDot, false},
		{'Ё', keyGrave, true},
		{' ', keySpace, false},
		{'\n', keyEnter, false},
	}

	for _, tt := range tests {
		code, shift, ok := KeyForRune(tt.r)
		assert.True(t, ok, "%q", tt.r)
		assert.Equal(t, tt.code, code, "%q", tt.r)
		assert.Equal(t, tt.shift, shift, "%q", tt.r)
	}

	_, _, ok := KeyForRune('€')
	assert.False(t, ok)
}

func TestEveryCyrillicLetterHasAKey(t *testing.T) {
	for _, r := range "абвгдеёжзийклмнопрстуфхцчшщъыьэюя" {
		_, _, ok := KeyForRune(r)
		assert.True(t, ok, "%q", r)
	}

	// the typed keys of a converted word are the original keys
	for _, r := range translit.ToCyrillic("ghbdtn") {
		code, _, _ := KeyForRune(r)
		assert.True(t, keyboard.IsLetter(VKFromCode(code)))
	}
}
