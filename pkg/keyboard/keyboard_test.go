package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetter(t *testing.T) {
	tests := []struct {
		vk    uint32
		shift bool
		want  rune
		ok    bool
	}{
		{VKA, false, 'a', true},
		{VKA, true, 'A', true},
		{VKZ, false, 'z', true},
		{0x47, true, 'G', true},
		{VKSpace, false, 0, false},
		{0x30, false, 0, false},
	}

	for _, tt := range tests {
		got, ok := Letter(tt.vk, tt.shift)
		assert.Equal(t, tt.ok, ok, "vk %#x", tt.vk)
		assert.Equal(t, tt.want, got, "vk %#x", tt.vk)
	}
}

func TestLetterKeyRoundTrip(t *testing.T) {
	for r := 'a'; r <= 'z'; r++ {
		vk, shift, ok := LetterKey(r)
		assert.True(t, ok)
		assert.False(t, shift)
		back, _ := Letter(vk, shift)
		assert.Equal(t, r, back)
	}

	vk, shift, ok := LetterKey('Q')
	assert.True(t, ok)
	assert.True(t, shift)
	assert.Equal(t, uint32(0x51), vk)

	_, _, ok = LetterKey('1')
	assert.False(t, ok)
}

func TestModifiers(t *testing.T) {
	for _, vk := range []uint32{VKMenu, VKLMenu, VKRMenu, VKShift, VKLShift, VKRShift, VKControl, VKLWin, VKCapital} {
		assert.True(t, IsModifier(vk), "vk %#x", vk)
	}
	assert.False(t, IsModifier(VKSpace))
	assert.False(t, IsModifier(VKA))
}

func TestInjected(t *testing.T) {
	assert.True(t, Event{Flags: FlagInjected}.Injected())
	assert.True(t, Event{Flags: FlagLowerILInjected}.Injected())
	assert.False(t, Event{Flags: 0x01}.Injected())
}
