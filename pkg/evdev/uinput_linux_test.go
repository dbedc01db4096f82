//go:build linux

package evdev

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserDevLayout(t *testing.T) {
	b := userDev(VirtualKeyboardName)
	assert.Len(t, b, 1116)
	assert.Equal(t, VirtualKeyboardName, string(b[:len(VirtualKeyboardName)]))
	assert.Zero(t, b[len(VirtualKeyboardName)])
}

func TestAppendTap(t *testing.T) {
	events := appendTap(nil, 34, false)
	assert.Len(t, events, 4)
	assert.Equal(t, keyPressed, events[0].Value)
	assert.Equal(t, evSyn, events[1].Type)
	assert.Equal(t, keyReleased, events[2].Value)

	shifted := appendTap(nil, 34, true)
	assert.Len(t, shifted, 8)
	assert.Equal(t, keyLeftShift, shifted[0].Code)
	assert.Equal(t, keyLeftShift, shifted[6].Code)
	assert.Equal(t, keyReleased, shifted[6].Value)
}
