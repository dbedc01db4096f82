package evdev

import (
	"testing"

	"codeberg.org/miketth/retype/pkg/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputEventCodec(t *testing.T) {
	in := inputEvent{Sec: 1700000000, Usec: 123456, Type: evKey, Code: 30, Value: keyPressed}
	buf := make([]byte, inputEventSize)
	in.encode(buf)

	out, err := decodeInputEvent(buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)

	_, err = decodeInputEvent(buf[:10])
	assert.Error(t, err)
}

func TestToKeyEvent(t *testing.T) {
	ev, ok := inputEvent{Type: evKey, Code: 30, Value: keyPressed}.toKeyEvent()
	assert.True(t, ok)
	assert.Equal(t, keyboard.Event{VKCode: keyboard.VKA, ScanCode: 30, IsKeyDown: true}, ev)

	ev, ok = inputEvent{Type: evKey, Code: 30, Value: keyRepeated}.toKeyEvent()
	assert.True(t, ok)
	assert.True(t, ev.IsKeyDown)

	ev, ok = inputEvent{Type: evKey, Code: keySpace, Value: keyReleased}.toKeyEvent()
	assert.True(t, ok)
	assert.False(t, ev.IsKeyDown)

	_, ok = inputEvent{Type: evSyn, Code: synReport}.toKeyEvent()
	assert.False(t, ok)

	_, ok = inputEvent{Type: 0x04, Code: 4, Value: 30}.toKeyEvent()
	assert.False(t, ok)
}
