package evdev

import (
	"encoding/binary"
	"fmt"

	"codeberg.org/miketth/retype/pkg/keyboard"
)

const (
	evSyn uint16 = 0x00
	evKey uint16 = 0x01

	synReport uint16 = 0

	keyReleased int32 = 0
	keyPressed  int32 = 1
	keyRepeated int32 = 2
)

// inputEventSize is sizeof(struct input_event) with a 64-bit timeval.
const inputEventSize = 24

type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

func decodeInputEvent(b []byte) (inputEvent, error) {
	if len(b) < inputEventSize {
		return inputEvent{}, fmt.Errorf("short input event: %d bytes", len(b))
	}

	return inputEvent{
		Sec:   int64(binary.NativeEndian.Uint64(b[0:8])),
		Usec:  int64(binary.NativeEndian.Uint64(b[8:16])),
		Type:  binary.NativeEndian.Uint16(b[16:18]),
		Code:  binary.NativeEndian.Uint16(b[18:20]),
		Value: int32(binary.NativeEndian.Uint32(b[20:24])),
	}, nil
}

func (e inputEvent) encode(b []byte) {
	binary.NativeEndian.PutUint64(b[0:8], uint64(e.Sec))
	binary.NativeEndian.PutUint64(b[8:16], uint64(e.Usec))
	binary.NativeEndian.PutUint16(b[16:18], e.Type)
	binary.NativeEndian.PutUint16(b[18:20], e.Code)
	binary.NativeEndian.PutUint32(b[20:24], uint32(e.Value))
}

// toKeyEvent converts EV_KEY events. Autorepeat counts as a key-down, the
// same way the Windows hook reports it.
func (e inputEvent) toKeyEvent() (keyboard.Event, bool) {
	if e.Type != evKey {
		return keyboard.Event{}, false
	}

	var down bool
	switch e.Value {
	case keyPressed, keyRepeated:
		down = true
	case keyReleased:
	default:
		return keyboard.Event{}, false
	}

	return keyboard.Event{
		VKCode:    VKFromCode(e.Code),
		ScanCode:  uint32(e.Code),
		IsKeyDown: down,
	}, true
}
