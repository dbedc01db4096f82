//go:build linux

package evdev

import (
	"encoding/binary"
	"fmt"
	"time"

	"codeberg.org/miketth/retype/pkg/retype"
	"golang.org/x/sys/unix"
)

// linux/uinput.h
const (
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	uinputMaxNameSize = 80
	absCnt            = 64
	// name + input_id + ff_effects_max + absmax/absmin/absfuzz/absflat
	uinputUserDevSize = uinputMaxNameSize + 8 + 4 + 4*absCnt*4

	busVirtual = 0x06
)

// VirtualKeyboardName is the name the injector device registers under.
const VirtualKeyboardName = "retype virtual keyboard"

// Injector types through a uinput virtual keyboard. Text is sent as physical
// key presses, so the target layout has to be active first.
type Injector struct {
	fd int
}

func OpenInjector(path string) (*Injector, error) {
	if path == "" {
		path = "/dev/uinput"
	}

	fd, err := unix.Open(path, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", retype.ErrInjection, path, err)
	}

	if err := setupDevice(fd); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: %v", retype.ErrInjection, err)
	}

	// give udev and the compositor a moment to pick up the new device
	time.Sleep(200 * time.Millisecond)

	return &Injector{fd: fd}, nil
}

func setupDevice(fd int) error {
	if err := unix.IoctlSetInt(fd, uiSetEvBit, int(evKey)); err != nil {
		return fmt.Errorf("UI_SET_EVBIT: %w", err)
	}
	for code := uint16(1); code <= 127; code++ {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(code)); err != nil {
			return fmt.Errorf("UI_SET_KEYBIT %d: %w", code, err)
		}
	}

	if _, err := unix.Write(fd, userDev(VirtualKeyboardName)); err != nil {
		return fmt.Errorf("write uinput_user_dev: %w", err)
	}

	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("UI_DEV_CREATE: %w", err)
	}
	return nil
}

func userDev(name string) []byte {
	b := make([]byte, uinputUserDevSize)
	copy(b[:uinputMaxNameSize-1], name)

	id := b[uinputMaxNameSize:]
	binary.NativeEndian.PutUint16(id[0:2], busVirtual)
	binary.NativeEndian.PutUint16(id[2:4], 0x1)
	binary.NativeEndian.PutUint16(id[4:6], 0x1)
	binary.NativeEndian.PutUint16(id[6:8], 0x1)
	return b
}

func (i *Injector) SendBackspaces(n int) error {
	events := make([]inputEvent, 0, 4*n)
	for k := 0; k < n; k++ {
		events = appendTap(events, keyBackspace, false)
	}
	return i.write(events)
}

// SendText fails without sending anything when a rune has no key.
func (i *Injector) SendText(text string) error {
	var events []inputEvent
	for _, r := range text {
		code, shift, ok := KeyForRune(r)
		if !ok {
			return fmt.Errorf("%w: no key for %q", retype.ErrInjection, r)
		}
		events = appendTap(events, code, shift)
	}
	return i.write(events)
}

func appendTap(events []inputEvent, code uint16, shift bool) []inputEvent {
	syn := inputEvent{Type: evSyn, Code: synReport}
	if shift {
		events = append(events, inputEvent{Type: evKey, Code: keyLeftShift, Value: keyPressed}, syn)
	}
	events = append(events,
		inputEvent{Type: evKey, Code: code, Value: keyPressed}, syn,
		inputEvent{Type: evKey, Code: code, Value: keyReleased}, syn,
	)
	if shift {
		events = append(events, inputEvent{Type: evKey, Code: keyLeftShift, Value: keyReleased}, syn)
	}
	return events
}

func (i *Injector) write(events []inputEvent) error {
	if len(events) == 0 {
		return nil
	}

	buf := make([]byte, len(events)*inputEventSize)
	for n, ev := range events {
		ev.encode(buf[n*inputEventSize:])
	}

	for len(buf) > 0 {
		n, err := unix.Write(i.fd, buf)
		if err != nil {
			return fmt.Errorf("%w: write uinput: %v", retype.ErrInjection, err)
		}
		buf = buf[n:]
	}
	return nil
}

func (i *Injector) Close() error {
	_ = unix.IoctlSetInt(i.fd, uiDevDestroy, 0)
	return unix.Close(i.fd)
}

var _ retype.Injector = (*Injector)(nil)
