//go:build linux

package evdev

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/miketth/retype/pkg/keyboard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeEvents(t *testing.T, path string, events ...inputEvent) {
	t.Helper()
	buf := make([]byte, len(events)*inputEventSize)
	for i, ev := range events {
		ev.encode(buf[i*inputEventSize:])
	}
	require.NoError(t, os.WriteFile(path, buf, 0o644))
}

func popN(t *testing.T, q *keyboard.Queue, n int) []keyboard.Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var out []keyboard.Event
	for k := 0; k < n; k++ {
		ev, err := q.Pop(ctx)
		require.NoError(t, err)
		out = append(out, ev)
	}
	return out
}

func TestCaptureReadsDevice(t *testing.T) {
	dev := filepath.Join(t.TempDir(), "event3")
	syn := inputEvent{Type: evSyn, Code: synReport}
	writeEvents(t, dev,
		inputEvent{Type: evKey, Code: letterCodes['g'-'a'], Value: keyPressed}, syn,
		inputEvent{Type: evKey, Code: letterCodes['g'-'a'], Value: keyReleased}, syn,
	)

	q := keyboard.NewQueue()
	c, err := StartCapture([]string{dev}, q, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	got := popN(t, q, 2)
	assert.Equal(t, keyboard.VKA+('g'-'a'), got[0].VKCode)
	assert.True(t, got[0].IsKeyDown)
	assert.False(t, got[1].IsKeyDown)

	// end of file drops the device like an unplug does
	assert.Eventually(t, func() bool { return len(c.Devices()) == 0 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, c.Stop())
}

func TestCaptureAdd(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "event1")
	second := filepath.Join(dir, "event2")
	writeEvents(t, first)
	writeEvents(t, second, inputEvent{Type: evKey, Code: keySpace, Value: keyPressed})

	q := keyboard.NewQueue()
	c, err := StartCapture([]string{first}, q, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)

	require.NoError(t, c.Add(second))
	got := popN(t, q, 1)
	assert.Equal(t, keyboard.VKSpace, got[0].VKCode)

	assert.Error(t, c.Add(filepath.Join(dir, "missing")))

	require.NoError(t, c.Stop())
	assert.Error(t, c.Add(second), "no devices after stop")
}

func TestStartCaptureErrors(t *testing.T) {
	q := keyboard.NewQueue()
	log := zaptest.NewLogger(t).Sugar()

	_, err := StartCapture(nil, q, log)
	assert.Error(t, err)

	_, err = StartCapture([]string{filepath.Join(t.TempDir(), "missing")}, q, log)
	assert.Error(t, err)
}

func TestIsKeyboardLink(t *testing.T) {
	assert.True(t, isKeyboardLink("/dev/input/by-id/usb-Logitech_K120-event-kbd"))
	assert.False(t, isKeyboardLink("/dev/input/by-id/usb-Logitech_Mouse-event-mouse"))
	assert.False(t, isKeyboardLink("/dev/input/by-id/usb-Logitech_K120-if01-event-kbd-x"))
}

func TestWatchDirMissing(t *testing.T) {
	q := keyboard.NewQueue()
	dev := filepath.Join(t.TempDir(), "event1")
	writeEvents(t, dev)
	c, err := StartCapture([]string{dev}, q, zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	defer c.Stop()

	assert.NoError(t, c.watchDir(context.Background(), filepath.Join(t.TempDir(), "nope")))
}
