//go:build windows

package win32

import (
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"codeberg.org/miketth/retype/pkg/keyboard"
	"codeberg.org/miketth/retype/pkg/retype"
	"github.com/lxn/win"
)

const (
	whKeyboardLL = 13
	hcAction     = 0

	wmKeyDown    = 0x0100
	wmKeyUp      = 0x0101
	wmSysKeyDown = 0x0104
	wmSysKeyUp   = 0x0105
)

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// Hook owns a low-level keyboard hook and the thread running its message
// loop. The callback only pushes to the queue.
type Hook struct {
	threadID uint32
	done     chan struct{}

	stopOnce sync.Once
	stopErr  error
}

// StartHook installs the hook on a dedicated locked OS thread. It returns an
// error wrapping retype.ErrHookInstall, and leaves no thread behind, when
// the hook cannot be installed.
func StartHook(queue *keyboard.Queue) (*Hook, error) {
	h := &Hook{done: make(chan struct{})}
	started := make(chan error, 1)

	go h.loop(queue, started)

	if err := <-started; err != nil {
		<-h.done
		return nil, err
	}
	return h, nil
}

func (h *Hook) loop(queue *keyboard.Queue, started chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(h.done)

	// make sure the thread has a message queue before anyone posts to it
	var msg win.MSG
	win.PeekMessage(&msg, 0, win.WM_USER, win.WM_USER, win.PM_NOREMOVE)
	h.threadID = win.GetCurrentThreadId()

	var hook uintptr
	callback := syscall.NewCallback(func(nCode, wParam, lParam uintptr) uintptr {
		if int32(nCode) == hcAction {
			if ev, ok := decodeHookEvent(wParam, lParam); ok {
				queue.Push(ev)
			}
		}
		r, _, _ := procCallNextHookEx.Call(hook, nCode, wParam, lParam)
		return r
	})

	hook, _, err := procSetWindowsHookExW.Call(
		whKeyboardLL,
		callback,
		uintptr(win.GetModuleHandle(nil)),
		0,
	)
	if hook == 0 {
		started <- fmt.Errorf("%w: SetWindowsHookExW: %v", retype.ErrHookInstall, err)
		return
	}
	defer procUnhookWindowsHookEx.Call(hook)

	started <- nil

	for {
		r := win.GetMessage(&msg, 0, 0, 0)
		if r == 0 || r == -1 {
			return
		}
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}

func decodeHookEvent(wParam, lParam uintptr) (keyboard.Event, bool) {
	var down bool
	switch wParam {
	case wmKeyDown, wmSysKeyDown:
		down = true
	case wmKeyUp, wmSysKeyUp:
	default:
		return keyboard.Event{}, false
	}

	kb := (*kbdllHookStruct)(unsafe.Pointer(lParam))
	return keyboard.Event{
		VKCode:    kb.VkCode,
		ScanCode:  kb.ScanCode,
		Flags:     kb.Flags,
		IsKeyDown: down,
	}, true
}

// Stop posts WM_QUIT to the hook thread and waits for it to unhook and exit.
func (h *Hook) Stop() error {
	h.stopOnce.Do(func() {
		r, _, err := procPostThreadMessageW.Call(uintptr(h.threadID), win.WM_QUIT, 0, 0)
		if r == 0 {
			h.stopErr = fmt.Errorf("post quit to hook thread: %v", err)
			return
		}
		<-h.done
	})
	return h.stopErr
}

// Done is closed once the hook thread has exited.
func (h *Hook) Done() <-chan struct{} {
	return h.done
}

var _ retype.Capture = (*Hook)(nil)
