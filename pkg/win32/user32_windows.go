//go:build windows

package win32

import (
	"syscall"
	"unsafe"

	"github.com/lxn/win"
)

// user32 entry points lxn/win does not wrap.
var (
	user32 = syscall.NewLazyDLL("user32.dll")

	procSetWindowsHookExW     = user32.NewProc("SetWindowsHookExW")
	procCallNextHookEx        = user32.NewProc("CallNextHookEx")
	procUnhookWindowsHookEx   = user32.NewProc("UnhookWindowsHookEx")
	procPostThreadMessageW    = user32.NewProc("PostThreadMessageW")
	procGetWindowTextLengthW  = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW        = user32.NewProc("GetWindowTextW")
	procGetKeyboardLayout     = user32.NewProc("GetKeyboardLayout")
	procGetKeyboardLayoutList = user32.NewProc("GetKeyboardLayoutList")
	procGetGUIThreadInfo      = user32.NewProc("GetGUIThreadInfo")
)

type guiThreadInfo struct {
	CbSize        uint32
	Flags         uint32
	HwndActive    win.HWND
	HwndFocus     win.HWND
	HwndCapture   win.HWND
	HwndMenuOwner win.HWND
	HwndMoveSize  win.HWND
	HwndCaret     win.HWND
	RcCaret       win.RECT
}

func windowText(hwnd win.HWND) string {
	n, _, _ := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if n == 0 {
		return ""
	}

	buf := make([]uint16, n+1)
	copied, _, _ := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return syscall.UTF16ToString(buf[:copied])
}

// keyboardLayout returns the HKL active on the given thread. The low word is
// the language identifier.
func keyboardLayout(threadID uint32) uintptr {
	hkl, _, _ := procGetKeyboardLayout.Call(uintptr(threadID))
	return hkl
}

// keyboardLayoutList returns the installed layouts in system order.
func keyboardLayoutList() []uintptr {
	n, _, _ := procGetKeyboardLayoutList.Call(0, 0)
	if n == 0 {
		return nil
	}

	list := make([]uintptr, n)
	got, _, _ := procGetKeyboardLayoutList.Call(n, uintptr(unsafe.Pointer(&list[0])))
	return list[:got]
}

func focusedWindow(threadID uint32) win.HWND {
	var info guiThreadInfo
	info.CbSize = uint32(unsafe.Sizeof(info))
	r, _, _ := procGetGUIThreadInfo.Call(uintptr(threadID), uintptr(unsafe.Pointer(&info)))
	if r == 0 {
		return 0
	}
	return info.HwndFocus
}

func langIDOf(hkl uintptr) uint16 {
	return uint16(hkl & 0xFFFF)
}
