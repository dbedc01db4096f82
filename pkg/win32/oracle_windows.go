//go:build windows

package win32

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"syscall"

	"codeberg.org/miketth/retype/pkg/retype"
	"codeberg.org/miketth/retype/pkg/wincache"
	"github.com/lxn/win"
	"golang.org/x/sys/windows"
)

const inputTypePassword = "password"

// maxImagePath is the longest path QueryFullProcessImageName can return.
const maxImagePath = 32 * 1024

// Oracle reports the foreground window and its keyboard layout. Window
// lookups are cached per HWND for wincache.DefaultTTL.
type Oracle struct {
	cache *wincache.Cache[win.HWND, retype.WindowInfo]
}

func NewOracle() *Oracle {
	return &Oracle{cache: wincache.New[win.HWND, retype.WindowInfo](wincache.DefaultTTL)}
}

func (o *Oracle) ActiveWindowInfo() (retype.WindowInfo, error) {
	hwnd := win.GetForegroundWindow()
	if hwnd == 0 {
		return retype.WindowInfo{}, retype.ErrNoForegroundWindow
	}

	return o.cache.GetOrFetch(hwnd, func() (retype.WindowInfo, error) {
		return windowInfo(hwnd)
	})
}

func (o *Oracle) ActiveLangID() (uint16, error) {
	hwnd := win.GetForegroundWindow()
	if hwnd == 0 {
		return 0, retype.ErrNoForegroundWindow
	}

	threadID := win.GetWindowThreadProcessId(hwnd, nil)
	if threadID == 0 {
		return 0, fmt.Errorf("%w: window thread of %#x", retype.ErrOSQuery, hwnd)
	}

	hkl := keyboardLayout(threadID)
	if hkl == 0 {
		return 0, fmt.Errorf("%w: keyboard layout of thread %d", retype.ErrOSQuery, threadID)
	}

	return langIDOf(hkl), nil
}

func windowInfo(hwnd win.HWND) (retype.WindowInfo, error) {
	var pid uint32
	threadID := win.GetWindowThreadProcessId(hwnd, &pid)

	name, err := processName(pid)
	if err != nil {
		return retype.WindowInfo{}, fmt.Errorf("%w: process of %#x: %v", retype.ErrOSQuery, hwnd, err)
	}

	return retype.WindowInfo{
		Title:       windowText(hwnd),
		ProcessName: name,
		InputType:   inputType(threadID),
	}, nil
}

// processName returns the executable file name of pid.
func processName(pid uint32) (string, error) {
	if pid == 0 {
		return "", errors.New("no process id")
	}

	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", fmt.Errorf("open process %d: %w", pid, err)
	}
	defer windows.CloseHandle(h)

	path, err := queryImageName(func(buf []uint16, size *uint32) error {
		return windows.QueryFullProcessImageName(h, 0, &buf[0], size)
	})
	if err != nil {
		return "", fmt.Errorf("image name of %d: %w", pid, err)
	}
	return filepath.Base(path), nil
}

// queryImageName calls query with a growing buffer until the path fits.
func queryImageName(query func(buf []uint16, size *uint32) error) (string, error) {
	for n := windows.MAX_PATH; ; n *= 2 {
		if n > maxImagePath {
			n = maxImagePath
		}
		buf := make([]uint16, n)
		size := uint32(n)
		err := query(buf, &size)
		if err == nil {
			return syscall.UTF16ToString(buf[:size]), nil
		}
		if !errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) || n == maxImagePath {
			return "", err
		}
	}
}

// inputType looks at the focused control of the window's thread. Only classic
// EDIT controls expose ES_PASSWORD, so browsers and custom toolkits report "".
func inputType(threadID uint32) string {
	if threadID == 0 {
		return ""
	}

	focus := focusedWindow(threadID)
	if focus == 0 {
		return ""
	}

	buf := make([]uint16, 256)
	n, err := win.GetClassName(focus, &buf[0], len(buf))
	if err != nil || n == 0 {
		return ""
	}
	class := syscall.UTF16ToString(buf[:n])
	if !strings.Contains(strings.ToLower(class), "edit") {
		return ""
	}

	if win.GetWindowLong(focus, win.GWL_STYLE)&win.ES_PASSWORD != 0 {
		return inputTypePassword
	}
	return ""
}

var _ retype.ContextOracle = (*Oracle)(nil)
