package hyprland

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"codeberg.org/miketth/retype/pkg/retype"
	"codeberg.org/miketth/retype/pkg/translit"
	"codeberg.org/miketth/retype/pkg/wincache"
	"codeberg.org/miketth/retype/pkg/xkblayouts"
)

type EventListener interface {
	ReadLine() (string, error)
}

type KeyboardLayoutSwitcher interface {
	GetKeyboards() ([]Keyboard, error)
	SwitchToLayout(keyboard string, idx int) error
	SwitchToNext(keyboard string) error
}

type WindowSource interface {
	ActiveWindow() (Window, error)
}

// Controller is everything the oracle and layout control need from hyprctl.
type Controller interface {
	KeyboardLayoutSwitcher
	WindowSource
}

// Oracle answers foreground window and layout questions from hyprctl.
type Oracle struct {
	ctl      Controller
	registry *xkblayouts.XkbConfigRegistry
	keyboard string
	procRoot string

	cache *wincache.Cache[string, retype.WindowInfo]
}

// NewOracle resolves layouts of the named keyboard, or of the main keyboard
// when name is empty.
func NewOracle(ctl Controller, registry *xkblayouts.XkbConfigRegistry, name string) *Oracle {
	return &Oracle{
		ctl:      ctl,
		registry: registry,
		keyboard: name,
		procRoot: "/proc",
		cache:    wincache.New[string, retype.WindowInfo](wincache.DefaultTTL),
	}
}

func (o *Oracle) ActiveWindowInfo() (retype.WindowInfo, error) {
	w, err := o.ctl.ActiveWindow()
	if err != nil {
		return retype.WindowInfo{}, fmt.Errorf("%w: active window: %v", retype.ErrOSQuery, err)
	}
	if w.Address == "" {
		return retype.WindowInfo{}, retype.ErrNoForegroundWindow
	}

	return o.cache.GetOrFetch(w.Address, func() (retype.WindowInfo, error) {
		return retype.WindowInfo{
			Title:       w.Title,
			ProcessName: o.processName(w),
		}, nil
	})
}

// processName reads /proc/<pid>/comm and falls back to the window class.
func (o *Oracle) processName(w Window) string {
	if w.PID > 0 {
		comm, err := os.ReadFile(filepath.Join(o.procRoot, strconv.Itoa(w.PID), "comm"))
		if err == nil {
			if name := strings.TrimSpace(string(comm)); name != "" {
				return name
			}
		}
	}
	return w.Class
}

func (o *Oracle) ActiveLangID() (uint16, error) {
	kb, err := selectKeyboard(o.ctl, o.keyboard)
	if err != nil {
		return 0, err
	}

	code, _ := o.registry.GetLayoutAndVariantFromPrettyName(kb.ActiveKeymap)
	if langID, ok := translit.LangIDs[code]; ok {
		return langID, nil
	}

	for _, lang := range o.registry.GetLanguagesFromPrettyName(kb.ActiveKeymap) {
		if langID, ok := translit.ISO639LangIDs[lang]; ok {
			return langID, nil
		}
	}

	return 0, fmt.Errorf("%w: no language for keymap %q", retype.ErrNotSupported, kb.ActiveKeymap)
}

// Watch drops the cached window on title and focus events until ctx is done
// or the listener fails.
func (o *Oracle) Watch(ctx context.Context, listener EventListener) error {
	for {
		resultCh := make(chan string, 1)
		errCh := make(chan error, 1)
		go func() {
			line, err := listener.ReadLine()
			if err != nil {
				errCh <- err
				return
			}
			resultCh <- line
		}()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case line := <-resultCh:
			o.processLine(line)
		case err := <-errCh:
			return fmt.Errorf("get line: %w", err)
		}
	}
}

func (o *Oracle) processLine(line string) {
	evType, _, ok := strings.Cut(line, ">>")
	if !ok {
		return
	}

	switch evType {
	case "activewindow", "activewindowv2", "windowtitle", "windowtitlev2", "closewindow":
		o.cache.Invalidate()
	}
}

func selectKeyboard(ctl KeyboardLayoutSwitcher, name string) (Keyboard, error) {
	keyboards, err := getKeyboards(ctl)
	if err != nil {
		return Keyboard{}, err
	}
	return pickKeyboard(keyboards, name)
}

func getKeyboards(ctl KeyboardLayoutSwitcher) ([]Keyboard, error) {
	keyboards, err := ctl.GetKeyboards()
	if err != nil {
		return nil, fmt.Errorf("%w: get keyboards: %v", retype.ErrOSQuery, err)
	}
	if len(keyboards) == 0 {
		return nil, fmt.Errorf("%w: no keyboards", retype.ErrOSQuery)
	}
	return keyboards, nil
}

// pickKeyboard finds name, or the main keyboard (else the first) when name
// is empty.
func pickKeyboard(keyboards []Keyboard, name string) (Keyboard, error) {
	for _, k := range keyboards {
		if name != "" && k.Name == name {
			return k, nil
		}
		if name == "" && k.Main {
			return k, nil
		}
	}
	if name != "" {
		return Keyboard{}, fmt.Errorf("%w: keyboard %q not found", retype.ErrOSQuery, name)
	}

	return keyboards[0], nil
}

var _ retype.ContextOracle = (*Oracle)(nil)
