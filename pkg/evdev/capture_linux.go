//go:build linux

package evdev

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"codeberg.org/miketth/retype/pkg/keyboard"
	"codeberg.org/miketth/retype/pkg/retype"
	"go.uber.org/zap"
)

const keyboardLinkSuffix = "-event-kbd"

// Capture reads key events from one or more evdev keyboards into a queue.
// Devices can be added while it runs and drop out when they are unplugged.
type Capture struct {
	queue *keyboard.Queue
	log   *zap.SugaredLogger

	mu      sync.Mutex
	devices map[string]*os.File
	stopped bool

	wg       sync.WaitGroup
	stopOnce sync.Once
}

// FindKeyboards lists the keyboards udev exposes under /dev/input/by-id and
// /dev/input/by-path, resolved to their event nodes.
func FindKeyboards() ([]string, error) {
	var matches []string
	for _, dir := range []string{"/dev/input/by-id", "/dev/input/by-path"} {
		pattern := filepath.Join(dir, "*"+keyboardLinkSuffix)
		m, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("glob %s: %w", pattern, err)
		}
		matches = append(matches, m...)
	}

	seen := make(map[string]bool)
	var devices []string
	for _, m := range matches {
		dev, err := filepath.EvalSymlinks(m)
		if err != nil || seen[dev] {
			continue
		}
		seen[dev] = true
		devices = append(devices, dev)
	}
	sort.Strings(devices)

	return devices, nil
}

func isKeyboardLink(path string) bool {
	return strings.HasSuffix(filepath.Base(path), keyboardLinkSuffix)
}

// StartCapture opens every device and starts one reader per device. Failing
// to open any of them is a hook install failure and nothing is started.
func StartCapture(devices []string, queue *keyboard.Queue, log *zap.SugaredLogger) (*Capture, error) {
	if len(devices) == 0 {
		return nil, fmt.Errorf("%w: no keyboard devices found", retype.ErrHookInstall)
	}

	files := make(map[string]*os.File, len(devices))
	for _, dev := range devices {
		if _, ok := files[dev]; ok {
			continue
		}
		f, err := os.Open(dev)
		if err != nil {
			for _, opened := range files {
				_ = opened.Close()
			}
			return nil, fmt.Errorf("%w: open %s: %v", retype.ErrHookInstall, dev, err)
		}
		files[dev] = f
	}

	c := &Capture{
		queue:   queue,
		log:     log,
		devices: files,
	}
	for dev, f := range files {
		c.wg.Add(1)
		go c.read(dev, f)
	}

	log.Infow("capturing keyboards", "devices", devices)
	return c, nil
}

// Add starts reading another device. Devices already being read are ignored.
func (c *Capture) Add(dev string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return retype.ErrHookInstall
	}
	if _, ok := c.devices[dev]; ok {
		return nil
	}

	f, err := os.Open(dev)
	if err != nil {
		return fmt.Errorf("%w: open %s: %v", retype.ErrHookInstall, dev, err)
	}
	c.devices[dev] = f

	c.wg.Add(1)
	go c.read(dev, f)

	c.log.Infow("capturing keyboard", "device", dev)
	return nil
}

// Devices returns the event nodes currently being read.
func (c *Capture) Devices() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, 0, len(c.devices))
	for dev := range c.devices {
		out = append(out, dev)
	}
	sort.Strings(out)
	return out
}

func (c *Capture) read(dev string, f *os.File) {
	defer c.wg.Done()
	defer c.forget(dev, f)

	buf := make([]byte, inputEventSize*64)
	for {
		n, err := io.ReadAtLeast(f, buf, inputEventSize)
		if err != nil {
			if !errors.Is(err, os.ErrClosed) {
				c.log.Warnw("keyboard read failed", "device", dev, "error", err)
			}
			return
		}

		for off := 0; off+inputEventSize <= n; off += inputEventSize {
			ev, err := decodeInputEvent(buf[off : off+inputEventSize])
			if err != nil {
				continue
			}
			if key, ok := ev.toKeyEvent(); ok {
				c.queue.Push(key)
			}
		}
	}
}

func (c *Capture) forget(dev string, f *os.File) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.devices[dev] == f {
		delete(c.devices, dev)
		_ = f.Close()
	}
}

// Stop closes the devices, which unblocks the readers, and waits for them.
func (c *Capture) Stop() error {
	var errs []error
	c.stopOnce.Do(func() {
		c.mu.Lock()
		c.stopped = true
		files := make([]*os.File, 0, len(c.devices))
		for dev, f := range c.devices {
			files = append(files, f)
			delete(c.devices, dev)
		}
		c.mu.Unlock()

		for _, f := range files {
			if err := f.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		c.wg.Wait()
	})
	return errors.Join(errs...)
}

var _ retype.Capture = (*Capture)(nil)
