//go:build linux

package evdev

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	byIDDir = "/dev/input/by-id"

	// udev creates the link before the node's ACL is applied
	openAttempts = 5
	openBackoff  = 100 * time.Millisecond
)

// WatchHotplug adds keyboards that show up under /dev/input/by-id after the
// capture started. Without that directory there is nothing to watch and it
// returns nil.
func (c *Capture) WatchHotplug(ctx context.Context) error {
	return c.watchDir(ctx, byIDDir)
}

func (c *Capture) watchDir(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		c.log.Warnw("keyboard hotplug disabled", "dir", dir, "error", err)
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) || !isKeyboardLink(event.Name) {
				continue
			}
			c.addLink(ctx, event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Warnw("keyboard hotplug watcher", "error", err)
		}
	}
}

func (c *Capture) addLink(ctx context.Context, link string) {
	var err error
	for attempt := 0; attempt < openAttempts; attempt++ {
		var dev string
		dev, err = filepath.EvalSymlinks(link)
		if err == nil {
			if err = c.Add(dev); err == nil {
				return
			}
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(openBackoff):
		}
	}
	c.log.Warnw("could not add keyboard", "link", link, "error", err)
}
