//go:build windows

package main

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/miketth/retype/pkg/config"
	"codeberg.org/miketth/retype/pkg/keyboard"
	"codeberg.org/miketth/retype/pkg/win32"
	"go.uber.org/zap"
)

func startPlatform(_ *config.Config, queue *keyboard.Queue, log *zap.SugaredLogger) (*platform, error) {
	hook, err := win32.StartHook(queue)
	if err != nil {
		return nil, fmt.Errorf("install keyboard hook: %w", err)
	}
	log.Debug("keyboard hook installed")

	return &platform{
		oracle:   win32.NewOracle(),
		layouts:  win32.NewLayouts(),
		injector: win32.NewInjector(),
		capture:  hook,
		watchers: map[string]func(ctx context.Context) error{
			"keyboard hook": func(ctx context.Context) error {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-hook.Done():
					return errors.New("hook thread exited")
				}
			},
		},
		close: func() {},
	}, nil
}
