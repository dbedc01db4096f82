//go:build linux

package main

import (
	"context"
	"fmt"

	"codeberg.org/miketth/retype/pkg/config"
	"codeberg.org/miketth/retype/pkg/evdev"
	"codeberg.org/miketth/retype/pkg/hyprland"
	"codeberg.org/miketth/retype/pkg/keyboard"
	"codeberg.org/miketth/retype/pkg/xkblayouts"
	"go.uber.org/zap"
)

func startPlatform(cfg *config.Config, queue *keyboard.Queue, log *zap.SugaredLogger) (*platform, error) {
	if !cfg.LayoutSwitcher.SwitchLayoutOnCorrect {
		log.Warn("switch_layout_on_correct is off, corrected text is typed in the current layout")
	}

	registry, err := xkblayouts.ParseLayouts(cfg.Linux.EvdevXMLPath)
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	hyprctl, err := hyprland.NewHyprctl()
	if err != nil {
		return nil, fmt.Errorf("connect hyprctl: %w", err)
	}

	client, err := hyprland.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	injector, err := evdev.OpenInjector("")
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("open injector: %w", err)
	}

	devices := cfg.Linux.EvdevDevices
	autodetect := len(devices) == 0
	if autodetect {
		devices, err = evdev.FindKeyboards()
		if err != nil {
			_ = injector.Close()
			_ = client.Close()
			return nil, fmt.Errorf("find keyboards: %w", err)
		}
	}

	capture, err := evdev.StartCapture(devices, queue, log)
	if err != nil {
		_ = injector.Close()
		_ = client.Close()
		return nil, fmt.Errorf("start capture: %w", err)
	}

	oracle := hyprland.NewOracle(hyprctl, registry, cfg.Linux.Keyboard)

	watchers := map[string]func(ctx context.Context) error{
		"watch windows": func(ctx context.Context) error {
			return oracle.Watch(ctx, client)
		},
	}
	// configured devices are taken as the complete list
	if autodetect {
		watchers["watch keyboards"] = capture.WatchHotplug
	}

	return &platform{
		oracle:   oracle,
		// injected keys use the layout of the virtual device, not the main keyboard
		layouts:  hyprland.NewLayouts(hyprctl, cfg.Linux.Keyboard, evdev.VirtualKeyboardName),
		injector: injector,
		capture:  capture,
		watchers: watchers,
		close: func() {
			if err := injector.Close(); err != nil {
				log.Warnw("close injector", "error", err)
			}
			_ = client.Close()
		},
	}, nil
}
