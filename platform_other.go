//go:build !linux && !windows

package main

import (
	"fmt"
	"runtime"

	"codeberg.org/miketth/retype/pkg/config"
	"codeberg.org/miketth/retype/pkg/keyboard"
	"codeberg.org/miketth/retype/pkg/retype"
	"go.uber.org/zap"
)

func startPlatform(*config.Config, *keyboard.Queue, *zap.SugaredLogger) (*platform, error) {
	return nil, fmt.Errorf("%w: %s", retype.ErrNotSupported, runtime.GOOS)
}
