package retype

import (
	"errors"

	"codeberg.org/miketth/retype/pkg/config"
)

var (
	ErrHookInstall   = errors.New("install keyboard hook")
	ErrOSQuery       = errors.New("os query failed")
	ErrInjection     = errors.New("input injection failed")
	ErrConfigInvalid = config.ErrInvalid

	ErrNoForegroundWindow = errors.New("no foreground window")
	ErrForbidden          = errors.New("forbidden context")
	ErrNotSupported       = errors.New("not supported on this platform")
)
