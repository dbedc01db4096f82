package retype

import (
	"fmt"
	"strings"

	"codeberg.org/miketth/retype/pkg/config"
)

// IsForbidden reports whether any configured substring matches the window
// title, the process name or the input type. Matching ignores case and
// empty patterns are skipped.
func IsForbidden(info WindowInfo, cfg config.ForbiddenContextsConfig) bool {
	return matchAny(info.ProcessName, cfg.BlockedProcesses) ||
		matchAny(info.Title, cfg.BlockedWindows) ||
		matchAny(info.InputType, cfg.BlockedInputTypes)
}

func matchAny(value string, patterns []string) bool {
	if value == "" {
		return false
	}
	value = strings.ToLower(value)
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(value, strings.ToLower(p)) {
			return true
		}
	}
	return false
}

// Guard resolves the foreground window and applies the forbidden-context
// rules to it.
type Guard struct {
	oracle ContextOracle
	cfg    config.ForbiddenContextsConfig
}

func NewGuard(oracle ContextOracle, cfg config.ForbiddenContextsConfig) *Guard {
	return &Guard{oracle: oracle, cfg: cfg}
}

// IsForbiddenContext surfaces oracle failures instead of guessing. Callers
// must treat an error as forbidden.
func (g *Guard) IsForbiddenContext() (bool, error) {
	info, err := g.oracle.ActiveWindowInfo()
	if err != nil {
		return true, fmt.Errorf("active window info: %w", err)
	}
	return IsForbidden(info, g.cfg), nil
}

// Permit returns the foreground window when automated input is allowed.
// Otherwise it returns an error, wrapping ErrForbidden when a rule matched.
func (g *Guard) Permit() (WindowInfo, error) {
	info, err := g.oracle.ActiveWindowInfo()
	if err != nil {
		return WindowInfo{}, fmt.Errorf("active window info: %w", err)
	}
	if IsForbidden(info, g.cfg) {
		return info, fmt.Errorf("%w: process %q", ErrForbidden, info.ProcessName)
	}
	return info, nil
}
