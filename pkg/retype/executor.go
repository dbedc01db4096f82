package retype

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/miketth/retype/pkg/translit"
	"go.uber.org/zap"
)

// Executor performs corrections against the OS. Every mutation is preceded
// by a fresh guard check.
type Executor struct {
	guard    *Guard
	layouts  LayoutSwitcher
	injector Injector
	store    CorrectionStore

	switchLayout bool
	now          func() time.Time
	log          *zap.SugaredLogger
}

type ExecutorOption func(*Executor)

// WithStore records one counter per applied correction.
func WithStore(store CorrectionStore) ExecutorOption {
	return func(e *Executor) {
		e.store = store
	}
}

// WithLayoutSwitch asks the OS for the target layout before erasing.
func WithLayoutSwitch(enabled bool) ExecutorOption {
	return func(e *Executor) {
		e.switchLayout = enabled
	}
}

func NewExecutor(
	guard *Guard,
	layouts LayoutSwitcher,
	injector Injector,
	log *zap.SugaredLogger,
	opts ...ExecutorOption,
) *Executor {
	e := &Executor{
		guard:    guard,
		layouts:  layouts,
		injector: injector,
		now:      time.Now,
		log:      log,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Apply erases the mistyped word with its boundary character and injects the
// replacement. Failures after erasure started are not retried.
func (e *Executor) Apply(ctx context.Context, d Decision) error {
	if d.Direction == None {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := e.guard.Permit()
	if err != nil {
		return fmt.Errorf("guard: %w", err)
	}

	if e.switchLayout {
		e.setLayout(d.Direction.Target())
	}

	if err := e.injector.SendBackspaces(d.EraseCount()); err != nil {
		return fmt.Errorf("erase %d characters: %w", d.EraseCount(), err)
	}

	if err := e.injector.SendText(d.Replacement()); err != nil {
		return fmt.Errorf("inject replacement: %w", err)
	}

	e.log.Infow("corrected word",
		"direction", d.Direction.String(),
		"process", info.ProcessName,
	)
	e.log.Debugw("correction details",
		"word", d.Original,
		"converted", d.Converted,
	)

	if e.store != nil {
		if err := e.store.Increment(info.ProcessName, d.Direction.String(), e.now()); err != nil {
			e.log.Warnw("record correction", "error", err)
		}
	}

	return nil
}

// setLayout is advisory, a failure never blocks the correction.
func (e *Executor) setLayout(class translit.LayoutClass) {
	langID, err := translit.TargetLangID(class)
	if err != nil {
		e.log.Debugw("no target layout", "error", err)
		return
	}

	if err := e.layouts.SetLayoutByLangID(langID); err != nil {
		e.log.Debugw("set layout failed", "lang", fmt.Sprintf("0x%04X", langID), "error", err)
	}
}

// SwitchToNextLayout advances the foreground window to the next installed
// layout, wrapping around.
func (e *Executor) SwitchToNextLayout(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := e.guard.Permit(); err != nil {
		return fmt.Errorf("guard: %w", err)
	}

	if err := e.layouts.SwitchToNextLayout(); err != nil {
		return fmt.Errorf("switch to next layout: %w", err)
	}
	return nil
}
