package retype

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"codeberg.org/miketth/retype/pkg/config"
	"codeberg.org/miketth/retype/pkg/translit"
	"go.uber.org/zap/zaptest"
)

var errBoom = errors.New("boom")

type fakeOracle struct {
	info    WindowInfo
	infoErr error
	langID  uint16
	langErr error
}

func (o *fakeOracle) ActiveWindowInfo() (WindowInfo, error) {
	return o.info, o.infoErr
}

func (o *fakeOracle) ActiveLangID() (uint16, error) {
	return o.langID, o.langErr
}

type fakeLayouts struct {
	set    []uint16
	next   int
	setErr error
}

func (l *fakeLayouts) SetLayoutByLangID(langID uint16) error {
	l.set = append(l.set, langID)
	return l.setErr
}

func (l *fakeLayouts) SwitchToNextLayout() error {
	l.next++
	return nil
}

// fakeInjector records every OS mutation in order.
type fakeInjector struct {
	ops          []string
	backspaceErr error
	textErr      error
}

func (i *fakeInjector) SendBackspaces(n int) error {
	if i.backspaceErr != nil {
		return i.backspaceErr
	}
	i.ops = append(i.ops, fmt.Sprintf("backspace x%d", n))
	return nil
}

func (i *fakeInjector) SendText(text string) error {
	if i.textErr != nil {
		return i.textErr
	}
	i.ops = append(i.ops, "text "+text)
	return nil
}

type increment struct {
	app       string
	direction string
}

type fakeStore struct {
	increments []increment
}

func (s *fakeStore) Increment(app string, direction string, _ time.Time) error {
	s.increments = append(s.increments, increment{app, direction})
	return nil
}

type fixture struct {
	oracle   *fakeOracle
	layouts  *fakeLayouts
	injector *fakeInjector
	store    *fakeStore
	executor *Executor
	engine   *Engine
}

func newFixture(t *testing.T, mutate func(*config.LayoutSwitcherConfig)) *fixture {
	t.Helper()

	cfg := config.Defaults().LayoutSwitcher
	if mutate != nil {
		mutate(&cfg)
	}

	f := &fixture{
		oracle: &fakeOracle{
			info:   WindowInfo{Title: "Untitled - Notepad", ProcessName: "notepad.exe"},
			langID: translit.LangEnglishUS,
		},
		layouts:  &fakeLayouts{},
		injector: &fakeInjector{},
		store:    &fakeStore{},
	}

	log := zaptest.NewLogger(t).Sugar()
	guard := NewGuard(f.oracle, cfg.ForbiddenContexts)
	f.executor = NewExecutor(guard, f.layouts, f.injector, log,
		WithStore(f.store),
		WithLayoutSwitch(cfg.SwitchLayoutOnCorrect),
	)
	f.engine = NewEngine(cfg, f.oracle, guard, f.executor, log)

	return f
}
