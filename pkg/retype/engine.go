package retype

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/miketth/retype/pkg/bus"
	"codeberg.org/miketth/retype/pkg/config"
	"codeberg.org/miketth/retype/pkg/keyboard"
	"codeberg.org/miketth/retype/pkg/translit"
	"go.uber.org/zap"
)

// Engine watches key events, buffers the physical letters of the current
// word and evaluates the word when it is committed with Space (or Enter,
// when enabled).
type Engine struct {
	cfg        config.LayoutSwitcherConfig
	heuristics Heuristics

	oracle   ContextOracle
	guard    *Guard
	executor *Executor
	log      *zap.SugaredLogger

	word   []rune
	origin translit.LayoutClass

	altDown     bool
	shiftDown   bool
	ctrlDown    bool
	winDown     bool
	hotkeyFired bool

	// CapsLock is assumed off at start; every press toggles it.
	capsOn   bool
	capsHeld bool
}

func NewEngine(
	cfg config.LayoutSwitcherConfig,
	oracle ContextOracle,
	guard *Guard,
	executor *Executor,
	log *zap.SugaredLogger,
) *Engine {
	return &Engine{
		cfg:        cfg,
		heuristics: HeuristicsFromConfig(cfg),
		oracle:     oracle,
		guard:      guard,
		executor:   executor,
		log:        log,
	}
}

// Run consumes the subscription until shutdown, cancellation or close. A
// panic while handling an event stops the engine and is returned as an
// error.
func (e *Engine) Run(ctx context.Context, sub *bus.Subscription) (retErr error) {
	defer func() {
		if r := recover(); r != nil {
			retErr = fmt.Errorf("engine panic: %v", r)
		}
	}()

	var dropped uint64
	for {
		ev, err := sub.Recv(ctx)
		switch {
		case errors.Is(err, bus.ErrClosed):
			return nil
		case err != nil:
			return err
		}

		// a gap in the stream makes the buffered word unreliable
		if n := sub.Dropped(); n != dropped {
			e.log.Debugw("events dropped, discarding word", "dropped", n-dropped)
			dropped = n
			e.reset()
		}

		switch ev.Kind {
		case bus.KindShutdown:
			e.log.Info("layout switcher stopped")
			return nil
		case bus.KindKeyboard:
			e.HandleKey(ctx, ev.Key)
		}
	}
}

// HandleKey advances the state machine by one event. It returns the decision
// taken when the event committed a word, nil otherwise.
func (e *Engine) HandleKey(ctx context.Context, ev keyboard.Event) *Decision {
	if !e.cfg.Enabled || ev.Injected() {
		return nil
	}

	e.trackModifiers(ev)

	if !ev.IsKeyDown {
		if !(e.altDown && e.shiftDown) {
			e.hotkeyFired = false
		}
		return nil
	}

	if e.altDown && e.shiftDown && !e.hotkeyFired {
		e.hotkeyFired = true
		e.onHotkey(ctx)
	}

	if !e.cfg.AutoDetect || e.altDown {
		return nil
	}

	vk := ev.VKCode
	switch {
	case keyboard.IsModifier(vk):
		return nil

	case keyboard.IsLetter(vk):
		if e.ctrlDown || e.winDown {
			e.reset()
			return nil
		}
		r, _ := keyboard.Letter(vk, e.shiftDown != e.capsOn)
		if len(e.word) == 0 {
			e.origin = e.activeClass()
		}
		e.word = append(e.word, r)

	case vk == keyboard.VKBack:
		if e.ctrlDown {
			e.reset()
			return nil
		}
		if len(e.word) > 0 {
			e.word = e.word[:len(e.word)-1]
		}
		if len(e.word) == 0 {
			e.origin = translit.Unknown
		}

	case vk == keyboard.VKSpace:
		return e.commit(ctx, ' ')

	case vk == keyboard.VKReturn:
		if e.cfg.CorrectOnEnter {
			return e.commit(ctx, '\n')
		}
		e.reset()

	default:
		e.reset()
	}

	return nil
}

func (e *Engine) trackModifiers(ev keyboard.Event) {
	switch vk := ev.VKCode; {
	case keyboard.IsAlt(vk):
		e.altDown = ev.IsKeyDown
	case keyboard.IsShift(vk):
		e.shiftDown = ev.IsKeyDown
	case keyboard.IsCtrl(vk):
		e.ctrlDown = ev.IsKeyDown
	case keyboard.IsWin(vk):
		e.winDown = ev.IsKeyDown
	case vk == keyboard.VKCapital:
		// auto-repeat sends more key-downs, the lock only flips on the first
		if ev.IsKeyDown && !e.capsHeld {
			e.capsOn = !e.capsOn
		}
		e.capsHeld = ev.IsKeyDown
	}
}

func (e *Engine) onHotkey(ctx context.Context) {
	if !e.cfg.SwitchOnHotkey {
		e.log.Debug("alt+shift observed, layout switch left to the system")
		return
	}

	if err := e.executor.SwitchToNextLayout(ctx); err != nil {
		e.log.Debugw("hotkey layout switch skipped", "error", err)
	}
}

func (e *Engine) commit(ctx context.Context, boundary rune) *Decision {
	defer e.reset()

	if e.ctrlDown || e.winDown || len(e.word) < e.cfg.DetectThreshold {
		return nil
	}

	word := string(e.word)

	info, err := e.guard.Permit()
	if err != nil {
		e.log.Debugw("word skipped, context not permitted", "error", err)
		return nil
	}

	commitClass := e.activeClass()
	if commitClass == translit.Unknown {
		e.log.Debugw("word skipped, unknown layout", "process", info.ProcessName)
		return nil
	}

	class := e.origin
	if class == translit.Unknown {
		class = commitClass
	}

	d := Decide(word, class, e.heuristics)
	d.Boundary = boundary

	e.log.Debugw("word committed",
		"word", word,
		"origin", class.String(),
		"commit", commitClass.String(),
		"direction", d.Direction.String(),
		"process", info.ProcessName,
		"title", info.Title,
	)

	if d.Direction == None {
		return &d
	}

	if err := e.executor.Apply(ctx, d); err != nil {
		if errors.Is(err, ErrForbidden) {
			e.log.Debugw("correction skipped", "error", err)
		} else {
			e.log.Warnw("correction failed", "direction", d.Direction.String(), "error", err)
		}
	}

	return &d
}

func (e *Engine) activeClass() translit.LayoutClass {
	langID, err := e.oracle.ActiveLangID()
	if err != nil {
		e.log.Debugw("active layout unavailable", "error", err)
		return translit.Unknown
	}
	return translit.ClassFromLangID(langID)
}

func (e *Engine) reset() {
	e.word = e.word[:0]
	e.origin = translit.Unknown
}
