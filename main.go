package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"codeberg.org/miketth/retype/pkg/bus"
	"codeberg.org/miketth/retype/pkg/config"
	"codeberg.org/miketth/retype/pkg/keyboard"
	"codeberg.org/miketth/retype/pkg/retype"
	"github.com/coreos/go-systemd/v22/daemon"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	err := run()
	if err != nil {
		log.Fatalf("error: %+v", err)
	}
}

// platform is the OS specific half of the program.
type platform struct {
	oracle   retype.ContextOracle
	layouts  retype.LayoutSwitcher
	injector retype.Injector
	capture  retype.Capture

	// watchers run alongside the engine until shutdown.
	watchers map[string]func(ctx context.Context) error
	close    func()
}

func run() error {
	configPath := flag.String("config", "", "path to the config file (toml or yaml)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *configPath == "" {
		path, err := config.DefaultPath()
		if err != nil {
			return fmt.Errorf("get config path: %w", err)
		}
		*configPath = path
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := newLogger(cfg.Logging.Level, *debug)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStatsStore(cfg.Stats, log)
	if err != nil {
		return fmt.Errorf("open stats store: %w", err)
	}
	defer store.close()

	queue := keyboard.NewQueue()

	plat, err := startPlatform(cfg, queue, log)
	if err != nil {
		return fmt.Errorf("start platform: %w", err)
	}
	defer plat.close()

	events := bus.New(cfg.Bus.Capacity)
	sub := events.Subscribe()
	defer sub.Close()

	ls := cfg.LayoutSwitcher
	guard := retype.NewGuard(plat.oracle, ls.ForbiddenContexts)
	executor := retype.NewExecutor(guard, plat.layouts, plat.injector, log,
		retype.WithStore(store),
		retype.WithLayoutSwitch(ls.SwitchLayoutOnCorrect),
	)
	engine := retype.NewEngine(ls, plat.oracle, guard, executor, log)

	log.Infow("started retype", "config", *configPath, "stats", cfg.Stats.Backend, "enabled", ls.Enabled)

	errChan := make(chan error, 3+len(plat.watchers))
	var wg sync.WaitGroup

	start := func(name string, fn func(ctx context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(ctx); err != nil {
				errChan <- fmt.Errorf("%s: %w", name, err)
			}
		}()
	}

	start("forward events", func(ctx context.Context) error {
		return forwardEvents(ctx, queue, events)
	})
	start("systemd notify", systemdNotifyLoop)
	for name, watch := range plat.watchers {
		start(name, watch)
	}
	if store.saveLoop != nil {
		start("save stats", store.saveLoop)
	}

	// a dead engine only stops corrections, capture and the rest keep going
	wg.Add(1)
	go func() {
		defer wg.Done()
		err := engine.Run(ctx, sub)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Errorw("layout switcher stopped", "error", err)
		}
	}()

	err = <-errChan
	stop()

	events.Publish(bus.Shutdown())
	if err := plat.capture.Stop(); err != nil {
		log.Warnw("stop capture", "error", err)
	}
	queue.Close()
	wg.Wait()

	store.logTotals(log)

	switch {
	case errors.Is(err, context.Canceled):
		log.Info("shutting down")
		return nil
	case err != nil:
		return err
	}

	return nil
}

// forwardEvents moves captured events onto the bus in arrival order.
func forwardEvents(ctx context.Context, queue *keyboard.Queue, events *bus.Bus) error {
	for {
		ev, err := queue.Pop(ctx)
		switch {
		case errors.Is(err, keyboard.ErrQueueClosed):
			return nil
		case err != nil:
			return err
		}

		events.Publish(bus.Keyboard(ev))
	}
}

func systemdNotifyLoop(ctx context.Context) error {
	// tell systemd that we're ready
	supported, err := daemon.SdNotify(false, daemon.SdNotifyReady)
	if err != nil {
		return fmt.Errorf("notify systemd: %w", err)
	}
	if !supported {
		return nil
	}

	_, _ = daemon.SdNotify(false, "STATUS=Watching for words typed in the wrong layout")

	t, err := daemon.SdWatchdogEnabled(false)
	if err != nil {
		return fmt.Errorf("check watchdog: %w", err)
	}
	// if watchdog is not enabled, we don't need to notify it
	if t == 0 {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			_, _ = daemon.SdNotify(false, daemon.SdNotifyStopping)
			return ctx.Err()

		case <-time.After(t / 2):
			_, err := daemon.SdNotify(false, daemon.SdNotifyWatchdog)
			if err != nil {
				return fmt.Errorf("notify watchdog: %w", err)
			}
		}
	}
}

func newLogger(level string, debug bool) (*zap.SugaredLogger, error) {
	loggerConfig := zap.NewDevelopmentConfig()

	loggerConfig.OutputPaths = []string{"stdout"}
	loggerConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	atomicLevel, err := zap.ParseAtomicLevel(strings.ToLower(level))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}
	if debug {
		atomicLevel = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	loggerConfig.Level = atomicLevel

	logger, err := loggerConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	return logger.Sugar(), nil
}
