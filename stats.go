package main

import (
	"context"
	"fmt"

	"codeberg.org/miketth/retype/pkg/config"
	"codeberg.org/miketth/retype/pkg/retype"
	"codeberg.org/miketth/retype/pkg/statsstore/json"
	"codeberg.org/miketth/retype/pkg/statsstore/memory"
	"codeberg.org/miketth/retype/pkg/statsstore/sqlite"
	"go.uber.org/zap"
)

type totaler interface {
	retype.CorrectionStore
	Totals() (map[string]int64, error)
}

type statsStore struct {
	totaler

	// saveLoop is set for backends that flush in the background.
	saveLoop func(ctx context.Context) error
	close    func()
}

func openStatsStore(cfg config.StatsConfig, log *zap.SugaredLogger) (*statsStore, error) {
	path := cfg.Path
	if path == "" && cfg.Backend != config.StatsMemory {
		p, err := config.DefaultStatsPath(cfg.Backend)
		if err != nil {
			return nil, err
		}
		path = p
	}

	switch cfg.Backend {
	case config.StatsMemory:
		return &statsStore{totaler: memory.NewStatsStore(), close: func() {}}, nil

	case config.StatsJSON:
		s, err := json.NewStatsStore(path)
		if err != nil {
			return nil, fmt.Errorf("json store %s: %w", path, err)
		}
		return &statsStore{totaler: s, saveLoop: s.SaveLooper, close: func() {
			if err := s.Close(); err != nil {
				log.Warnw("close stats file", "error", err)
			}
		}}, nil

	case config.StatsSQLite:
		s, err := sqlite.NewStatsStore(path, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite store %s: %w", path, err)
		}
		return &statsStore{totaler: s, close: func() {
			if err := s.Close(); err != nil {
				log.Warnw("close stats db", "error", err)
			}
		}}, nil
	}

	return nil, fmt.Errorf("%w: unknown stats backend %q", retype.ErrConfigInvalid, cfg.Backend)
}

func (s *statsStore) logTotals(log *zap.SugaredLogger) {
	totals, err := s.Totals()
	if err != nil {
		log.Warnw("read correction totals", "error", err)
		return
	}

	log.Infow("correction totals",
		"en_to_ru", totals[retype.EnToRu.String()],
		"ru_to_en", totals[retype.RuToEn.String()],
	)
}
