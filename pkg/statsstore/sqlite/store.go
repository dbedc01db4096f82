package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"codeberg.org/miketth/retype/pkg/statsstore"
	"codeberg.org/miketth/retype/pkg/statsstore/sqlite/migrations"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

//go:generate go run ./schemadump -path schema.sql
//go:generate sqlc generate

type StatsStore struct {
	db      *sql.DB
	querier *Queries
}

func NewStatsStore(filename string, log *zap.SugaredLogger) (*StatsStore, error) {
	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if _, err := migrations.Migrate(db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &StatsStore{
		db:      db,
		querier: New(db),
	}, nil
}

func (s *StatsStore) Close() error {
	return s.db.Close()
}

func (s *StatsStore) Increment(app string, direction string, at time.Time) error {
	if err := s.querier.IncrementCorrection(context.Background(), IncrementCorrectionParams{
		App:       statsstore.AppKey(app),
		Direction: direction,
		LastAt:    at.Unix(),
	}); err != nil {
		return fmt.Errorf("sqlite upsert: %w", err)
	}

	return nil
}

func (s *StatsStore) GetCounts(app string) (map[string]int64, error) {
	rows, err := s.querier.GetCountsForApp(context.Background(), statsstore.AppKey(app))
	if err != nil {
		return nil, fmt.Errorf("sqlite select: %w", err)
	}

	ret := make(map[string]int64, len(rows))
	for _, row := range rows {
		ret[row.Direction] = row.Count
	}

	return ret, nil
}

func (s *StatsStore) Totals() (map[string]int64, error) {
	rows, err := s.querier.GetTotals(context.Background())
	if err != nil {
		return nil, fmt.Errorf("sqlite select: %w", err)
	}

	ret := make(map[string]int64, len(rows))
	for _, row := range rows {
		ret[row.Direction] = row.Total
	}

	return ret, nil
}
