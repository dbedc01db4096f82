package json

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"codeberg.org/miketth/retype/pkg/statsstore"
)

// SaveInterval is how often SaveLooper flushes dirty counters.
const SaveInterval = time.Minute

type StatsStore struct {
	counts statsstore.Counts
	file   *os.File
	lock   sync.Mutex
	dirty  bool
}

func NewStatsStore(filename string) (*StatsStore, error) {
	fileExists := true
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		fileExists = false
	}

	file, err := os.OpenFile(filename, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	store := &StatsStore{
		counts: make(statsstore.Counts),
		file:   file,
	}

	if fileExists {
		if err := store.load(); err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("load: %w", err)
		}
	}

	return store, nil
}

func (s *StatsStore) load() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	info, err := s.file.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}
	if info.Size() == 0 {
		return nil
	}

	if _, err := s.file.Seek(0, 0); err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	if err := json.NewDecoder(s.file).Decode(&s.counts); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	if s.counts == nil {
		s.counts = make(statsstore.Counts)
	}

	return nil
}

// Save writes the counters if they changed since the last save.
func (s *StatsStore) Save() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.dirty {
		return nil
	}

	if _, err := s.file.Seek(0, 0); err != nil {
		return fmt.Errorf("seek to start of file: %w", err)
	}

	if err := s.file.Truncate(0); err != nil {
		return fmt.Errorf("truncate file: %w", err)
	}

	if err := json.NewEncoder(s.file).Encode(s.counts); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	s.dirty = false

	return nil
}

// SaveLooper saves periodically and once more on cancellation. The file
// stays open, increments that land after it returns are written by Close.
func (s *StatsStore) SaveLooper(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			if err := s.Save(); err != nil {
				return fmt.Errorf("save: %w", err)
			}

			return ctx.Err()
		case <-time.After(SaveInterval):
			if err := s.Save(); err != nil {
				return fmt.Errorf("save: %w", err)
			}
		}
	}
}

// Close flushes pending counters and closes the file.
func (s *StatsStore) Close() error {
	saveErr := s.Save()
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if saveErr != nil {
		return fmt.Errorf("save: %w", saveErr)
	}
	return nil
}

func (s *StatsStore) Increment(app string, direction string, _ time.Time) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.counts.Add(app, direction, 1)
	s.dirty = true
	return nil
}

func (s *StatsStore) GetCounts(app string) (map[string]int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.counts.ForApp(app), nil
}

func (s *StatsStore) Totals() (map[string]int64, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.counts.Totals(), nil
}
