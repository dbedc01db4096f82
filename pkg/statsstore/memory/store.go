package memory

import (
	"sync"
	"time"

	"codeberg.org/miketth/retype/pkg/statsstore"
)

type StatsStore struct {
	counts statsstore.Counts
	lock   sync.Mutex
}

func NewStatsStore() *StatsStore {
	return &StatsStore{
		counts: make(statsstore.Counts),
	}
}

func (s *StatsStore) Increment(app string, direction string, _ time.Time) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.counts.Add(app, direction, 1)
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
