// Package bus fans keyboard events and the shutdown signal out to every
// subscriber. Each subscriber owns a bounded queue; when a slow subscriber's
// queue is full the oldest event is dropped, so delivery is at most once.
package bus

import (
	"context"
	"errors"
	"sync"

	"codeberg.org/miketth/retype/pkg/keyboard"
)

type Kind int

const (
	KindKeyboard Kind = iota + 1
	KindShutdown
)

type Event struct {
	Kind Kind
	Key  keyboard.Event
}

func Keyboard(ev keyboard.Event) Event {
	return Event{Kind: KindKeyboard, Key: ev}
}

func Shutdown() Event {
	return Event{Kind: KindShutdown}
}

var ErrClosed = errors.New("subscription closed")

type Bus struct {
	mu       sync.Mutex
	capacity int
	subs     map[*Subscription]struct{}
}

func New(capacity int) *Bus {
	if capacity <= 0 {
		capacity = 256
	}
	return &Bus{
		capacity: capacity,
		subs:     make(map[*Subscription]struct{}),
	}
}

// Subscribe registers a new subscriber. It only observes events published
// after the call returns.
func (b *Bus) Subscribe() *Subscription {
	s := &Subscription{
		bus:    b,
		queue:  make([]Event, 0, b.capacity),
		cap:    b.capacity,
		notify: make(chan struct{}, 1),
	}

	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()

	return s
}

// Publish never blocks. The bus lock is held across all subscribers so every
// subscriber sees events in the same relative order.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for s := range b.subs {
		s.push(ev)
	}
}

func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

func (b *Bus) remove(s *Subscription) {
	b.mu.Lock()
	delete(b.subs, s)
	b.mu.Unlock()
}

type Subscription struct {
	bus *Bus

	mu      sync.Mutex
	queue   []Event
	cap     int
	dropped uint64
	closed  bool
	notify  chan struct{}
}

func (s *Subscription) push(ev Event) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if len(s.queue) == s.cap {
		s.queue = s.queue[1:]
		s.dropped++
	}
	s.queue = append(s.queue, ev)
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}

// Recv blocks until an event is available, the context is done or the
// subscription is closed. Queued events are still drained after Close.
func (s *Subscription) Recv(ctx context.Context) (Event, error) {
	for {
		s.mu.Lock()
		if len(s.queue) > 0 {
			ev := s.queue[0]
			s.queue = s.queue[1:]
			s.mu.Unlock()
			return ev, nil
		}
		closed := s.closed
		s.mu.Unlock()

		if closed {
			return Event{}, ErrClosed
		}

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-s.notify:
		}
	}
}

// Dropped returns how many events were discarded because the queue was full.
func (s *Subscription) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

func (s *Subscription) Close() {
	s.bus.remove(s)

	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	select {
	case s.notify <- struct{}{}:
	default:
	}
}
