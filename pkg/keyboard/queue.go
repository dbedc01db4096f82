package keyboard

import (
	"context"
	"errors"
	"sync"
)

var ErrQueueClosed = errors.New("event queue closed")

// Queue is an unbounded FIFO between a capture callback and the rest of the
// program. Push never blocks, so it is safe to call from an OS hook.
type Queue struct {
	mu     sync.Mutex
	items  []Event
	closed bool
	notify chan struct{}
}

func NewQueue() *Queue {
	return &Queue{notify: make(chan struct{}, 1)}
}

func (q *Queue) Push(ev Event) {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.items = append(q.items, ev)
	q.mu.Unlock()

	q.wake()
}

// Pop returns the oldest event, blocking until one arrives. After Close the
// remaining events are still returned before ErrQueueClosed.
func (q *Queue) Pop(ctx context.Context) (Event, error) {
	for {
		q.mu.Lock()
		if len(q.items) > 0 {
			ev := q.items[0]
			q.items[0] = Event{}
			q.items = q.items[1:]
			q.mu.Unlock()
			return ev, nil
		}
		closed := q.closed
		q.mu.Unlock()

		if closed {
			return Event{}, ErrQueueClosed
		}

		select {
		case <-ctx.Done():
			return Event{}, ctx.Err()
		case <-q.notify:
		}
	}
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()

	q.wake()
}

func (q *Queue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
