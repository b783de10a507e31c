package bus

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

func NewHub[T any]() *Hub[T] {
	return &Hub[T]{
		mu:   sync.Mutex{},
		subs: make(map[string]*Subscription[T]),
	}
}

// Hub fans events out to subscribers.
type Hub[T any] struct {
	mu   sync.Mutex
	subs map[string]*Subscription[T]
}

// Subscription receives events from a Hub until it is unsubscribed.
type Subscription[T any] struct {
	ID   string
	C    <-chan T
	c    chan T
	done chan struct{}
	hub  *Hub[T]
	once sync.Once
}

// Unsubscribe stops delivery and releases any Broadcast waiting on this
// subscription. It is safe to call more than once.
func (s *Subscription[T]) Unsubscribe() {
	s.once.Do(func() {
		s.hub.mu.Lock()
		delete(s.hub.subs, s.ID)
		s.hub.mu.Unlock()
		close(s.done)
	})
}

// Subscribe registers a subscriber whose channel buffers up to size events.
func (h *Hub[T]) Subscribe(size int) *Subscription[T] {
	c := make(chan T, max(size, 0))
	sub := &Subscription[T]{
		ID:   uuid.NewString(),
		C:    c,
		c:    c,
		done: make(chan struct{}),
		hub:  h,
	}

	h.mu.Lock()
	h.subs[sub.ID] = sub
	h.mu.Unlock()

	return sub
}

// Broadcast delivers event to every subscriber, waiting for each one to accept
// it unless ctx is done first. Subscribers that unsubscribe meanwhile are skipped.
func (h *Hub[T]) Broadcast(ctx context.Context, event T) error {
	h.mu.Lock()
	subs := make([]*Subscription[T], 0, len(h.subs))
	for _, sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-sub.done:
		case sub.c <- event:
		}
	}

	return nil
}

func (h *Hub[T]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
