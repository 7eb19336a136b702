package events

import (
	"context"
	"sync"
	"time"
)

// Bus fans change notifications out to subscribers.
// Publishing never blocks: each subscriber has room for one pending event,
// and further events are absorbed until that one is received.
type Bus struct {
	mu     sync.Mutex
	subs   map[*Subscription]struct{}
	seq    int64
	closed bool
	done   chan struct{}
}

// Subscription is a registered receiver. Close must be called when the
// receiver goes away; it is safe to call more than once.
type Subscription struct {
	C <-chan Event

	bus  *Bus
	ch   chan Event
	once sync.Once
}

func NewBus() *Bus {
	return &Bus{subs: make(map[*Subscription]struct{}), done: make(chan struct{})}
}

// Subscribe registers a new receiver. Subscribing to a closed bus yields
// an already closed subscription.
func (b *Bus) Subscribe() *Subscription {
	ch := make(chan Event, 1)
	sub := &Subscription{C: ch, bus: b, ch: ch}

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		sub.once.Do(func() { close(ch) })
		return sub
	}
	b.subs[sub] = struct{}{}
	return sub
}

// Listen subscribes until ctx ends or the bus is closed
func (b *Bus) Listen(ctx context.Context) <-chan Event {
	sub := b.Subscribe()
	go func() {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		sub.Close()
	}()
	return sub.C
}

// Publish notifies every subscriber and returns the event sent
func (b *Bus) Publish(at time.Time) Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.seq++
	event := Event{Type: EventDataChanged, Timestamp: at, SequenceID: b.seq}
	for sub := range b.subs {
		select {
		case sub.ch <- event:
		default:
			// a notification is already pending for this subscriber
		}
	}
	return event
}

// Subscribers returns the number of registered receivers
func (b *Bus) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close unregisters every subscriber and closes their channels
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	subs := b.subs
	b.subs = make(map[*Subscription]struct{})
	b.closed = true
	close(b.done)
	b.mu.Unlock()

	for sub := range subs {
		sub.once.Do(func() { close(sub.ch) })
	}
}

// Close unregisters the subscription and closes C
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s)
		s.bus.mu.Unlock()
		close(s.ch)
	})
}
