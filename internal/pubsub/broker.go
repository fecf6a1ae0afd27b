package pubsub

import (
	"context"
	"sync"
	"time"
)

const defaultBuffer = 32

// Broker fans events out to any number of subscribers. Publishing never
// blocks; a subscriber that falls behind loses events rather than
// stalling the publisher.
type Broker[T any] struct {
	mu     sync.RWMutex
	nextID int
	subs   map[int]chan Event[T]
	closed bool
	buffer int
}

// NewBroker creates a broker with the default subscriber buffer.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerBuffered[T](defaultBuffer)
}

// NewBrokerBuffered creates a broker whose subscriber channels hold up to
// buffer undelivered events.
func NewBrokerBuffered[T any](buffer int) *Broker[T] {
	return &Broker[T]{
		subs:   make(map[int]chan Event[T]),
		buffer: buffer,
	}
}

// Subscribe registers a new subscriber. The returned channel closes when
// ctx is cancelled or the broker shuts down. Subscribing to a closed
// broker yields an already-closed channel.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		ch := make(chan Event[T])
		close(ch)
		return ch
	}

	id := b.nextID
	b.nextID++
	ch := make(chan Event[T], b.buffer)
	b.subs[id] = ch

	go func() {
		<-ctx.Done()
		b.drop(id)
	}()

	return ch
}

func (b *Broker[T]) drop(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return // Close already tore everything down
	}
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish delivers an event to every subscriber with room in its buffer.
func (b *Broker[T]) Publish(eventType EventType, payload T) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return
	}

	event := Event[T]{
		Type:    eventType,
		Payload: payload,
		At:      time.Now(),
	}
	for _, ch := range b.subs {
		select {
		case ch <- event:
		default:
			// Subscriber buffer full, drop instead of blocking.
		}
	}
}

// Close shuts the broker down and closes every subscriber channel.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
}

// SubscriberCount returns how many subscribers are currently registered.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
