// Package pubsub provides a small generic publish/subscribe broker used
// to fan events out to the parts of the program that care about them:
// log lines to the log tail, definition file changes to the app.
package pubsub

import (
	"context"
	"time"
)

// EventType says what kind of occurrence an event describes.
type EventType string

const (
	// EventEmitted marks a one-off occurrence, such as a log line.
	EventEmitted EventType = "emitted"
	// EventChanged marks state a subscriber may want to re-read, such as
	// a definitions file being rewritten.
	EventChanged EventType = "changed"
	// EventRemoved marks something going away, such as a watched file
	// being deleted.
	EventRemoved EventType = "removed"
)

// Event is a published occurrence with a typed payload.
type Event[T any] struct {
	Type    EventType
	Payload T
	At      time.Time
}

// Subscriber hands out subscription channels for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher accepts events for delivery to subscribers.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
