package events

import "context"

// EventPublisher defines the interface for sending and receiving events.
// This interface allows for loose coupling and easier testing by depending
// on behavior rather than concrete implementation.
type EventPublisher interface {
	// SendEvent queues an event for delivery to listeners
	SendEvent(event Event) error

	// Listen returns a channel of events for projectID (AllProjects for all).
	// The channel is closed when ctx is done or the publisher closes.
	Listen(ctx context.Context, projectID string) (<-chan Event, error)

	// Close stops delivery and closes every listener channel
	Close() error
}

// Compile-time verification that *Broker implements EventPublisher
var _ EventPublisher = (*Broker)(nil)
