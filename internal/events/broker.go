// Package events delivers change notifications between the services that
// write labels and the screens that display them.
package events

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const (
	defaultDebounce   = 100 * time.Millisecond
	defaultQueueSize  = 100
	listenerQueueSize = 16
)

type listener struct {
	projectID string
	ch        chan Event
}

type batchKey struct {
	typ       EventType
	projectID string
}

// Broker is an in-process EventPublisher. Events sent within one debounce
// window are coalesced per type and project before delivery, so a burst of
// writes produces a single refetch on the listening side.
type Broker struct {
	mu        sync.Mutex
	listeners map[int]*listener
	nextID    int
	sequence  int64
	closed    bool

	eventQueue chan Event
	debounce   time.Duration

	ctx         context.Context
	cancel      context.CancelFunc
	batcherDone chan struct{}
}

// BrokerOption configures a Broker
type BrokerOption func(*Broker)

// WithDebounce sets the batching window
func WithDebounce(d time.Duration) BrokerOption {
	return func(b *Broker) {
		if d > 0 {
			b.debounce = d
		}
	}
}

// WithQueueSize sets how many events may wait for the batcher
func WithQueueSize(n int) BrokerOption {
	return func(b *Broker) {
		if n > 0 {
			b.eventQueue = make(chan Event, n)
		}
	}
}

// NewBroker creates a broker and starts its batching goroutine
func NewBroker(opts ...BrokerOption) *Broker {
	ctx, cancel := context.WithCancel(context.Background())
	b := &Broker{
		listeners:   make(map[int]*listener),
		eventQueue:  make(chan Event, defaultQueueSize),
		debounce:    defaultDebounce,
		ctx:         ctx,
		cancel:      cancel,
		batcherDone: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(b)
	}
	go b.startBatcher()
	return b
}

// SendEvent queues an event without blocking
func (b *Broker) SendEvent(event Event) error {
	b.mu.Lock()
	closed := b.closed
	b.mu.Unlock()
	if closed {
		return ErrClosed
	}

	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case b.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// Listen registers a listener for projectID
func (b *Broker) Listen(ctx context.Context, projectID string) (<-chan Event, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil, ErrClosed
	}

	id := b.nextID
	b.nextID++
	l := &listener{projectID: projectID, ch: make(chan Event, listenerQueueSize)}
	b.listeners[id] = l

	go func() {
		select {
		case <-ctx.Done():
			b.removeListener(id)
		case <-b.ctx.Done():
		}
	}()

	return l.ch, nil
}

func (b *Broker) removeListener(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if l, ok := b.listeners[id]; ok {
		delete(b.listeners, id)
		close(l.ch)
	}
}

// Close flushes pending events, closes every listener and stops the batcher
func (b *Broker) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	<-b.batcherDone

	b.mu.Lock()
	defer b.mu.Unlock()
	for id, l := range b.listeners {
		delete(b.listeners, id)
		close(l.ch)
	}
	return nil
}

// startBatcher coalesces queued events and delivers them once per debounce
// window.
func (b *Broker) startBatcher() {
	defer close(b.batcherDone)

	ticker := time.NewTicker(b.debounce)
	defer ticker.Stop()

	pending := make(map[batchKey]Event)
	var order []batchKey

	flushPending := func() {
		for _, key := range order {
			b.deliver(pending[key])
		}
		clear(pending)
		order = order[:0]
	}

	add := func(event Event) {
		key := batchKey{typ: event.Type, projectID: event.ProjectID}
		if _, ok := pending[key]; !ok {
			order = append(order, key)
		}
		pending[key] = event
	}

	for {
		select {
		case <-b.ctx.Done():
			// Drain what was queued before Close
			for {
				select {
				case event := <-b.eventQueue:
					add(event)
				default:
					flushPending()
					return
				}
			}

		case event := <-b.eventQueue:
			add(event)

		case <-ticker.C:
			flushPending()
		}
	}
}

// deliver hands an event to every matching listener. A listener that is not
// keeping up misses the event rather than stalling the broker.
func (b *Broker) deliver(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sequence++
	event.SequenceID = b.sequence

	for _, l := range b.listeners {
		if !event.Matches(l.projectID) {
			continue
		}
		select {
		case l.ch <- event:
		default:
			slog.Warn("dropping event for slow listener",
				"event_type", event.Type,
				"project_id", event.ProjectID,
				"sequence_id", event.SequenceID)
		}
	}
}
