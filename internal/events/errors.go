package events

import "errors"

var (
	// ErrQueueFull is returned by SendEvent when the broker is saturated.
	// PublishWithRetry backs off and tries again.
	ErrQueueFull = errors.New("event queue full")

	// ErrClosed is returned after Close
	ErrClosed = errors.New("event broker closed")
)
