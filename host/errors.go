package host

import "errors"

var (
	// ErrClosed is returned by QueueEvent after the loop has stopped.
	ErrClosed = errors.New("host: loop closed")

	// ErrRunning is returned by Run when the loop is already running.
	ErrRunning = errors.New("host: loop already running")

	// ErrQueueFull is returned by QueueEvent when the event buffer is full.
	ErrQueueFull = errors.New("host: event queue full")
)
