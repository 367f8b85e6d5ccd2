package recording

import "errors"

var (
	// ErrNilTarget is returned by Playback when the destination GL is nil.
	ErrNilTarget = errors.New("recording: nil playback target")

	// ErrUnknownCommand is returned by Playback for a command type it cannot replay.
	ErrUnknownCommand = errors.New("recording: unknown command")
)
