package host

import "time"

// RenderMode selects when the loop draws frames.
type RenderMode int

const (
	// RenderContinuously draws a frame every frame interval.
	RenderContinuously RenderMode = iota

	// RenderWhenDirty draws only after RequestRender or a resize.
	RenderWhenDirty
)

// String returns the render mode name.
func (m RenderMode) String() string {
	switch m {
	case RenderContinuously:
		return "continuous"
	case RenderWhenDirty:
		return "when-dirty"
	default:
		return "unknown"
	}
}

// Option configures a Loop.
type Option func(*options)

type options struct {
	mode       RenderMode
	interval   time.Duration
	bufferSize int
	width      int
	height     int
	maxFrames  uint64
	frameHook  func(frame uint64) error
}

func defaultOptions() options {
	return options{
		mode:       RenderContinuously,
		interval:   time.Second / 60,
		bufferSize: 64,
	}
}

// WithRenderMode sets the initial render mode. The default is
// RenderContinuously.
func WithRenderMode(mode RenderMode) Option {
	return func(o *options) {
		o.mode = mode
	}
}

// WithFrameInterval sets the frame interval for continuous rendering.
// Non-positive values keep the default of 1/60 s.
func WithFrameInterval(d time.Duration) Option {
	return func(o *options) {
		if d > 0 {
			o.interval = d
		}
	}
}

// WithEventBuffer sets the capacity of the event queue.
func WithEventBuffer(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithSize sets the surface size applied when the loop starts. Sizes with
// a non-positive dimension are ignored.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width, o.height = width, height
	}
}

// WithMaxFrames stops the loop after n frames. Zero means no limit.
func WithMaxFrames(n uint64) Option {
	return func(o *options) {
		o.maxFrames = n
	}
}

// WithFrameHook sets a function called on the render goroutine after
// every successful frame. A non-nil error stops the loop and is returned
// by Run.
func WithFrameHook(fn func(frame uint64) error) Option {
	return func(o *options) {
		o.frameHook = fn
	}
}
