package page

import "github.com/gogpu/curl"

// Option configures a Book.
type Option func(*options)

type options struct {
	viewMode   curl.ViewMode
	background *curl.Color
	startIndex int
	onDone     func()
}

func defaultOptions() options {
	return options{viewMode: curl.SinglePage}
}

// WithViewMode sets the initial view mode of the book's renderer.
func WithViewMode(mode curl.ViewMode) Option {
	return func(o *options) {
		if mode.Valid() {
			o.viewMode = mode
		}
	}
}

// WithBackgroundColor sets the renderer background.
func WithBackgroundColor(c curl.Color) Option {
	return func(o *options) {
		o.background = &c
	}
}

// WithStartIndex sets the initial current page. Out-of-range values are
// clamped.
func WithStartIndex(index int) Option {
	return func(o *options) {
		o.startIndex = index
	}
}

// WithRenderDoneHook sets a function called after every completed frame,
// on the render goroutine.
func WithRenderDoneHook(fn func()) Option {
	return func(o *options) {
		o.onDone = fn
	}
}
