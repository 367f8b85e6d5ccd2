package curl

// Option configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Defaults: single page, 0xFF303030 background
//	r := curl.NewRenderer(observer)
//
//	// Two pages on a white background
//	r := curl.NewRenderer(observer,
//	    curl.WithViewMode(curl.DoublePage),
//	    curl.WithBackgroundColor(0xFFFFFFFF))
type Option func(*options)

// options holds optional configuration for Renderer creation.
type options struct {
	viewMode   ViewMode
	background Color
}

// defaultOptions returns the default renderer options.
func defaultOptions() options {
	return options{
		viewMode:   SinglePage,
		background: DefaultBackground,
	}
}

// WithViewMode sets the initial view mode. Unknown modes are ignored.
func WithViewMode(mode ViewMode) Option {
	return func(o *options) {
		if mode.Valid() {
			o.viewMode = mode
		}
	}
}

// WithBackgroundColor sets the background applied by OnSurfaceCreated.
func WithBackgroundColor(c Color) Option {
	return func(o *options) {
		o.background = c
	}
}
