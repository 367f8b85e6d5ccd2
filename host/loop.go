package host

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/curl"
	"github.com/gogpu/curl/gles"
)

// Renderer is the lifecycle a Loop drives. *curl.Renderer implements it.
type Renderer interface {
	OnSurfaceCreated(gl gles.GL)
	OnSurfaceChanged(gl gles.GL, width, height int)
	OnDrawFrame(gl gles.GL) error
}

// Surface is the graphics context the loop renders into.
// *render.SoftwareGL implements it.
type Surface interface {
	gles.GL

	// Resize changes the size of the drawable. It is called on the render
	// goroutine before OnSurfaceChanged.
	Resize(width, height int)
}

// Flusher is implemented by surfaces that batch GPU work, such as
// *render.GPUGL. The loop flushes after every drawn frame, before the
// frame hook runs.
type Flusher interface {
	Flush() error
}

type size struct {
	width, height int
}

// Loop is the render goroutine of a host surface.
//
// Run must be called once; it blocks until the context is canceled, the
// frame limit is reached or a frame fails. All other methods are safe for
// concurrent use and may be called before, during and after Run.
type Loop struct {
	renderer Renderer
	surface  Surface
	opts     options

	events chan func()
	wake   chan struct{}
	done   chan struct{}

	mu      sync.Mutex
	mode    RenderMode
	pending *size

	// evMu orders QueueEvent against shutdown so that an accepted event
	// is always run.
	evMu   sync.Mutex
	closed bool

	running atomic.Bool
	frames  atomic.Uint64
}

// NewLoop creates a loop that drives renderer on surface.
func NewLoop(renderer Renderer, surface Surface, opts ...Option) *Loop {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	l := &Loop{
		renderer: renderer,
		surface:  surface,
		opts:     o,
		events:   make(chan func(), o.bufferSize),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		mode:     o.mode,
	}
	if o.width > 0 && o.height > 0 {
		l.pending = &size{o.width, o.height}
	}
	return l
}

// RequestRender asks for a frame. In RenderWhenDirty mode this is the only
// way, besides a resize, to get one drawn. Requests made before the
// previous one was served are coalesced.
func (l *Loop) RequestRender() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Resize schedules a surface size change. Only the latest size is applied.
// Sizes with a non-positive dimension are dropped.
func (l *Loop) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		curl.Logger().Warn("host: ignoring invalid size", "width", width, "height", height)
		return
	}
	l.mu.Lock()
	l.pending = &size{width, height}
	l.mu.Unlock()
	l.RequestRender()
}

// SetRenderMode switches between continuous and on-demand rendering.
func (l *Loop) SetRenderMode(mode RenderMode) {
	l.mu.Lock()
	l.mode = mode
	l.mu.Unlock()
	l.RequestRender()
}

// RenderMode returns the current render mode.
func (l *Loop) RenderMode() RenderMode {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.mode
}

// QueueEvent runs fn on the render goroutine before the next frame.
// An accepted event runs even if the loop stops first; Run drains the
// queue before it returns. QueueEvent returns ErrClosed once the loop has
// stopped and ErrQueueFull when the event buffer is full.
func (l *Loop) QueueEvent(fn func()) error {
	if fn == nil {
		return nil
	}
	l.evMu.Lock()
	defer l.evMu.Unlock()
	if l.closed {
		return ErrClosed
	}
	select {
	case l.events <- fn:
		return nil
	default:
		return ErrQueueFull
	}
}

// Frames returns the number of frames drawn.
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

// Run creates the surface and renders until ctx is canceled, the frame
// limit is reached or a frame fails. Cancellation is a clean shutdown and
// returns nil.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrRunning
	}

	// GL contexts are bound to the thread that created them.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer l.shutdown()

	log := curl.Logger()
	l.renderer.OnSurfaceCreated(l.surface)
	log.Debug("host: loop started", "mode", l.RenderMode(), "interval", l.opts.interval)

	ticker := time.NewTicker(l.opts.interval)
	defer ticker.Stop()
	mode := l.RenderMode()
	if mode == RenderWhenDirty {
		ticker.Stop()
	}

	dirty := true
	for {
		if l.applyResize() {
			dirty = true
		}
		if m := l.RenderMode(); m != mode {
			mode = m
			if mode == RenderContinuously {
				ticker.Reset(l.opts.interval)
			} else {
				ticker.Stop()
			}
		}

		if dirty {
			dirty = false
			stop, err := l.drawFrame()
			if err != nil || stop {
				return err
			}
		}

		select {
		case <-ctx.Done():
			log.Debug("host: loop stopped", "frames", l.Frames())
			return nil
		case fn := <-l.events:
			fn()
		case <-l.wake:
			if mode == RenderWhenDirty {
				dirty = true
			}
		case <-ticker.C:
			dirty = mode == RenderContinuously
		}
	}
}

// shutdown refuses further events, runs the ones already accepted and
// closes done.
func (l *Loop) shutdown() {
	l.evMu.Lock()
	l.closed = true
	l.evMu.Unlock()
	for {
		select {
		case fn := <-l.events:
			fn()
		default:
			close(l.done)
			return
		}
	}
}

// applyResize forwards a pending size to the surface and renderer.
func (l *Loop) applyResize() bool {
	l.mu.Lock()
	p := l.pending
	l.pending = nil
	l.mu.Unlock()
	if p == nil {
		return false
	}
	if p.width <= 0 || p.height <= 0 {
		curl.Logger().Warn("host: ignoring invalid size", "width", p.width, "height", p.height)
		return false
	}
	l.surface.Resize(p.width, p.height)
	l.renderer.OnSurfaceChanged(l.surface, p.width, p.height)
	return true
}

// drawFrame draws one frame and reports whether the loop should stop.
func (l *Loop) drawFrame() (bool, error) {
	n := l.frames.Load() + 1
	if err := l.renderer.OnDrawFrame(l.surface); err != nil {
		return true, fmt.Errorf("host: frame %d: %w", n, err)
	}
	if f, ok := l.surface.(Flusher); ok {
		if err := f.Flush(); err != nil {
			return true, fmt.Errorf("host: frame %d flush: %w", n, err)
		}
	}
	l.frames.Store(n)

	if l.opts.frameHook != nil {
		if err := l.opts.frameHook(n); err != nil {
			return true, fmt.Errorf("host: frame %d hook: %w", n, err)
		}
	}
	return l.opts.maxFrames > 0 && n >= l.opts.maxFrames, nil
}
