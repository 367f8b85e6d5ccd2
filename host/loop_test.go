package host

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gogpu/curl"
	"github.com/gogpu/curl/gles"
	"github.com/gogpu/curl/recording"
)

// recordingSurface is a Surface that records GL calls and resizes.
type recordingSurface struct {
	*recording.Recorder
	sizes [][2]int
}

func newSurface() *recordingSurface {
	return &recordingSurface{Recorder: recording.NewRecorder()}
}

func (s *recordingSurface) Resize(width, height int) {
	s.sizes = append(s.sizes, [2]int{width, height})
}

// fakeRenderer counts lifecycle calls. It is only touched by the render
// goroutine while Run is active.
type fakeRenderer struct {
	created int
	changed [][2]int
	drawn   int
	err     error
}

func (r *fakeRenderer) OnSurfaceCreated(gles.GL) {
	r.created++
}

func (r *fakeRenderer) OnSurfaceChanged(_ gles.GL, width, height int) {
	r.changed = append(r.changed, [2]int{width, height})
}

func (r *fakeRenderer) OnDrawFrame(gles.GL) error {
	r.drawn++
	return r.err
}

func runLoop(t *testing.T, l *Loop) error {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := l.Run(ctx)
	if ctx.Err() != nil {
		t.Fatal("loop did not stop before the deadline")
	}
	return err
}

func TestLoopMaxFrames(t *testing.T) {
	r := &fakeRenderer{}
	s := newSurface()
	l := NewLoop(r, s,
		WithFrameInterval(time.Millisecond),
		WithSize(800, 400),
		WithMaxFrames(3),
	)

	if err := runLoop(t, l); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if l.Frames() != 3 || r.drawn != 3 {
		t.Errorf("frames = %d, drawn = %d, want 3", l.Frames(), r.drawn)
	}
	if r.created != 1 {
		t.Errorf("created = %d, want 1", r.created)
	}
	if len(r.changed) != 1 || r.changed[0] != [2]int{800, 400} {
		t.Errorf("changed = %v, want [[800 400]]", r.changed)
	}
	if len(s.sizes) != 1 || s.sizes[0] != [2]int{800, 400} {
		t.Errorf("surface sizes = %v, want [[800 400]]", s.sizes)
	}
	select {
	case <-l.Done():
	default:
		t.Error("Done() not closed after Run returned")
	}
}

func TestLoopRunTwice(t *testing.T) {
	l := NewLoop(&fakeRenderer{}, newSurface(), WithMaxFrames(1))
	if err := runLoop(t, l); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if err := l.Run(context.Background()); !errors.Is(err, ErrRunning) {
		t.Errorf("second Run() error = %v, want ErrRunning", err)
	}
}

func TestLoopFrameError(t *testing.T) {
	boom := errors.New("boom")
	r := &fakeRenderer{err: boom}
	l := NewLoop(r, newSurface())

	err := runLoop(t, l)
	if !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
	if l.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", l.Frames())
	}
}

func TestLoopFrameHook(t *testing.T) {
	stop := errors.New("stop")
	var seen []uint64
	l := NewLoop(&fakeRenderer{}, newSurface(),
		WithFrameInterval(time.Millisecond),
		WithFrameHook(func(frame uint64) error {
			seen = append(seen, frame)
			if frame == 2 {
				return stop
			}
			return nil
		}),
	)

	if err := runLoop(t, l); !errors.Is(err, stop) {
		t.Fatalf("Run() error = %v, want %v", err, stop)
	}
	if len(seen) != 2 || seen[0] != 1 || seen[1] != 2 {
		t.Errorf("hook frames = %v, want [1 2]", seen)
	}
}

func TestLoopContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := NewLoop(&fakeRenderer{}, newSurface(),
		WithRenderMode(RenderWhenDirty),
		WithFrameHook(func(uint64) error {
			cancel()
			return nil
		}),
	)

	if err := l.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v, want nil on cancel", err)
	}
	if l.Frames() != 1 {
		t.Errorf("Frames() = %d, want 1", l.Frames())
	}
}

func TestLoopWhenDirty(t *testing.T) {
	l := NewLoop(&fakeRenderer{}, newSurface(),
		WithRenderMode(RenderWhenDirty),
		WithMaxFrames(3),
	)

	go func() {
		for {
			select {
			case <-l.Done():
				return
			case <-time.After(time.Millisecond):
				l.RequestRender()
			}
		}
	}()

	if err := runLoop(t, l); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if l.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", l.Frames())
	}
}

func TestLoopResize(t *testing.T) {
	r := &fakeRenderer{}
	s := newSurface()
	var l *Loop
	l = NewLoop(r, s,
		WithRenderMode(RenderWhenDirty),
		WithSize(800, 400),
		WithMaxFrames(2),
		WithFrameHook(func(frame uint64) error {
			if frame == 1 {
				l.Resize(100, 50)
			}
			return nil
		}),
	)

	if err := runLoop(t, l); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := [][2]int{{800, 400}, {100, 50}}
	if len(r.changed) != 2 || r.changed[0] != want[0] || r.changed[1] != want[1] {
		t.Errorf("changed = %v, want %v", r.changed, want)
	}
	if len(s.sizes) != 2 {
		t.Errorf("surface resized %d times, want 2", len(s.sizes))
	}
}

func TestLoopResizeIgnoresInvalidSizes(t *testing.T) {
	r := &fakeRenderer{}
	s := newSurface()
	var l *Loop
	l = NewLoop(r, s,
		WithRenderMode(RenderWhenDirty),
		WithSize(0, 400),
		WithMaxFrames(2),
		WithFrameHook(func(frame uint64) error {
			if frame == 1 {
				l.Resize(0, 4)
				l.Resize(-1, 4)
				l.Resize(4, -1)
				l.Resize(100, 50)
			}
			return nil
		}),
	)

	if err := runLoop(t, l); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := [2]int{100, 50}
	if len(s.sizes) != 1 || s.sizes[0] != want {
		t.Errorf("surface sizes = %v, want [%v]", s.sizes, want)
	}
	if len(r.changed) != 1 || r.changed[0] != want {
		t.Errorf("changed = %v, want [%v]", r.changed, want)
	}
}

func TestLoopQueueEvent(t *testing.T) {
	r := &fakeRenderer{}
	l := NewLoop(r, newSurface(),
		WithRenderMode(RenderWhenDirty),
		WithMaxFrames(2),
	)

	ran := false
	err := l.QueueEvent(func() {
		ran = r.drawn == 1
		l.RequestRender()
	})
	if err != nil {
		t.Fatalf("QueueEvent() error = %v", err)
	}

	if err := runLoop(t, l); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ran {
		t.Error("event did not run on the render goroutine between frames")
	}
	if err := l.QueueEvent(func() {}); !errors.Is(err, ErrClosed) {
		t.Errorf("QueueEvent() after stop = %v, want ErrClosed", err)
	}
}

func TestLoopQueueFull(t *testing.T) {
	l := NewLoop(&fakeRenderer{}, newSurface(), WithEventBuffer(1))
	if err := l.QueueEvent(func() {}); err != nil {
		t.Fatalf("first QueueEvent() error = %v", err)
	}
	if err := l.QueueEvent(func() {}); !errors.Is(err, ErrQueueFull) {
		t.Errorf("second QueueEvent() error = %v, want ErrQueueFull", err)
	}
	if err := l.QueueEvent(nil); err != nil {
		t.Errorf("QueueEvent(nil) error = %v, want nil", err)
	}
}

func TestLoopQueueEventOnLastFrame(t *testing.T) {
	var l *Loop
	ran := false
	var queueErr error
	l = NewLoop(&fakeRenderer{}, newSurface(),
		WithMaxFrames(1),
		WithFrameHook(func(uint64) error {
			queueErr = l.QueueEvent(func() { ran = true })
			return nil
		}),
	)

	if err := runLoop(t, l); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if queueErr != nil {
		t.Fatalf("QueueEvent() in hook error = %v", queueErr)
	}
	if !ran {
		t.Error("event accepted before stop did not run")
	}
	if err := l.QueueEvent(func() {}); !errors.Is(err, ErrClosed) {
		t.Errorf("QueueEvent() after stop = %v, want ErrClosed", err)
	}
}

// flushingSurface counts flushes and may fail them.
type flushingSurface struct {
	*recordingSurface
	flushed int
	err     error
}

func (s *flushingSurface) Flush() error {
	s.flushed++
	return s.err
}

func TestLoopFlushesSurface(t *testing.T) {
	s := &flushingSurface{recordingSurface: newSurface()}
	var atHook []int
	l := NewLoop(&fakeRenderer{}, s,
		WithFrameInterval(time.Millisecond),
		WithMaxFrames(2),
		WithFrameHook(func(uint64) error {
			atHook = append(atHook, s.flushed)
			return nil
		}),
	)
	if err := runLoop(t, l); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if s.flushed != 2 {
		t.Errorf("flushed = %d, want 2", s.flushed)
	}
	if len(atHook) != 2 || atHook[0] != 1 || atHook[1] != 2 {
		t.Errorf("flushes seen by hook = %v, want [1 2]", atHook)
	}
}

func TestLoopFlushError(t *testing.T) {
	boom := errors.New("device lost")
	s := &flushingSurface{recordingSurface: newSurface(), err: boom}
	l := NewLoop(&fakeRenderer{}, s)
	if err := runLoop(t, l); !errors.Is(err, boom) {
		t.Fatalf("Run() error = %v, want %v", err, boom)
	}
	if l.Frames() != 0 {
		t.Errorf("Frames() = %d, want 0", l.Frames())
	}
}

func TestLoopSetRenderMode(t *testing.T) {
	l := NewLoop(&fakeRenderer{}, newSurface())
	if got := l.RenderMode(); got != RenderContinuously {
		t.Fatalf("RenderMode() = %v, want %v", got, RenderContinuously)
	}
	l.SetRenderMode(RenderWhenDirty)
	if got := l.RenderMode(); got != RenderWhenDirty {
		t.Errorf("RenderMode() = %v, want %v", got, RenderWhenDirty)
	}
}

func TestRenderModeString(t *testing.T) {
	tests := []struct {
		mode RenderMode
		want string
	}{
		{RenderContinuously, "continuous"},
		{RenderWhenDirty, "when-dirty"},
		{RenderMode(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("RenderMode(%d).String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestLoopDrivesRenderer(t *testing.T) {
	done := 0
	var sizes [][2]int
	r := curl.NewRenderer(curl.ObserverFuncs{
		BitmapSizeChanged: func(w, h int) { sizes = append(sizes, [2]int{w, h}) },
		RenderDone:        func() { done++ },
	}, curl.WithViewMode(curl.DoublePage))

	s := newSurface()
	l := NewLoop(r, s,
		WithFrameInterval(time.Millisecond),
		WithSize(800, 400),
		WithMaxFrames(2),
	)
	if err := runLoop(t, l); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if done != 2 {
		t.Errorf("render done = %d, want 2", done)
	}
	if len(sizes) != 1 || sizes[0] != [2]int{400, 400} {
		t.Errorf("bitmap sizes = %v, want [[400 400]]", sizes)
	}
	if got := s.Count(recording.CmdClear); got != 2 {
		t.Errorf("Clear commands = %d, want 2", got)
	}
	if got := s.Count(recording.CmdViewport); got != 1 {
		t.Errorf("Viewport commands = %d, want 1", got)
	}
}
