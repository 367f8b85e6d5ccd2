package curl

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/gogpu/curl/gles"
)

// Renderer composes registered meshes into frames on a host-driven surface.
//
// The host calls the three lifecycle hooks from its single render
// goroutine: OnSurfaceCreated once per graphics context, OnSurfaceChanged
// on every resize, and OnDrawFrame on every tick. Any other goroutine may
// concurrently call AddMesh, RemoveMesh, SetViewMode and
// SetBackgroundColor.
//
// A single mutex guards the mesh list, view mode, page rectangles,
// viewport and pending background. It is held for the whole of each
// mutating call and for the whole frame composition, so a caller never
// observes a partially composed frame and a frame never observes a
// partially applied change. Observer callbacks run after the mutex is
// released.
//
// Example:
//
//	r := curl.NewRenderer(observer, curl.WithViewMode(curl.DoublePage))
//	r.AddMesh(leftPage)
//	r.AddMesh(rightPage)
//
//	// render goroutine
//	r.OnSurfaceCreated(gl)
//	r.OnSurfaceChanged(gl, 800, 400)
//	for range ticks {
//	    if err := r.OnDrawFrame(gl); err != nil {
//	        return err
//	    }
//	}
type Renderer struct {
	mu                sync.Mutex
	viewport          Viewport
	mode              ViewMode
	layout            pageLayout
	meshes            orderedSet[Mesh]
	pendingBackground *Color
	sizeSeq           uint64

	// notifyMu serializes bitmap size notifications. It is never acquired
	// while mu is held.
	notifyMu      sync.Mutex
	deliveredSize uint64

	observer          Observer
	defaultBackground Color
	frames            atomic.Uint64
}

// NewRenderer creates a renderer that reports to observer.
// A nil observer discards all notifications.
func NewRenderer(observer Observer, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if observer == nil {
		observer = nopObserver{}
	}
	r := &Renderer{
		mode:              o.viewMode,
		observer:          observer,
		defaultBackground: o.background,
	}
	r.layout, _ = layoutPages(r.mode, Rect{}, 0, 0)
	return r
}

// comparableMesh reports whether m can be registered. Meshes are kept in
// a set keyed by ==, which panics on uncomparable dynamic types.
func comparableMesh(m Mesh, op string) bool {
	if m == nil {
		return false
	}
	if t := reflect.TypeOf(m); !t.Comparable() {
		Logger().Warn("curl: uncomparable mesh ignored", "op", op, "type", t.String())
		return false
	}
	return true
}

// AddMesh registers m as the top-most mesh. A mesh that is already
// registered moves to the top instead of being duplicated. Nil and
// uncomparable meshes are ignored.
func (r *Renderer) AddMesh(m Mesh) {
	if !comparableMesh(m, "add") {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meshes.add(m)
	Logger().Debug("curl: mesh added", "count", r.meshes.len())
}

// RemoveMesh unregisters every occurrence of m. Removing a mesh that is not
// registered is a no-op.
func (r *Renderer) RemoveMesh(m Mesh) {
	if !comparableMesh(m, "remove") {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.meshes.remove(m) {
		Logger().Debug("curl: mesh removed", "count", r.meshes.len())
	}
}

// HasMesh reports whether m is registered.
func (r *Renderer) HasMesh(m Mesh) bool {
	if !comparableMesh(m, "has") {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meshes.contains(m)
}

// Meshes returns the registered meshes in draw order.
func (r *Renderer) Meshes() []Mesh {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meshes.snapshot()
}

// MeshCount returns the number of registered meshes.
func (r *Renderer) MeshCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.meshes.len()
}

// SetBackgroundColor changes the clear color. The change is applied once,
// at the start of the next frame.
func (r *Renderer) SetBackgroundColor(c Color) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pendingBackground = &c
}

// SetViewMode switches between one and two visible pages, recomputes the
// page rectangles and, once the surface size is known, reports the new
// page bitmap size to the observer. Unknown modes are ignored.
func (r *Renderer) SetViewMode(mode ViewMode) {
	if !mode.Valid() {
		Logger().Debug("curl: ignoring unknown view mode", "mode", int(mode))
		return
	}

	r.mu.Lock()
	r.mode = mode
	n := r.relayoutLocked()
	r.mu.Unlock()

	Logger().Debug("curl: view mode set", "mode", mode)
	r.notifySize(n)
}

// ViewMode returns the current view mode.
func (r *Renderer) ViewMode() ViewMode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

// PageRect returns the view-space rectangle reserved for side. The left
// rectangle is empty in SinglePage mode. ok is false for an unknown side.
func (r *Renderer) PageRect(side PageSide) (rect Rect, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layout.rect(side)
}

// ViewRect returns the current view rectangle. It is the zero Rect until
// the first valid OnSurfaceChanged.
func (r *Renderer) ViewRect() Rect {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport.Rect()
}

// BitmapSize returns the pixel size page content should be supplied at.
// ok is false until the surface size is known.
func (r *Renderer) BitmapSize() (width, height int, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.layout.bitmapWidth, r.layout.bitmapHeight, r.viewport.Valid()
}

// PixelToView maps a physical pixel coordinate into view space.
func (r *Renderer) PixelToView(x, y float32) Point {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.viewport.PixelToView(x, y)
}

// Frames returns the number of frames completed so far.
func (r *Renderer) Frames() uint64 {
	return r.frames.Load()
}

// OnSurfaceCreated configures a freshly created graphics context: it
// schedules the default background and selects smooth shading with the
// nicest perspective correction.
func (r *Renderer) OnSurfaceCreated(gl gles.GL) {
	r.SetBackgroundColor(r.defaultBackground)
	gl.ShadeModel(gles.Smooth)
	gl.Hint(gles.PerspectiveCorrectionHint, gles.Nicest)
	Logger().Info("curl: surface created", "background", fmt.Sprintf("%#08x", uint32(r.defaultBackground)))
}

// OnSurfaceChanged adopts a new surface size. It recomputes the view
// rectangle and page layout, reports the page bitmap size, and sets the
// GL viewport and projection to match the view rectangle exactly.
//
// Non-positive dimensions are ignored and the previous state is kept.
func (r *Renderer) OnSurfaceChanged(gl gles.GL, width, height int) {
	r.mu.Lock()
	if !r.viewport.Set(width, height) {
		r.mu.Unlock()
		Logger().Warn("curl: ignoring degenerate surface size", "width", width, "height", height)
		return
	}
	view := r.viewport.Rect()
	n := r.relayoutLocked()
	r.mu.Unlock()

	gl.Viewport(0, 0, width, height)
	gl.MatrixMode(gles.Projection)
	gl.LoadIdentity()
	gl.Ortho2D(view.Left, view.Right, view.Bottom, view.Top)
	gl.MatrixMode(gles.ModelView)
	gl.LoadIdentity()

	Logger().Debug("curl: surface changed", "width", width, "height", height, "aspect", view.Right)
	r.notifySize(n)
}

// OnDrawFrame composes one frame: it applies a pending background color,
// clears the color buffer, resets the modelview matrix and draws every
// mesh in registration order. On success the observer is told the frame
// is done.
//
// A mesh error aborts the frame; it is returned wrapped and no completion
// is reported. The state lock is released on every exit path.
func (r *Renderer) OnDrawFrame(gl gles.GL) error {
	if err := r.composeFrame(gl); err != nil {
		return err
	}
	r.frames.Add(1)
	r.observer.OnRenderDone()
	return nil
}

func (r *Renderer) composeFrame(gl gles.GL) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if bg := r.pendingBackground; bg != nil {
		gl.ClearColor(bg.Normalized())
		r.pendingBackground = nil
	}
	gl.Clear(gles.ColorBufferBit)
	gl.LoadIdentity()

	return r.meshes.each(func(i int, m Mesh) error {
		if err := m.Draw(gl); err != nil {
			return fmt.Errorf("curl: draw mesh %d: %w", i, err)
		}
		return nil
	})
}

// sizeNotice is a bitmap size captured under mu, tagged with its position
// in state order.
type sizeNotice struct {
	seq           uint64
	width, height int
	valid         bool
}

// relayoutLocked recomputes the page rectangles for the current mode and
// viewport. mu must be held.
func (r *Renderer) relayoutLocked() sizeNotice {
	width, height := r.viewport.Size()
	r.layout, _ = layoutPages(r.mode, r.viewport.Rect(), width, height)
	r.sizeSeq++
	return sizeNotice{
		seq:    r.sizeSeq,
		width:  r.layout.bitmapWidth,
		height: r.layout.bitmapHeight,
		valid:  r.viewport.Valid(),
	}
}

// notifySize delivers n to the observer unless a newer size has already
// been delivered. mu must not be held.
func (r *Renderer) notifySize(n sizeNotice) {
	if !n.valid {
		return
	}
	r.notifyMu.Lock()
	defer r.notifyMu.Unlock()
	if n.seq < r.deliveredSize {
		return
	}
	r.deliveredSize = n.seq
	r.observer.OnBitmapSizeChanged(n.width, n.height)
}
