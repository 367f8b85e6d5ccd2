package curl

// Observer receives notifications from a Renderer.
//
// Both methods are called synchronously, with the renderer's state lock
// released. From either method the observer may read renderer state and
// call AddMesh, RemoveMesh and SetBackgroundColor. It must not call
// SetViewMode or OnSurfaceChanged from OnBitmapSizeChanged.
type Observer interface {
	// OnBitmapSizeChanged reports the pixel size page content must be
	// supplied at. It fires on every surface resize and view mode change
	// once the surface size is known.
	OnBitmapSizeChanged(width, height int)

	// OnRenderDone fires once per completed frame, after every mesh drew.
	OnRenderDone()
}

// ObserverFuncs adapts plain functions to the Observer interface.
// Nil fields are skipped.
type ObserverFuncs struct {
	BitmapSizeChanged func(width, height int)
	RenderDone        func()
}

// OnBitmapSizeChanged implements Observer.
func (f ObserverFuncs) OnBitmapSizeChanged(width, height int) {
	if f.BitmapSizeChanged != nil {
		f.BitmapSizeChanged(width, height)
	}
}

// OnRenderDone implements Observer.
func (f ObserverFuncs) OnRenderDone() {
	if f.RenderDone != nil {
		f.RenderDone()
	}
}

// nopObserver ignores all notifications.
type nopObserver struct{}

func (nopObserver) OnBitmapSizeChanged(int, int) {}
func (nopObserver) OnRenderDone()                {}

var (
	_ Observer = ObserverFuncs{}
	_ Observer = nopObserver{}
)
