// Package curl composes page meshes into frames on a host-driven graphics
// surface.
//
// The package is the core of a page-curl viewer. It owns the mapping from
// physical surface pixels to an aspect-corrected view space, partitions
// that view into one or two page rectangles, keeps an ordered registry of
// drawable meshes, and composes every registered mesh into a frame each
// time the host ticks. How a page bends is up to the mesh; the renderer
// only collects, orders and draws.
//
// # Quick Start
//
//	r := curl.NewRenderer(curl.ObserverFuncs{
//	    BitmapSizeChanged: func(w, h int) { /* re-render page bitmaps at w x h */ },
//	})
//	r.AddMesh(page)
//
//	gl, err := render.NewSoftwareGL(render.NewPixmapTarget(800, 400))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	r.OnSurfaceCreated(gl)
//	r.OnSurfaceChanged(gl, 800, 400)
//	if err := r.OnDrawFrame(gl); err != nil {
//	    log.Fatal(err)
//	}
//
// # View Space
//
// The view rectangle spans [-aspect, aspect] horizontally and [-1, 1]
// vertically, with y growing upwards. In DoublePage mode the left page
// covers [-aspect, 0] and the right page [0, aspect]; page bitmaps are
// requested at half the surface width, rounded up.
//
// # Concurrency
//
// Lifecycle hooks (OnSurfaceCreated, OnSurfaceChanged, OnDrawFrame) run on
// the host's render goroutine. Mutators (AddMesh, RemoveMesh, SetViewMode,
// SetBackgroundColor) may be called from any goroutine. See Renderer for
// the locking rules and Observer for what callbacks may do.
//
// # Related Packages
//
//   - gles: the graphics context interface meshes draw through
//   - render: software rasterizer, CPU targets and GPU pipeline setup
//   - recording: a GL that records commands, for tests and traces
//   - page: flat page meshes and the Book controller
//   - host: the render loop that drives the lifecycle hooks
package curl
