// Package host drives a curl.Renderer from a single render goroutine.
//
// A Loop owns the goroutine that calls the renderer's lifecycle hooks. It
// creates the surface, forwards resizes, runs queued events and draws
// frames either continuously at a fixed interval or only when a render has
// been requested:
//
//	loop := host.NewLoop(renderer, gl,
//	    host.WithRenderMode(host.RenderWhenDirty),
//	    host.WithSize(800, 400))
//
//	go func() {
//	    book.Next()
//	    loop.RequestRender()
//	}()
//
//	if err := loop.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package host
