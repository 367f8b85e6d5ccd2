// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render provides the graphics backends a curl.Renderer draws
// through.
//
// # Key Principle
//
// render RECEIVES a GPU device from the host application, it does NOT create
// its own. Without a host device everything runs on the CPU.
//
// # Backends
//
//   - SoftwareGL: a CPU implementation of gles.GL that rasterizes textured
//     triangles into a PixmapTarget
//   - GPUPipeline: the page shader and render pipeline prepared on a
//     host-provided HAL device
//   - GPUGL: a gles.GL that batches triangles and draws them through a
//     GPUPipeline in one render pass per Flush
//
// # Targets
//
//   - PixmapTarget: CPU-backed *image.RGBA target
//
// # Usage
//
//	target := render.NewPixmapTarget(800, 400)
//	gl, err := render.NewSoftwareGL(target)
//	if err != nil {
//	    return err
//	}
//	r.OnSurfaceCreated(gl)
//	r.OnSurfaceChanged(gl, 800, 400)
//	if err := r.OnDrawFrame(gl); err != nil {
//	    return err
//	}
//	png.Encode(w, target.Image())
//
// With a host GPU device:
//
//	pipeline, err := render.NewGPUPipeline(host.DeviceHandle())
//	if errors.Is(err, render.ErrNoDevice) {
//	    // fall back to SoftwareGL
//	}
//	defer pipeline.Destroy()
//	gl, err := render.NewGPUGL(pipeline, 800, 400)
//	if err != nil {
//	    return err
//	}
//	defer gl.Destroy()
//	// host.Loop calls gl.Flush after every frame.
//
// # Thread Safety
//
// SoftwareGL, GPUGL and GPUPipeline are bound to the render goroutine and
// are NOT thread-safe.
package render
