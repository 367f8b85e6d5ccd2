// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"image"
	"image/color"
	"reflect"

	"github.com/gogpu/curl"
	"github.com/gogpu/curl/gles"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"golang.org/x/image/draw"
)

// GPUGL is a gles.GL that draws through a GPUPipeline into an offscreen
// color texture.
//
// GL calls only record state. Every DrawTriangles call becomes a batch
// carrying the current transform, viewport and texture; Flush uploads the
// batches and submits them in one render pass. Clear drops the batches
// recorded before it and makes the next pass start from the clear color.
//
// The pipeline always blends premultiplied source-over and samples
// linearly, so Blend, ShadeModel and the perspective hint have no effect.
// Texture2D behaves as in SoftwareGL.
//
// GPUGL is NOT thread-safe. Use it from the render goroutine only.
type GPUGL struct {
	pipe *GPUPipeline

	width, height int
	target        hal.Texture
	view          hal.TextureView
	white         *gpuTexture

	clear    gputypes.Color
	cleared  bool
	viewport image.Rectangle // lower-left origin
	matrices matrixStacks
	texture  bool

	vertices []gles.Vertex
	batches  []gpuBatch

	err    error
	passes int
}

// gpuBatch is one DrawTriangles call.
type gpuBatch struct {
	tex       image.Image
	first     uint32
	count     uint32
	transform []byte
	viewport  image.Rectangle
}

// gpuTexture is an uploaded texture and its view.
type gpuTexture struct {
	tex  hal.Texture
	view hal.TextureView
}

// NewGPUGL creates a GPU GL of the given size on p.
func NewGPUGL(p *GPUPipeline, width, height int) (*GPUGL, error) {
	if p == nil || !p.Ready() {
		return nil, ErrPipelineNotReady
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("render: gpu target %dx%d: %w", width, height, ErrInvalidValue)
	}
	gl := &GPUGL{
		pipe:     p,
		viewport: image.Rect(0, 0, width, height),
	}
	gl.matrices.reset()

	white := image.NewRGBA(image.Rect(0, 0, 1, 1))
	white.SetRGBA(0, 0, color.RGBA{255, 255, 255, 255})
	w, err := gl.upload(white, "page_white")
	if err != nil {
		return nil, err
	}
	gl.white = w

	if err := gl.createTarget(width, height); err != nil {
		gl.Destroy()
		return nil, err
	}
	return gl, nil
}

func (gl *GPUGL) createTarget(width, height int) error {
	device := gl.pipe.device
	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "page_target",
		Size:          hal.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gl.pipe.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("render: create gpu target: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "page_target_view",
		Format:        gl.pipe.format,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return fmt.Errorf("render: create gpu target view: %w", err)
	}
	gl.target, gl.view = tex, view
	gl.width, gl.height = width, height
	return nil
}

func (gl *GPUGL) destroyTarget() {
	if gl.view != nil {
		gl.pipe.device.DestroyTextureView(gl.view)
		gl.view = nil
	}
	if gl.target != nil {
		gl.pipe.device.DestroyTexture(gl.target)
		gl.target = nil
	}
}

// Destroy releases the target and the textures owned by gl. The pipeline
// is not destroyed. Safe to call multiple times.
func (gl *GPUGL) Destroy() {
	gl.destroyTarget()
	if gl.white != nil {
		gl.release(gl.white)
		gl.white = nil
	}
	gl.vertices, gl.batches = nil, nil
}

// Resize recreates the color target. The viewport is left unchanged; hosts
// call Viewport (through curl.Renderer.OnSurfaceChanged) after resizing.
// Failures are latched.
func (gl *GPUGL) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		gl.fail(ErrInvalidValue)
		return
	}
	if width == gl.width && height == gl.height && gl.view != nil {
		return
	}
	gl.destroyTarget()
	gl.fail(gl.createTarget(width, height))
}

// Size returns the size of the color target.
func (gl *GPUGL) Size() (width, height int) {
	return gl.width, gl.height
}

// TargetView returns the color target the render passes draw into.
func (gl *GPUGL) TargetView() hal.TextureView {
	return gl.view
}

// Err returns the first error latched since the last call and clears it.
func (gl *GPUGL) Err() error {
	err := gl.err
	gl.err = nil
	return err
}

// Pending returns the number of draw batches waiting for Flush.
func (gl *GPUGL) Pending() int {
	return len(gl.batches)
}

// Passes returns the number of render passes submitted.
func (gl *GPUGL) Passes() int {
	return gl.passes
}

// CurrentMatrix returns the top of the stack for mode.
func (gl *GPUGL) CurrentMatrix(mode gles.MatrixMode) gles.Matrix {
	return gl.matrices.current(mode)
}

func (gl *GPUGL) fail(err error) {
	if err != nil && gl.err == nil {
		gl.err = err
		curl.Logger().Debug("render: gl error latched", "err", err)
	}
}

// ClearColor implements gles.GL.
func (gl *GPUGL) ClearColor(r, g, b, a float32) {
	gl.clear = gputypes.Color{R: float64(clamp01(r)), G: float64(clamp01(g)), B: float64(clamp01(b)), A: float64(clamp01(a))}
}

// Clear implements gles.GL. Only the color buffer exists; other bits are
// ignored.
func (gl *GPUGL) Clear(mask gles.ClearMask) {
	if mask&gles.ColorBufferBit == 0 {
		return
	}
	gl.cleared = true
	gl.vertices = gl.vertices[:0]
	gl.batches = gl.batches[:0]
}

// Viewport implements gles.GL.
func (gl *GPUGL) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		gl.fail(ErrInvalidValue)
		return
	}
	gl.viewport = image.Rect(x, y, x+width, y+height)
}

// MatrixMode implements gles.GL.
func (gl *GPUGL) MatrixMode(mode gles.MatrixMode) {
	gl.fail(gl.matrices.setMode(mode))
}

// LoadIdentity implements gles.GL.
func (gl *GPUGL) LoadIdentity() {
	gl.matrices.load(gles.Identity())
}

// LoadMatrix implements gles.GL.
func (gl *GPUGL) LoadMatrix(m gles.Matrix) {
	gl.matrices.load(m)
}

// MultMatrix implements gles.GL.
func (gl *GPUGL) MultMatrix(m gles.Matrix) {
	gl.matrices.mult(m)
}

// Ortho2D implements gles.GL.
func (gl *GPUGL) Ortho2D(left, right, bottom, top float32) {
	gl.matrices.mult(gles.Ortho2D(left, right, bottom, top))
}

// PushMatrix implements gles.GL.
func (gl *GPUGL) PushMatrix() {
	gl.fail(gl.matrices.push())
}

// PopMatrix implements gles.GL.
func (gl *GPUGL) PopMatrix() {
	gl.fail(gl.matrices.pop())
}

// ShadeModel implements gles.GL.
func (gl *GPUGL) ShadeModel(gles.ShadeModel) {}

// Hint implements gles.GL.
func (gl *GPUGL) Hint(gles.HintTarget, gles.HintMode) {}

// Enable implements gles.GL.
func (gl *GPUGL) Enable(c gles.Capability) {
	gl.setCapability(c, true)
}

// Disable implements gles.GL.
func (gl *GPUGL) Disable(c gles.Capability) {
	gl.setCapability(c, false)
}

func (gl *GPUGL) setCapability(c gles.Capability, on bool) {
	switch c {
	case gles.Blend:
	case gles.Texture2D:
		gl.texture = on
	default:
		gl.fail(ErrInvalidEnum)
	}
}

// DrawTriangles implements gles.GL.
func (gl *GPUGL) DrawTriangles(tex image.Image, vertices []gles.Vertex) {
	n := len(vertices) / 3 * 3
	if n == 0 {
		return
	}
	if !gl.texture {
		tex = nil
	}
	gl.batches = append(gl.batches, gpuBatch{
		tex:       tex,
		first:     uint32(len(gl.vertices)),
		count:     uint32(n),
		transform: EncodeTransform(gl.matrices.current(gles.Projection), gl.matrices.current(gles.ModelView)),
		viewport:  gl.viewport,
	})
	gl.vertices = append(gl.vertices, vertices[:n]...)
}

// frameResources holds the GPU objects created for one Flush.
type frameResources struct {
	textures   []*gpuTexture
	buffers    []hal.Buffer
	bindGroups []hal.BindGroup
}

// Flush uploads the recorded batches, draws them in one render pass and
// waits for the GPU to finish. It does nothing when neither Clear nor
// DrawTriangles was called since the last Flush.
func (gl *GPUGL) Flush() error {
	if !gl.cleared && len(gl.batches) == 0 {
		return nil
	}
	if gl.view == nil {
		return fmt.Errorf("render: flush: %w", ErrPipelineNotReady)
	}
	defer func() {
		gl.cleared = false
		gl.vertices = gl.vertices[:0]
		gl.batches = gl.batches[:0]
	}()

	var res frameResources
	defer gl.releaseFrame(&res)

	groups, vbuf, err := gl.prepare(&res)
	if err != nil {
		return err
	}

	device, queue := gl.pipe.device, gl.pipe.queue
	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "page_encoder",
	})
	if err != nil {
		return fmt.Errorf("render: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("page_frame"); err != nil {
		return fmt.Errorf("render: begin encoding: %w", err)
	}

	load := gputypes.LoadOpLoad
	if gl.cleared {
		load = gputypes.LoadOpClear
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "page_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       gl.view,
			LoadOp:     load,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gl.clear,
		}},
	})
	if len(gl.batches) > 0 {
		rp.SetPipeline(gl.pipe.pipeline)
		rp.SetVertexBuffer(0, vbuf, 0)
		for i, b := range gl.batches {
			vp := b.viewport
			// Viewports are lower-left; the pass is top-left.
			rp.SetViewport(float32(vp.Min.X), float32(gl.height-vp.Max.Y), float32(vp.Dx()), float32(vp.Dy()), 0, 1)
			rp.SetBindGroup(0, groups[i], nil)
			rp.Draw(b.count, 1, b.first, 0)
		}
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("render: end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	if _, err := queue.Submit([]hal.CommandBuffer{cmdBuf}); err != nil {
		return fmt.Errorf("render: submit: %w", err)
	}
	if err := device.WaitIdle(); err != nil {
		return fmt.Errorf("render: wait: %w", err)
	}
	gl.passes++
	curl.Logger().Debug("render: gpu pass submitted", "batches", len(gl.batches), "vertices", len(gl.vertices))
	return nil
}

// prepare uploads the frame's textures, vertices and transforms and
// returns one bind group per batch with the shared vertex buffer.
func (gl *GPUGL) prepare(res *frameResources) ([]hal.BindGroup, hal.Buffer, error) {
	if len(gl.batches) == 0 {
		return nil, nil, nil
	}
	device, queue := gl.pipe.device, gl.pipe.queue

	data := EncodeVertices(gl.vertices)
	vbuf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "page_vertices",
		Size:  uint64(len(data)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("render: create vertex buffer: %w", err)
	}
	res.buffers = append(res.buffers, vbuf)
	if err := queue.WriteBuffer(vbuf, 0, data); err != nil {
		return nil, nil, fmt.Errorf("render: upload vertices: %w", err)
	}

	uploaded := make(map[image.Image]*gpuTexture)
	groups := make([]hal.BindGroup, 0, len(gl.batches))
	for _, b := range gl.batches {
		view, err := gl.textureView(b.tex, uploaded, res)
		if err != nil {
			return nil, nil, err
		}

		ubuf, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: "page_uniform",
			Size:  pageUniformSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("render: create uniform buffer: %w", err)
		}
		res.buffers = append(res.buffers, ubuf)
		if err := queue.WriteBuffer(ubuf, 0, b.transform); err != nil {
			return nil, nil, fmt.Errorf("render: upload transform: %w", err)
		}

		group, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "page_bind_group",
			Layout: gl.pipe.bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: ubuf.NativeHandle(), Offset: 0, Size: pageUniformSize}},
				{Binding: 1, Resource: gputypes.TextureViewBinding{TextureView: view.NativeHandle()}},
				{Binding: 2, Resource: gputypes.SamplerBinding{Sampler: gl.pipe.sampler.NativeHandle()}},
			},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("render: create bind group: %w", err)
		}
		res.bindGroups = append(res.bindGroups, group)
		groups = append(groups, group)
	}
	return groups, vbuf, nil
}

// textureView returns the view for tex, uploading it once per frame. Nil
// selects the white texture.
func (gl *GPUGL) textureView(tex image.Image, uploaded map[image.Image]*gpuTexture, res *frameResources) (hal.TextureView, error) {
	if tex == nil || tex.Bounds().Empty() {
		return gl.white.view, nil
	}
	cacheable := reflect.TypeOf(tex).Comparable()
	if cacheable {
		if t, ok := uploaded[tex]; ok {
			return t.view, nil
		}
	}
	t, err := gl.upload(tex, "page_texture")
	if err != nil {
		return nil, err
	}
	res.textures = append(res.textures, t)
	if cacheable {
		uploaded[tex] = t
	}
	return t.view, nil
}

// upload copies img into a new RGBA8 texture. Texels are premultiplied, as
// in *image.RGBA.
func (gl *GPUGL) upload(img image.Image, label string) (*gpuTexture, error) {
	rgba := asRGBA(img)
	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	device := gl.pipe.device

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("render: create %s: %w", label, err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		device.DestroyTexture(tex)
		return nil, fmt.Errorf("render: create %s view: %w", label, err)
	}
	t := &gpuTexture{tex: tex, view: view}

	err = gl.pipe.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		rgba.Pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: uint32(rgba.Stride), RowsPerImage: uint32(h)},
		&hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
	)
	if err != nil {
		gl.release(t)
		return nil, fmt.Errorf("render: upload %s: %w", label, err)
	}
	return t, nil
}

func (gl *GPUGL) release(t *gpuTexture) {
	gl.pipe.device.DestroyTextureView(t.view)
	gl.pipe.device.DestroyTexture(t.tex)
}

func (gl *GPUGL) releaseFrame(res *frameResources) {
	device := gl.pipe.device
	for _, g := range res.bindGroups {
		device.DestroyBindGroup(g)
	}
	for _, b := range res.buffers {
		device.DestroyBuffer(b)
	}
	for _, t := range res.textures {
		gl.release(t)
	}
}

// asRGBA returns img as a tightly packed *image.RGBA with a zero origin.
func asRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	if rgba, ok := img.(*image.RGBA); ok && b.Min == (image.Point{}) && rgba.Stride == 4*b.Dx() {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

// Ensure GPUGL implements gles.GL.
var _ gles.GL = (*GPUGL)(nil)
