// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"image"
	"image/color"

	"github.com/chewxy/math32"
	"github.com/gogpu/curl"
	"github.com/gogpu/curl/gles"
)

// SoftwareGL is a CPU implementation of gles.GL that draws into a
// PixmapTarget.
//
// It follows fixed-function conventions: the viewport origin is the
// lower-left corner of the target, vertices pass through the modelview and
// then the projection matrix, and errors are latched rather than returned
// (see Err). Pixels are stored premultiplied.
//
// Texture sampling happens only when a texture is passed to DrawTriangles
// and Texture2D is enabled. Sampling is bilinear when the perspective
// correction hint is Nicest and nearest otherwise.
//
// SoftwareGL is NOT thread-safe. Use it from the render goroutine only.
type SoftwareGL struct {
	target *PixmapTarget

	clear    color.NRGBA
	viewport image.Rectangle // lower-left origin
	matrices matrixStacks
	shade    gles.ShadeModel
	quality  gles.HintMode
	blend    bool
	texture  bool

	err       error
	triangles int
}

// NewSoftwareGL creates a software GL drawing into target. The viewport
// initially covers the whole target.
func NewSoftwareGL(target *PixmapTarget) (*SoftwareGL, error) {
	if target == nil {
		return nil, ErrNilTarget
	}
	gl := &SoftwareGL{
		target:   target,
		viewport: image.Rect(0, 0, target.Width(), target.Height()),
		quality:  gles.DontCare,
	}
	gl.matrices.reset()
	return gl, nil
}

// Target returns the target being drawn into.
func (gl *SoftwareGL) Target() *PixmapTarget {
	return gl.target
}

// Resize resizes the target. The viewport is left unchanged; hosts call
// Viewport (through curl.Renderer.OnSurfaceChanged) after resizing.
func (gl *SoftwareGL) Resize(width, height int) {
	gl.target.Resize(width, height)
}

// Err returns the first error latched since the last call and clears it.
func (gl *SoftwareGL) Err() error {
	err := gl.err
	gl.err = nil
	return err
}

// Triangles returns the number of triangles drawn so far.
func (gl *SoftwareGL) Triangles() int {
	return gl.triangles
}

// CurrentMatrix returns the top of the stack for mode.
func (gl *SoftwareGL) CurrentMatrix(mode gles.MatrixMode) gles.Matrix {
	return gl.matrices.current(mode)
}

// ViewportRect returns the viewport in lower-left-origin pixels.
func (gl *SoftwareGL) ViewportRect() image.Rectangle {
	return gl.viewport
}

// IsEnabled reports whether capability c is on.
func (gl *SoftwareGL) IsEnabled(c gles.Capability) bool {
	switch c {
	case gles.Blend:
		return gl.blend
	case gles.Texture2D:
		return gl.texture
	default:
		return false
	}
}

func (gl *SoftwareGL) fail(err error) {
	if err != nil && gl.err == nil {
		gl.err = err
		curl.Logger().Debug("render: gl error latched", "err", err)
	}
}

// ClearColor implements gles.GL.
func (gl *SoftwareGL) ClearColor(r, g, b, a float32) {
	gl.clear = color.NRGBA{R: unit8(r), G: unit8(g), B: unit8(b), A: unit8(a)}
}

// Clear implements gles.GL. Only the color buffer exists; other bits are
// ignored.
func (gl *SoftwareGL) Clear(mask gles.ClearMask) {
	if mask&gles.ColorBufferBit != 0 {
		gl.target.Clear(gl.clear)
	}
}

// Viewport implements gles.GL.
func (gl *SoftwareGL) Viewport(x, y, width, height int) {
	if width < 0 || height < 0 {
		gl.fail(ErrInvalidValue)
		return
	}
	gl.viewport = image.Rect(x, y, x+width, y+height)
}

// MatrixMode implements gles.GL.
func (gl *SoftwareGL) MatrixMode(mode gles.MatrixMode) {
	gl.fail(gl.matrices.setMode(mode))
}

// LoadIdentity implements gles.GL.
func (gl *SoftwareGL) LoadIdentity() {
	gl.matrices.load(gles.Identity())
}

// LoadMatrix implements gles.GL.
func (gl *SoftwareGL) LoadMatrix(m gles.Matrix) {
	gl.matrices.load(m)
}

// MultMatrix implements gles.GL.
func (gl *SoftwareGL) MultMatrix(m gles.Matrix) {
	gl.matrices.mult(m)
}

// Ortho2D implements gles.GL.
func (gl *SoftwareGL) Ortho2D(left, right, bottom, top float32) {
	gl.matrices.mult(gles.Ortho2D(left, right, bottom, top))
}

// PushMatrix implements gles.GL.
func (gl *SoftwareGL) PushMatrix() {
	gl.fail(gl.matrices.push())
}

// PopMatrix implements gles.GL.
func (gl *SoftwareGL) PopMatrix() {
	gl.fail(gl.matrices.pop())
}

// ShadeModel implements gles.GL.
func (gl *SoftwareGL) ShadeModel(model gles.ShadeModel) {
	gl.shade = model
}

// Hint implements gles.GL.
func (gl *SoftwareGL) Hint(target gles.HintTarget, mode gles.HintMode) {
	if target == gles.PerspectiveCorrectionHint {
		gl.quality = mode
	}
}

// Enable implements gles.GL.
func (gl *SoftwareGL) Enable(c gles.Capability) {
	gl.setCapability(c, true)
}

// Disable implements gles.GL.
func (gl *SoftwareGL) Disable(c gles.Capability) {
	gl.setCapability(c, false)
}

func (gl *SoftwareGL) setCapability(c gles.Capability, on bool) {
	switch c {
	case gles.Blend:
		gl.blend = on
	case gles.Texture2D:
		gl.texture = on
	default:
		gl.fail(ErrInvalidEnum)
	}
}

// screenVertex is a vertex after transformation into target pixels
// (top-left origin).
type screenVertex struct {
	x, y       float32
	u, v       float32
	r, g, b, a float32
}

// DrawTriangles implements gles.GL.
func (gl *SoftwareGL) DrawTriangles(tex image.Image, vertices []gles.Vertex) {
	if !gl.texture {
		tex = nil
	}
	m := gl.matrices.transform()
	for i := 0; i+2 < len(vertices); i += 3 {
		var tri [3]screenVertex
		for j := range tri {
			tri[j] = gl.toScreen(m, vertices[i+j])
		}
		gl.rasterize(tex, tri)
		gl.triangles++
	}
}

// toScreen maps a view-space vertex through m and the viewport.
func (gl *SoftwareGL) toScreen(m gles.Matrix, v gles.Vertex) screenVertex {
	nx, ny := m.Transform(v.X, v.Y)
	vp := gl.viewport
	x := float32(vp.Min.X) + (nx+1)/2*float32(vp.Dx())
	y := float32(vp.Min.Y) + (ny+1)/2*float32(vp.Dy())
	return screenVertex{
		x: x,
		y: float32(gl.target.Height()) - y,
		u: v.U, v: v.V,
		r: v.R, g: v.G, b: v.B, a: v.A,
	}
}

func edge(a, b screenVertex, px, py float32) float32 {
	return (b.x-a.x)*(py-a.y) - (b.y-a.y)*(px-a.x)
}

// rasterize fills the pixels whose centers lie inside tri, clipped to the
// viewport.
func (gl *SoftwareGL) rasterize(tex image.Image, tri [3]screenVertex) {
	area := edge(tri[0], tri[1], tri[2].x, tri[2].y)
	if area == 0 {
		return
	}

	h := gl.target.Height()
	clip := image.Rect(gl.viewport.Min.X, h-gl.viewport.Max.Y, gl.viewport.Max.X, h-gl.viewport.Min.Y).
		Intersect(gl.target.Image().Bounds())

	minX := int(math32.Floor(min(tri[0].x, tri[1].x, tri[2].x)))
	maxX := int(math32.Ceil(max(tri[0].x, tri[1].x, tri[2].x)))
	minY := int(math32.Floor(min(tri[0].y, tri[1].y, tri[2].y)))
	maxY := int(math32.Ceil(max(tri[0].y, tri[1].y, tri[2].y)))
	box := image.Rect(minX, minY, maxX, maxY).Intersect(clip)

	flat := tri[2]
	for y := box.Min.Y; y < box.Max.Y; y++ {
		py := float32(y) + 0.5
		for x := box.Min.X; x < box.Max.X; x++ {
			px := float32(x) + 0.5
			w0 := edge(tri[1], tri[2], px, py) / area
			w1 := edge(tri[2], tri[0], px, py) / area
			w2 := edge(tri[0], tri[1], px, py) / area
			if w0 < 0 || w1 < 0 || w2 < 0 {
				continue
			}

			cr, cg, cb, ca := flat.r, flat.g, flat.b, flat.a
			if gl.shade == gles.Smooth {
				cr = w0*tri[0].r + w1*tri[1].r + w2*tri[2].r
				cg = w0*tri[0].g + w1*tri[1].g + w2*tri[2].g
				cb = w0*tri[0].b + w1*tri[1].b + w2*tri[2].b
				ca = w0*tri[0].a + w1*tri[1].a + w2*tri[2].a
			}

			// Premultiplied source.
			sr, sg, sb, sa := cr*ca, cg*ca, cb*ca, ca
			if tex != nil {
				u := w0*tri[0].u + w1*tri[1].u + w2*tri[2].u
				v := w0*tri[0].v + w1*tri[1].v + w2*tri[2].v
				tr, tg, tb, ta := gl.sample(tex, u, v)
				sr, sg, sb, sa = tr*sr, tg*sg, tb*sb, ta*sa
			}
			gl.plot(x, y, sr, sg, sb, sa)
		}
	}
}

// plot writes a premultiplied color, blending source-over when enabled.
func (gl *SoftwareGL) plot(x, y int, r, g, b, a float32) {
	img := gl.target.Image()
	i := img.PixOffset(x, y)
	p := img.Pix[i : i+4 : i+4]
	if gl.blend {
		k := 1 - clamp01(a)
		r += float32(p[0]) / 255 * k
		g += float32(p[1]) / 255 * k
		b += float32(p[2]) / 255 * k
		a += float32(p[3]) / 255 * k
	}
	p[0], p[1], p[2], p[3] = unit8(r), unit8(g), unit8(b), unit8(a)
}

// sample returns the premultiplied texel at (u, v).
func (gl *SoftwareGL) sample(tex image.Image, u, v float32) (r, g, b, a float32) {
	bounds := tex.Bounds()
	w, h := float32(bounds.Dx()), float32(bounds.Dy())
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}
	fx := clamp01(u)*w - 0.5
	fy := clamp01(v)*h - 0.5

	if gl.quality != gles.Nicest {
		return texel(tex, bounds, int(math32.Round(fx)), int(math32.Round(fy)))
	}

	x0, y0 := math32.Floor(fx), math32.Floor(fy)
	tx, ty := fx-x0, fy-y0
	ix, iy := int(x0), int(y0)
	r00, g00, b00, a00 := texel(tex, bounds, ix, iy)
	r10, g10, b10, a10 := texel(tex, bounds, ix+1, iy)
	r01, g01, b01, a01 := texel(tex, bounds, ix, iy+1)
	r11, g11, b11, a11 := texel(tex, bounds, ix+1, iy+1)

	lerp2 := func(c00, c10, c01, c11 float32) float32 {
		top := c00 + (c10-c00)*tx
		bottom := c01 + (c11-c01)*tx
		return top + (bottom-top)*ty
	}
	return lerp2(r00, r10, r01, r11), lerp2(g00, g10, g01, g11),
		lerp2(b00, b10, b01, b11), lerp2(a00, a10, a01, a11)
}

// texel reads a premultiplied texel with clamp-to-edge addressing.
func texel(tex image.Image, bounds image.Rectangle, x, y int) (r, g, b, a float32) {
	x = min(max(x, 0), bounds.Dx()-1) + bounds.Min.X
	y = min(max(y, 0), bounds.Dy()-1) + bounds.Min.Y
	if rgba, ok := tex.(*image.RGBA); ok {
		c := rgba.RGBAAt(x, y)
		return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
	}
	cr, cg, cb, ca := tex.At(x, y).RGBA()
	return float32(cr) / 0xffff, float32(cg) / 0xffff, float32(cb) / 0xffff, float32(ca) / 0xffff
}

func clamp01(x float32) float32 {
	return min(max(x, 0), 1)
}

func unit8(x float32) uint8 {
	return uint8(math32.Round(clamp01(x) * 255))
}

// Ensure SoftwareGL implements gles.GL.
var _ gles.GL = (*SoftwareGL)(nil)
