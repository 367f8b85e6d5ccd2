package page

import (
	"image"
	"sync"

	"github.com/gogpu/curl"
	"github.com/gogpu/curl/gles"
)

// Mesh is a flat textured page: a quad covering a view-space rectangle.
//
// The front texture is shown normally. A flipped mesh shows its back
// texture, or the front mirrored horizontally when there is none, the way
// the reverse of a thin sheet looks.
//
// Mesh is safe for concurrent use. Draw runs under the renderer's lock, so
// it only reads the mesh's own state.
type Mesh struct {
	mu      sync.Mutex
	rect    curl.Rect
	front   image.Image
	back    image.Image
	flipped bool
	tint    curl.Color
}

// NewMesh creates an empty page mesh with a white tint.
func NewMesh() *Mesh {
	return &Mesh{tint: 0xFFFFFFFF}
}

// SetRect sets the view-space rectangle the page covers.
func (m *Mesh) SetRect(r curl.Rect) {
	m.mu.Lock()
	m.rect = r
	m.mu.Unlock()
}

// Rect returns the view-space rectangle the page covers.
func (m *Mesh) Rect() curl.Rect {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rect
}

// SetTextures sets the front and back page bitmaps. back may be nil.
func (m *Mesh) SetTextures(front, back image.Image) {
	m.mu.Lock()
	m.front, m.back = front, back
	m.mu.Unlock()
}

// Front returns the front page bitmap.
func (m *Mesh) Front() image.Image {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.front
}

// SetFlipped selects the back side.
func (m *Mesh) SetFlipped(flipped bool) {
	m.mu.Lock()
	m.flipped = flipped
	m.mu.Unlock()
}

// Flipped reports whether the back side is shown.
func (m *Mesh) Flipped() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.flipped
}

// SetTint sets the color the page texture is modulated with.
func (m *Mesh) SetTint(c curl.Color) {
	m.mu.Lock()
	m.tint = c
	m.mu.Unlock()
}

// Draw implements curl.Mesh. An empty rectangle or a missing texture draws
// nothing.
func (m *Mesh) Draw(gl gles.GL) error {
	m.mu.Lock()
	rect, tex, mirrored, tint := m.rect, m.front, false, m.tint
	if m.flipped {
		if m.back != nil {
			tex = m.back
		} else {
			mirrored = true
		}
	}
	m.mu.Unlock()

	if rect.IsEmpty() || tex == nil {
		return nil
	}

	gl.Enable(gles.Blend)
	gl.Enable(gles.Texture2D)
	gl.DrawTriangles(tex, quad(rect, mirrored, tint))
	gl.Disable(gles.Texture2D)
	gl.Disable(gles.Blend)
	return nil
}

// quad returns two triangles covering rect with the texture's top row at
// rect.Top.
func quad(rect curl.Rect, mirrored bool, tint curl.Color) []gles.Vertex {
	u0, u1 := float32(0), float32(1)
	if mirrored {
		u0, u1 = 1, 0
	}
	r, g, b, a := tint.Normalized()
	v := func(x, y, u, t float32) gles.Vertex {
		return gles.Vertex{X: x, Y: y, U: u, V: t, R: r, G: g, B: b, A: a}
	}
	tl := v(rect.Left, rect.Top, u0, 0)
	bl := v(rect.Left, rect.Bottom, u0, 1)
	tr := v(rect.Right, rect.Top, u1, 0)
	br := v(rect.Right, rect.Bottom, u1, 1)
	return []gles.Vertex{tl, bl, tr, tr, bl, br}
}

var _ curl.Mesh = (*Mesh)(nil)
