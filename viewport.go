package curl

import "github.com/gogpu/curl/gles"

// Viewport converts between physical surface pixels and the logical,
// aspect-corrected view space.
//
// The view rectangle always spans [-aspect, aspect] horizontally and
// [-1, 1] vertically, where aspect = width / height of the surface.
// Pixel coordinates have their origin at the top-left corner with y
// growing downwards; view space has y growing upwards.
//
// The zero Viewport is invalid until Set succeeds. Viewport is a value
// type without locking; Renderer guards its copy with its own mutex.
type Viewport struct {
	width, height int
	rect          Rect
	projection    gles.Matrix
}

// Set recomputes the view rectangle and projection for a surface of
// width x height pixels. Non-positive dimensions are ignored and the
// previous state is kept; Set reports whether the viewport changed.
func (v *Viewport) Set(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	aspect := float32(width) / float32(height)
	v.width = width
	v.height = height
	v.rect = Rect{Left: -aspect, Top: 1, Right: aspect, Bottom: -1}
	v.projection = gles.Ortho2D(v.rect.Left, v.rect.Right, v.rect.Bottom, v.rect.Top)
	return true
}

// Valid reports whether Set has succeeded at least once.
func (v *Viewport) Valid() bool {
	return v.width > 0 && v.height > 0
}

// Size returns the physical surface size in pixels.
func (v *Viewport) Size() (width, height int) {
	return v.width, v.height
}

// Rect returns the view rectangle.
func (v *Viewport) Rect() Rect {
	return v.rect
}

// Projection returns the orthographic projection that maps the view
// rectangle exactly onto normalized device coordinates.
func (v *Viewport) Projection() gles.Matrix {
	return v.projection
}

// PixelToView maps a physical pixel coordinate into view space by linear
// interpolation. Pixel (0, 0) maps to the top-left corner of the view
// rectangle and (width, height) to its bottom-right corner.
//
// An invalid viewport maps every pixel to the origin.
func (v *Viewport) PixelToView(x, y float32) Point {
	if !v.Valid() {
		return Point{}
	}
	return Point{
		X: v.rect.Left + v.rect.Width()*x/float32(v.width),
		Y: v.rect.Top - (-v.rect.Height())*y/float32(v.height),
	}
}

// ViewToPixel is the inverse of PixelToView.
func (v *Viewport) ViewToPixel(p Point) (x, y float32) {
	if !v.Valid() {
		return 0, 0
	}
	x = (p.X - v.rect.Left) * float32(v.width) / v.rect.Width()
	y = (v.rect.Top - p.Y) * float32(v.height) / (-v.rect.Height())
	return x, y
}
