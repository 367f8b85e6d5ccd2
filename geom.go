package curl

import "github.com/chewxy/math32"

// Point represents a 2D point in view space.
type Point struct {
	X, Y float32
}

// Pt is a convenience function to create a Point.
func Pt(x, y float32) Point {
	return Point{X: x, Y: y}
}

// Rect is a rectangle in view-space units.
//
// View space has y growing upwards, so for every rectangle produced by the
// renderer Top > Bottom and Height is negative, matching the layout of the
// view rectangle {-aspect, 1, aspect, -1}.
type Rect struct {
	Left, Top, Right, Bottom float32
}

// Width returns Right - Left.
func (r Rect) Width() float32 {
	return r.Right - r.Left
}

// Height returns Bottom - Top. It is negative for view-space rectangles.
func (r Rect) Height() float32 {
	return r.Bottom - r.Top
}

// IsEmpty reports whether the rectangle encloses no area.
func (r Rect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.Left + r.Right) / 2, Y: (r.Top + r.Bottom) / 2}
}

// Contains reports whether p lies inside the rectangle, edges included.
// Works for either vertical orientation.
func (r Rect) Contains(p Point) bool {
	minX, maxX := math32.Min(r.Left, r.Right), math32.Max(r.Left, r.Right)
	minY, maxY := math32.Min(r.Top, r.Bottom), math32.Max(r.Top, r.Bottom)
	return p.X >= minX && p.X <= maxX && p.Y >= minY && p.Y <= maxY
}

// Union returns the smallest rectangle containing both r and o, keeping
// r's vertical orientation. An empty operand is ignored.
func (r Rect) Union(o Rect) Rect {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	u := Rect{
		Left:  math32.Min(r.Left, o.Left),
		Right: math32.Max(r.Right, o.Right),
	}
	if r.Top >= r.Bottom {
		u.Top = math32.Max(r.Top, o.Top)
		u.Bottom = math32.Min(r.Bottom, o.Bottom)
	} else {
		u.Top = math32.Min(r.Top, o.Top)
		u.Bottom = math32.Max(r.Bottom, o.Bottom)
	}
	return u
}
