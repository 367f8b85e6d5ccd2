package curl

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestViewportSetProperties(t *testing.T) {
	sizes := []struct{ w, h int }{
		{800, 400}, {400, 800}, {1, 1}, {1920, 1080}, {333, 777}, {2, 1},
	}

	for _, s := range sizes {
		var v Viewport
		if !v.Set(s.w, s.h) {
			t.Fatalf("Set(%d, %d) = false", s.w, s.h)
		}
		r := v.Rect()
		want := 2 * float32(s.w) / float32(s.h)
		if r.Right-r.Left != want {
			t.Errorf("%dx%d: width = %v, want %v", s.w, s.h, r.Right-r.Left, want)
		}
		if r.Top != 1 || r.Bottom != -1 {
			t.Errorf("%dx%d: top/bottom = %v/%v, want 1/-1", s.w, s.h, r.Top, r.Bottom)
		}
	}
}

func TestViewportScenario(t *testing.T) {
	var v Viewport
	v.Set(800, 400)
	want := Rect{Left: -2, Top: 1, Right: 2, Bottom: -1}
	if got := v.Rect(); got != want {
		t.Errorf("Rect() = %+v, want %+v", got, want)
	}
}

func TestViewportIgnoresDegenerateSize(t *testing.T) {
	var v Viewport
	if v.Set(0, 0) || v.Set(100, 0) || v.Set(0, 100) || v.Set(-5, 10) {
		t.Fatal("Set accepted a degenerate size")
	}
	if v.Valid() {
		t.Fatal("viewport became valid from degenerate input")
	}

	v.Set(640, 480)
	before := v.Rect()
	if v.Set(640, 0) {
		t.Error("Set(640, 0) = true")
	}
	if v.Rect() != before {
		t.Errorf("Rect() changed to %+v after ignored resize", v.Rect())
	}
	if w, h := v.Size(); w != 640 || h != 480 {
		t.Errorf("Size() = %dx%d, want 640x480", w, h)
	}
}

func TestPixelToViewCorners(t *testing.T) {
	var v Viewport
	v.Set(800, 400)
	r := v.Rect()

	tests := []struct {
		name string
		x, y float32
		want Point
	}{
		{"top-left", 0, 0, Pt(r.Left, r.Top)},
		{"bottom-right", 800, 400, Pt(r.Right, r.Bottom)},
		{"center", 400, 200, Pt(0, 0)},
		{"top-right", 800, 0, Pt(r.Right, r.Top)},
		{"quarter", 200, 100, Pt(-1, 0.5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.PixelToView(tt.x, tt.y)
			if got != tt.want {
				t.Errorf("PixelToView(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestPixelToViewOddAspect(t *testing.T) {
	var v Viewport
	v.Set(333, 777)
	r := v.Rect()

	tl := v.PixelToView(0, 0)
	if tl != Pt(r.Left, r.Top) {
		t.Errorf("PixelToView(0, 0) = %+v, want %+v", tl, Pt(r.Left, r.Top))
	}
	br := v.PixelToView(333, 777)
	if !approx(br.X, r.Right) || !approx(br.Y, r.Bottom) {
		t.Errorf("PixelToView(333, 777) = %+v, want %+v", br, Pt(r.Right, r.Bottom))
	}
}

func TestViewToPixelRoundTrip(t *testing.T) {
	var v Viewport
	v.Set(1024, 600)

	for _, p := range [][2]float32{{0, 0}, {512, 300}, {1024, 600}, {17, 599}} {
		x, y := v.ViewToPixel(v.PixelToView(p[0], p[1]))
		if !approx(x, p[0]) || !approx(y, p[1]) {
			t.Errorf("round trip of %v = (%v, %v)", p, x, y)
		}
	}
}

func TestProjectionMatchesViewRect(t *testing.T) {
	var v Viewport
	v.Set(800, 400)
	m := v.Projection()

	x, y := m.Transform(-2, 1)
	if x != -1 || y != 1 {
		t.Errorf("top-left projects to (%v, %v), want (-1, 1)", x, y)
	}
	x, y = m.Transform(2, -1)
	if x != 1 || y != -1 {
		t.Errorf("bottom-right projects to (%v, %v), want (1, -1)", x, y)
	}
}

func TestInvalidViewportPixelToView(t *testing.T) {
	var v Viewport
	if got := v.PixelToView(10, 10); got != (Point{}) {
		t.Errorf("PixelToView on invalid viewport = %+v, want origin", got)
	}
}
