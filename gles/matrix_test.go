// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gles

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestOrtho2DMapsCorners(t *testing.T) {
	m := Ortho2D(-2, 2, -1, 1)

	tests := []struct {
		name         string
		x, y         float32
		wantX, wantY float32
	}{
		{"top-left", -2, 1, -1, 1},
		{"bottom-right", 2, -1, 1, -1},
		{"center", 0, 0, 0, 0},
		{"right edge midpoint", 2, 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotX, gotY := m.Transform(tt.x, tt.y)
			if !near(gotX, tt.wantX) || !near(gotY, tt.wantY) {
				t.Errorf("Transform(%v, %v) = (%v, %v), want (%v, %v)",
					tt.x, tt.y, gotX, gotY, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestOrtho2DDegenerate(t *testing.T) {
	if m := Ortho2D(1, 1, -1, 1); !m.IsIdentity() {
		t.Errorf("Ortho2D with zero width = %+v, want identity", m)
	}
	if m := Ortho2D(-1, 1, 0, 0); !m.IsIdentity() {
		t.Errorf("Ortho2D with zero height = %+v, want identity", m)
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// Scale then translate: translation applies last.
	m := Translate(10, 20).Multiply(Scale(2, 3))
	x, y := m.Transform(1, 1)
	if x != 12 || y != 23 {
		t.Errorf("Transform(1, 1) = (%v, %v), want (12, 23)", x, y)
	}
}

func TestMatrixInvert(t *testing.T) {
	m := Ortho2D(-1.5, 1.5, -1, 1).Multiply(Rotate(0.3))
	inv := m.Invert()
	x, y := m.Transform(0.25, -0.75)
	bx, by := inv.Transform(x, y)
	if !near(bx, 0.25) || !near(by, -0.75) {
		t.Errorf("round trip = (%v, %v), want (0.25, -0.75)", bx, by)
	}

	singular := Scale(0, 1)
	if !singular.Invert().IsIdentity() {
		t.Error("Invert of singular matrix should be identity")
	}
}

func TestMatrixMat4(t *testing.T) {
	m := Matrix{A: 1, B: 2, C: 3, D: 4, E: 5, F: 6}
	got := m.Mat4()
	want := [16]float32{1, 4, 0, 0, 2, 5, 0, 0, 0, 0, 1, 0, 3, 6, 0, 1}
	if got != want {
		t.Errorf("Mat4() = %v, want %v", got, want)
	}
}

func TestMatrixModeString(t *testing.T) {
	if ModelView.String() != "ModelView" || Projection.String() != "Projection" {
		t.Errorf("unexpected names %q %q", ModelView, Projection)
	}
	if MatrixMode(9).String() != "Unknown" {
		t.Errorf("MatrixMode(9).String() = %q, want Unknown", MatrixMode(9))
	}
}
