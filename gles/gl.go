// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gles

import "image"

// ClearMask selects the buffers cleared by GL.Clear.
type ClearMask uint32

const (
	// ColorBufferBit clears the color buffer.
	ColorBufferBit ClearMask = 1 << iota

	// DepthBufferBit clears the depth buffer.
	DepthBufferBit
)

// MatrixMode selects the matrix stack affected by matrix operations.
type MatrixMode uint8

const (
	// ModelView is the stack applied to vertices before projection.
	ModelView MatrixMode = iota

	// Projection maps view space into normalized device coordinates.
	Projection
)

// String returns the matrix mode name.
func (m MatrixMode) String() string {
	switch m {
	case ModelView:
		return "ModelView"
	case Projection:
		return "Projection"
	default:
		return "Unknown"
	}
}

// ShadeModel selects how vertex colors are interpolated across a triangle.
type ShadeModel uint8

const (
	// Smooth interpolates vertex colors.
	Smooth ShadeModel = iota

	// Flat uses the color of the last vertex of each triangle.
	Flat
)

// HintTarget names an implementation-dependent quality trade-off.
type HintTarget uint8

const (
	// PerspectiveCorrectionHint controls texture coordinate interpolation quality.
	PerspectiveCorrectionHint HintTarget = iota
)

// HintMode is the preference given for a HintTarget.
type HintMode uint8

const (
	// DontCare leaves the choice to the implementation.
	DontCare HintMode = iota

	// Fastest prefers speed.
	Fastest

	// Nicest prefers quality.
	Nicest
)

// Capability is a toggleable pipeline feature.
type Capability uint8

const (
	// Blend enables source-over alpha blending of drawn fragments.
	Blend Capability = iota

	// Texture2D enables texture sampling in DrawTriangles.
	Texture2D
)

// GL is the graphics context handed to the renderer lifecycle hooks and to
// every mesh during a frame.
//
// It mirrors the fixed-function subset a page renderer needs: clear state,
// viewport, two matrix stacks with an orthographic helper, shading and
// quality hints, and textured triangle submission.
//
// A GL is bound to the render goroutine. Implementations are NOT thread-safe.
type GL interface {
	// ClearColor sets the color used by Clear. Channels are in [0, 1].
	ClearColor(r, g, b, a float32)

	// Clear clears the buffers selected by mask.
	Clear(mask ClearMask)

	// Viewport sets the device rectangle that normalized device coordinates map to.
	Viewport(x, y, width, height int)

	// MatrixMode selects the stack used by the matrix operations below.
	MatrixMode(mode MatrixMode)

	// LoadIdentity replaces the top of the current stack with the identity.
	LoadIdentity()

	// LoadMatrix replaces the top of the current stack with m.
	LoadMatrix(m Matrix)

	// MultMatrix post-multiplies the top of the current stack by m.
	MultMatrix(m Matrix)

	// Ortho2D post-multiplies the current stack by a 2D orthographic projection.
	Ortho2D(left, right, bottom, top float32)

	// PushMatrix duplicates the top of the current stack.
	PushMatrix()

	// PopMatrix discards the top of the current stack.
	// Popping the last entry is ignored.
	PopMatrix()

	// ShadeModel selects flat or smooth shading.
	ShadeModel(model ShadeModel)

	// Hint records a quality preference.
	Hint(target HintTarget, mode HintMode)

	// Enable turns on a capability.
	Enable(c Capability)

	// Disable turns off a capability.
	Disable(c Capability)

	// DrawTriangles draws len(vertices)/3 triangles. Trailing vertices that
	// do not form a full triangle are ignored. tex may be nil, in which case
	// only vertex colors are used.
	DrawTriangles(tex image.Image, vertices []Vertex)
}

// Vertex is a single triangle corner in view space.
type Vertex struct {
	// X, Y are view-space coordinates.
	X, Y float32

	// U, V are texture coordinates in [0, 1], with V growing downwards in
	// image space.
	U, V float32

	// R, G, B, A modulate the sampled texel (or are the color when no
	// texture is bound). Channels are in [0, 1].
	R, G, B, A float32
}

// V returns an opaque white vertex at (x, y) with texture coordinate (u, v).
func V(x, y, u, v float32) Vertex {
	return Vertex{X: x, Y: y, U: u, V: v, R: 1, G: 1, B: 1, A: 1}
}
