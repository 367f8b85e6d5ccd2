// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gles defines the graphics context used by the page renderer.
//
// The renderer core never talks to a graphics API directly. The host passes
// a GL to every lifecycle hook, and every mesh draws itself through the same
// GL during a frame. Two implementations ship with the module:
//
//   - render.SoftwareGL rasterizes into a CPU pixmap
//   - recording.Recorder captures typed commands for inspection
//
// # Coordinate Spaces
//
// Meshes emit vertices in view space. The Projection stack maps view space
// to normalized device coordinates in [-1, 1], and Viewport maps those to
// device pixels with y growing upwards, as in OpenGL.
package gles
