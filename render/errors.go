// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "errors"

var (
	// ErrNilTarget is returned when a backend is created without a target.
	ErrNilTarget = errors.New("render: nil target")

	// ErrNilDeviceHandle is returned when a GPU pipeline is requested
	// without a device handle.
	ErrNilDeviceHandle = errors.New("render: nil device handle")

	// ErrNoDevice is returned when the device handle does not expose a
	// usable HAL device.
	ErrNoDevice = errors.New("render: no GPU device")

	// ErrPipelineNotReady is returned when a GPUGL is created on a nil or
	// destroyed pipeline.
	ErrPipelineNotReady = errors.New("render: page pipeline not ready")
)

// Errors reported by SoftwareGL.Err and GPUGL.Err, mirroring the fixed-function error flags.
var (
	// ErrInvalidEnum reports an unknown matrix mode or capability.
	ErrInvalidEnum = errors.New("render: invalid enum")

	// ErrInvalidValue reports a negative viewport size.
	ErrInvalidValue = errors.New("render: invalid value")

	// ErrStackOverflow reports a PushMatrix beyond MaxStackDepth.
	ErrStackOverflow = errors.New("render: matrix stack overflow")

	// ErrStackUnderflow reports a PopMatrix of the last stack entry.
	ErrStackUnderflow = errors.New("render: matrix stack underflow")
)
