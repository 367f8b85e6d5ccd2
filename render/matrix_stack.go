// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import "github.com/gogpu/curl/gles"

// MaxStackDepth is the depth of each matrix stack of a GL backend.
const MaxStackDepth = 32

// matrixStacks holds the modelview and projection stacks shared by the GL
// backends. The zero value is not usable; call reset first.
type matrixStacks struct {
	mode   gles.MatrixMode
	stacks [2][]gles.Matrix
}

func (s *matrixStacks) reset() {
	s.mode = gles.ModelView
	for i := range s.stacks {
		s.stacks[i] = []gles.Matrix{gles.Identity()}
	}
}

// current returns the top of the stack for mode.
func (s *matrixStacks) current(mode gles.MatrixMode) gles.Matrix {
	if int(mode) >= len(s.stacks) {
		return gles.Identity()
	}
	st := s.stacks[mode]
	return st[len(st)-1]
}

// transform returns projection * modelview.
func (s *matrixStacks) transform() gles.Matrix {
	return s.current(gles.Projection).Multiply(s.current(gles.ModelView))
}

func (s *matrixStacks) setMode(mode gles.MatrixMode) error {
	if int(mode) >= len(s.stacks) {
		return ErrInvalidEnum
	}
	s.mode = mode
	return nil
}

func (s *matrixStacks) top() *gles.Matrix {
	st := s.stacks[s.mode]
	return &st[len(st)-1]
}

func (s *matrixStacks) load(m gles.Matrix) {
	*s.top() = m
}

func (s *matrixStacks) mult(m gles.Matrix) {
	t := s.top()
	*t = t.Multiply(m)
}

func (s *matrixStacks) push() error {
	st := s.stacks[s.mode]
	if len(st) >= MaxStackDepth {
		return ErrStackOverflow
	}
	s.stacks[s.mode] = append(st, st[len(st)-1])
	return nil
}

func (s *matrixStacks) pop() error {
	st := s.stacks[s.mode]
	if len(st) == 1 {
		return ErrStackUnderflow
	}
	s.stacks[s.mode] = st[:len(st)-1]
	return nil
}
