// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package depth implements the per-pixel depth buffer used by the frame
// pipeline.
//
// The buffer uses reversed depth: a larger value is nearer to the viewer and
// a candidate replaces the stored value only when it is strictly greater.
// Cleared cells hold negative infinity, so the first write to a pixel in a
// frame always succeeds.
//
// A nil *Buffer is an empty buffer: writes are ignored, TestAndSet
// fails and Get reports +Inf.
//
// Thread safety: a Buffer has no internal locking. Concurrent callers must
// touch disjoint pixels, which the pipeline guarantees through tile
// ownership.
package depth

import (
	"math"

	"github.com/gogpu/gputypes"
)

// Cleared is the value every cell holds after Clear.
var Cleared = float32(math.Inf(-1))

// Buffer is a flat width*height array of depth values.
type Buffer struct {
	data   []float32
	width  int
	height int
}

// New allocates a cleared depth buffer. Non-positive dimensions yield an
// empty buffer on which every test fails.
func New(width, height int) *Buffer {
	if width <= 0 || height <= 0 {
		return &Buffer{}
	}
	b := &Buffer{
		data:   make([]float32, width*height),
		width:  width,
		height: height,
	}
	b.Clear()
	return b
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	if b == nil {
		return 0
	}
	return b.width
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	if b == nil {
		return 0
	}
	return b.height
}

// Format returns the GPU-equivalent format of the stored values.
func (b *Buffer) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatDepth32Float
}

// Compare returns the comparison a candidate must pass against the stored
// value to be written.
func (b *Buffer) Compare() gputypes.CompareFunction {
	return gputypes.CompareFunctionGreater
}

// Clear resets every cell to Cleared.
func (b *Buffer) Clear() {
	if b == nil {
		return
	}
	fill(b.data, Cleared)
}

// ClearRect resets the cells of a rectangle to Cleared. The rectangle is
// clipped to the buffer.
func (b *Buffer) ClearRect(x, y, w, h int) {
	if b == nil {
		return
	}
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, b.width), min(y+h, b.height)
	if x0 >= x1 || y0 >= y1 {
		return
	}
	for row := y0; row < y1; row++ {
		off := row * b.width
		fill(b.data[off+x0:off+x1], Cleared)
	}
}

// TestAndSet stores depth at (x, y) if it is strictly greater than the
// stored value and reports whether it did. Out-of-bounds coordinates are
// rejected.
func (b *Buffer) TestAndSet(x, y int, depth float32) bool {
	if b == nil || x < 0 || y < 0 || x >= b.width || y >= b.height {
		return false
	}
	i := y*b.width + x
	if depth > b.data[i] {
		b.data[i] = depth
		return true
	}
	return false
}

// Get returns the stored depth at (x, y), or +Inf for out-of-bounds
// coordinates so that nothing ever passes against them.
func (b *Buffer) Get(x, y int) float32 {
	if b == nil || x < 0 || y < 0 || x >= b.width || y >= b.height {
		return float32(math.Inf(1))
	}
	return b.data[y*b.width+x]
}

// Set stores depth at (x, y) without testing. Out-of-bounds writes are
// ignored.
func (b *Buffer) Set(x, y int, depth float32) {
	if b == nil || x < 0 || y < 0 || x >= b.width || y >= b.height {
		return
	}
	b.data[y*b.width+x] = depth
}

// fill writes v to every element by doubling copies, which the runtime
// turns into wide memmoves.
func fill(dst []float32, v float32) {
	if len(dst) == 0 {
		return
	}
	dst[0] = v
	for n := 1; n < len(dst); n *= 2 {
		copy(dst[n:], dst[:n])
	}
}
