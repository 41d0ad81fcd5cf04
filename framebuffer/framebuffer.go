// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framebuffer

import (
	"unsafe"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Framebuffer is a double-buffered 32-bit pixel surface.
//
// A nil *Framebuffer is valid and behaves as an empty surface: writes are
// ignored, reads return 0 and Present does nothing.
type Framebuffer struct {
	back  []uint32
	front []uint32

	width  int
	height int
	stride int // pixels per row, >= width

	display gpucontext.TextureUpdater
	packed  []byte // dense upload scratch when stride != width
}

// New allocates a framebuffer of width x height pixels with rows of stride
// pixels. A stride below width is raised to width.
//
// front is the display surface. If it is nil or shorter than stride*height
// pixels, the framebuffer allocates its own front buffer.
//
// New returns nil for non-positive dimensions.
func New(width, height, stride int, front []uint32) *Framebuffer {
	if width <= 0 || height <= 0 {
		return nil
	}
	stride = max(stride, width)
	n := stride * height
	if len(front) < n {
		front = make([]uint32, n)
	}
	return &Framebuffer{
		back:   make([]uint32, n),
		front:  front[:n],
		width:  width,
		height: height,
		stride: stride,
	}
}

// Width returns the visible width in pixels.
func (f *Framebuffer) Width() int {
	if f == nil {
		return 0
	}
	return f.width
}

// Height returns the height in pixels.
func (f *Framebuffer) Height() int {
	if f == nil {
		return 0
	}
	return f.height
}

// Stride returns the row length in pixels, including padding.
func (f *Framebuffer) Stride() int {
	if f == nil {
		return 0
	}
	return f.stride
}

// Pitch returns the row length in bytes.
func (f *Framebuffer) Pitch() int {
	return f.Stride() * 4
}

// PixelCount returns the number of visible pixels.
func (f *Framebuffer) PixelCount() int {
	return f.Width() * f.Height()
}

// Format returns the memory layout of a pixel.
func (f *Framebuffer) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatBGRA8Unorm
}

// Extent returns the surface size as a 2D extent.
func (f *Framebuffer) Extent() gputypes.Extent3D {
	return gputypes.NewExtent2D(uint32(f.Width()), uint32(f.Height())) //nolint:gosec // dimensions are positive ints
}

// Attach sets the display that receives the front buffer after each Present.
// Pass nil to detach.
func (f *Framebuffer) Attach(display gpucontext.TextureUpdater) {
	if f == nil {
		return
	}
	f.display = display
}

// PutPixel writes a pixel to the back buffer. Out-of-bounds writes are
// ignored.
func (f *Framebuffer) PutPixel(x, y int, c uint32) {
	if f == nil || x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.back[y*f.stride+x] = c
}

// GetPixel reads a pixel from the back buffer, or 0 when out of bounds.
func (f *Framebuffer) GetPixel(x, y int) uint32 {
	if f == nil || x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0
	}
	return f.back[y*f.stride+x]
}

// FrontPixel reads a pixel from the front buffer, or 0 when out of bounds.
func (f *Framebuffer) FrontPixel(x, y int) uint32 {
	if f == nil || x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0
	}
	return f.front[y*f.stride+x]
}

// HLine fills the half-open span [min(x1,x2), max(x1,x2)) of row y,
// clipped to the surface.
func (f *Framebuffer) HLine(x1, x2, y int, c uint32) {
	if f == nil || y < 0 || y >= f.height {
		return
	}
	start := max(min(x1, x2), 0)
	end := min(max(x1, x2), f.width)
	if start >= end {
		return
	}
	fill32(f.back[y*f.stride+start:y*f.stride+end], c)
}

// FillRect fills a rectangle clipped to the surface.
func (f *Framebuffer) FillRect(x, y, w, h int, c uint32) {
	if f == nil || w <= 0 || h <= 0 {
		return
	}
	for row := max(y, 0); row < min(y+h, f.height); row++ {
		f.HLine(x, x+w, row, c)
	}
}

// Clear fills the whole back buffer, padding included, with c. The color is
// packed into 64-bit words so each store writes two pixels.
func (f *Framebuffer) Clear(c uint32) {
	if f == nil {
		return
	}
	words := asWords(f.back)
	if words == nil {
		fill32(f.back, c)
		return
	}
	wide := uint64(c)<<32 | uint64(c)
	for i := range words {
		words[i] = wide
	}
	if len(f.back)%2 != 0 {
		f.back[len(f.back)-1] = c
	}
}

// Present copies the back buffer to the front buffer using 64-bit words,
// then uploads the front buffer to the attached display, if any.
//
// Present must not run while any core still writes the back buffer.
// The error, if any, comes from the display upload; the front buffer is
// updated regardless.
func (f *Framebuffer) Present() error {
	if f == nil {
		return nil
	}
	dst, src := asWords(f.front), asWords(f.back)
	if dst != nil && src != nil {
		copy(dst, src)
		if n := len(f.back); n%2 != 0 {
			f.front[n-1] = f.back[n-1]
		}
	} else {
		copy(f.front, f.back)
	}
	if f.display == nil {
		return nil
	}
	return f.display.UpdateData(f.frontBytes())
}

// Front returns the front buffer. Rows are Stride pixels long. The slice is
// only stable between Present calls.
func (f *Framebuffer) Front() []uint32 {
	if f == nil {
		return nil
	}
	return f.front
}

// frontBytes returns the visible front buffer as densely packed BGRA bytes.
func (f *Framebuffer) frontBytes() []byte {
	if f.stride == f.width {
		return asBytes(f.front)
	}
	rowBytes := f.width * 4
	if len(f.packed) != rowBytes*f.height {
		f.packed = make([]byte, rowBytes*f.height)
	}
	src := asBytes(f.front)
	for y := range f.height {
		copy(f.packed[y*rowBytes:(y+1)*rowBytes], src[y*f.stride*4:])
	}
	return f.packed
}

// asWords views an even-length prefix of a pixel slice as 64-bit words.
// It returns nil when the slice is too short or not 8-byte aligned, which
// can happen for a caller-supplied front buffer.
func asWords(p []uint32) []uint64 {
	if len(p) < 2 || uintptr(unsafe.Pointer(&p[0]))%8 != 0 {
		return nil
	}
	return unsafe.Slice((*uint64)(unsafe.Pointer(&p[0])), len(p)/2)
}

// asBytes views a pixel slice as bytes.
func asBytes(p []uint32) []byte {
	if len(p) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&p[0])), len(p)*4)
}

// fill32 writes c to every element by doubling copies.
func fill32(dst []uint32, c uint32) {
	if len(dst) == 0 {
		return
	}
	dst[0] = c
	for n := 1; n < len(dst); n *= 2 {
		copy(dst[n:], dst[:n])
	}
}

var _ gpucontext.Texture = (*Framebuffer)(nil)
