// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framebuffer

import (
	"image"

	"github.com/gogpu/framecore/depth"
)

// TileView grants write access to one rectangle of the back buffer and the
// matching depth cells for the duration of a frame.
//
// The pipeline claims exactly one view per tile per frame and hands it to
// the single core that drew the tile's index from the work counter. Writes
// outside the rectangle are dropped, so two views of disjoint tiles can
// never alias. The zero TileView covers nothing.
type TileView struct {
	fb *Framebuffer
	zb *depth.Buffer

	rect image.Rectangle
}

// Claim returns a view of the rectangle (x, y, w, h) clipped to the surface.
// zb may be nil, in which case every depth test passes without storing.
func (f *Framebuffer) Claim(x, y, w, h int, zb *depth.Buffer) TileView {
	if f == nil {
		return TileView{}
	}
	r := image.Rect(x, y, x+w, y+h).Intersect(image.Rect(0, 0, f.width, f.height))
	return TileView{fb: f, zb: zb, rect: r}
}

// Bounds returns the owned rectangle in surface coordinates.
func (v TileView) Bounds() image.Rectangle {
	return v.rect
}

// Empty reports whether the view covers no pixels.
func (v TileView) Empty() bool {
	return v.fb == nil || v.rect.Empty()
}

// owns reports whether (x, y) lies inside the view.
func (v TileView) owns(x, y int) bool {
	return v.fb != nil &&
		x >= v.rect.Min.X && x < v.rect.Max.X &&
		y >= v.rect.Min.Y && y < v.rect.Max.Y
}

// PutPixel writes a pixel inside the view. Writes outside are ignored.
func (v TileView) PutPixel(x, y int, c uint32) {
	if !v.owns(x, y) {
		return
	}
	v.fb.back[y*v.fb.stride+x] = c
}

// GetPixel reads a back-buffer pixel inside the view, or 0 outside it.
func (v TileView) GetPixel(x, y int) uint32 {
	if !v.owns(x, y) {
		return 0
	}
	return v.fb.back[y*v.fb.stride+x]
}

// Row returns the owned span of back-buffer row y, indexed from
// Bounds().Min.X, or nil if the row is outside the view.
func (v TileView) Row(y int) []uint32 {
	if v.fb == nil || y < v.rect.Min.Y || y >= v.rect.Max.Y {
		return nil
	}
	off := y * v.fb.stride
	return v.fb.back[off+v.rect.Min.X : off+v.rect.Max.X]
}

// DepthTest runs the reversed depth test at (x, y) and stores depth if it
// passes. Coordinates outside the view fail.
func (v TileView) DepthTest(x, y int, d float32) bool {
	if !v.owns(x, y) {
		return false
	}
	if v.zb == nil {
		return true
	}
	return v.zb.TestAndSet(x, y, d)
}

// Fill writes c to every owned pixel.
func (v TileView) Fill(c uint32) {
	for y := v.rect.Min.Y; y < v.rect.Max.Y; y++ {
		fill32(v.Row(y), c)
	}
}

// ClearDepth resets the owned depth cells.
func (v TileView) ClearDepth() {
	if v.zb == nil || v.rect.Empty() {
		return
	}
	v.zb.ClearRect(v.rect.Min.X, v.rect.Min.Y, v.rect.Dx(), v.rect.Dy())
}
