// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

import (
	"iter"

	"github.com/chewxy/math32"

	"github.com/gogpu/framecore/framebuffer"
)

// Bin is the ordered list of triangles binned to one tile. It indexes
// into the frame's triangle store and does not own either slice.
type Bin struct {
	store   []ScreenTriangle
	indices []uint32
}

// NewBin returns a bin reading indices from store.
func NewBin(store []ScreenTriangle, indices []uint32) Bin {
	return Bin{store: store, indices: indices}
}

// Len returns the number of triangles in the bin.
func (b Bin) Len() int {
	return len(b.indices)
}

// At returns the i-th triangle of the bin.
func (b Bin) At(i int) *ScreenTriangle {
	return &b.store[b.indices[i]]
}

// All iterates the bin in submission order.
func (b Bin) All() iter.Seq[*ScreenTriangle] {
	return func(yield func(*ScreenTriangle) bool) {
		for _, idx := range b.indices {
			if !yield(&b.store[idx]) {
				return
			}
		}
	}
}

// Rasterizer fills binned triangles with interpolated color and depth.
// The zero value is ready to use and safe for concurrent use on disjoint
// tiles.
type Rasterizer struct {
	// NoDepth disables the depth test; later triangles overwrite earlier
	// ones.
	NoDepth bool
}

// RasterizeTile draws every triangle of bin that covers pixels of view.
func (r Rasterizer) RasterizeTile(view framebuffer.TileView, bin Bin) {
	if view.Empty() {
		return
	}
	for tri := range bin.All() {
		r.DrawTriangle(view, tri)
	}
}

// DrawTriangle draws the part of st inside view and returns the number of
// pixels written.
func (r Rasterizer) DrawTriangle(view framebuffer.TileView, st *ScreenTriangle) int {
	rect := view.Bounds().Intersect(st.Bounds())
	if rect.Empty() {
		return 0
	}

	e0, e1, e2 := st.Edges[0], st.Edges[1], st.Edges[2]
	sx, sy := sampleCenter(rect.Min.X), sampleCenter(rect.Min.Y)
	row0 := e0.Eval(sx, sy)
	row1 := e1.Eval(sx, sy)
	row2 := e2.Eval(sx, sy)
	step0x, step1x, step2x := e0.A*SubpixelOne, e1.A*SubpixelOne, e2.A*SubpixelOne
	step0y, step1y, step2y := e0.B*SubpixelOne, e1.B*SubpixelOne, e2.B*SubpixelOne

	written := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		w0, w1, w2 := row0, row1, row2
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if (w0+e0.Bias)|(w1+e1.Bias)|(w2+e2.Bias) >= 0 {
				l0 := float32(w0) * st.InvArea
				l1 := float32(w1) * st.InvArea
				l2 := float32(w2) * st.InvArea
				z := l0*st.Z[0] + l1*st.Z[1] + l2*st.Z[2]
				if r.NoDepth || view.DepthTest(x, y, z) {
					view.PutPixel(x, y, shade(st, l0, l1, l2))
					written++
				}
			}
			w0 += step0x
			w1 += step1x
			w2 += step2x
		}
		row0 += step0y
		row1 += step1y
		row2 += step2y
	}
	return written
}

// shade interpolates the vertex colors with barycentric weights.
func shade(st *ScreenTriangle, l0, l1, l2 float32) uint32 {
	c := &st.Color
	return framebuffer.RGB(
		channel(l0*c[0][0]+l1*c[1][0]+l2*c[2][0]),
		channel(l0*c[0][1]+l1*c[1][1]+l2*c[2][1]),
		channel(l0*c[0][2]+l1*c[1][2]+l2*c[2][2]),
	)
}

func channel(v float32) uint8 {
	if math32.IsNaN(v) {
		return 0
	}
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
