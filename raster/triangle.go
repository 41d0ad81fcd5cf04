// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package raster turns screen-space triangles into pixels.
//
// Setup converts a Triangle into a ScreenTriangle once per frame: positions
// are snapped to fixed-point, the pixel bounding box is clamped to the
// surface and the edge functions are normalized to counter-clockwise
// winding. The binner stores ScreenTriangles and the Rasterizer fills them
// one tile at a time through a framebuffer.TileView.
package raster

import (
	"image"

	"github.com/chewxy/math32"
)

// Vertex is a projected vertex with a resolved color.
type Vertex struct {
	// X and Y are screen coordinates in pixels, y pointing down.
	X, Y float32

	// Z is reversed depth: larger is nearer.
	Z float32

	// R, G and B are color channels in [0, 1].
	R, G, B float32
}

// Triangle is three projected vertices in any winding order.
type Triangle [3]Vertex

// ScreenTriangle is a triangle prepared for rasterization.
type ScreenTriangle struct {
	// Fixed-point positions.
	X, Y [3]int32
	Z    [3]float32

	// Edges[i] is the edge opposite vertex i; its value divided by the
	// doubled area is vertex i's barycentric weight.
	Edges [3]Edge

	// Inclusive pixel bounding box, clamped to the surface.
	MinX, MinY int
	MaxX, MaxY int

	// InvArea is the reciprocal of the doubled fixed-point area.
	InvArea float32

	// Clockwise reports the winding of the submitted vertices.
	Clockwise bool

	Color [3][3]float32
}

// Setup prepares t for a width x height surface.
//
// It returns false for triangles that cannot produce a pixel: zero area,
// bounding box entirely off the surface, a non-finite coordinate or colour
// channel, or a
// vertex outside GuardBand.
func Setup(t Triangle, width, height int) (ScreenTriangle, bool) {
	var st ScreenTriangle
	if width <= 0 || height <= 0 {
		return st, false
	}
	for i, v := range t {
		if !finite(v.X) || !finite(v.Y) || !finite(v.Z) ||
			!finite(v.R) || !finite(v.G) || !finite(v.B) ||
			math32.Abs(v.X) > GuardBand || math32.Abs(v.Y) > GuardBand {
			return st, false
		}
		st.X[i] = toFixed(v.X)
		st.Y[i] = toFixed(v.Y)
		st.Z[i] = v.Z
		st.Color[i] = [3]float32{v.R, v.G, v.B}
	}

	minFX := min(st.X[0], st.X[1], st.X[2])
	maxFX := max(st.X[0], st.X[1], st.X[2])
	minFY := min(st.Y[0], st.Y[1], st.Y[2])
	maxFY := max(st.Y[0], st.Y[1], st.Y[2])

	st.MinX = max(int(minFX>>SubpixelBits), 0)
	st.MinY = max(int(minFY>>SubpixelBits), 0)
	st.MaxX = min(int((maxFX+SubpixelOne-1)>>SubpixelBits), width-1)
	st.MaxY = min(int((maxFY+SubpixelOne-1)>>SubpixelBits), height-1)
	if st.MinX > st.MaxX || st.MinY > st.MaxY {
		return st, false
	}

	st.Edges[0] = newEdge(st.X[1], st.Y[1], st.X[2], st.Y[2])
	st.Edges[1] = newEdge(st.X[2], st.Y[2], st.X[0], st.Y[0])
	st.Edges[2] = newEdge(st.X[0], st.Y[0], st.X[1], st.Y[1])

	// The edge opposite v2 evaluated at v2 is the doubled signed area.
	area := st.Edges[2].Eval(int64(st.X[2]), int64(st.Y[2]))
	if area == 0 {
		return st, false
	}
	if area < 0 {
		st.Clockwise = true
		area = -area
		for i := range st.Edges {
			st.Edges[i] = st.Edges[i].flip()
		}
	}
	st.InvArea = 1 / float32(area)
	return st, true
}

// Bounds returns the pixel bounding box as a half-open rectangle.
func (st *ScreenTriangle) Bounds() image.Rectangle {
	return image.Rect(st.MinX, st.MinY, st.MaxX+1, st.MaxY+1)
}

// Covers reports whether the center of pixel (x, y) is inside the triangle.
func (st *ScreenTriangle) Covers(x, y int) bool {
	sx, sy := sampleCenter(x), sampleCenter(y)
	for _, e := range st.Edges {
		if e.Eval(sx, sy)+e.Bias < 0 {
			return false
		}
	}
	return true
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

func floor32(v float32) float32 {
	return math32.Floor(v)
}
