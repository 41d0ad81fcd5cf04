// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package raster

// Fixed-point constants for screen positions.
//
// Positions are snapped to 1/16 pixel before edge setup so that coverage
// is decided with exact integer arithmetic and two triangles sharing an
// edge never both claim, or both miss, a pixel on it.
const (
	// SubpixelBits is the number of fractional bits of a fixed-point
	// screen coordinate.
	SubpixelBits = 4

	// SubpixelOne is 1.0 in fixed-point (2^4 = 16).
	SubpixelOne = 1 << SubpixelBits

	// SubpixelHalf is 0.5 in fixed-point; pixel centers sit at +half.
	SubpixelHalf = SubpixelOne >> 1

	// GuardBand bounds the magnitude of accepted vertex positions in
	// pixels. It keeps every edge product inside int64.
	GuardBand = 1 << 20
)

// Edge is a half-space edge function E(x, y) = A*x + B*y + C over
// fixed-point sample positions. A sample is inside the edge when
// E + Bias >= 0.
type Edge struct {
	A, B int64
	C    int64

	// Bias is 0 for top and left edges and -1 otherwise, so samples
	// exactly on a shared edge belong to exactly one triangle.
	Bias int64
}

// newEdge builds the edge from (x0, y0) to (x1, y1). For a triangle with
// positive area the opposite vertex evaluates positive.
func newEdge(x0, y0, x1, y1 int32) Edge {
	e := Edge{
		A: int64(y0) - int64(y1),
		B: int64(x1) - int64(x0),
		C: int64(x0)*int64(y1) - int64(y0)*int64(x1),
	}
	if !e.topLeft() {
		e.Bias = -1
	}
	return e
}

// flip negates the edge so a clockwise triangle evaluates positive inside.
func (e Edge) flip() Edge {
	e.A, e.B, e.C = -e.A, -e.B, -e.C
	if e.topLeft() {
		e.Bias = 0
	} else {
		e.Bias = -1
	}
	return e
}

// topLeft reports whether the interior lies right of the edge (a left
// edge) or below a horizontal edge (a top edge), in y-down screen space.
func (e Edge) topLeft() bool {
	return e.A > 0 || (e.A == 0 && e.B > 0)
}

// Eval evaluates the edge at a fixed-point sample position.
func (e Edge) Eval(x, y int64) int64 {
	return e.A*x + e.B*y + e.C
}

// toFixed converts a pixel coordinate to fixed-point, rounding to the
// nearest sub-pixel.
func toFixed(v float32) int32 {
	return int32(floor32(v*SubpixelOne + 0.5))
}

// sampleCenter returns the fixed-point position of the center of pixel p.
func sampleCenter(p int) int64 {
	return int64(p)<<SubpixelBits + SubpixelHalf
}
