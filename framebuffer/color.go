// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framebuffer

import (
	"image/color"
	"math"
)

// RGB packs an opaque color into a pixel value.
func RGB(r, g, b uint8) uint32 {
	return 0xFF<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// RGBA packs a color with alpha into a pixel value.
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// FromFloat packs color components in [0, 1] into an opaque pixel value.
// Components outside the range are clamped.
func FromFloat(r, g, b float64) uint32 {
	return RGB(unit8(r), unit8(g), unit8(b))
}

// LerpColor interpolates the RGB channels of two pixels. t is clamped to
// [0, 1]; the result is opaque.
func LerpColor(c1, c2 uint32, t float32) uint32 {
	t = min(max(t, 0), 1)
	lerp := func(shift uint) uint8 {
		a := float32((c1 >> shift) & 0xFF)
		b := float32((c2 >> shift) & 0xFF)
		return uint8(a + (b-a)*t)
	}
	return RGB(lerp(16), lerp(8), lerp(0))
}

// toNRGBA converts a pixel value to a color.NRGBA.
func toNRGBA(p uint32) color.NRGBA {
	return color.NRGBA{
		R: uint8(p >> 16),
		G: uint8(p >> 8),
		B: uint8(p),
		A: uint8(p >> 24),
	}
}

// fromColor converts any color.Color to a pixel value.
func fromColor(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA) //nolint:forcetypeassert // NRGBAModel always yields NRGBA
	return RGBA(n.R, n.G, n.B, n.A)
}

func unit8(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(min(max(v, 0), 1)*255 + 0.5)
}
