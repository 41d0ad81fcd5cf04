// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package hud draws short lines of status text over a frame.
package hud

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// HUD is a text block anchored at the top-left corner of the target.
type HUD struct {
	// Face is the font face. Nil selects basicfont.Face7x13.
	Face font.Face

	// Fg is the text color, Bg the backdrop color. A nil Bg draws no
	// backdrop.
	Fg, Bg color.Color

	// Margin is the padding in pixels around the text block.
	Margin int
}

var defaultHUD = HUD{
	Fg:     color.White,
	Bg:     color.NRGBA{A: 160},
	Margin: 4,
}

// Draw renders lines with the default style: white 7x13 text on a
// translucent black backdrop.
func Draw(dst draw.Image, lines ...string) image.Rectangle {
	return defaultHUD.Draw(dst, lines...)
}

func (h *HUD) face() font.Face {
	if h.Face == nil {
		return basicfont.Face7x13
	}
	return h.Face
}

// Bounds returns the rectangle Draw covers for lines, before clipping to
// the target.
func (h *HUD) Bounds(lines ...string) image.Rectangle {
	if len(lines) == 0 {
		return image.Rectangle{}
	}
	face := h.face()
	width := fixed.Int26_6(0)
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l))
	}
	lineHeight := face.Metrics().Height.Ceil()
	return image.Rect(0, 0,
		width.Ceil()+2*h.Margin,
		lineHeight*len(lines)+2*h.Margin,
	)
}

// Draw renders lines into dst and returns the rectangle it touched.
func (h *HUD) Draw(dst draw.Image, lines ...string) image.Rectangle {
	r := h.Bounds(lines...).Add(dst.Bounds().Min).Intersect(dst.Bounds())
	if r.Empty() {
		return image.Rectangle{}
	}
	if h.Bg != nil {
		draw.Draw(dst, r, image.NewUniform(h.Bg), image.Point{}, draw.Over)
	}

	face := h.face()
	m := face.Metrics()
	fg := h.Fg
	if fg == nil {
		fg = color.White
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(fg),
		Face: face,
	}
	x := fixed.I(r.Min.X + h.Margin)
	y := fixed.I(r.Min.Y+h.Margin) + m.Ascent
	for _, l := range lines {
		d.Dot = fixed.Point26_6{X: x, Y: y}
		d.DrawString(l)
		y += m.Height
	}
	return r
}
