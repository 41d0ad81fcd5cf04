// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package hud

import (
	"image"
	"image/color"
	"testing"
)

func TestBounds(t *testing.T) {
	h := HUD{Margin: 2}
	if got := h.Bounds(); !got.Empty() {
		t.Fatalf("Bounds() of no lines = %v, want empty", got)
	}

	// basicfont.Face7x13 advances 7 pixels per glyph, 13 per line.
	got := h.Bounds("abc", "abcdef")
	want := image.Rect(0, 0, 6*7+4, 2*13+4)
	if got != want {
		t.Errorf("Bounds() = %v, want %v", got, want)
	}
}

func TestDraw_WritesInsideBounds(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 100, 40))
	r := Draw(dst, "fps 60")
	if r.Empty() {
		t.Fatal("Draw returned an empty rectangle")
	}

	lit := 0
	for y := range 40 {
		for x := range 100 {
			c := dst.NRGBAAt(x, y)
			inside := image.Pt(x, y).In(r)
			if !inside && c != (color.NRGBA{}) {
				t.Fatalf("pixel (%d,%d) outside %v changed to %v", x, y, r, c)
			}
			if inside && c.R > 200 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no text pixels drawn")
	}
}

func TestDraw_ClipsToTarget(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 10, 5))
	r := Draw(dst, "a long line that does not fit")
	if r != dst.Bounds() {
		t.Errorf("Draw() = %v, want clipped to %v", r, dst.Bounds())
	}
}

func TestDraw_NoBackdrop(t *testing.T) {
	dst := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	h := HUD{Fg: color.White}
	h.Draw(dst, " ")
	for _, p := range dst.Pix {
		if p != 0 {
			t.Fatal("blank line without backdrop changed the target")
		}
	}
}
