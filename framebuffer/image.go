// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framebuffer

import (
	"image"
	"image/color"
	"image/draw"
)

// surfaceImage adapts one of the two buffers to the image interfaces.
type surfaceImage struct {
	fb  *Framebuffer
	pix []uint32
}

// Image returns the back buffer as a draw.Image. Drawing through it is
// subject to the same ordering rules as any other back-buffer write.
func (f *Framebuffer) Image() draw.Image {
	if f == nil {
		return &surfaceImage{}
	}
	return &surfaceImage{fb: f, pix: f.back}
}

// FrontImage returns the front buffer as an image.Image, suitable for
// encoding a snapshot of the last presented frame.
func (f *Framebuffer) FrontImage() image.Image {
	if f == nil {
		return &surfaceImage{}
	}
	return &surfaceImage{fb: f, pix: f.front}
}

// Snapshot copies the front buffer into a new *image.NRGBA.
func (f *Framebuffer) Snapshot() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, f.Width(), f.Height()))
	for y := range f.Height() {
		row := img.Pix[y*img.Stride:]
		for x := range f.Width() {
			c := toNRGBA(f.front[y*f.stride+x])
			row[x*4+0] = c.R
			row[x*4+1] = c.G
			row[x*4+2] = c.B
			row[x*4+3] = c.A
		}
	}
	return img
}

func (s *surfaceImage) ColorModel() color.Model { return color.NRGBAModel }

func (s *surfaceImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.fb.Width(), s.fb.Height())
}

func (s *surfaceImage) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(s.Bounds()) {
		return color.NRGBA{}
	}
	return toNRGBA(s.pix[y*s.fb.stride+x])
}

func (s *surfaceImage) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}).In(s.Bounds()) {
		return
	}
	s.pix[y*s.fb.stride+x] = fromColor(c)
}
