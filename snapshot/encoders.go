// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package snapshot

import (
	"image"
	"image/png"
	"io"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
)

func init() {
	Register("png", png.Encode)
	Register("bmp", bmp.Encode)
	Register("tga", tga.Encode)
	Register("webp", encodeWebP)
}

// encodeWebP writes a lossless WebP image.
func encodeWebP(w io.Writer, img image.Image) error {
	return nativewebp.Encode(w, img, nil)
}
