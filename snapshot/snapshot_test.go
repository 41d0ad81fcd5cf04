// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package snapshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/webp"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := range 4 {
		for x := range 8 {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 60), B: 200, A: 255})
		}
	}
	return img
}

func TestEncoders_Builtin(t *testing.T) {
	assert.Equal(t, []string{"bmp", "png", "tga", "webp"}, Encoders())
}

func TestEncode_Decodes(t *testing.T) {
	decoders := map[string]func(io.Reader) (image.Image, error){
		"png":  png.Decode,
		"bmp":  bmp.Decode,
		"tga":  tga.Decode,
		"webp": webp.Decode,
	}
	src := testImage()
	for name, decode := range decoders {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(name, &buf, src))

			got, err := decode(&buf)
			require.NoError(t, err)
			require.Equal(t, src.Bounds(), got.Bounds())
			r, g, b, _ := got.At(5, 2).RGBA()
			assert.Equal(t, [3]uint32{150, 120, 200}, [3]uint32{r >> 8, g >> 8, b >> 8})
		})
	}
}

func TestEncode_Unknown(t *testing.T) {
	err := Encode("gif", io.Discard, testImage())
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestRegister(t *testing.T) {
	calls := 0
	Register("test", func(io.Writer, image.Image) error {
		calls++
		return errors.New("boom")
	})
	defer Unregister("test")

	assert.True(t, IsRegistered("test"))
	err := Encode("test", io.Discard, testImage())
	assert.ErrorContains(t, err, "boom")
	assert.Equal(t, 1, calls)

	assert.Panics(t, func() { Register("test", png.Encode) })
	assert.Panics(t, func() { Register("nil", nil) })
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "png", Format("out/frame.PNG"))
	assert.Equal(t, "webp", Format("frame.0001.webp"))
	assert.Equal(t, "", Format("frame"))
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.png")
	require.NoError(t, Save(path, testImage()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), img.Bounds())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestSave_Errors(t *testing.T) {
	dir := t.TempDir()

	err := Save(filepath.Join(dir, "frame.jpg"), testImage())
	require.ErrorIs(t, err, ErrUnknownFormat)

	Register("fail", func(io.Writer, image.Image) error { return errors.New("disk full") })
	defer Unregister("fail")
	err = Save(filepath.Join(dir, "frame.fail"), testImage())
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	err = Save(filepath.Join(dir, "missing", "frame.png"), testImage())
	assert.Error(t, err)
}
