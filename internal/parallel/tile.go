// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package parallel provides the tile infrastructure of the frame pipeline.
//
// The render target is divided into square tiles (64x64 pixels by default)
// that are rasterized independently by different cores. Key pieces:
//
//   - Partition and TileGrid: the row-major tile set for one resolution
//   - Binner: per-frame triangle store and per-tile triangle bins
//   - Occupancy: lock-free bitmap of tiles that received triangles
//
// Thread safety: TileGrid is immutable between resizes and may be read
// concurrently. Binner and Occupancy document their own rules.
package parallel

import "image"

// DefaultTileSize is the tile edge length in pixels. A 64x64 tile of 32-bit
// pixels plus depth is 32KB, which fits a core-local L1/L2 cache.
const DefaultTileSize = 64

// Tile is a rectangular region of the render target.
//
// Edge tiles are clipped to the remaining width or height when the
// surface is not evenly divisible by the tile size.
type Tile struct {
	// Index is the row-major position of the tile, the index space handed
	// out by the frame's work counter.
	Index int

	// Col and Row are the tile coordinates in the grid.
	Col, Row int

	// X and Y are the pixel coordinates of the top-left corner.
	X, Y int

	// Width and Height are the actual size in pixels.
	Width, Height int
}

// Bounds returns the pixel rectangle covered by the tile.
func (t Tile) Bounds() image.Rectangle {
	return image.Rect(t.X, t.Y, t.X+t.Width, t.Y+t.Height)
}

// Contains reports whether the pixel (px, py) lies in the tile.
func (t Tile) Contains(px, py int) bool {
	return px >= t.X && px < t.X+t.Width &&
		py >= t.Y && py < t.Y+t.Height
}

// Overlaps reports whether the half-open pixel rectangle r intersects the
// tile. This is the exhaustive per-tile test; TileGrid.Range computes the
// same set directly.
func (t Tile) Overlaps(r image.Rectangle) bool {
	return r.Min.X < t.X+t.Width && r.Max.X > t.X &&
		r.Min.Y < t.Y+t.Height && r.Max.Y > t.Y
}

// PixelCount returns the number of pixels in the tile.
func (t Tile) PixelCount() int {
	return t.Width * t.Height
}

// Partition divides a width x height surface into size x size tiles in
// row-major order. It returns nil for non-positive arguments.
func Partition(width, height, size int) []Tile {
	if width <= 0 || height <= 0 || size <= 0 {
		return nil
	}
	tilesX := (width + size - 1) / size
	tilesY := (height + size - 1) / size

	tiles := make([]Tile, 0, tilesX*tilesY)
	for ty := range tilesY {
		for tx := range tilesX {
			x, y := tx*size, ty*size
			tiles = append(tiles, Tile{
				Index:  len(tiles),
				Col:    tx,
				Row:    ty,
				X:      x,
				Y:      y,
				Width:  min(size, width-x),
				Height: min(size, height-y),
			})
		}
	}
	return tiles
}
