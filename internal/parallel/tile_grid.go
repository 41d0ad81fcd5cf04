// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package parallel

import "image"

// TileGrid is the tile set for one resolution.
//
// Tiles are stored in a flat slice in row-major order, accessed via
// index = row * tilesX + col. The grid is immutable between Resize calls,
// so every core may read it during a frame without synchronization.
type TileGrid struct {
	// tiles is the row-major partition of the surface.
	tiles []Tile

	// tilesX is the number of tiles horizontally.
	tilesX int

	// tilesY is the number of tiles vertically.
	tilesY int

	width  int
	height int
	size   int
}

// NewTileGrid creates a grid of size x size tiles covering the surface.
// Non-positive dimensions produce an empty grid. A non-positive size
// selects DefaultTileSize.
func NewTileGrid(width, height, size int) *TileGrid {
	g := &TileGrid{}
	g.Resize(width, height, size)
	return g
}

// Resize rebuilds the tile set. It must not run while a frame is in
// flight. If nothing changed, this is a no-op.
func (g *TileGrid) Resize(width, height, size int) {
	if size <= 0 {
		size = DefaultTileSize
	}
	if width <= 0 || height <= 0 {
		*g = TileGrid{size: size}
		return
	}
	if g.width == width && g.height == height && g.size == size {
		return
	}
	g.tiles = Partition(width, height, size)
	g.tilesX = (width + size - 1) / size
	g.tilesY = (height + size - 1) / size
	g.width = width
	g.height = height
	g.size = size
}

// Tile returns the tile with the given row-major index.
func (g *TileGrid) Tile(index int) (Tile, bool) {
	if index < 0 || index >= len(g.tiles) {
		return Tile{}, false
	}
	return g.tiles[index], true
}

// TileAt returns the tile at grid coordinates (tx, ty).
func (g *TileGrid) TileAt(tx, ty int) (Tile, bool) {
	if tx < 0 || tx >= g.tilesX || ty < 0 || ty >= g.tilesY {
		return Tile{}, false
	}
	return g.tiles[ty*g.tilesX+tx], true
}

// TileAtPixel returns the tile containing the pixel (px, py).
func (g *TileGrid) TileAtPixel(px, py int) (Tile, bool) {
	if px < 0 || px >= g.width || py < 0 || py >= g.height {
		return Tile{}, false
	}
	return g.tiles[(py/g.size)*g.tilesX+px/g.size], true
}

// Range returns the inclusive span of grid coordinates whose tiles
// intersect the half-open pixel rectangle r. ok is false when r misses
// the surface.
func (g *TileGrid) Range(r image.Rectangle) (tx0, ty0, tx1, ty1 int, ok bool) {
	r = r.Intersect(image.Rect(0, 0, g.width, g.height))
	if r.Empty() {
		return 0, 0, 0, 0, false
	}
	return r.Min.X / g.size, r.Min.Y / g.size,
		(r.Max.X - 1) / g.size, (r.Max.Y - 1) / g.size, true
}

// TilesInRect returns the tiles that intersect the pixel rectangle
// (x, y, w, h), or nil if it lies outside the surface.
func (g *TileGrid) TilesInRect(x, y, w, h int) []Tile {
	if w <= 0 || h <= 0 {
		return nil
	}
	tx0, ty0, tx1, ty1, ok := g.Range(image.Rect(x, y, x+w, y+h))
	if !ok {
		return nil
	}
	result := make([]Tile, 0, (tx1-tx0+1)*(ty1-ty0+1))
	for ty := ty0; ty <= ty1; ty++ {
		result = append(result, g.tiles[ty*g.tilesX+tx0:ty*g.tilesX+tx1+1]...)
	}
	return result
}

// TileCount returns the total number of tiles in the grid.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// TilesX returns the number of tiles horizontally.
func (g *TileGrid) TilesX() int {
	return g.tilesX
}

// TilesY returns the number of tiles vertically.
func (g *TileGrid) TilesY() int {
	return g.tilesY
}

// Width returns the surface width in pixels.
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the surface height in pixels.
func (g *TileGrid) Height() int {
	return g.height
}

// TileSize returns the tile edge length in pixels.
func (g *TileGrid) TileSize() int {
	return g.size
}

// All returns the tiles in row-major order. The slice must not be
// modified.
func (g *TileGrid) All() []Tile {
	return g.tiles
}
