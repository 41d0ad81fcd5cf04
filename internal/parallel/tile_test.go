// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package parallel

import (
	"image"
	"testing"
)

// =============================================================================
// Tile Tests
// =============================================================================

func TestTile_Bounds(t *testing.T) {
	tests := []struct {
		name string
		tile Tile
		want image.Rectangle
	}{
		{
			name: "first tile",
			tile: Tile{X: 0, Y: 0, Width: 64, Height: 64},
			want: image.Rect(0, 0, 64, 64),
		},
		{
			name: "second row first column",
			tile: Tile{Row: 1, X: 0, Y: 64, Width: 64, Height: 64},
			want: image.Rect(0, 64, 64, 128),
		},
		{
			name: "edge tile",
			tile: Tile{Col: 2, Row: 3, X: 128, Y: 192, Width: 32, Height: 16},
			want: image.Rect(128, 192, 160, 208),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tile.Bounds(); got != tt.want {
				t.Errorf("Bounds() = %v, want %v", got, tt.want)
			}
			if got := tt.tile.PixelCount(); got != tt.want.Dx()*tt.want.Dy() {
				t.Errorf("PixelCount() = %d, want %d", got, tt.want.Dx()*tt.want.Dy())
			}
		})
	}
}

func TestTile_Contains(t *testing.T) {
	tile := Tile{X: 64, Y: 64, Width: 64, Height: 64}

	tests := []struct {
		name   string
		cx, cy int
		want   bool
	}{
		{"top-left corner", 64, 64, true},
		{"bottom-right corner", 127, 127, true},
		{"center", 96, 96, true},
		{"just left", 63, 64, false},
		{"just above", 64, 63, false},
		{"just right", 128, 64, false},
		{"just below", 64, 128, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tile.Contains(tt.cx, tt.cy); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.cx, tt.cy, got, tt.want)
			}
		})
	}
}

func TestTile_Overlaps(t *testing.T) {
	tile := Tile{X: 64, Y: 0, Width: 64, Height: 64}

	tests := []struct {
		name string
		r    image.Rectangle
		want bool
	}{
		{"inside", image.Rect(70, 10, 80, 20), true},
		{"straddles left edge", image.Rect(50, 10, 91, 20), true},
		{"ends at left edge", image.Rect(0, 0, 64, 64), false},
		{"starts at right edge", image.Rect(128, 0, 200, 64), false},
		{"below", image.Rect(64, 64, 128, 128), false},
		{"covers", image.Rect(-10, -10, 500, 500), true},
		{"empty", image.Rectangle{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tile.Overlaps(tt.r); got != tt.want {
				t.Errorf("Overlaps(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

// =============================================================================
// Partition Tests
// =============================================================================

func TestPartition_CoversExactly(t *testing.T) {
	tests := []struct {
		width, height, size int
	}{
		{128, 128, 64},
		{100, 100, 64},
		{1, 1, 64},
		{1920, 1080, 64},
		{65, 3, 64},
		{37, 91, 16},
		{10, 10, 1},
	}

	for _, tt := range tests {
		tiles := Partition(tt.width, tt.height, tt.size)
		owner := make([]int, tt.width*tt.height)
		for i := range owner {
			owner[i] = -1
		}
		for i, tile := range tiles {
			if tile.Index != i {
				t.Fatalf("%dx%d/%d: tile %d has Index %d", tt.width, tt.height, tt.size, i, tile.Index)
			}
			for y := tile.Y; y < tile.Y+tile.Height; y++ {
				for x := tile.X; x < tile.X+tile.Width; x++ {
					if x >= tt.width || y >= tt.height {
						t.Fatalf("%dx%d/%d: tile %d extends past the surface", tt.width, tt.height, tt.size, i)
					}
					if owner[y*tt.width+x] != -1 {
						t.Fatalf("%dx%d/%d: pixel (%d,%d) in tiles %d and %d",
							tt.width, tt.height, tt.size, x, y, owner[y*tt.width+x], i)
					}
					owner[y*tt.width+x] = i
				}
			}
		}
		for i, o := range owner {
			if o == -1 {
				t.Fatalf("%dx%d/%d: pixel (%d,%d) not covered",
					tt.width, tt.height, tt.size, i%tt.width, i/tt.width)
			}
		}
	}
}

func TestPartition_RowMajor(t *testing.T) {
	tiles := Partition(130, 70, 64)
	want := []struct{ x, y, w, h int }{
		{0, 0, 64, 64}, {64, 0, 64, 64}, {128, 0, 2, 64},
		{0, 64, 64, 6}, {64, 64, 64, 6}, {128, 64, 2, 6},
	}
	if len(tiles) != len(want) {
		t.Fatalf("len = %d, want %d", len(tiles), len(want))
	}
	for i, w := range want {
		tl := tiles[i]
		if tl.X != w.x || tl.Y != w.y || tl.Width != w.w || tl.Height != w.h {
			t.Errorf("tile %d = %+v, want %+v", i, tl, w)
		}
	}
}

func TestPartition_Invalid(t *testing.T) {
	for _, args := range [][3]int{{0, 10, 64}, {10, 0, 64}, {10, 10, 0}, {-1, -1, -1}} {
		if tiles := Partition(args[0], args[1], args[2]); tiles != nil {
			t.Errorf("Partition%v = %d tiles, want nil", args, len(tiles))
		}
	}
}

// =============================================================================
// TileGrid Tests
// =============================================================================

func TestTileGrid_Create(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		wantTilesX     int
		wantTilesY     int
		wantTotalTiles int
	}{
		{
			name:  "exact multiple",
			width: 128, height: 128,
			wantTilesX: 2, wantTilesY: 2,
			wantTotalTiles: 4,
		},
		{
			name:  "single tile",
			width: 64, height: 64,
			wantTilesX: 1, wantTilesY: 1,
			wantTotalTiles: 1,
		},
		{
			name:  "partial width",
			width: 100, height: 64,
			wantTilesX: 2, wantTilesY: 1,
			wantTotalTiles: 2,
		},
		{
			name:  "large canvas",
			width: 1920, height: 1080,
			wantTilesX: 30, wantTilesY: 17,
			wantTotalTiles: 510,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := NewTileGrid(tt.width, tt.height, 0)

			if grid.TilesX() != tt.wantTilesX {
				t.Errorf("TilesX() = %d, want %d", grid.TilesX(), tt.wantTilesX)
			}
			if grid.TilesY() != tt.wantTilesY {
				t.Errorf("TilesY() = %d, want %d", grid.TilesY(), tt.wantTilesY)
			}
			if grid.TileCount() != tt.wantTotalTiles {
				t.Errorf("TileCount() = %d, want %d", grid.TileCount(), tt.wantTotalTiles)
			}
			if grid.TileSize() != DefaultTileSize {
				t.Errorf("TileSize() = %d, want %d", grid.TileSize(), DefaultTileSize)
			}
		})
	}
}

func TestTileGrid_CreateInvalid(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
	}{
		{"zero width", 0, 100},
		{"zero height", 100, 0},
		{"negative width", -10, 100},
		{"both zero", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := NewTileGrid(tt.width, tt.height, 64)
			if grid.TileCount() != 0 {
				t.Errorf("TileCount() = %d, want 0 for invalid dimensions", grid.TileCount())
			}
			if _, _, _, _, ok := grid.Range(image.Rect(0, 0, 10, 10)); ok {
				t.Error("Range on empty grid reported a span")
			}
		})
	}
}

func TestTileGrid_TileLookup(t *testing.T) {
	grid := NewTileGrid(100, 100, 64)

	tests := []struct {
		tx, ty int
		wantW  int
		wantH  int
	}{
		{0, 0, 64, 64},
		{1, 0, 36, 64},
		{0, 1, 64, 36},
		{1, 1, 36, 36},
	}

	for _, tt := range tests {
		tile, ok := grid.TileAt(tt.tx, tt.ty)
		if !ok {
			t.Errorf("TileAt(%d,%d) not found", tt.tx, tt.ty)
			continue
		}
		if tile.Width != tt.wantW || tile.Height != tt.wantH {
			t.Errorf("Tile(%d,%d) dimensions = %dx%d, want %dx%d",
				tt.tx, tt.ty, tile.Width, tile.Height, tt.wantW, tt.wantH)
		}
		byIndex, _ := grid.Tile(tile.Index)
		if byIndex != tile {
			t.Errorf("Tile(%d) = %+v, want %+v", tile.Index, byIndex, tile)
		}
	}

	if _, ok := grid.TileAt(2, 0); ok {
		t.Error("TileAt(2,0) found a tile outside the grid")
	}
	if tile, ok := grid.TileAtPixel(99, 70); !ok || tile.Index != 3 {
		t.Errorf("TileAtPixel(99,70) = %+v, %v; want index 3", tile, ok)
	}
	if _, ok := grid.TileAtPixel(100, 0); ok {
		t.Error("TileAtPixel(100,0) found a tile outside the surface")
	}
}

func TestTileGrid_TilesInRect(t *testing.T) {
	grid := NewTileGrid(256, 256, 64)

	tests := []struct {
		name       string
		x, y, w, h int
		wantCount  int
	}{
		{"single tile", 10, 10, 20, 20, 1},
		{"spans two tiles horizontally", 50, 10, 40, 20, 2},
		{"spans four tiles", 50, 50, 40, 40, 4},
		{"entire canvas", 0, 0, 256, 256, 16},
		{"outside canvas", 300, 300, 10, 10, 0},
		{"zero size", 10, 10, 0, 0, 0},
		{"negative origin clipped", -100, -100, 150, 150, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := grid.TilesInRect(tt.x, tt.y, tt.w, tt.h)
			if len(tiles) != tt.wantCount {
				t.Errorf("TilesInRect() returned %d tiles, want %d", len(tiles), tt.wantCount)
			}
		})
	}
}

// TestTileGrid_RangeMatchesOverlaps checks the direct tile-range
// computation against the exhaustive per-tile overlap test.
func TestTileGrid_RangeMatchesOverlaps(t *testing.T) {
	grid := NewTileGrid(200, 150, 64)
	rects := []image.Rectangle{
		image.Rect(0, 0, 1, 1),
		image.Rect(63, 63, 65, 65),
		image.Rect(64, 64, 128, 128),
		image.Rect(50, 10, 91, 20),
		image.Rect(-50, -50, 10, 500),
		image.Rect(190, 140, 400, 400),
		image.Rect(199, 0, 200, 150),
	}

	for _, r := range rects {
		want := map[int]bool{}
		for _, tile := range grid.All() {
			if tile.Overlaps(r) {
				want[tile.Index] = true
			}
		}
		got := map[int]bool{}
		if tx0, ty0, tx1, ty1, ok := grid.Range(r); ok {
			for ty := ty0; ty <= ty1; ty++ {
				for tx := tx0; tx <= tx1; tx++ {
					tile, _ := grid.TileAt(tx, ty)
					got[tile.Index] = true
				}
			}
		}
		if len(got) != len(want) {
			t.Errorf("Range(%v) covers %d tiles, Overlaps finds %d", r, len(got), len(want))
			continue
		}
		for i := range want {
			if !got[i] {
				t.Errorf("Range(%v) misses tile %d", r, i)
			}
		}
	}
}

func TestTileGrid_Resize(t *testing.T) {
	grid := NewTileGrid(128, 128, 64)
	if grid.TileCount() != 4 {
		t.Fatalf("initial TileCount() = %d, want 4", grid.TileCount())
	}

	grid.Resize(256, 256, 64)
	if grid.TileCount() != 16 || grid.Width() != 256 || grid.Height() != 256 {
		t.Errorf("after resize: %d tiles, %dx%d", grid.TileCount(), grid.Width(), grid.Height())
	}

	grid.Resize(256, 256, 32)
	if grid.TileCount() != 64 {
		t.Errorf("after tile size change: %d tiles, want 64", grid.TileCount())
	}

	grid.Resize(0, 0, 64)
	if grid.TileCount() != 0 {
		t.Errorf("after resize to zero: %d tiles, want 0", grid.TileCount())
	}
}

// =============================================================================
// Occupancy Tests
// =============================================================================

func TestOccupancy_MarkAndCount(t *testing.T) {
	o := NewOccupancy(130)
	for _, i := range []int{0, 63, 64, 129, 129, -1, 130} {
		o.Mark(i)
	}
	if o.Count() != 4 {
		t.Errorf("Count() = %d, want 4", o.Count())
	}
	for _, i := range []int{0, 63, 64, 129} {
		if !o.IsSet(i) {
			t.Errorf("IsSet(%d) = false", i)
		}
	}
	if o.IsSet(1) || o.IsSet(130) {
		t.Error("unmarked index reported set")
	}
}

func TestOccupancy_ForEachAndDrain(t *testing.T) {
	o := NewOccupancy(200)
	marked := []int{3, 64, 65, 199}
	for _, i := range marked {
		o.Mark(i)
	}

	var seen []int
	o.ForEach(func(i int) { seen = append(seen, i) })
	if len(seen) != len(marked) {
		t.Fatalf("ForEach visited %v, want %v", seen, marked)
	}
	for k := range marked {
		if seen[k] != marked[k] {
			t.Fatalf("ForEach visited %v, want %v", seen, marked)
		}
	}
	if o.Count() != len(marked) {
		t.Error("ForEach cleared bits")
	}

	seen = seen[:0]
	o.Drain(func(i int) { seen = append(seen, i) })
	if len(seen) != len(marked) || o.Count() != 0 {
		t.Errorf("Drain visited %v and left %d set", seen, o.Count())
	}
}

func TestOccupancy_ConcurrentMark(t *testing.T) {
	const n = 1000
	o := NewOccupancy(n)
	done := make(chan struct{})
	for w := range 8 {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := w; i < n; i += 8 {
				o.Mark(i)
			}
		}()
	}
	for range 8 {
		<-done
	}
	if o.Count() != n {
		t.Errorf("Count() = %d, want %d", o.Count(), n)
	}
}
