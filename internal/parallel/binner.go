// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package parallel

import (
	"slices"
	"sync/atomic"

	"github.com/gogpu/framecore/internal/spin"
	"github.com/gogpu/framecore/raster"
)

// Default capacities of the per-frame triangle store and of one tile bin.
const (
	DefaultMaxTriangles        = 32768
	DefaultMaxTrianglesPerTile = 512
)

// BinStats counts the binning work of the current frame.
type BinStats struct {
	// Triangles is the number of triangles in the store.
	Triangles int

	// Dropped counts triangles rejected because the store was full.
	Dropped uint64

	// Overflowed counts (triangle, tile) pairs dropped because the tile's
	// bin was full.
	Overflowed uint64

	// Occupied is the number of tiles with a non-empty bin.
	Occupied int
}

// tileBin is the triangle list of one tile.
type tileBin struct {
	lock    spin.SpinLock
	indices []uint32
}

// Binner stores the frame's screen triangles and assigns each one to
// every tile its bounding box overlaps.
//
// The zero Binner has no tiles and no store capacity: Add and Store
// reject every triangle and the bins stay empty.
//
// Thread safety: Store, Add and Bin are single-writer and belong to the
// orchestrator. BinLocked may run on many cores at once for distinct
// triangles; each append takes the tile's spin lock. Triangles and
// Triangle may be read by any core once binning is complete and published
// through the render-phase flag or a barrier.
type Binner struct {
	grid *TileGrid

	store      []raster.ScreenTriangle
	bins       []tileBin
	maxPerTile int
	occupancy  *Occupancy

	dropped    atomic.Uint64
	overflowed atomic.Uint64
}

// NewBinner creates a binner for grid. Non-positive capacities select the
// defaults.
func NewBinner(grid *TileGrid, maxTriangles, maxPerTile int) *Binner {
	if maxTriangles <= 0 {
		maxTriangles = DefaultMaxTriangles
	}
	if maxPerTile <= 0 {
		maxPerTile = DefaultMaxTrianglesPerTile
	}
	b := &Binner{
		store:      make([]raster.ScreenTriangle, 0, maxTriangles),
		maxPerTile: maxPerTile,
	}
	b.Resize(grid)
	return b
}

// Resize rebinds the binner to grid and empties every bin. It must not run
// while a frame is in flight.
func (b *Binner) Resize(grid *TileGrid) {
	b.grid = grid
	n := 0
	if grid != nil {
		n = grid.TileCount()
	}
	if len(b.bins) != n || b.occupancy == nil {
		b.bins = make([]tileBin, n)
		for i := range b.bins {
			b.bins[i].indices = make([]uint32, 0, b.maxPerTile)
		}
		b.occupancy = NewOccupancy(n)
	}
	b.Reset()
}

// Reset empties the store and every bin for a new frame.
func (b *Binner) Reset() {
	b.store = b.store[:0]
	for i := range b.bins {
		b.bins[i].indices = b.bins[i].indices[:0]
	}
	b.occupancy.Clear()
	b.dropped.Store(0)
	b.overflowed.Store(0)
}

// Store appends st to the triangle store without binning it. It returns
// the triangle's index, or false if the store is full.
func (b *Binner) Store(st raster.ScreenTriangle) (int, bool) {
	if len(b.store) == cap(b.store) {
		b.dropped.Add(1)
		return 0, false
	}
	b.store = append(b.store, st)
	return len(b.store) - 1, true
}

// Add stores st and bins it immediately. It returns false if the store is
// full.
func (b *Binner) Add(st raster.ScreenTriangle) bool {
	i, ok := b.Store(st)
	if ok {
		b.Bin(i)
	}
	return ok
}

// Bin appends triangle i to the bin of every tile its bounding box
// overlaps, without locking.
func (b *Binner) Bin(i int) {
	b.bin(i, false)
}

// BinLocked is Bin for concurrent use: each bin append happens under that
// tile's spin lock. Bins filled this way are not in submission order until
// SortBin runs.
func (b *Binner) BinLocked(i int) {
	b.bin(i, true)
}

// BinRange bins triangles [from, to) without locking.
func (b *Binner) BinRange(from, to int) {
	for i := max(from, 0); i < min(to, len(b.store)); i++ {
		b.bin(i, false)
	}
}

func (b *Binner) bin(i int, locked bool) {
	if b.grid == nil || i < 0 || i >= len(b.store) {
		return
	}
	tx0, ty0, tx1, ty1, ok := b.grid.Range(b.store[i].Bounds())
	if !ok {
		return
	}
	tilesX := b.grid.TilesX()
	for ty := ty0; ty <= ty1; ty++ {
		for tx := tx0; tx <= tx1; tx++ {
			t := ty*tilesX + tx
			bin := &b.bins[t]
			if locked {
				bin.lock.Lock()
			}
			if len(bin.indices) < b.maxPerTile {
				bin.indices = append(bin.indices, uint32(i)) //nolint:gosec // i < cap(store) fits uint32
				b.occupancy.Mark(t)
			} else {
				b.overflowed.Add(1)
			}
			if locked {
				bin.lock.Unlock()
			}
		}
	}
}

// SortBin restores submission order in tile t's bin. Only the tile's
// owner may call it, after binning has finished.
func (b *Binner) SortBin(t int) {
	if t < 0 || t >= len(b.bins) {
		return
	}
	slices.Sort(b.bins[t].indices)
}

// Triangles returns tile t's bin. An out-of-range tile yields an empty bin.
func (b *Binner) Triangles(t int) raster.Bin {
	if t < 0 || t >= len(b.bins) {
		return raster.Bin{}
	}
	return raster.NewBin(b.store, b.bins[t].indices)
}

// BinLen returns the number of triangles in tile t's bin.
func (b *Binner) BinLen(t int) int {
	if t < 0 || t >= len(b.bins) {
		return 0
	}
	return len(b.bins[t].indices)
}

// Triangle returns stored triangle i, or nil if i is out of range.
func (b *Binner) Triangle(i int) *raster.ScreenTriangle {
	if i < 0 || i >= len(b.store) {
		return nil
	}
	return &b.store[i]
}

// Len returns the number of stored triangles.
func (b *Binner) Len() int {
	return len(b.store)
}

// Cap returns the capacity of the triangle store.
func (b *Binner) Cap() int {
	return cap(b.store)
}

// Occupancy returns the bitmap of tiles with non-empty bins.
func (b *Binner) Occupancy() *Occupancy {
	return b.occupancy
}

// Stats returns the binning counters of the current frame.
func (b *Binner) Stats() BinStats {
	return BinStats{
		Triangles:  len(b.store),
		Dropped:    b.dropped.Load(),
		Overflowed: b.overflowed.Load(),
		Occupied:   b.occupancy.Count(),
	}
}
