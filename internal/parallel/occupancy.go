// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package parallel

import (
	"math/bits"
	"sync/atomic"
)

// Occupancy tracks which tiles received at least one triangle this frame
// using an atomic bitmap. All methods are safe for concurrent use without
// external synchronization, so parallel binning can mark tiles directly.
//
// The bitmap uses one bit per tile index, packed into uint64 words. A nil
// *Occupancy tracks no tiles.
type Occupancy struct {
	words []atomic.Uint64
	tiles int
}

// NewOccupancy creates an empty bitmap for n tiles.
func NewOccupancy(n int) *Occupancy {
	n = max(n, 0)
	return &Occupancy{
		words: make([]atomic.Uint64, (n+63)/64),
		tiles: n,
	}
}

// Mark sets the bit for tile index i. Out-of-range indices are ignored.
func (o *Occupancy) Mark(i int) {
	if o == nil || i < 0 || i >= o.tiles {
		return
	}
	w := &o.words[i/64]
	bit := uint64(1) << (i & 63)
	// Skip the read-modify-write when the bit is already set; most marks
	// hit tiles that are already occupied.
	if w.Load()&bit == 0 {
		w.Or(bit)
	}
}

// IsSet reports whether tile index i is occupied.
func (o *Occupancy) IsSet(i int) bool {
	if o == nil || i < 0 || i >= o.tiles {
		return false
	}
	return o.words[i/64].Load()&(1<<(i&63)) != 0
}

// Count returns the number of occupied tiles.
func (o *Occupancy) Count() int {
	if o == nil {
		return 0
	}
	n := 0
	for i := range o.words {
		n += bits.OnesCount64(o.words[i].Load())
	}
	return n
}

// Clear marks every tile empty.
func (o *Occupancy) Clear() {
	if o == nil {
		return
	}
	for i := range o.words {
		o.words[i].Store(0)
	}
}

// ForEach calls fn for each occupied tile index in ascending order without
// clearing.
func (o *Occupancy) ForEach(fn func(i int)) {
	o.visit(fn, false)
}

// Drain calls fn for each occupied tile index in ascending order and
// clears the bitmap word by word.
func (o *Occupancy) Drain(fn func(i int)) {
	o.visit(fn, true)
}

func (o *Occupancy) visit(fn func(i int), clearWords bool) {
	if o == nil {
		return
	}
	for wi := range o.words {
		var word uint64
		if clearWords {
			word = o.words[wi].Swap(0)
		} else {
			word = o.words[wi].Load()
		}
		for word != 0 {
			b := bits.TrailingZeros64(word)
			fn(wi*64 + b)
			word &^= 1 << b
		}
	}
}

// Len returns the number of tiles tracked.
func (o *Occupancy) Len() int {
	if o == nil {
		return 0
	}
	return o.tiles
}
