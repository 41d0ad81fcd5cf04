// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package spin

import "sync/atomic"

// Barrier is a reusable rendezvous point for a fixed number of participants.
//
// The arrival count and the generation share one 64-bit word:
//
//	high 32 bits: generation
//	low  32 bits: arrivals in the current generation
//
// The last arriver resets the count and bumps the generation in a single
// compare-and-swap, so there is no window in which a participant of the
// next generation can observe a reset count paired with the old generation.
// Waiters spin until the generation they arrived in has passed.
//
// If fewer than target participants ever arrive for a generation, every
// waiter of that generation spins forever. There is no timeout.
type Barrier struct {
	state  atomic.Uint64
	target uint32
}

// NewBarrier creates a barrier released by target arrivals.
// A target below 1 is treated as 1.
func NewBarrier(target int) *Barrier {
	if target < 1 {
		target = 1
	}
	return &Barrier{target: uint32(target)} //nolint:gosec // target is a small core count
}

// Wait registers the caller's arrival and returns once target participants
// have arrived in the caller's generation. The last arriver returns without
// spinning.
func (b *Barrier) Wait() {
	var bo Backoff
	for {
		s := b.state.Load()
		gen := s >> 32
		count := uint32(s) + 1

		if count == b.target {
			if b.state.CompareAndSwap(s, (gen+1)<<32) {
				return
			}
		} else if b.state.CompareAndSwap(s, s+1) {
			bo.Reset()
			for b.state.Load()>>32 == gen {
				bo.Spin()
			}
			return
		}
		bo.Spin()
	}
}

// Generation returns the number of completed rendezvous cycles.
func (b *Barrier) Generation() uint32 {
	return uint32(b.state.Load() >> 32)
}

// Arrived returns the number of participants waiting in the current
// generation. The value is a snapshot.
func (b *Barrier) Arrived() int {
	return int(uint32(b.state.Load()))
}

// Target returns the number of participants that release the barrier.
func (b *Barrier) Target() int {
	return int(b.target)
}
