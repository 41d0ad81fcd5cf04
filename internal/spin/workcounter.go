// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package spin

import "sync/atomic"

// WorkCounter hands out the indices 0..total-1 exactly once per batch.
//
// Next is a single fetch-and-add: concurrent callers never receive the same
// index between two calls to Reset, and every call after the batch is
// exhausted reports false. Mapping an index to a work item is the caller's
// business.
type WorkCounter struct {
	next  atomic.Uint64
	total uint64
}

// NewWorkCounter creates a counter for a batch of total items.
// A negative total is treated as zero.
func NewWorkCounter(total int) *WorkCounter {
	return &WorkCounter{total: uint64(max(total, 0))}
}

// Next returns the next unclaimed index. ok is false once the batch is
// exhausted.
func (c *WorkCounter) Next() (idx int, ok bool) {
	i := c.next.Add(1) - 1
	if i < c.total {
		return int(i), true //nolint:gosec // i < total, which came from an int
	}
	return 0, false
}

// Reset starts a new batch. It must not race with Next from the previous
// batch; the frame pipeline orders it before the render-phase release.
func (c *WorkCounter) Reset() {
	c.next.Store(0)
}

// Restart starts a new batch of total items. Like Reset it must be ordered
// before the batch is published to other cores.
func (c *WorkCounter) Restart(total int) {
	c.total = uint64(max(total, 0))
	c.next.Store(0)
}

// Done reports whether every index of the batch has been handed out.
func (c *WorkCounter) Done() bool {
	return c.next.Load() >= c.total
}

// Total returns the batch size.
func (c *WorkCounter) Total() int {
	return int(c.total) //nolint:gosec // total came from an int
}
