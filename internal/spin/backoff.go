// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package spin

import "runtime"

const (
	// spinBudget is the number of relaxed polls before a spinner yields its
	// OS thread to another runnable goroutine.
	spinBudget = 224

	// relaxPerSpin is the number of relax hints issued per failed poll.
	relaxPerSpin = 4
)

// Backoff is the adaptive wait used by every spin loop: hot polling with a
// relax hint until the budget is exhausted, then a scheduler yield.
//
// The zero value is ready to use. A Backoff belongs to a single waiter.
type Backoff struct {
	miss int
}

// Spin performs one backoff step. Call it after each failed poll.
func (b *Backoff) Spin() {
	if b.miss++; b.miss >= spinBudget {
		b.miss = 0
		runtime.Gosched()
		return
	}
	for range relaxPerSpin {
		Relax()
	}
}

// Reset returns the backoff to hot polling. Call it after a successful poll.
func (b *Backoff) Reset() {
	b.miss = 0
}

// RelaxN issues n relax hints. Used by pollers that want a fixed pause
// between iterations rather than adaptive backoff.
func RelaxN(n int) {
	for range n {
		Relax()
	}
}
