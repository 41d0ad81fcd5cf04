// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package spin

import "sync/atomic"

// SpinLock is a test-and-test-and-set lock.
//
// Lock retries a compare-and-swap and, while the lock is held, spins on a
// plain load so contending cores share the cache line instead of bouncing
// it. There is no fairness: a waiter can starve under heavy contention.
//
// The zero value is an unlocked SpinLock.
type SpinLock struct {
	locked atomic.Bool
}

// Lock acquires the lock, spinning until it is available.
func (l *SpinLock) Lock() {
	var b Backoff
	for !l.locked.CompareAndSwap(false, true) {
		for l.locked.Load() {
			b.Spin()
		}
	}
}

// TryLock attempts a single acquisition and reports whether it succeeded.
func (l *SpinLock) TryLock() bool {
	return l.locked.CompareAndSwap(false, true)
}

// Unlock releases the lock. Unlocking an unlocked SpinLock is a no-op.
func (l *SpinLock) Unlock() {
	l.locked.Store(false)
}
