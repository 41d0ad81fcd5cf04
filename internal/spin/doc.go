// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package spin provides the busy-wait synchronization primitives the frame
// pipeline is built on: a spinlock, a reusable generation-counted barrier
// and a lock-free work counter.
//
// None of the primitives block through the Go scheduler's parking
// machinery. Waiting is CPU-resident polling with acquire loads, a relax
// hint (PAUSE on amd64, YIELD on arm64) and, after a spin budget, a
// runtime.Gosched so that more spinning goroutines than GOMAXPROCS still
// make progress.
//
// Thread safety: every type in this package is safe for concurrent use.
// Values must not be copied after first use.
package spin
