// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package framebuffer implements the double-buffered pixel surface the frame
// pipeline renders into.
//
// A Framebuffer owns a CPU-writable back buffer and a front buffer that
// stands in for display memory. Every pixel operation targets the back
// buffer and is bounds-checked; Present copies the back buffer to the front
// buffer in one bulk pass and, when a display is attached, uploads the
// front buffer to it.
//
// Pixels are 32-bit 0xAARRGGBB values. In little-endian memory that is the
// BGRA8Unorm layout.
//
// # Concurrency
//
// The back buffer is written by several cores in the same frame. The only
// synchronization is spatial: each core writes through a TileView obtained
// from Claim for a tile it alone owns this frame. Present must not overlap
// with any TileView writes; the pipeline orders it after the frame barrier.
package framebuffer
