// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build (amd64 || arm64) && !purego

package spin

// Relax hints to the processor that the caller is in a spin-wait loop.
// It emits PAUSE on amd64 and YIELD on arm64.
func Relax()
