// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build (!amd64 && !arm64) || purego

package spin

// Relax is a no-op on architectures without a spin-wait hint.
func Relax() {}
