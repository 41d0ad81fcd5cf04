// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !linux

package affinity

func discover() []int { return nil }

func pin(int) error { return ErrUnsupported }

func pinSet([]int) error { return ErrUnsupported }
