// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package affinity discovers the CPUs available to the process and binds
// the calling OS thread to one of them.
//
// Pinning is best effort. On platforms without thread affinity Pin reports
// ErrUnsupported and callers keep running unpinned.
package affinity

import (
	"errors"
	"runtime"
)

// MaxCPU is the highest CPU id (exclusive) the package reports or pins.
// It matches the width of one affinity mask word.
const MaxCPU = 64

// ErrUnsupported is returned by Pin on platforms without thread affinity.
var ErrUnsupported = errors.New("affinity: thread pinning not supported on this platform")

// ErrInvalidCPU is returned by Pin for ids outside [0, MaxCPU).
var ErrInvalidCPU = errors.New("affinity: cpu id out of range")

// Discover returns the CPU ids the process may run on, in ascending order.
// It never returns an empty slice: if the platform reports nothing, the ids
// 0..runtime.NumCPU()-1 are returned.
func Discover() []int {
	if cpus := discover(); len(cpus) > 0 {
		return cpus
	}
	return sequential(runtime.NumCPU())
}

// Pin binds the calling OS thread to cpu. The caller must have locked its
// goroutine to the thread with runtime.LockOSThread, otherwise the binding
// applies to whichever goroutine the thread runs next.
func Pin(cpu int) error {
	if cpu < 0 || cpu >= MaxCPU {
		return ErrInvalidCPU
	}
	return pin(cpu)
}

// PinSet binds the calling OS thread to every CPU in cpus. It is used to
// hand a pinned thread back with its original mask.
func PinSet(cpus []int) error {
	for _, cpu := range cpus {
		if cpu < 0 || cpu >= MaxCPU {
			return ErrInvalidCPU
		}
	}
	return pinSet(cpus)
}

func sequential(n int) []int {
	n = min(max(n, 1), MaxCPU)
	cpus := make([]int, n)
	for i := range cpus {
		cpus[i] = i
	}
	return cpus
}
