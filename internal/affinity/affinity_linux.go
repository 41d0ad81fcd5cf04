// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build linux

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func discover() []int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return nil
	}
	cpus := make([]int, 0, set.Count())
	for cpu := range MaxCPU {
		if set.IsSet(cpu) {
			cpus = append(cpus, cpu)
		}
	}
	return cpus
}

func pin(cpu int) error {
	var set unix.CPUSet
	set.Set(cpu)
	// pid 0 is the calling thread.
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: pin cpu %d: %w", cpu, err)
	}
	return nil
}

func pinSet(cpus []int) error {
	var set unix.CPUSet
	for _, cpu := range cpus {
		set.Set(cpu)
	}
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: pin %d cpus: %w", len(cpus), err)
	}
	return nil
}
