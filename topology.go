// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import "fmt"

// assignRoles fills reg from the discovered CPU ids.
//
// The first CPU hosts the orchestrator. When networking is enabled and at
// least two CPUs remain, the last one hosts the network poller. Every
// other CPU hosts a rasterizer worker, unless rasterizers requests an
// exact worker count (rasterizers >= 0). maxCores > 0 caps the number of
// CPUs used.
func assignRoles(reg *Registry, cpus []int, maxCores, rasterizers int, network bool) error {
	if maxCores > 0 && len(cpus) > maxCores {
		cpus = cpus[:maxCores]
	}
	if len(cpus) > MaxCores {
		cpus = cpus[:MaxCores]
	}
	if len(cpus) == 0 {
		return ErrNoCores
	}

	rest := cpus[1:]
	netCPU := -1
	if network && len(rest) >= 2 {
		netCPU = rest[len(rest)-1]
		rest = rest[:len(rest)-1]
	}

	workers := len(rest)
	if rasterizers >= 0 {
		if rasterizers > len(rest) {
			return fmt.Errorf("%w: requested %d, %d cores available for rasterizers",
				ErrTooManyRasterizers, rasterizers, len(rest))
		}
		workers = rasterizers
	}

	*reg = Registry{network: -1}
	reg.add(cpus[0], Orchestrator())
	for i := range workers {
		reg.add(rest[i], Rasterizer(i))
	}
	reg.rasterizers = workers
	if netCPU >= 0 {
		reg.network = reg.n
		reg.add(netCPU, NetworkPoll())
	}
	return nil
}
