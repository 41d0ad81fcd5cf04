// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import (
	"iter"
	"strconv"
	"sync/atomic"

	"github.com/gogpu/framecore/internal/affinity"
)

// MaxCores is the capacity of the core registry.
const MaxCores = affinity.MaxCPU

// RoleKind identifies the job of a core.
type RoleKind uint8

// Role kinds.
const (
	RoleUnassigned RoleKind = iota
	RoleOrchestrator
	RoleRasterizer
	RoleNetworkPoll
)

// Role is the fixed assignment of one core. Index numbers rasterizer
// workers from 0 and is zero for the other kinds.
type Role struct {
	Kind  RoleKind
	Index int
}

// Orchestrator returns the orchestrator role.
func Orchestrator() Role { return Role{Kind: RoleOrchestrator} }

// Rasterizer returns the role of rasterizer worker i.
func Rasterizer(i int) Role { return Role{Kind: RoleRasterizer, Index: i} }

// NetworkPoll returns the network poller role.
func NetworkPoll() Role { return Role{Kind: RoleNetworkPoll} }

// String returns "orchestrator", "rasterizer-N", "network" or "unassigned".
func (r Role) String() string {
	switch r.Kind {
	case RoleOrchestrator:
		return "orchestrator"
	case RoleRasterizer:
		return "rasterizer-" + strconv.Itoa(r.Index)
	case RoleNetworkPoll:
		return "network"
	default:
		return "unassigned"
	}
}

// CoreState is the lifecycle of a core: Unstarted, Running, Halted.
type CoreState uint32

// Core states.
const (
	CoreUnstarted CoreState = iota
	CoreRunning
	CoreHalted
)

func (s CoreState) String() string {
	switch s {
	case CoreUnstarted:
		return "unstarted"
	case CoreRunning:
		return "running"
	case CoreHalted:
		return "halted"
	default:
		return "CoreState(" + strconv.Itoa(int(s)) + ")"
	}
}

// CoreDescriptor describes one core of the session.
//
// ID, CPU and Role are fixed when the registry is built. The state is
// written only by the core the descriptor describes.
type CoreDescriptor struct {
	// ID is the position in the registry; the orchestrator is 0.
	ID int

	// CPU is the operating system CPU id the core is pinned to.
	CPU int

	Role Role

	state atomic.Uint32
}

// State returns the current lifecycle state.
func (c *CoreDescriptor) State() CoreState {
	return CoreState(c.state.Load())
}

// Running reports whether the core has entered its role loop and not yet
// halted.
func (c *CoreDescriptor) Running() bool {
	return c.State() == CoreRunning
}

func (c *CoreDescriptor) setState(s CoreState) {
	c.state.Store(uint32(s))
}

// Registry is the fixed table of cores of a session.
type Registry struct {
	cores [MaxCores]CoreDescriptor
	n     int

	rasterizers int
	network     int // registry ID of the network core, or -1
}

// Len returns the number of cores in use.
func (r *Registry) Len() int {
	return r.n
}

// Core returns the descriptor with the given ID, or nil.
func (r *Registry) Core(id int) *CoreDescriptor {
	if id < 0 || id >= r.n {
		return nil
	}
	return &r.cores[id]
}

// All iterates the descriptors in ID order.
func (r *Registry) All() iter.Seq[*CoreDescriptor] {
	return func(yield func(*CoreDescriptor) bool) {
		for i := range r.n {
			if !yield(&r.cores[i]) {
				return
			}
		}
	}
}

// Orchestrator returns the orchestrator's descriptor.
func (r *Registry) Orchestrator() *CoreDescriptor {
	return r.Core(0)
}

// Rasterizers returns the number of rasterizer workers, excluding the
// orchestrator.
func (r *Registry) Rasterizers() int {
	return r.rasterizers
}

// Network returns the network core's descriptor, if one was assigned.
func (r *Registry) Network() (*CoreDescriptor, bool) {
	if r.network < 0 {
		return nil, false
	}
	return r.Core(r.network), true
}

// Halted reports whether every core other than the orchestrator has
// halted.
func (r *Registry) Halted() bool {
	for i := 1; i < r.n; i++ {
		if r.cores[i].State() != CoreHalted {
			return false
		}
	}
	return true
}

func (r *Registry) add(cpu int, role Role) {
	c := &r.cores[r.n]
	c.ID = r.n
	c.CPU = cpu
	c.Role = role
	r.n++
}
