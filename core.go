// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import (
	"runtime"

	"github.com/gogpu/framecore/internal/spin"
)

// runRasterizer is the role loop of a rasterizer worker.
//
// The goroutine stays locked to its thread when it returns, so the runtime
// discards the pinned thread instead of reusing it.
func (s *Session) runRasterizer(c *CoreDescriptor) {
	runtime.LockOSThread()
	if s.cfg.PinThreads {
		s.pin(c)
	}
	c.setState(CoreRunning)
	defer c.setState(CoreHalted)
	s.log.Debug("framecore: core running", "core", c.ID, "cpu", c.CPU, "role", c.Role.String())

	var (
		done uint64 // last frame this core rendered
		bo   spin.Backoff
	)
	for {
		f := s.phase.Load()
		if f == 0 || f == done {
			if s.shutdown.Load() {
				return
			}
			bo.Spin()
			continue
		}
		bo.Reset()
		done = f
		s.renderShare(c.ID)
	}
}

// runNetwork is the role loop of the network core. It shares nothing with
// the render phase and checks for shutdown after every poll.
func (s *Session) runNetwork(c *CoreDescriptor) {
	runtime.LockOSThread()
	if s.cfg.PinThreads {
		s.pin(c)
	}
	c.setState(CoreRunning)
	defer c.setState(CoreHalted)
	s.log.Debug("framecore: core running", "core", c.ID, "cpu", c.CPU, "role", c.Role.String())

	poller := s.opts.network
	var bo spin.Backoff
	for !s.shutdown.Load() {
		if poller != nil {
			poller.Poll()
		}
		spin.RelaxN(s.cfg.NetworkBackoff)
		// Yields the thread once per spin budget.
		bo.Spin()
	}
}
