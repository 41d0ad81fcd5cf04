// Package framecore runs a frame-synchronous software render pipeline on a
// fixed set of pinned cores.
//
// # Overview
//
// A Session assigns every available CPU one role for its lifetime: one
// Orchestrator (the caller's goroutine), zero or more Rasterizer workers,
// and optionally one NetworkPoll core. Each core is a goroutine locked to
// its OS thread and pinned to its CPU. Cores never block on channels or
// mutexes inside a frame; they spin on atomics with an adaptive backoff.
//
// # Quick Start
//
//	cfg := framecore.DefaultConfig()
//	cfg.Width, cfg.Height = 640, 480
//
//	s, err := framecore.NewSession(cfg,
//	    framecore.WithWorld(framecore.WorldFunc(func(f uint64, dt time.Duration, out framecore.Submitter) {
//	        out.Submit(tri)
//	    })),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := s.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	for range 600 {
//	    s.Frame()
//	}
//
// # Frame
//
// Every frame the orchestrator resets the tile work counter and bins, runs
// the world update (which submits triangles), publishes the render phase,
// rasterizes its own share of tiles, waits on the barrier for the workers,
// closes the render phase, draws the overlay, presents, and clears the back
// buffer for the next frame.
//
// # Lifecycle
//
// Start locks the calling goroutine to its thread and launches the other
// cores; from then on Frame, Resize and Close belong to that goroutine.
// Run loops Frame until its context is done or Stop is called. Window
// events and other goroutines use RequestResize, which takes effect at the
// start of the next frame. Close raises the shutdown flag and spins until
// every core has halted.
//
// # Ownership
//
// The back buffer and depth buffer are shared by every rasterizing core.
// Exclusive access is spatial: the surface is partitioned into tiles, each
// tile index is handed out once per frame by a lock-free work counter, and
// the winning core writes only through that tile's framebuffer.TileView.
//
// # Coordinate System
//
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//   - Depth is reversed: larger values are nearer
package framecore
