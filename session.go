// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/gogpu/framecore/depth"
	"github.com/gogpu/framecore/framebuffer"
	"github.com/gogpu/framecore/internal/affinity"
	"github.com/gogpu/framecore/internal/parallel"
	"github.com/gogpu/framecore/internal/spin"
	"github.com/gogpu/framecore/raster"
)

// coreCounter is one core's tile count for the current frame, padded to
// its own cache line.
type coreCounter struct {
	tiles int
	_     [56]byte
}

// Session owns the cores, buffers and synchronization state of one frame
// pipeline.
//
// The goroutine that calls Start becomes the orchestrator. Frame, Resize,
// Submit and Close belong to that goroutine; RequestResize, Stop, Stats
// and FrameNumber may be called from anywhere.
type Session struct {
	cfg  Config
	opts options
	log  *slog.Logger

	registry Registry
	barrier  *spin.Barrier
	tileWork *spin.WorkCounter
	binWork  *spin.WorkCounter
	perCore  []coreCounter

	// Replaced only between frames, published to workers by phase.
	grid   *parallel.TileGrid
	binner *parallel.Binner
	fb     *framebuffer.Framebuffer
	zb     *depth.Buffer
	views  []framebuffer.TileView

	// phase holds the number of the frame whose render phase is open, or
	// zero between frames.
	phase    atomic.Uint64
	shutdown atomic.Bool
	stop     atomic.Bool
	started  atomic.Bool
	closed   atomic.Bool
	pending  atomic.Uint64 // requested size as width<<32 | height

	frame         atomic.Uint64
	clear         uint32
	culled        uint64
	presentErrors uint64
	last          time.Time
	timer         *frameTimer
	restore       []int
	stats         atomic.Pointer[FrameStats]
}

// NewSession validates cfg, assigns a role to every core and allocates
// the surface. No core runs until Start.
//
// Configuration errors wrap ErrInvalidResolution, ErrInvalidTileSize,
// ErrNoCores or ErrTooManyRasterizers.
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger
	if log == nil {
		log = Logger()
	}

	cpus := o.cores
	if len(cpus) == 0 {
		cpus = affinity.Discover()
	}

	s := &Session{
		cfg:   cfg,
		opts:  o,
		log:   log,
		clear: cfg.clearPixel(),
		timer: newFrameTimer(cfg.frameBudget()),
	}
	if err := assignRoles(&s.registry, cpus, cfg.MaxCores, cfg.Rasterizers, cfg.Network); err != nil {
		return nil, err
	}
	s.barrier = spin.NewBarrier(s.registry.Rasterizers() + 1)
	s.tileWork = spin.NewWorkCounter(0)
	s.binWork = spin.NewWorkCounter(0)
	s.perCore = make([]coreCounter, s.registry.Len())
	s.configure(cfg.Width, cfg.Height, o.stride, o.front)

	propagateLogger(log, o.world, o.network, o.rasterizer, o.overlay)

	_, network := s.registry.Network()
	log.Info("framecore: session created",
		"cores", s.registry.Len(),
		"rasterizers", s.registry.Rasterizers(),
		"network", network,
		"width", cfg.Width,
		"height", cfg.Height,
		"tiles", s.grid.TileCount(),
		"parallel_binning", cfg.ParallelBinning,
	)
	return s, nil
}

// configure (re)builds the tile set, the surface and the depth buffer for
// width x height. A stride below width selects packed rows. It must not
// run while a frame is in flight.
func (s *Session) configure(width, height, stride int, front []uint32) {
	if s.grid == nil {
		s.grid = parallel.NewTileGrid(width, height, s.cfg.TileSize)
	} else {
		s.grid.Resize(width, height, s.cfg.TileSize)
	}
	if s.binner == nil {
		s.binner = parallel.NewBinner(s.grid, s.cfg.MaxTriangles, s.cfg.MaxTrianglesPerTile)
	} else {
		s.binner.Resize(s.grid)
	}

	s.fb = framebuffer.New(width, height, stride, front)
	s.fb.Attach(s.opts.display)
	s.fb.Clear(s.clear)
	s.zb = depth.New(width, height)

	tiles := s.grid.All()
	s.views = s.views[:0]
	for _, t := range tiles {
		s.views = append(s.views, s.fb.Claim(t.X, t.Y, t.Width, t.Height, s.zb))
	}
	s.tileWork.Restart(len(tiles))
	s.cfg.Width, s.cfg.Height = width, height
}

// Start locks the calling goroutine to its OS thread as the orchestrator
// and launches every other core.
func (s *Session) Start() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if !s.started.CompareAndSwap(false, true) {
		return ErrSessionStarted
	}

	runtime.LockOSThread()
	orch := s.registry.Orchestrator()
	if s.cfg.PinThreads {
		s.restore = affinity.Discover()
		s.pin(orch)
	}
	orch.setState(CoreRunning)

	for c := range s.registry.All() {
		switch c.Role.Kind {
		case RoleRasterizer:
			go s.runRasterizer(c)
		case RoleNetworkPoll:
			go s.runNetwork(c)
		}
	}
	s.log.Info("framecore: session started", "cores", s.registry.Len())
	return nil
}

func (s *Session) pin(c *CoreDescriptor) {
	if err := affinity.Pin(c.CPU); err != nil {
		s.log.Warn("framecore: pin failed", "core", c.ID, "cpu", c.CPU, "role", c.Role.String(), "err", err)
	}
}

// Frame renders one frame: reset, world update and binning, the render
// phase shared with every rasterizer, then overlay, present and clear.
// With PresentModeFifo it returns once the frame's slot has elapsed.
func (s *Session) Frame() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if !s.started.Load() {
		return ErrSessionNotStarted
	}
	s.applyPendingResize()

	start := s.timer.begin()
	var dt time.Duration
	if !s.last.IsZero() {
		dt = start.Sub(s.last)
	}
	s.last = start
	frame := s.frame.Add(1)

	s.binner.Reset()
	s.tileWork.Reset()
	s.culled = 0

	if s.opts.world != nil {
		s.opts.world.Update(frame, dt, s)
	}
	if s.cfg.ParallelBinning {
		s.binWork.Restart(s.binner.Len())
	}

	s.phase.Store(frame)
	s.renderShare(0)
	s.phase.Store(0)

	stats := s.collect(frame)
	if s.opts.overlay != nil {
		s.opts.overlay.Draw(s.fb.Image(), stats)
	}
	if err := s.fb.Present(); err != nil {
		s.presentErrors++
		s.log.Warn("framecore: present failed", "frame", frame, "err", err)
	}
	s.fb.Clear(s.clear)
	s.binner.Occupancy().Drain(func(t int) {
		s.views[t].ClearDepth()
	})

	work, onTime := s.timer.end()
	if !onTime {
		s.log.Debug("framecore: frame over budget", "frame", frame, "work", work)
	}
	stats.WorkTime = work
	stats.OverBudget = !onTime
	stats.FPS = s.timer.FPS()
	stats.DroppedFrames = s.timer.Dropped()
	stats.PresentErrors = s.presentErrors
	s.stats.Store(&stats)

	if s.log.Enabled(context.Background(), slog.LevelDebug) {
		s.log.Debug("framecore: frame", "stats", stats)
	}
	return nil
}

// renderShare is one core's part of the render phase. Every rasterizing
// core, the orchestrator included, runs it once per frame.
func (s *Session) renderShare(id int) {
	parallelBinning := s.cfg.ParallelBinning
	if parallelBinning {
		for {
			i, ok := s.binWork.Next()
			if !ok {
				break
			}
			s.binner.BinLocked(i)
		}
		s.barrier.Wait()
	}

	n := 0
	for {
		t, ok := s.tileWork.Next()
		if !ok {
			break
		}
		if s.binner.BinLen(t) == 0 {
			continue
		}
		if parallelBinning {
			s.binner.SortBin(t)
		}
		s.opts.rasterizer.RasterizeTile(s.views[t], s.binner.Triangles(t))
		n++
	}
	s.perCore[id].tiles = n
	s.barrier.Wait()
}

func (s *Session) collect(frame uint64) FrameStats {
	bs := s.binner.Stats()
	perCore := make([]int, len(s.perCore))
	for i := range s.perCore {
		perCore[i] = s.perCore[i].tiles
	}
	return FrameStats{
		Frame:         frame,
		Width:         s.fb.Width(),
		Height:        s.fb.Height(),
		Tiles:         s.grid.TileCount(),
		OccupiedTiles: bs.Occupied,
		TilesPerCore:  perCore,
		Triangles:     bs.Triangles,
		Culled:        s.culled,
		Dropped:       bs.Dropped,
		Overflowed:    bs.Overflowed,
		FPS:           s.timer.FPS(),
		DroppedFrames: s.timer.Dropped(),
		PresentErrors: s.presentErrors,
	}
}

// Run starts the session if needed and renders frames until ctx is done
// or Stop is called. It does not close the session.
func (s *Session) Run(ctx context.Context) error {
	if !s.started.Load() {
		if err := s.Start(); err != nil {
			return err
		}
	}
	for !s.stop.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Frame(); err != nil {
			return err
		}
	}
	return nil
}

// Stop asks Run to return after the current frame.
func (s *Session) Stop() {
	s.stop.Store(true)
}

// Stopped reports whether Stop has been called.
func (s *Session) Stopped() bool {
	return s.stop.Load()
}

// Submit sets up t against the current surface and stores it for binning.
// It is valid only inside World.Update.
//
// Submit returns false when the triangle store is full or no surface is
// configured. Triangles rejected by setup as degenerate or off-screen are
// counted as culled and return true.
func (s *Session) Submit(t raster.Triangle) bool {
	if s.fb == nil {
		return false
	}
	st, ok := raster.Setup(t, s.fb.Width(), s.fb.Height())
	if !ok {
		s.culled++
		return true
	}
	if s.cfg.ParallelBinning {
		_, ok = s.binner.Store(st)
		return ok
	}
	return s.binner.Add(st)
}

// Width returns the current surface width.
func (s *Session) Width() int {
	return s.fb.Width()
}

// Height returns the current surface height.
func (s *Session) Height() int {
	return s.fb.Height()
}

// Resize rebuilds the tiles, surface and depth buffer for the new size.
// Call it only between frames on the orchestrator; other goroutines use
// RequestResize. A front buffer supplied with WithFrontBuffer is released.
func (s *Session) Resize(width, height int) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	if !validSize(width, height) {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, width, height)
	}
	if width == s.fb.Width() && height == s.fb.Height() {
		return nil
	}
	s.configure(width, height, 0, nil)
	s.log.Info("framecore: resized", "width", width, "height", height, "tiles", s.grid.TileCount())
	return nil
}

// RequestResize schedules a resize for the start of the next frame. Later
// requests replace earlier ones; invalid sizes are ignored.
func (s *Session) RequestResize(width, height int) {
	if !validSize(width, height) {
		s.log.Warn("framecore: ignoring resize request", "width", width, "height", height)
		return
	}
	s.pending.Store(uint64(width)<<32 | uint64(height)) //nolint:gosec // both checked above
}

func validSize(width, height int) bool {
	return width > 0 && height > 0 &&
		uint64(width) <= math.MaxUint32 && uint64(height) <= math.MaxUint32
}

func (s *Session) applyPendingResize() {
	p := s.pending.Swap(0)
	if p == 0 {
		return
	}
	if err := s.Resize(int(p>>32), int(uint32(p))); err != nil {
		s.log.Warn("framecore: resize failed", "err", err)
	}
}

// Close stops every core and waits until all of them have halted, then
// releases the orchestrator's thread. It must be called on the
// orchestrator, never concurrently with Frame. Close is idempotent.
func (s *Session) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	if !s.started.Load() {
		return nil
	}

	s.shutdown.Store(true)
	var bo spin.Backoff
	for !s.registry.Halted() {
		bo.Spin()
	}
	s.registry.Orchestrator().setState(CoreHalted)

	if len(s.restore) > 0 {
		if err := affinity.PinSet(s.restore); err != nil {
			s.log.Warn("framecore: restoring affinity failed", "err", err)
		}
	}
	runtime.UnlockOSThread()
	s.log.Info("framecore: session closed", "frames", s.frame.Load())
	return nil
}

// Stats returns the statistics of the last completed frame. Before the
// first frame it returns the zero value.
func (s *Session) Stats() FrameStats {
	if p := s.stats.Load(); p != nil {
		return *p
	}
	return FrameStats{}
}

// FrameNumber returns the number of frames started so far.
func (s *Session) FrameNumber() uint64 {
	return s.frame.Load()
}

// Registry returns the core table. It is fixed after NewSession.
func (s *Session) Registry() *Registry {
	return &s.registry
}

// Framebuffer returns the current surface. It is replaced by Resize.
func (s *Session) Framebuffer() *framebuffer.Framebuffer {
	return s.fb
}

// Config returns the configuration in effect, including the current
// surface size.
func (s *Session) Config() Config {
	return s.cfg
}

var _ Submitter = (*Session)(nil)
