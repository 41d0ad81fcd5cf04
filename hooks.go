// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import (
	"image/draw"
	"time"

	"github.com/gogpu/framecore/framebuffer"
	"github.com/gogpu/framecore/raster"
)

// Submitter accepts the geometry of the current frame.
type Submitter interface {
	// Submit adds a triangle to the frame. It returns false only when the
	// triangle had to be dropped: the frame's triangle store is full or no
	// surface is configured. Triangles culled as invisible return true.
	Submit(t raster.Triangle) bool

	// Width and Height return the surface size of the current frame.
	Width() int
	Height() int
}

// World produces the geometry of each frame. Update runs on the
// orchestrator once per frame, before the render phase opens.
type World interface {
	Update(frame uint64, dt time.Duration, out Submitter)
}

// WorldFunc adapts a function to World.
type WorldFunc func(frame uint64, dt time.Duration, out Submitter)

// Update calls f.
func (f WorldFunc) Update(frame uint64, dt time.Duration, out Submitter) {
	f(frame, dt, out)
}

// NetworkPoller is polled repeatedly by the network core. Poll shares no
// synchronization with rendering and must return promptly.
type NetworkPoller interface {
	Poll()
}

// PollerFunc adapts a function to NetworkPoller.
type PollerFunc func()

// Poll calls f.
func (f PollerFunc) Poll() {
	f()
}

// TileRasterizer draws one tile's bin. It is called only for tiles whose
// bin is non-empty, by the single core that claimed the tile, and may
// write only through view. Implementations must be safe for concurrent use
// on distinct tiles.
type TileRasterizer interface {
	RasterizeTile(view framebuffer.TileView, bin raster.Bin)
}

// Overlay draws over the finished frame. It runs on the orchestrator after
// every rasterizer has finished and before present.
type Overlay interface {
	Draw(dst draw.Image, stats FrameStats)
}

// OverlayFunc adapts a function to Overlay.
type OverlayFunc func(dst draw.Image, stats FrameStats)

// Draw calls f.
func (f OverlayFunc) Draw(dst draw.Image, stats FrameStats) {
	f(dst, stats)
}

var _ TileRasterizer = raster.Rasterizer{}
