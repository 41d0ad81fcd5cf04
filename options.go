// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import (
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/framecore/raster"
)

// Option configures a Session during creation.
// Use functional options to inject the collaborators of the pipeline.
//
// Example:
//
//	s, err := framecore.NewSession(cfg,
//	    framecore.WithWorld(world),
//	    framecore.WithNetwork(framecore.PollerFunc(conn.Poll)),
//	)
type Option func(*options)

// options holds the collaborators of a Session.
type options struct {
	world      World
	network    NetworkPoller
	rasterizer TileRasterizer
	overlay    Overlay
	display    gpucontext.TextureUpdater
	front      []uint32
	stride     int
	logger     *slog.Logger
	cores      []int
}

// defaultOptions returns the default session options.
func defaultOptions() options {
	return options{
		rasterizer: raster.Rasterizer{},
	}
}

// WithWorld sets the per-frame geometry producer.
func WithWorld(w World) Option {
	return func(o *options) {
		o.world = w
	}
}

// WithNetwork sets the hook polled by the network core. Without it the
// network core spins idle until shutdown.
func WithNetwork(p NetworkPoller) Option {
	return func(o *options) {
		o.network = p
	}
}

// WithRasterizer replaces the default half-space rasterizer.
func WithRasterizer(r TileRasterizer) Option {
	return func(o *options) {
		if r != nil {
			o.rasterizer = r
		}
	}
}

// WithOverlay sets the hook drawn over each finished frame.
func WithOverlay(ov Overlay) Option {
	return func(o *options) {
		o.overlay = ov
	}
}

// WithDisplay attaches a display that receives every presented frame.
func WithDisplay(d gpucontext.TextureUpdater) Option {
	return func(o *options) {
		o.display = d
	}
}

// WithFrontBuffer supplies the display memory used as front buffer, with
// stride pixels per row; a stride of 0 means rows are packed at the
// configured width. The back buffer uses the same stride. front must hold
// at least stride*height pixels; otherwise the session allocates its own.
// The buffer and its stride are dropped on resize.
func WithFrontBuffer(front []uint32, stride int) Option {
	return func(o *options) {
		o.front = front
		o.stride = stride
	}
}

// WithLogger sets the session logger. It defaults to Logger().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCores replaces CPU discovery with an explicit list of CPU ids.
func WithCores(cpus ...int) Option {
	return func(o *options) {
		o.cores = append([]int(nil), cpus...)
	}
}
