// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/framecore/framebuffer"
	"github.com/gogpu/framecore/internal/parallel"
)

// Config holds the settings a Session is built from.
type Config struct {
	// Width and Height are the initial surface size in pixels.
	Width, Height int

	// TileSize is the tile edge length in pixels.
	TileSize int

	// MaxCores caps the number of CPUs used. Zero uses every discovered
	// CPU up to MaxCores.
	MaxCores int

	// Rasterizers is the exact number of rasterizer workers. A negative
	// value assigns every CPU not taken by another role.
	Rasterizers int

	// Network reserves the last CPU for the network poller when at least
	// two CPUs remain after the orchestrator.
	Network bool

	// NetworkBackoff is the number of relax hints between two network
	// polls.
	NetworkBackoff int

	// ParallelBinning splits binning across all rasterizing cores. Each
	// bin append then takes a per-tile spin lock.
	ParallelBinning bool

	// MaxTriangles is the capacity of the per-frame triangle store.
	MaxTriangles int

	// MaxTrianglesPerTile is the capacity of one tile bin.
	MaxTrianglesPerTile int

	// ClearColor fills the back buffer after every present.
	ClearColor gputypes.Color

	// PresentMode selects frame pacing: PresentModeFifo paces frames at
	// TargetFPS, PresentModeImmediate runs unpaced.
	PresentMode gputypes.PresentMode

	// TargetFPS is the paced frame rate.
	TargetFPS int

	// PinThreads binds every core's OS thread to its CPU.
	PinThreads bool
}

// DefaultConfig returns a 640x480 configuration with 64-pixel tiles,
// automatic worker count and 60 FPS pacing.
func DefaultConfig() Config {
	return Config{
		Width:               640,
		Height:              480,
		TileSize:            parallel.DefaultTileSize,
		Rasterizers:         -1,
		NetworkBackoff:      1000,
		MaxTriangles:        parallel.DefaultMaxTriangles,
		MaxTrianglesPerTile: parallel.DefaultMaxTrianglesPerTile,
		ClearColor:          gputypes.Color{R: 0, G: 0, B: 0, A: 1},
		PresentMode:         gputypes.PresentModeFifo,
		TargetFPS:           60,
		PinThreads:          true,
	}
}

// Validate reports the first configuration error.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidResolution, c.Width, c.Height)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidTileSize, c.TileSize)
	}
	return nil
}

// frameBudget returns the paced frame duration, or zero when unpaced.
func (c Config) frameBudget() time.Duration {
	if c.PresentMode != gputypes.PresentModeFifo || c.TargetFPS <= 0 {
		return 0
	}
	return time.Second / time.Duration(c.TargetFPS)
}

// clearPixel packs ClearColor into a pixel value.
func (c Config) clearPixel() uint32 {
	cc := c.ClearColor
	return framebuffer.FromFloat(cc.R, cc.G, cc.B)
}
