// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import (
	"log/slog"
	"time"
)

// FrameStats describes the last completed frame. Counters marked
// cumulative cover the whole session.
type FrameStats struct {
	// Frame is the 1-based number of the frame.
	Frame uint64

	Width, Height int

	// Tiles is the number of tiles of the surface; OccupiedTiles the
	// number that received triangles.
	Tiles         int
	OccupiedTiles int

	// TilesPerCore[i] is the number of non-empty tiles rasterized by the
	// core with registry ID i.
	TilesPerCore []int

	// Triangles is the number of triangles stored for the frame.
	Triangles int

	// Culled counts submitted triangles rejected by setup.
	Culled uint64

	// Dropped counts triangles rejected because the store was full.
	Dropped uint64

	// Overflowed counts (triangle, tile) pairs lost to full bins.
	Overflowed uint64

	// WorkTime is the time from frame start to the end of present,
	// excluding pacing.
	WorkTime time.Duration

	// OverBudget reports whether this frame overran the paced budget.
	OverBudget bool

	// FPS is the frame rate over the last full second.
	FPS int

	// DroppedFrames counts frames that overran the paced budget
	// (cumulative).
	DroppedFrames uint64

	// PresentErrors counts failed display uploads (cumulative).
	PresentErrors uint64
}

// LogValue implements slog.LogValuer.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("frame", s.Frame),
		slog.Int("triangles", s.Triangles),
		slog.Int("occupied_tiles", s.OccupiedTiles),
		slog.Uint64("culled", s.Culled),
		slog.Uint64("dropped", s.Dropped),
		slog.Uint64("overflowed", s.Overflowed),
		slog.Duration("work", s.WorkTime),
		slog.Int("fps", s.FPS),
	)
}
