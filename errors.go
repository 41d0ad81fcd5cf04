// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import "errors"

// Configuration errors. NewSession and Start wrap them with detail; test
// with errors.Is.
var (
	// ErrNoCores is returned when no CPU is available for the orchestrator.
	ErrNoCores = errors.New("framecore: no cores available")

	// ErrTooManyRasterizers is returned when more rasterizer workers are
	// requested than the discovered topology can host.
	ErrTooManyRasterizers = errors.New("framecore: more rasterizers than available cores")

	// ErrInvalidTileSize is returned for a non-positive tile size.
	ErrInvalidTileSize = errors.New("framecore: invalid tile size")

	// ErrInvalidResolution is returned for non-positive surface dimensions.
	ErrInvalidResolution = errors.New("framecore: invalid resolution")

	// ErrSessionStarted is returned by Start on a running session.
	ErrSessionStarted = errors.New("framecore: session already started")

	// ErrSessionNotStarted is returned by Frame before Start.
	ErrSessionNotStarted = errors.New("framecore: session not started")

	// ErrSessionClosed is returned when using a closed session.
	ErrSessionClosed = errors.New("framecore: session closed")
)
