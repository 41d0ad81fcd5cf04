// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the package-wide logger. By default framecore
// produces no log output.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior). Sessions
// capture the logger when they are created; use WithLogger to give one
// session its own.
//
// Log levels used by framecore:
//   - [slog.LevelDebug]: per-core transitions, resize details
//   - [slog.LevelInfo]: session start and stop, topology, resolution
//   - [slog.LevelWarn]: dropped triangles, bin overflow, failed pinning,
//     display upload errors
//
// Spin loops never log.
//
// Example:
//
//	framecore.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current package-wide logger.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by hooks that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the session logger to every hook that implements
// loggerSetter.
func propagateLogger(l *slog.Logger, hooks ...any) {
	for _, h := range hooks {
		if ls, ok := h.(loggerSetter); ok {
			ls.SetLogger(l)
		}
	}
}
