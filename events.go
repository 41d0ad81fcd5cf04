// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import "github.com/gogpu/gpucontext"

// AttachEvents connects a windowing event source to the session: window
// resizes become RequestResize calls and the Escape key calls Stop.
//
// Callbacks may fire on any goroutine; both actions take effect between
// frames.
func (s *Session) AttachEvents(src gpucontext.EventSource) {
	if src == nil {
		return
	}
	src.OnResize(func(width, height int) {
		s.RequestResize(width, height)
	})
	src.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if key == gpucontext.KeyEscape {
			s.log.Info("framecore: stop requested", "key", "escape")
			s.Stop()
		}
	})
}
