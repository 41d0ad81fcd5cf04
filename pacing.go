// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framecore

import (
	"time"

	"github.com/gogpu/framecore/internal/spin"
)

// sleepSlack is the part of a paced wait that is spun rather than slept,
// absorbing timer wake-up latency.
const sleepSlack = 500 * time.Microsecond

// frameTimer measures frames, counts frames that overran their budget and,
// when a budget is set, holds each frame until its slot has elapsed.
//
// It is used only by the orchestrator.
type frameTimer struct {
	budget time.Duration
	now    func() time.Time
	sleep  func(time.Duration)

	start time.Time

	windowStart  time.Time
	windowFrames int
	fps          int

	dropped uint64
}

func newFrameTimer(budget time.Duration) *frameTimer {
	t := &frameTimer{
		budget: budget,
		now:    time.Now,
		sleep:  time.Sleep,
	}
	t.windowStart = t.now()
	return t
}

// begin marks the start of a frame.
func (t *frameTimer) begin() time.Time {
	t.start = t.now()
	return t.start
}

// end closes the frame. It returns the time spent on the frame's work and
// whether the frame fit its budget; with a budget it then waits out the
// rest of the slot. Unpaced frames always fit.
func (t *frameTimer) end() (time.Duration, bool) {
	end := t.now()
	work := end.Sub(t.start)

	t.windowFrames++
	if w := end.Sub(t.windowStart); w >= time.Second {
		t.fps = int(float64(t.windowFrames) / w.Seconds())
		t.windowFrames = 0
		t.windowStart = end
	}

	if t.budget <= 0 {
		return work, true
	}
	if work >= t.budget {
		t.dropped++
		return work, false
	}

	deadline := t.start.Add(t.budget)
	if d := deadline.Sub(t.now()) - sleepSlack; d > 0 {
		t.sleep(d)
	}
	var bo spin.Backoff
	for t.now().Before(deadline) {
		bo.Spin()
	}
	return work, true
}

// FPS returns the frame rate measured over the last full second.
func (t *frameTimer) FPS() int {
	return t.fps
}

// Dropped returns the number of frames that overran their budget.
func (t *frameTimer) Dropped() uint64 {
	return t.dropped
}
