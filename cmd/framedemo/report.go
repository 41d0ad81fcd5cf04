// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/framecore"
	"github.com/gogpu/framecore/internal/statsdb"
)

// printSummary writes the run report with grouped thousands.
func printSummary(w io.Writer, sum statsdb.Summary, last framecore.FrameStats) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "frames recorded   %d\n", sum.Frames)
	p.Fprintf(w, "triangles         %d\n", sum.Triangles)
	p.Fprintf(w, "dropped tris      %d\n", sum.Dropped)
	p.Fprintf(w, "bin overflows     %d\n", sum.Overflowed)
	p.Fprintf(w, "over budget       %d\n", sum.OverBudget)
	p.Fprintf(w, "avg occupied      %.1f tiles\n", sum.AvgOccupied)
	p.Fprintf(w, "avg frame work    %v\n", sum.AvgWork)
	p.Fprintf(w, "max frame work    %v\n", sum.MaxWork)
	p.Fprintf(w, "last fps          %d\n", sum.LastFPS)
	p.Fprintf(w, "tiles per core    %v\n", last.TilesPerCore)
	if last.PresentErrors > 0 {
		p.Fprintf(w, "present errors    %d\n", last.PresentErrors)
	}
}
