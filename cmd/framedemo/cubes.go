// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package main

import (
	"log/slog"
	"time"

	"github.com/chewxy/math32"

	"github.com/gogpu/framecore"
	"github.com/gogpu/framecore/raster"
)

var cubeCorners = [8][3]float32{
	{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
	{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
}

// cubeFaces lists each face as two triangles of corner indices.
var cubeFaces = [6][2][3]int{
	{{0, 1, 2}, {0, 2, 3}}, // back
	{{4, 6, 5}, {4, 7, 6}}, // front
	{{0, 4, 5}, {0, 5, 1}}, // bottom
	{{3, 2, 6}, {3, 6, 7}}, // top
	{{0, 3, 7}, {0, 7, 4}}, // left
	{{1, 5, 6}, {1, 6, 2}}, // right
}

var faceColors = [6][3]float32{
	{0.90, 0.20, 0.20},
	{0.20, 0.80, 0.30},
	{0.20, 0.40, 0.90},
	{0.95, 0.85, 0.20},
	{0.80, 0.30, 0.85},
	{0.20, 0.85, 0.85},
}

// cubes is a grid of spinning cubes in front of the camera.
type cubes struct {
	n     int
	angle float32
	log   *slog.Logger
}

func newCubes(n int) *cubes {
	return &cubes{n: max(n, 1), log: slog.New(slog.DiscardHandler)}
}

// SetLogger receives the session logger.
func (c *cubes) SetLogger(l *slog.Logger) {
	c.log = l
}

// Update advances the rotation by dt and submits every cube.
func (c *cubes) Update(frame uint64, dt time.Duration, out framecore.Submitter) {
	c.angle += float32(dt.Seconds()) * 0.9

	w, h := float32(out.Width()), float32(out.Height())
	cols := int(math32.Ceil(math32.Sqrt(float32(c.n))))
	rows := (c.n + cols - 1) / cols
	focal := 0.5 * h / 0.57735027 // 60 degree vertical field of view
	spacing := float32(3)

	dropped := 0
	for i := range c.n {
		col, row := i%cols, i/cols
		center := [3]float32{
			(float32(col) - float32(cols-1)/2) * spacing,
			(float32(row) - float32(rows-1)/2) * spacing,
			float32(max(cols, rows))*spacing + 4,
		}
		a := c.angle + float32(i)*0.37
		sa, ca := math32.Sin(a), math32.Cos(a)
		sb, cb := math32.Sin(a*0.6), math32.Cos(a*0.6)

		var proj [8]raster.Vertex
		for k, p := range cubeCorners {
			// Yaw, then pitch, then translate.
			x := p[0]*ca + p[2]*sa
			z := -p[0]*sa + p[2]*ca
			y := p[1]*cb - z*sb
			z = p[1]*sb + z*cb

			x += center[0]
			y += center[1]
			z += center[2]
			proj[k] = raster.Vertex{
				X: w/2 + x/z*focal,
				Y: h/2 - y/z*focal,
				Z: 1 / z,
			}
		}

		for f, face := range cubeFaces {
			col := faceColors[f]
			for _, idx := range face {
				var t raster.Triangle
				for v, k := range idx {
					t[v] = proj[k]
					t[v].R, t[v].G, t[v].B = col[0], col[1], col[2]
				}
				if !out.Submit(t) {
					dropped++
				}
			}
		}
	}
	if dropped > 0 {
		c.log.Warn("framedemo: triangles dropped", "frame", frame, "count", dropped)
	}
}
