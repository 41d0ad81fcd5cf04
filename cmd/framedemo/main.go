// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command framedemo renders a grid of spinning cubes through the
// multi-core frame pipeline, records per-frame statistics and writes a
// snapshot of the last frame.
//
// Usage:
//
//	framedemo [-config demo.toml] [-frames 300] [-cubes 16] [-snapshot frame.png] ...
//
// Flags given on the command line override the config file. While
// running, edits to the config file's width and height resize the surface
// between frames.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogpu/gputypes"
	"golang.org/x/sync/errgroup"

	"github.com/gogpu/framecore"
	"github.com/gogpu/framecore/internal/config"
	"github.com/gogpu/framecore/internal/hud"
	"github.com/gogpu/framecore/internal/statsdb"
	"github.com/gogpu/framecore/snapshot"
)

func main() {
	fs := flag.NewFlagSet("framedemo", flag.ExitOnError)
	configPath := fs.String("config", "", "JSON or TOML settings file")
	flagged := config.Default()
	flagged.RegisterFlags(fs)
	_ = fs.Parse(os.Args[1:])

	settings, err := config.Resolve(fs, flagged, *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "framedemo:", err)
		os.Exit(2)
	}

	log, err := newLogger(settings)
	if err != nil {
		fmt.Fprintln(os.Stderr, "framedemo:", err)
		os.Exit(2)
	}
	framecore.SetLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, settings, *configPath, log); err != nil {
		log.Error("framedemo: failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(s config.Settings) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}
	if s.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts)), nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts)), nil
}

func sessionConfig(s config.Settings) framecore.Config {
	cfg := framecore.DefaultConfig()
	cfg.Width, cfg.Height = s.Width, s.Height
	cfg.TileSize = s.TileSize
	cfg.MaxCores = s.MaxCores
	cfg.Rasterizers = s.Rasterizers
	cfg.Network = s.Network
	cfg.ParallelBinning = s.ParallelBinning
	cfg.PinThreads = s.PinThreads
	cfg.TargetFPS = s.TargetFPS
	cfg.ClearColor = gputypes.Color{R: 0.05, G: 0.06, B: 0.09, A: 1}
	if !s.VSync {
		cfg.PresentMode = gputypes.PresentModeImmediate
	}
	return cfg
}

func overlay() framecore.Overlay {
	return framecore.OverlayFunc(func(dst draw.Image, st framecore.FrameStats) {
		hud.Draw(dst,
			fmt.Sprintf("frame %d  %d fps", st.Frame, st.FPS),
			fmt.Sprintf("%dx%d  tiles %d/%d", st.Width, st.Height, st.OccupiedTiles, st.Tiles),
			fmt.Sprintf("tris %d  culled %d", st.Triangles, st.Culled),
		)
	})
}

func run(ctx context.Context, s config.Settings, configPath string, log *slog.Logger) error {
	dbPath := s.StatsDB
	if dbPath == "" {
		dbPath = ":memory:"
	}
	db, err := statsdb.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	sess, err := framecore.NewSession(sessionConfig(s),
		framecore.WithWorld(newCubes(s.Cubes)),
		framecore.WithOverlay(overlay()),
		framecore.WithLogger(log),
	)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	watchCtx, stopWatch := context.WithCancel(ctx)
	defer stopWatch()

	stats := make(chan framecore.FrameStats, 256)
	shots := make(chan image.Image, 1)

	g.Go(func() error {
		defer close(shots)
		defer close(stats)
		defer stopWatch()
		return render(ctx, sess, s.Frames, stats, shots, log)
	})
	g.Go(func() error {
		return record(db, stats)
	})
	g.Go(func() error {
		return writeSnapshot(s.Snapshot, shots, log)
	})
	if configPath != "" {
		g.Go(func() error {
			return config.Watch(watchCtx, configPath, func(ns config.Settings, err error) {
				if err != nil {
					log.Warn("framedemo: config reload failed", "err", err)
					return
				}
				sess.RequestResize(ns.Width, ns.Height)
			})
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if s.StatsJSON != "" {
		if err := exportJSON(db, s.StatsJSON); err != nil {
			return err
		}
	}
	sum, err := db.Summary()
	if err != nil {
		return err
	}
	printSummary(os.Stdout, sum, sess.Stats())
	return nil
}

// render drives the session on the calling goroutine, which becomes the
// orchestrator core.
func render(ctx context.Context, sess *framecore.Session, frames int,
	stats chan<- framecore.FrameStats, shots chan<- image.Image, log *slog.Logger,
) error {
	if err := sess.Start(); err != nil {
		return err
	}
	defer sess.Close()

	lost := 0
	for n := 0; frames == 0 || n < frames; n++ {
		if ctx.Err() != nil || sess.Stopped() {
			break
		}
		if err := sess.Frame(); err != nil {
			return err
		}
		select {
		case stats <- sess.Stats():
		default:
			lost++
		}
	}
	if lost > 0 {
		log.Warn("framedemo: statistics recorder fell behind", "lost", lost)
	}
	shots <- sess.Framebuffer().Snapshot()
	return nil
}

func record(db *statsdb.DB, stats <-chan framecore.FrameStats) error {
	var err error
	for st := range stats {
		if err != nil {
			continue
		}
		err = db.Record(statsdb.FrameRecord{
			Frame:         st.Frame,
			Width:         st.Width,
			Height:        st.Height,
			Triangles:     st.Triangles,
			Culled:        st.Culled,
			Dropped:       st.Dropped,
			Overflowed:    st.Overflowed,
			OccupiedTiles: st.OccupiedTiles,
			WorkTime:      st.WorkTime,
			FPS:           st.FPS,
			OverBudget:    st.OverBudget,
		})
	}
	return err
}

func writeSnapshot(path string, shots <-chan image.Image, log *slog.Logger) error {
	for img := range shots {
		if path == "" {
			continue
		}
		if err := snapshot.Save(path, img); err != nil {
			return err
		}
		log.Info("framedemo: snapshot written", "path", path)
	}
	return nil
}

func exportJSON(db *statsdb.DB, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return db.ExportJSON(f)
}
