// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package statsdb stores per-frame statistics in a SQLite database.
package statsdb

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"time"

	_ "github.com/mattn/go-sqlite3" // registers the sqlite3 driver
	"github.com/sugawarayuuta/sonnet"
)

const schema = `
CREATE TABLE IF NOT EXISTS frames (
	frame          INTEGER PRIMARY KEY,
	width          INTEGER NOT NULL,
	height         INTEGER NOT NULL,
	triangles      INTEGER NOT NULL,
	culled         INTEGER NOT NULL,
	dropped        INTEGER NOT NULL,
	overflowed     INTEGER NOT NULL,
	occupied_tiles INTEGER NOT NULL,
	work_ns        INTEGER NOT NULL,
	fps            INTEGER NOT NULL,
	over_budget    INTEGER NOT NULL
)`

// FrameRecord is one row of the frames table.
type FrameRecord struct {
	Frame         uint64        `json:"frame"`
	Width         int           `json:"width"`
	Height        int           `json:"height"`
	Triangles     int           `json:"triangles"`
	Culled        uint64        `json:"culled"`
	Dropped       uint64        `json:"dropped"`
	Overflowed    uint64        `json:"overflowed"`
	OccupiedTiles int           `json:"occupied_tiles"`
	WorkTime      time.Duration `json:"work_ns"`
	FPS           int           `json:"fps"`
	OverBudget    bool          `json:"over_budget"`
}

// Summary aggregates every recorded frame.
type Summary struct {
	Frames      int
	Triangles   int64
	Dropped     int64
	Overflowed  int64
	OverBudget  int
	AvgWork     time.Duration
	MaxWork     time.Duration
	AvgOccupied float64
	LastFPS     int
}

// DB is an open statistics database. Record may be called from one
// goroutine at a time.
type DB struct {
	db     *sql.DB
	insert *sql.Stmt
}

// Open opens or creates the database at path. Recording a frame number
// that already exists replaces the row.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("statsdb: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	for _, stmt := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		schema,
	} {
		if _, err := db.Exec(stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("statsdb: init %s: %w", path, err)
		}
	}

	insert, err := db.Prepare(`INSERT OR REPLACE INTO frames
		(frame, width, height, triangles, culled, dropped, overflowed,
		 occupied_tiles, work_ns, fps, over_budget)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("statsdb: prepare: %w", err)
	}
	return &DB{db: db, insert: insert}, nil
}

// Record stores one frame.
func (d *DB) Record(r FrameRecord) error {
	_, err := d.insert.Exec(
		int64(r.Frame), //nolint:gosec // frame numbers stay far below 2^63
		r.Width, r.Height, r.Triangles,
		int64(r.Culled), int64(r.Dropped), int64(r.Overflowed), //nolint:gosec // per-frame counts
		r.OccupiedTiles, int64(r.WorkTime), r.FPS, r.OverBudget,
	)
	if err != nil {
		return fmt.Errorf("statsdb: record frame %d: %w", r.Frame, err)
	}
	return nil
}

// Summary aggregates the recorded frames. An empty database yields the
// zero Summary.
func (d *DB) Summary() (Summary, error) {
	var (
		s                Summary
		avgWork, avgOcc  sql.NullFloat64
		maxWork, lastFPS sql.NullInt64
		tris, drop, over sql.NullInt64
		overBudget       sql.NullInt64
	)
	err := d.db.QueryRow(`SELECT
		COUNT(*), SUM(triangles), SUM(dropped), SUM(overflowed), SUM(over_budget),
		AVG(work_ns), MAX(work_ns), AVG(occupied_tiles),
		(SELECT fps FROM frames ORDER BY frame DESC LIMIT 1)
		FROM frames`).Scan(
		&s.Frames, &tris, &drop, &over, &overBudget,
		&avgWork, &maxWork, &avgOcc, &lastFPS,
	)
	if err != nil {
		return Summary{}, fmt.Errorf("statsdb: summary: %w", err)
	}
	s.Triangles = tris.Int64
	s.Dropped = drop.Int64
	s.Overflowed = over.Int64
	s.OverBudget = int(overBudget.Int64)
	s.AvgWork = time.Duration(avgWork.Float64)
	s.MaxWork = time.Duration(maxWork.Int64)
	s.AvgOccupied = avgOcc.Float64
	s.LastFPS = int(lastFPS.Int64)
	return s, nil
}

// Frames returns every recorded frame in frame order.
func (d *DB) Frames() ([]FrameRecord, error) {
	rows, err := d.db.Query(`SELECT frame, width, height, triangles, culled,
		dropped, overflowed, occupied_tiles, work_ns, fps, over_budget
		FROM frames ORDER BY frame`)
	if err != nil {
		return nil, fmt.Errorf("statsdb: query: %w", err)
	}
	defer rows.Close()

	var out []FrameRecord
	for rows.Next() {
		var (
			r                         FrameRecord
			frame, culled, drop, over int64
			work                      int64
		)
		if err := rows.Scan(&frame, &r.Width, &r.Height, &r.Triangles, &culled,
			&drop, &over, &r.OccupiedTiles, &work, &r.FPS, &r.OverBudget); err != nil {
			return nil, fmt.Errorf("statsdb: scan: %w", err)
		}
		r.Frame = uint64(frame)     //nolint:gosec // stored from a uint64
		r.Culled = uint64(culled)   //nolint:gosec // stored from a uint64
		r.Dropped = uint64(drop)    //nolint:gosec // stored from a uint64
		r.Overflowed = uint64(over) //nolint:gosec // stored from a uint64
		r.WorkTime = time.Duration(work)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("statsdb: query: %w", err)
	}
	return out, nil
}

// ExportJSON writes every recorded frame to w as a JSON array.
func (d *DB) ExportJSON(w io.Writer) error {
	frames, err := d.Frames()
	if err != nil {
		return err
	}
	if frames == nil {
		frames = []FrameRecord{}
	}
	data, err := sonnet.Marshal(frames)
	if err != nil {
		return fmt.Errorf("statsdb: encode: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("statsdb: export: %w", err)
	}
	return nil
}

// Close releases the database.
func (d *DB) Close() error {
	return errors.Join(d.insert.Close(), d.db.Close())
}
