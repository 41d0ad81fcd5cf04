// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package config loads the settings of the framedemo command from a JSON
// or TOML file and command-line flags, and watches the file for changes.
//
// Precedence, lowest first: Default, the config file, flags given
// explicitly on the command line.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/sugawarayuuta/sonnet"
)

// ErrUnknownFormat is returned by Load for a file that is neither .json
// nor .toml.
var ErrUnknownFormat = errors.New("config: unknown file format")

// Settings are the knobs of one demo run.
type Settings struct {
	Width           int    `json:"width" toml:"width"`
	Height          int    `json:"height" toml:"height"`
	TileSize        int    `json:"tile_size" toml:"tile_size"`
	MaxCores        int    `json:"max_cores" toml:"max_cores"`
	Rasterizers     int    `json:"rasterizers" toml:"rasterizers"`
	Network         bool   `json:"network" toml:"network"`
	ParallelBinning bool   `json:"parallel_binning" toml:"parallel_binning"`
	PinThreads      bool   `json:"pin_threads" toml:"pin_threads"`
	VSync           bool   `json:"vsync" toml:"vsync"`
	TargetFPS       int    `json:"target_fps" toml:"target_fps"`
	Frames          int    `json:"frames" toml:"frames"`
	Cubes           int    `json:"cubes" toml:"cubes"`
	Snapshot        string `json:"snapshot" toml:"snapshot"`
	StatsDB         string `json:"stats_db" toml:"stats_db"`
	StatsJSON       string `json:"stats_json" toml:"stats_json"`
	LogLevel        string `json:"log_level" toml:"log_level"`
	LogFormat       string `json:"log_format" toml:"log_format"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Width:       640,
		Height:      480,
		TileSize:    64,
		Rasterizers: -1,
		PinThreads:  true,
		VSync:       true,
		TargetFPS:   60,
		Frames:      300,
		Cubes:       16,
		Snapshot:    "frame.png",
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Validate reports the first invalid setting.
func (s Settings) Validate() error {
	switch {
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("config: invalid resolution %dx%d", s.Width, s.Height)
	case s.TileSize <= 0:
		return fmt.Errorf("config: invalid tile size %d", s.TileSize)
	case s.Frames < 0:
		return fmt.Errorf("config: negative frame count %d", s.Frames)
	case s.LogFormat != "text" && s.LogFormat != "json":
		return fmt.Errorf("config: log format %q, want text or json", s.LogFormat)
	}
	return nil
}

// Load reads path over Default. The format follows the extension.
func Load(path string) (Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("config: %w", err)
	}
	if err := decode(path, data, &s); err != nil {
		return s, err
	}
	return s, nil
}

func decode(path string, data []byte, s *Settings) error {
	var err error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = sonnet.Unmarshal(data, s)
	case ".toml":
		err = toml.Unmarshal(data, s)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, ext)
	}
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}
