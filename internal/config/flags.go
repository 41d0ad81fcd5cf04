// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import "flag"

// field binds one setting to a flag and copies it between settings.
type field struct {
	name string
	bind func(fs *flag.FlagSet, s *Settings)
	copy func(dst, src *Settings)
}

func intField(name, usage string, p func(*Settings) *int) field {
	return field{
		name: name,
		bind: func(fs *flag.FlagSet, s *Settings) { fs.IntVar(p(s), name, *p(s), usage) },
		copy: func(dst, src *Settings) { *p(dst) = *p(src) },
	}
}

func boolField(name, usage string, p func(*Settings) *bool) field {
	return field{
		name: name,
		bind: func(fs *flag.FlagSet, s *Settings) { fs.BoolVar(p(s), name, *p(s), usage) },
		copy: func(dst, src *Settings) { *p(dst) = *p(src) },
	}
}

func stringField(name, usage string, p func(*Settings) *string) field {
	return field{
		name: name,
		bind: func(fs *flag.FlagSet, s *Settings) { fs.StringVar(p(s), name, *p(s), usage) },
		copy: func(dst, src *Settings) { *p(dst) = *p(src) },
	}
}

var fields = []field{
	intField("width", "surface width in pixels", func(s *Settings) *int { return &s.Width }),
	intField("height", "surface height in pixels", func(s *Settings) *int { return &s.Height }),
	intField("tile", "tile edge length in pixels", func(s *Settings) *int { return &s.TileSize }),
	intField("max-cores", "cap on the number of CPUs used (0 = all)", func(s *Settings) *int { return &s.MaxCores }),
	intField("rasterizers", "rasterizer workers (-1 = every free core)", func(s *Settings) *int { return &s.Rasterizers }),
	boolField("network", "reserve a core for network polling", func(s *Settings) *bool { return &s.Network }),
	boolField("parallel-binning", "bin triangles on every rasterizing core", func(s *Settings) *bool { return &s.ParallelBinning }),
	boolField("pin", "pin each core to its CPU", func(s *Settings) *bool { return &s.PinThreads }),
	boolField("vsync", "pace frames at the target rate", func(s *Settings) *bool { return &s.VSync }),
	intField("fps", "target frame rate with -vsync", func(s *Settings) *int { return &s.TargetFPS }),
	intField("frames", "frames to render (0 = until interrupted)", func(s *Settings) *int { return &s.Frames }),
	intField("cubes", "number of spinning cubes", func(s *Settings) *int { return &s.Cubes }),
	stringField("snapshot", "image written after the last frame (empty = none)", func(s *Settings) *string { return &s.Snapshot }),
	stringField("stats-db", "SQLite file receiving per-frame statistics", func(s *Settings) *string { return &s.StatsDB }),
	stringField("stats-json", "JSON file receiving the recorded statistics", func(s *Settings) *string { return &s.StatsJSON }),
	stringField("log-level", "debug, info, warn or error", func(s *Settings) *string { return &s.LogLevel }),
	stringField("log-format", "text or json", func(s *Settings) *string { return &s.LogFormat }),
}

// RegisterFlags defines one flag per setting on fs, bound to s. The
// current values of s become the flag defaults.
func (s *Settings) RegisterFlags(fs *flag.FlagSet) {
	for _, f := range fields {
		f.bind(fs, s)
	}
}

// Resolve merges the sources after fs has been parsed: flagged holds the
// values bound with RegisterFlags. Without a config path they are returned
// as is; otherwise the file is loaded and only the flags set explicitly on
// the command line override it.
func Resolve(fs *flag.FlagSet, flagged Settings, path string) (Settings, error) {
	if path == "" {
		return flagged, flagged.Validate()
	}
	s, err := Load(path)
	if err != nil {
		return s, err
	}
	Override(fs, &s, flagged)
	return s, s.Validate()
}

// Override copies into dst the settings whose flags were set explicitly
// on fs.
func Override(fs *flag.FlagSet, dst *Settings, flagged Settings) {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	for _, f := range fields {
		if set[f.name] {
			f.copy(dst, &flagged)
		}
	}
}
