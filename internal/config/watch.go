// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads path whenever it changes and passes the result to fn,
// until ctx is done. A file that fails to load or validate is reported
// through err; fn should then keep its previous settings.
//
// The directory is watched rather than the file so that editors replacing
// the file by rename are seen.
func Watch(ctx context.Context, path string, fn func(s Settings, err error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	defer w.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: watch %s: %w", path, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			s, err := Load(abs)
			if err == nil {
				err = s.Validate()
			}
			fn(s, err)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(Settings{}, fmt.Errorf("config: watch: %w", err))
		}
	}
}
