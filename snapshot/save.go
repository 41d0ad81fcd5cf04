// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
)

// Format returns the format name for path: its extension, lower-cased and
// without the dot.
func Format(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Save encodes img into the file at path, choosing the encoder from the
// extension. The file is written to a temporary name in the same directory
// and renamed into place once complete.
func Save(path string, img image.Image) (err error) {
	format := Format(path)
	if !IsRegistered(format) {
		return fmt.Errorf("%w %q for %s", ErrUnknownFormat, format, path)
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	if err = f.Chmod(0o644); err != nil {
		_ = f.Close()
		return fmt.Errorf("snapshot: %w", err)
	}

	bw := bufio.NewWriter(f)
	if err = Encode(format, bw, img); err != nil {
		_ = f.Close()
		return err
	}
	if err = errors.Join(bw.Flush(), f.Close()); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	if err = os.Rename(tmp, path); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}
