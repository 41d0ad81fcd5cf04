// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package snapshot encodes frames to image files.
//
// Encoders are looked up by format name in a registry that follows the
// database/sql driver pattern. The png, bmp, webp and tga encoders are
// registered by this package; others can be added with Register:
//
//	func init() {
//	    snapshot.Register("jpeg", func(w io.Writer, img image.Image) error {
//	        return jpeg.Encode(w, img, nil)
//	    })
//	}
//
// Save picks the encoder from the file extension:
//
//	err := snapshot.Save("frame.webp", fb.Snapshot())
package snapshot

import (
	"errors"
	"fmt"
	"image"
	"io"
	"sort"
	"sync"
)

// Encoder writes img to w in one image format.
type Encoder func(w io.Writer, img image.Image) error

// ErrUnknownFormat is returned for a format with no registered encoder.
var ErrUnknownFormat = errors.New("snapshot: unknown format")

// Registry state - protected by mutex for thread-safe access.
var (
	registryMu sync.RWMutex
	encoders   = make(map[string]Encoder)
)

// Register registers an encoder under a lower-case format name, which is
// also the file extension Save matches.
//
// Register panics if enc is nil or the name is already registered.
func Register(name string, enc Encoder) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if enc == nil {
		panic("snapshot: Register encoder is nil")
	}
	if _, dup := encoders[name]; dup {
		panic("snapshot: Register called twice for " + name)
	}
	encoders[name] = enc
}

// Unregister removes an encoder. Unknown names are ignored.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(encoders, name)
}

// Encoders returns the registered format names in sorted order.
func Encoders() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether an encoder is registered for name.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := encoders[name]
	return ok
}

// Encode writes img to w with the encoder registered for name.
func Encode(name string, w io.Writer, img image.Image) error {
	registryMu.RLock()
	enc, ok := encoders[name]
	registryMu.RUnlock()

	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownFormat, name)
	}
	if err := enc(w, img); err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", name, err)
	}
	return nil
}
