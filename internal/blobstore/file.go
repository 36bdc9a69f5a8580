// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/davetashner/seen/internal/testable"
)

// FS is the file system used by the file backend.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// File stores each blob as <dir>/<key>.json. Writes go to a temporary file
// first and are renamed into place, so a crash never leaves a torn blob.
type File struct {
	dir string
}

// NewFile returns a file backend rooted at dir. The directory is created on
// first write.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("file backend requires a data directory")
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Get implements Store.
func (f *File) Get(_ context.Context, key string, def []byte) ([]byte, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	data, err := FS.ReadFile(f.path(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return def, nil
		}
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return data, nil
}

// Set implements Store.
func (f *File) Set(_ context.Context, key string, blob []byte) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := FS.MkdirAll(f.dir, 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	dst := f.path(key)
	tmp := dst + ".tmp"
	if err := FS.WriteFile(tmp, blob, 0o600); err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	if err := FS.Rename(tmp, dst); err != nil {
		_ = FS.Remove(tmp)
		return fmt.Errorf("replace blob %s: %w", key, err)
	}
	return nil
}

// Close implements Backend.
func (f *File) Close() error { return nil }

// Kind implements Backend.
func (f *File) Kind() Kind { return KindFile }

// Dir returns the backend's data directory.
func (f *File) Dir() string { return f.dir }
