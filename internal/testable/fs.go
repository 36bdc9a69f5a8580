// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package testable abstracts the file system calls made by the file-backed
// blob store and the config loader so tests can inject failures.
package testable

import (
	"os"
)

// FileSystem is the subset of os used by seen.
type FileSystem interface {
	// Stat returns a FileInfo describing the named file.
	Stat(name string) (os.FileInfo, error)

	// ReadFile reads the named file and returns the contents.
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(name string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory named path, along with any necessary parents.
	MkdirAll(path string, perm os.FileMode) error

	// Rename moves oldpath to newpath, replacing newpath if it exists.
	Rename(oldpath, newpath string) error

	// Remove deletes the named file.
	Remove(name string) error
}

// OsFileSystem delegates to the os package.
type OsFileSystem struct{}

// Stat wraps os.Stat.
func (OsFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile wraps os.ReadFile.
func (OsFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // caller controls path
}

// WriteFile wraps os.WriteFile.
func (OsFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm) //nolint:gosec // caller controls path and perms
}

// MkdirAll wraps os.MkdirAll.
func (OsFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// Rename wraps os.Rename.
func (OsFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Remove wraps os.Remove.
func (OsFileSystem) Remove(name string) error {
	return os.Remove(name)
}

// DefaultFS is the FileSystem used when none is injected.
var DefaultFS FileSystem = OsFileSystem{}
