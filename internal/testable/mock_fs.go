// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package testable

import (
	"os"
)

// MockFileSystem is a test double for FileSystem. A non-nil function field
// replaces the corresponding method; nil fields fall through to the real OS,
// so a test only overrides the calls it wants to fail.
type MockFileSystem struct {
	StatFn      func(name string) (os.FileInfo, error)
	ReadFileFn  func(name string) ([]byte, error)
	WriteFileFn func(name string, data []byte, perm os.FileMode) error
	MkdirAllFn  func(path string, perm os.FileMode) error
	RenameFn    func(oldpath, newpath string) error
	RemoveFn    func(name string) error
}

var real OsFileSystem

// Stat calls StatFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatFn != nil {
		return m.StatFn(name)
	}
	return real.Stat(name)
}

// ReadFile calls ReadFileFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileFn != nil {
		return m.ReadFileFn(name)
	}
	return real.ReadFile(name)
}

// WriteFile calls WriteFileFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if m.WriteFileFn != nil {
		return m.WriteFileFn(name, data, perm)
	}
	return real.WriteFile(name, data, perm)
}

// MkdirAll calls MkdirAllFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if m.MkdirAllFn != nil {
		return m.MkdirAllFn(path, perm)
	}
	return real.MkdirAll(path, perm)
}

// Rename calls RenameFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) Rename(oldpath, newpath string) error {
	if m.RenameFn != nil {
		return m.RenameFn(oldpath, newpath)
	}
	return real.Rename(oldpath, newpath)
}

// Remove calls RemoveFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) Remove(name string) error {
	if m.RemoveFn != nil {
		return m.RemoveFn(name)
	}
	return real.Remove(name)
}

var _ FileSystem = (*MockFileSystem)(nil)
