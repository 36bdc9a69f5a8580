// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package blobstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/seen/internal/testable"
)

func withMockFS(t *testing.T, m *testable.MockFileSystem) {
	t.Helper()
	old := FS
	FS = m
	t.Cleanup(func() { FS = old })
}

func TestFile_WritesUnderKeyName(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)

	require.NoError(t, f.Set(context.Background(), "seen-store", []byte("{}")))
	data, err := os.ReadFile(filepath.Join(dir, "seen-store.json"))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	_, err = os.Stat(filepath.Join(dir, "seen-store.json.tmp"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "temp file is renamed away")
}

func TestFile_CreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	f, err := NewFile(dir)
	require.NoError(t, err)
	require.NoError(t, f.Set(context.Background(), "k", []byte("v")))
	assert.Equal(t, dir, f.Dir())
}

func TestFile_RejectsBadKey(t *testing.T) {
	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	assert.Error(t, f.Set(ctx, "../escape", []byte("x")))
	_, err = f.Get(ctx, "../escape", nil)
	assert.Error(t, err)
}

func TestFile_RequiresDir(t *testing.T) {
	_, err := NewFile("")
	assert.Error(t, err)
}

func TestFile_WriteFailure(t *testing.T) {
	boom := errors.New("disk full")
	withMockFS(t, &testable.MockFileSystem{
		WriteFileFn: func(string, []byte, os.FileMode) error { return boom },
	})

	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	err = f.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestFile_RenameFailureRemovesTemp(t *testing.T) {
	boom := errors.New("cross-device link")
	var removed string
	withMockFS(t, &testable.MockFileSystem{
		RenameFn: func(string, string) error { return boom },
		RemoveFn: func(name string) error {
			removed = name
			return os.Remove(name)
		},
	})

	dir := t.TempDir()
	f, err := NewFile(dir)
	require.NoError(t, err)
	err = f.Set(context.Background(), "k", []byte("v"))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, filepath.Join(dir, "k.json.tmp"), removed)
}

func TestFile_ReadFailure(t *testing.T) {
	boom := errors.New("permission denied")
	withMockFS(t, &testable.MockFileSystem{
		ReadFileFn: func(string) ([]byte, error) { return nil, boom },
	})

	f, err := NewFile(t.TempDir())
	require.NoError(t, err)
	_, err = f.Get(context.Background(), "k", nil)
	assert.ErrorIs(t, err, boom)
}
