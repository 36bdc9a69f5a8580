// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

// Package blobstore provides the get/set persistence backends the dedup
// store writes its serialized state through. Every backend stores opaque
// byte blobs under string keys; none of them understands the blob format.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ErrNotFound is returned internally by backends when a key has no value.
// Get translates it into the caller's default.
var ErrNotFound = errors.New("blob not found")

// Store is the minimal persistence contract: read a blob or fall back to a
// default, and replace a blob wholesale.
type Store interface {
	// Get returns the blob stored under key, or def when there is none.
	Get(ctx context.Context, key string, def []byte) ([]byte, error)

	// Set replaces the blob stored under key.
	Set(ctx context.Context, key string, blob []byte) error
}

// Backend is a Store that holds resources which must be released.
type Backend interface {
	Store
	io.Closer

	// Kind reports which backend implementation this is.
	Kind() Kind
}

// Kind names a backend implementation.
type Kind string

// Supported backend kinds.
const (
	KindMemory Kind = "memory"
	KindFile   Kind = "file"
	KindSQLite Kind = "sqlite"
	KindBadger Kind = "badger"
	KindRedis  Kind = "redis"
)

// Kinds lists every supported backend kind.
func Kinds() []Kind {
	return []Kind{KindMemory, KindFile, KindSQLite, KindBadger, KindRedis}
}

// ParseKind validates s as a backend kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds() {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown backend %q (valid: memory, file, sqlite, badger, redis)", s)
}

// Options selects and configures a backend.
type Options struct {
	Kind Kind

	// Path is the data directory for file and badger, and the database file
	// for sqlite. Unused by memory and redis.
	Path string

	RedisAddr     string
	RedisDB       int
	RedisPassword string
}

// Open constructs the backend described by opts.
func Open(ctx context.Context, opts Options) (Backend, error) {
	switch opts.Kind {
	case KindMemory, "":
		return NewMemory(), nil
	case KindFile:
		return NewFile(opts.Path)
	case KindSQLite:
		return OpenSQLite(ctx, opts.Path)
	case KindBadger:
		return OpenBadger(opts.Path)
	case KindRedis:
		return OpenRedis(ctx, RedisOptions{
			Addr:     opts.RedisAddr,
			DB:       opts.RedisDB,
			Password: opts.RedisPassword,
		})
	default:
		return nil, fmt.Errorf("unknown backend %q", opts.Kind)
	}
}

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateKey rejects keys that cannot be used safely as file names or
// database keys.
func ValidateKey(key string) error {
	if !validKey.MatchString(key) || strings.Contains(key, "..") {
		return fmt.Errorf("invalid blob key %q", key)
	}
	return nil
}

// cloneOr returns a copy of b, or def when b is nil.
func cloneOr(b, def []byte) []byte {
	if b == nil {
		return def
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
