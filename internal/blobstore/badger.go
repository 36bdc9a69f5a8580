// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package blobstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	badger "github.com/dgraph-io/badger/v3"
)

// Badger stores blobs in an embedded Badger database.
type Badger struct {
	db *badger.DB
}

// OpenBadger opens a Badger database in dir. An empty dir opens an
// in-memory instance.
func OpenBadger(dir string) (*Badger, error) {
	opts := badger.DefaultOptions(dir)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	opts.Logger = badgerLogger{}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &Badger{db: db}, nil
}

// Get implements Store.
func (b *Badger) Get(_ context.Context, key string, def []byte) ([]byte, error) {
	var value []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		return def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}
	return value, nil
}

// Set implements Store.
func (b *Badger) Set(_ context.Context, key string, blob []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), cloneOr(blob, []byte{}))
	})
	if err != nil {
		return fmt.Errorf("write blob %s: %w", key, err)
	}
	return nil
}

// Close implements Backend.
func (b *Badger) Close() error { return b.db.Close() }

// Kind implements Backend.
func (b *Badger) Kind() Kind { return KindBadger }

// badgerLogger routes Badger's internal logging into slog. Info and debug
// chatter is demoted to debug.
type badgerLogger struct{}

func (badgerLogger) Errorf(format string, args ...any) {
	slog.Error(fmt.Sprintf(format, args...), "component", "badger")
}

func (badgerLogger) Warningf(format string, args ...any) {
	slog.Warn(fmt.Sprintf(format, args...), "component", "badger")
}

func (badgerLogger) Infof(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...), "component", "badger")
}

func (badgerLogger) Debugf(format string, args ...any) {
	slog.Debug(fmt.Sprintf(format, args...), "component", "badger")
}
