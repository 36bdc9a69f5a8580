// Copyright 2026 The Seen Authors
// SPDX-License-Identifier: MIT

package blobstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces seen's keys inside a shared Redis database.
const keyPrefix = "seen:"

// RedisOptions configures the Redis backend.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// Redis stores blobs as plain string values in Redis.
type Redis struct {
	client *redis.Client
}

// OpenRedis connects to Redis and verifies the connection with PING.
func OpenRedis(ctx context.Context, opts RedisOptions) (*Redis, error) {
	if opts.Addr == "" {
		return nil, errors.New("redis backend requires an address")
	}
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %s: %w", opts.Addr, err)
	}
	return &Redis{client: client}, nil
}

// Get implements Store.
func (r *Redis) Get(ctx context.Context, key string, def []byte) ([]byte, error) {
	value, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return def, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get blob %s: %w", key, err)
	}
	return value, nil
}

// Set implements Store.
func (r *Redis) Set(ctx context.Context, key string, blob []byte) error {
	if err := r.client.Set(ctx, keyPrefix+key, blob, 0).Err(); err != nil {
		return fmt.Errorf("set blob %s: %w", key, err)
	}
	return nil
}

// Close implements Backend.
func (r *Redis) Close() error { return r.client.Close() }

// Kind implements Backend.
func (r *Redis) Kind() Kind { return KindRedis }
