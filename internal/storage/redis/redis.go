// Package redis provides a Redis-backed storage.KV, for running several
// clients against one shared durable document.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/mmynk/groovematch/internal/storage"
)

var _ storage.KV = (*KV)(nil)

// KV stores every key under a fixed prefix without expiry.
type KV struct {
	client *goredis.Client
	prefix string
}

// Dial connects to addr and pings it before returning.
func Dial(addr, password string) (*KV, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", addr, err)
	}

	return New(client), nil
}

// New wraps an existing client.
func New(client *goredis.Client) *KV {
	return &KV{
		client: client,
		prefix: "groovematch:",
	}
}

func (r *KV) key(k string) string {
	return r.prefix + k
}

func (r *KV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.client.Get(ctx, r.key(key)).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get key %q: %w", key, err)
	}
	return val, true, nil
}

func (r *KV) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set key %q: %w", key, err)
	}
	return nil
}

func (r *KV) Remove(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to remove key %q: %w", key, err)
	}
	return nil
}

func (r *KV) Close() error {
	return r.client.Close()
}
