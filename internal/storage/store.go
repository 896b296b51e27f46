// Package storage provides abstractions for durable on-device storage.
package storage

import "context"

// KV is the durable key-value collaborator the mock persistence store and the
// auth flow write through. Values are opaque strings.
//
// Implementations must be safe for concurrent use.
type KV interface {
	// Get returns the value stored under key.
	// ok is false (with a nil error) when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}
