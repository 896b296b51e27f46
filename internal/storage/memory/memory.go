// Package memory provides an in-process storage.KV used for ephemeral runs
// and for exercising storage failures in tests.
package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/mmynk/groovematch/internal/storage"
)

var _ storage.KV = (*KV)(nil)

// ErrInjected is returned by a KV whose failure switches are on.
var ErrInjected = errors.New("memory: injected storage failure")

// KV is a map guarded by a mutex. FailGet and FailSet make the next reads or
// writes fail until switched off again.
type KV struct {
	mu      sync.Mutex
	data    map[string]string
	failGet bool
	failSet bool
	gets    int
	sets    int
}

// New returns an empty KV.
func New() *KV {
	return &KV{data: make(map[string]string)}
}

// FailGet toggles read failures.
func (m *KV) FailGet(fail bool) {
	m.mu.Lock()
	m.failGet = fail
	m.mu.Unlock()
}

// FailSet toggles write (Set and Remove) failures.
func (m *KV) FailSet(fail bool) {
	m.mu.Lock()
	m.failSet = fail
	m.mu.Unlock()
}

// Gets returns how many Get calls reached the store.
func (m *KV) Gets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gets
}

// Sets returns how many Set calls succeeded.
func (m *KV) Sets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets
}

func (m *KV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.failGet {
		return "", false, ErrInjected
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *KV) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return ErrInjected
	}
	m.data[key] = value
	m.sets++
	return nil
}

func (m *KV) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet {
		return ErrInjected
	}
	delete(m.data, key)
	return nil
}

func (m *KV) Close() error { return nil }
