package storage

import (
	"context"
	"errors"
	"sync"
)

// MemoryKV is an in-memory service.KVStore used by tests and by
// callers that want an ephemeral store without a SQLite file.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string

	// FailWrites forces Set/Delete to fail; tests use it to exercise
	// the log-and-absorb storage error policy. FailReads does the same
	// for Get.
	FailWrites bool
	FailReads  bool
}

// errMemoryKV is returned by a MemoryKV forced into failure mode.
var errMemoryKV = errors.New("memory kv: forced failure")

// NewMemoryKV creates an empty in-memory store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get returns the value stored under key.
func (m *MemoryKV) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validateContext(ctx); err != nil {
		return "", false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.FailReads {
		return "", false, errMemoryKV
	}
	v, ok := m.data[key]
	return v, ok, nil
}

// Set stores value under key.
func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errMemoryKV
	}
	m.data[key] = value
	return nil
}

// Delete removes key.
func (m *MemoryKV) Delete(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites {
		return errMemoryKV
	}
	delete(m.data, key)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryKV) Close() error {
	return nil
}
