package testutil

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fmansouri/pocketledger/internal/storage"
)

// NewKV creates an empty in-memory key-value store for a test.
func NewKV(t *testing.T) *storage.MemoryKV {
	t.Helper()
	return storage.NewMemoryKV()
}

// SeedJSON marshals v and stores it under key, failing the test on a
// marshal or write error.
func SeedJSON(t *testing.T, kv *storage.MemoryKV, key string, v any) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("failed to marshal seed value for %q: %v", key, err)
	}
	if err := kv.Set(context.Background(), key, string(data)); err != nil {
		t.Fatalf("failed to seed key %q: %v", key, err)
	}
}

// Seed stores a raw string under key.
func Seed(t *testing.T, kv *storage.MemoryKV, key, value string) {
	t.Helper()
	if err := kv.Set(context.Background(), key, value); err != nil {
		t.Fatalf("failed to seed key %q: %v", key, err)
	}
}
