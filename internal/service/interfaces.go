// Package service defines the interfaces for all application services.
package service

import (
	"context"
)

// Storage keys used by the core stores.
const (
	KeyTransactions = "transactions"
	KeyDebts        = "debts"
	KeyAuthToken    = "auth_token"
	KeyAuthUser     = "auth_user"
)

// KVStore defines the contract for the durable key-value persistence
// layer. Values are JSON-serialized collections or records. There are
// no transactions and no schema; a missing key is reported via the
// boolean, not an error.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Reachability reports whether the device currently has a usable
// network path to the remote API, and notifies subscribers on every
// transition.
type Reachability interface {
	// Online returns the last-observed reachability state.
	Online() bool
	// Subscribe registers fn to be called on each online/offline
	// transition. The returned cancel func removes the subscription.
	Subscribe(fn func(online bool)) (cancel func())
}
