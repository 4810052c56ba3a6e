// Package ledger owns the in-memory transaction and debt collections,
// their persistence, and the derived aggregates the views render.
//
// The store follows an explicit lifecycle: New, Hydrate, operations,
// Close. In-memory state is the source of truth; every mutation is
// mirrored to the key-value store by a single background writer, and a
// persistence failure never rolls a mutation back.
package ledger

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/fmansouri/pocketledger/internal/common"
	"github.com/fmansouri/pocketledger/internal/model"
	"github.com/fmansouri/pocketledger/internal/service"
)

type lifecycle int

const (
	stateNew lifecycle = iota
	stateReady
	stateClosed
)

// write is one full-collection snapshot queued for persistence.
type write struct {
	key   string
	value string
}

// Store holds the ledger state for one user.
type Store struct {
	kv  service.KVStore
	now func() time.Time

	mu           sync.Mutex
	state        lifecycle
	transactions []model.Transaction
	debts        []model.Debt

	writes chan write
	done   chan struct{}
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the reference clock used by date-range filters.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an unhydrated store over kv. Call Hydrate before
// any other operation.
func NewStore(kv service.KVStore, opts ...Option) *Store {
	s := &Store{
		kv:     kv,
		now:    time.Now,
		writes: make(chan write, 64),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads both collections from the key-value store and starts
// the persistence writer. A load failure is logged and treated as "no
// stored data"; hydration itself never fails because of one.
func (s *Store) Hydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateNew {
		panic("ledger: Hydrate called on an already hydrated or closed store")
	}

	s.transactions = loadTransactions(ctx, s.kv)
	s.debts = loadDebts(ctx, s.kv)
	s.state = stateReady

	go s.runWriter()
	return nil
}

// Close stops the persistence writer after draining queued writes.
// Operations after Close panic.
func (s *Store) Close() error {
	s.mu.Lock()
	if s.state != stateReady {
		s.mu.Unlock()
		return nil
	}
	s.state = stateClosed
	s.mu.Unlock()

	close(s.writes)
	<-s.done
	return nil
}

// runWriter applies queued snapshots in submission order. The last
// write submitted for a key is the last write applied.
func (s *Store) runWriter() {
	defer close(s.done)
	for w := range s.writes {
		if err := s.kv.Set(context.Background(), w.key, w.value); err != nil {
			common.LogError(err, "ledger: persist failed", common.Fields{"key": w.key})
		}
	}
}

// ensureReady panics when an operation is invoked outside the active
// store lifecycle. This is a programming-contract violation, not a
// runtime condition.
func (s *Store) ensureReady(op string) {
	switch s.state {
	case stateNew:
		panic("ledger: " + op + " called before Hydrate")
	case stateClosed:
		panic("ledger: " + op + " called after Close")
	}
}

// AddTransaction appends t to the end of the transaction list. The
// store accepts whatever it is given; callers validate id, type and
// amount first.
func (s *Store) AddTransaction(t model.Transaction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("AddTransaction")

	s.transactions = append(s.transactions, t)
	s.persistTransactions()
}

// DeleteTransaction removes the entry whose id matches. Unknown ids
// are a no-op.
func (s *Store) DeleteTransaction(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("DeleteTransaction")

	kept := s.transactions[:0]
	found := false
	for _, t := range s.transactions {
		if t.ID == id {
			found = true
			continue
		}
		kept = append(kept, t)
	}
	s.transactions = kept
	if found {
		s.persistTransactions()
	}
}

// AddDebt appends d to the debt list.
func (s *Store) AddDebt(d model.Debt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("AddDebt")

	s.debts = append(s.debts, d)
	s.persistDebts()
}

// DeleteDebt removes the matching entry. Unknown ids are a no-op.
func (s *Store) DeleteDebt(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("DeleteDebt")

	kept := s.debts[:0]
	found := false
	for _, d := range s.debts {
		if d.ID == id {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	s.debts = kept
	if found {
		s.persistDebts()
	}
}

// ToggleDebtPaid flips isPaid on the matching entry. Unknown ids are a
// no-op.
func (s *Store) ToggleDebtPaid(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("ToggleDebtPaid")

	for i := range s.debts {
		if s.debts[i].ID == id {
			s.debts[i].IsPaid = !s.debts[i].IsPaid
			s.persistDebts()
			return
		}
	}
}

// Transactions returns a copy of the transaction list in insertion
// order.
func (s *Store) Transactions() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("Transactions")

	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Debts returns a copy of the debt list in insertion order. With
// onlyUnpaid set, settled debts are omitted.
func (s *Store) Debts(onlyUnpaid bool) []model.Debt {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureReady("Debts")

	out := make([]model.Debt, 0, len(s.debts))
	for _, d := range s.debts {
		if onlyUnpaid && d.IsPaid {
			continue
		}
		out = append(out, d)
	}
	return out
}

// persistTransactions enqueues a snapshot of the transaction list.
// Callers hold s.mu, so snapshots enter the queue in mutation order.
func (s *Store) persistTransactions() {
	data, err := json.Marshal(s.transactions)
	if err != nil {
		common.LogError(err, "ledger: marshal transactions failed", nil)
		return
	}
	s.writes <- write{key: service.KeyTransactions, value: string(data)}
}

func (s *Store) persistDebts() {
	data, err := json.Marshal(s.debts)
	if err != nil {
		common.LogError(err, "ledger: marshal debts failed", nil)
		return
	}
	s.writes <- write{key: service.KeyDebts, value: string(data)}
}
