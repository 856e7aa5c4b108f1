// Package memory implements the persistence port on an in-process key-value
// map. It goes through the shared codec so it exercises the same wire layout
// as the durable adapters, which makes it the backend of choice for tests.
package memory

import (
	"context"
	"sync"

	"tally/internal/store"
)

type Store struct {
	mu     sync.Mutex
	values map[string]string

	// SaveErr and LoadErr, when set, are returned by the corresponding
	// operation. Used to exercise the ledger's degraded-persistence paths.
	SaveErr error
	LoadErr error
}

func New() *Store {
	return &Store{values: make(map[string]string)}
}

func (s *Store) Save(_ context.Context, snap store.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	txs, nextID, err := store.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	s.values[store.KeyTransactions] = string(txs)
	s.values[store.KeyNextID] = nextID
	return nil
}

func (s *Store) Load(_ context.Context) (store.Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LoadErr != nil {
		return store.Snapshot{}, false, s.LoadErr
	}
	txs, ok := s.values[store.KeyTransactions]
	if !ok {
		return store.Snapshot{}, false, nil
	}
	snap, err := store.DecodeSnapshot([]byte(txs), s.values[store.KeyNextID])
	if err != nil {
		return store.Snapshot{}, false, err
	}
	return snap, true, nil
}

// Seed places raw values into the underlying map, bypassing the codec.
// Lets tests stage corrupt or hand-crafted persisted state.
func (s *Store) Seed(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}
