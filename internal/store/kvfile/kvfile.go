// Package kvfile implements the persistence port as one file per key inside
// a local data directory: transactions.json holds the JSON array, next_id
// holds the counter as a decimal string.
package kvfile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tally/internal/store"
)

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Save(_ context.Context, snap store.Snapshot) error {
	txs, nextID, err := store.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(s.transactionsPath(), txs); err != nil {
		return fmt.Errorf("write transactions: %w", err)
	}
	if err := writeFileAtomic(s.nextIDPath(), []byte(nextID)); err != nil {
		return fmt.Errorf("write next id: %w", err)
	}
	return nil
}

func (s *Store) Load(_ context.Context) (store.Snapshot, bool, error) {
	txs, err := os.ReadFile(s.transactionsPath())
	if os.IsNotExist(err) {
		return store.Snapshot{}, false, nil
	}
	if err != nil {
		return store.Snapshot{}, false, fmt.Errorf("read transactions: %w", err)
	}
	nextID, err := os.ReadFile(s.nextIDPath())
	if err != nil && !os.IsNotExist(err) {
		return store.Snapshot{}, false, fmt.Errorf("read next id: %w", err)
	}
	snap, err := store.DecodeSnapshot(txs, string(nextID))
	if err != nil {
		return store.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (s *Store) transactionsPath() string {
	return filepath.Join(s.dir, store.KeyTransactions+".json")
}

func (s *Store) nextIDPath() string {
	return filepath.Join(s.dir, store.KeyNextID)
}

// writeFileAtomic writes via a temp file and rename so a crash mid-write
// leaves the previous value intact.
func writeFileAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
