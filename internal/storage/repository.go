// Package storage implements the persistence port on a local SQLite file.
// The ledger's two entries live in a single kv table, so the durable layout
// matches the conceptual key-value store one to one.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"tally/internal/store"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Repository{db: db}, nil
}

func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Save writes both entries in one transaction so a snapshot is never
// half-persisted.
func (r *Repository) Save(ctx context.Context, snap store.Snapshot) error {
	txs, nextID, err := store.EncodeSnapshot(snap)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`
	if _, err := tx.ExecContext(ctx, upsert, store.KeyTransactions, string(txs)); err != nil {
		return fmt.Errorf("upsert transactions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, store.KeyNextID, nextID); err != nil {
		return fmt.Errorf("upsert next id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (r *Repository) Load(ctx context.Context) (store.Snapshot, bool, error) {
	txs, ok, err := r.get(ctx, store.KeyTransactions)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	if !ok {
		return store.Snapshot{}, false, nil
	}
	nextID, _, err := r.get(ctx, store.KeyNextID)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	snap, err := store.DecodeSnapshot([]byte(txs), nextID)
	if err != nil {
		return store.Snapshot{}, false, err
	}
	return snap, true, nil
}

func (r *Repository) get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read %s: %w", key, err)
	}
	return value, true, nil
}
