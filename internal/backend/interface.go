// Package backend selects and constructs the persistence adapter the ledger
// flushes to, based on configuration.
package backend

import (
	"context"

	"tally/internal/store"
)

// CleanupFunc releases resources held by a backend, if any.
type CleanupFunc func() error

// Result contains the adapter instance and an optional cleanup function.
type Result struct {
	Adapter store.Adapter
	Cleanup CleanupFunc
}

// Factory creates persistence adapters based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// File backend
	DataDir string

	// SQLite backend
	SQLiteDBPath string
}

// Type represents the kind of persistence backend.
type Type string

const (
	MemoryBackend Type = "memory"
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

// String implements fmt.Stringer
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
