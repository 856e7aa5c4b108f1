// Package store defines the persistence port for the ledger and the wire
// codec shared by its adapters.
package store

import (
	"context"

	"tally/internal/core"
)

// Keys of the two entries every adapter persists.
const (
	KeyTransactions = "transactions"
	KeyNextID       = "next_id"
)

// Snapshot is the full persisted state: the transaction sequence in display
// order plus the next identifier to hand out.
type Snapshot struct {
	Transactions []core.Transaction
	NextID       int64
}

// Adapter is the outbound port the ledger flushes to and loads from.
//
// Load distinguishes three outcomes: no prior data (found=false, err=nil),
// valid prior data (found=true, err=nil), and unreadable or corrupt data
// (err != nil). The ledger treats the last the same as the first.
type Adapter interface {
	Save(ctx context.Context, snap Snapshot) error
	Load(ctx context.Context) (snap Snapshot, found bool, err error)
}
