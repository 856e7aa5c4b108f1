package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tally/internal/core"
)

// ErrCorrupt marks persisted data that cannot be decoded. Callers are
// expected to fall back to an empty ledger rather than fail.
var ErrCorrupt = errors.New("corrupt persisted data")

// EncodeSnapshot serializes a snapshot into the two persisted values:
// the transaction list as a JSON array and the next id as a decimal string.
func EncodeSnapshot(snap Snapshot) (transactions []byte, nextID string, err error) {
	txs := snap.Transactions
	if txs == nil {
		txs = []core.Transaction{}
	}
	transactions, err = json.Marshal(txs)
	if err != nil {
		return nil, "", fmt.Errorf("encode transactions: %w", err)
	}
	return transactions, strconv.FormatInt(snap.NextID, 10), nil
}

// DecodeSnapshot parses the two persisted values back into a snapshot.
// Any parse failure is reported as ErrCorrupt. A next id that fell behind
// the stored transactions is repaired so id allocation stays monotonic.
func DecodeSnapshot(transactions []byte, nextID string) (Snapshot, error) {
	var txs []core.Transaction
	if err := json.Unmarshal(transactions, &txs); err != nil {
		return Snapshot{}, fmt.Errorf("%w: transactions: %v", ErrCorrupt, err)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(nextID), 10, 64)
	if err != nil {
		return Snapshot{}, fmt.Errorf("%w: next id %q", ErrCorrupt, nextID)
	}
	var maxID int64
	for _, tx := range txs {
		if tx.ID > maxID {
			maxID = tx.ID
		}
	}
	if n <= maxID {
		n = maxID + 1
	}
	if n < 1 {
		n = 1
	}
	return Snapshot{Transactions: txs, NextID: n}, nil
}
