// Package ledger owns the canonical in-memory transaction sequence and the
// monotonic id counter. Persistence is fire-and-forget after every mutation;
// the in-memory state stays the source of truth for the session no matter
// what the adapter reports.
package ledger

import (
	"context"
	"sync"
	"time"

	"tally/internal/core"
	"tally/internal/log"
	"tally/internal/store"
)

// FlushStatus is the outcome of the most recent persistence flush. A failed
// flush is not an operation error, but callers can surface it.
type FlushStatus struct {
	Err error
	At  time.Time
}

func (fs FlushStatus) OK() bool {
	return fs.Err == nil
}

type Store struct {
	mu        sync.Mutex
	adapter   store.Adapter
	logger    *log.Logger
	txs       []core.Transaction
	nextID    int64
	lastFlush FlushStatus
}

func New(adapter store.Adapter, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(log.Config{})
	}
	return &Store{
		adapter: adapter,
		logger:  logger.WithComponent(log.ComponentLedger),
		nextID:  1,
	}
}

// Load replaces the whole sequence and counter from the adapter. Absent and
// corrupt data both reset to an empty ledger with the counter at 1; the
// returned error reports the latter so callers can log it, never to abort.
func (s *Store) Load(ctx context.Context) error {
	snap, found, err := s.adapter.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case err != nil:
		s.logger.WarnContext(ctx, "Persisted data unusable, starting empty",
			log.FieldOperation, log.OpLoad, log.FieldError, err)
		s.txs = nil
		s.nextID = 1
	case !found:
		s.logger.InfoContext(ctx, "No persisted data, starting empty",
			log.FieldOperation, log.OpLoad)
		s.txs = nil
		s.nextID = 1
	default:
		s.txs = snap.Transactions
		s.nextID = snap.NextID
		s.logger.InfoContext(ctx, "Ledger loaded",
			log.FieldOperation, log.OpLoad, log.FieldCount, len(s.txs))
	}
	return err
}

// Add constructs a transaction from the draft with a freshly allocated id,
// prepends it so iteration order stays newest-first, and flushes. The draft
// is taken as the caller validated it; the store does not re-check it.
func (s *Store) Add(ctx context.Context, draft core.Draft) core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := core.Transaction{
		ID:       s.nextID,
		Amount:   draft.Amount,
		Kind:     draft.Kind,
		Category: draft.Category,
		Date:     draft.Date,
		Note:     draft.Note,
	}
	s.nextID++
	s.txs = append([]core.Transaction{tx}, s.txs...)
	s.flushLocked(ctx)

	s.logger.InfoContext(ctx, "Transaction added",
		log.FieldOperation, log.OpAdd,
		log.FieldTransactionID, tx.ID,
		log.FieldKind, string(tx.Kind),
		log.FieldCategory, tx.Category,
		log.FieldAmountCents, tx.Amount.Cents)
	return tx
}

// Remove deletes the transaction with the given id. A missing id is a
// silent no-op; the return value only reports whether anything changed.
func (s *Store) Remove(ctx context.Context, id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, tx := range s.txs {
		if tx.ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			s.flushLocked(ctx)
			s.logger.InfoContext(ctx, "Transaction removed",
				log.FieldOperation, log.OpRemove, log.FieldTransactionID, id)
			return true
		}
	}
	return false
}

// Flush persists the current state. Mutations flush on their own; this is
// for callers that want to retry after a degraded period.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flushLocked(ctx)
	return s.lastFlush.Err
}

// Transactions returns a copy of the sequence in display order
// (newest insert first).
func (s *Store) Transactions() []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out
}

func (s *Store) NextID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.nextID
}

// LastFlush reports the outcome of the most recent flush, so degraded
// persistence is observable instead of living only in the logs.
func (s *Store) LastFlush() FlushStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastFlush
}

func (s *Store) flushLocked(ctx context.Context) {
	txs := make([]core.Transaction, len(s.txs))
	copy(txs, s.txs)
	err := s.adapter.Save(ctx, store.Snapshot{Transactions: txs, NextID: s.nextID})
	s.lastFlush = FlushStatus{Err: err, At: time.Now()}
	if err != nil {
		s.logger.WarnContext(ctx, "Flush failed, continuing in-memory only",
			log.FieldOperation, log.OpFlush, log.FieldError, err)
	}
}
