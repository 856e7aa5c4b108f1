package ledger

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"tally/internal/core"
	"tally/internal/store"
	"tally/internal/store/memory"
)

func draft(kind core.Kind, cents int64, category, date string) core.Draft {
	d, err := core.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return core.Draft{Amount: core.Money{Cents: cents}, Kind: kind, Category: category, Date: d}
}

func TestAddAssignsMonotonicIDs(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New(), nil)

	a := s.Add(ctx, draft(core.Income, 50000, "Salary", "2024-03-01"))
	b := s.Add(ctx, draft(core.Expense, 12050, "Food", "2024-03-15"))
	if a.ID != 1 || b.ID != 2 {
		t.Fatalf("expected ids 1,2, got %d,%d", a.ID, b.ID)
	}

	// Deleting never frees an id for reuse
	if !s.Remove(ctx, b.ID) {
		t.Fatalf("expected removal of id %d", b.ID)
	}
	c := s.Add(ctx, draft(core.Expense, 900, "Transport", "2024-03-16"))
	if c.ID != 3 {
		t.Fatalf("expected id 3 after delete, got %d", c.ID)
	}
	if s.NextID() != 4 {
		t.Fatalf("expected next id 4, got %d", s.NextID())
	}
}

func TestDisplayOrderNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New(), nil)
	s.Add(ctx, draft(core.Income, 100, "A", "2024-01-01"))
	s.Add(ctx, draft(core.Income, 200, "B", "2024-01-02"))
	s.Add(ctx, draft(core.Income, 300, "C", "2024-01-03"))

	txs := s.Transactions()
	if len(txs) != 3 || txs[0].ID != 3 || txs[2].ID != 1 {
		t.Fatalf("expected newest-first order, got %+v", txs)
	}
}

func TestRemoveMissingIsNoOp(t *testing.T) {
	ctx := context.Background()
	s := New(memory.New(), nil)
	for i := 0; i < 3; i++ {
		s.Add(ctx, draft(core.Expense, 100, "A", "2024-01-01"))
	}
	before := s.Transactions()

	if s.Remove(ctx, 9999) {
		t.Fatalf("expected no-op for missing id")
	}
	if !reflect.DeepEqual(s.Transactions(), before) {
		t.Fatalf("store changed by no-op remove")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	adapter := memory.New()

	first := New(adapter, nil)
	first.Add(ctx, draft(core.Income, 50000, "Salary", "2024-03-01"))
	first.Add(ctx, draft(core.Expense, 12050, "Food", "2024-03-15"))
	first.Remove(ctx, 1)

	second := New(adapter, nil)
	if err := second.Load(ctx); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(second.Transactions(), first.Transactions()) {
		t.Fatalf("sequence mismatch after reload")
	}
	if second.NextID() != first.NextID() {
		t.Fatalf("next id mismatch: %d != %d", second.NextID(), first.NextID())
	}
}

func TestLoadFreshStart(t *testing.T) {
	s := New(memory.New(), nil)
	if err := s.Load(context.Background()); err != nil {
		t.Fatalf("fresh load should not error: %v", err)
	}
	if len(s.Transactions()) != 0 || s.NextID() != 1 {
		t.Fatalf("expected empty ledger with next id 1")
	}
}

func TestLoadCorruptResets(t *testing.T) {
	ctx := context.Background()
	adapter := memory.New()
	adapter.Seed(store.KeyTransactions, "not json at all")
	adapter.Seed(store.KeyNextID, "7")

	s := New(adapter, nil)
	err := s.Load(ctx)
	if !errors.Is(err, store.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt signal, got %v", err)
	}
	if len(s.Transactions()) != 0 || s.NextID() != 1 {
		t.Fatalf("corrupt data must reset to empty ledger with next id 1")
	}
	// The ledger stays usable after the reset
	tx := s.Add(ctx, draft(core.Income, 100, "A", "2024-01-01"))
	if tx.ID != 1 {
		t.Fatalf("expected id 1 after reset, got %d", tx.ID)
	}
}

func TestFlushFailureIsObservableAndNonFatal(t *testing.T) {
	ctx := context.Background()
	adapter := memory.New()
	s := New(adapter, nil)

	adapter.SaveErr = errors.New("disk full")
	tx := s.Add(ctx, draft(core.Expense, 100, "A", "2024-01-01"))
	if tx.ID != 1 {
		t.Fatalf("add must succeed despite flush failure")
	}
	if st := s.LastFlush(); st.OK() || st.At.IsZero() {
		t.Fatalf("expected recorded flush failure, got %+v", st)
	}

	adapter.SaveErr = nil
	if err := s.Flush(ctx); err != nil {
		t.Fatalf("retry flush: %v", err)
	}
	if st := s.LastFlush(); !st.OK() {
		t.Fatalf("expected recovered flush status, got %+v", st)
	}
}
