package kvfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"tally/internal/core"
	"tally/internal/store"
)

func TestLoadFreshStart(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, found, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if found {
		t.Fatalf("expected no prior data")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	snap := store.Snapshot{
		Transactions: []core.Transaction{
			{ID: 1, Amount: core.Money{Cents: 50000}, Kind: core.Income, Category: "Salary", Date: core.NewDate(2024, 3, 1)},
		},
		NextID: 2,
	}
	if err := s.Save(context.Background(), snap); err != nil {
		t.Fatalf("save: %v", err)
	}
	back, found, err := s.Load(context.Background())
	if err != nil || !found {
		t.Fatalf("load: found=%v err=%v", found, err)
	}
	if !reflect.DeepEqual(back, snap) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", back, snap)
	}
}

func TestLoadCorruptBlob(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "transactions.json"), []byte("{{{"), 0644); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_, _, err = s.Load(context.Background())
	if !errors.Is(err, store.ErrCorrupt) {
		t.Fatalf("expected ErrCorrupt, got %v", err)
	}
}
