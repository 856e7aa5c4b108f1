package store

import (
	"errors"
	"reflect"
	"testing"

	"tally/internal/core"
)

func TestSnapshotRoundTrip(t *testing.T) {
	snap := Snapshot{
		Transactions: []core.Transaction{
			{ID: 2, Amount: core.Money{Cents: 12050}, Kind: core.Expense, Category: "Food", Date: core.NewDate(2024, 3, 15), Note: "lunch"},
			{ID: 1, Amount: core.Money{Cents: 50000}, Kind: core.Income, Category: "Salary", Date: core.NewDate(2024, 3, 1)},
		},
		NextID: 3,
	}
	txs, nextID, err := EncodeSnapshot(snap)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if nextID != "3" {
		t.Fatalf("expected next id \"3\", got %q", nextID)
	}
	back, err := DecodeSnapshot(txs, nextID)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(back, snap) {
		t.Fatalf("round trip mismatch:\n%+v\n%+v", back, snap)
	}
}

func TestEncodeEmptySnapshot(t *testing.T) {
	txs, nextID, err := EncodeSnapshot(Snapshot{NextID: 1})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if string(txs) != "[]" || nextID != "1" {
		t.Fatalf("unexpected encoding: %s / %s", txs, nextID)
	}
}

func TestDecodeCorrupt(t *testing.T) {
	cases := []struct {
		name   string
		txs    string
		nextID string
	}{
		{"garbage transactions", "{not json", "1"},
		{"wrong shape", `{"a":1}`, "1"},
		{"garbage next id", "[]", "soon"},
		{"empty next id", "[]", ""},
	}
	for _, tc := range cases {
		if _, err := DecodeSnapshot([]byte(tc.txs), tc.nextID); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: expected ErrCorrupt, got %v", tc.name, err)
		}
	}
}

func TestDecodeRepairsNextID(t *testing.T) {
	txs := []byte(`[{"id":9,"amount":5,"type":"income","category":"Salary","date":"2024-01-01"}]`)
	snap, err := DecodeSnapshot(txs, "3")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.NextID != 10 {
		t.Fatalf("expected repaired next id 10, got %d", snap.NextID)
	}

	snap, err = DecodeSnapshot([]byte("[]"), "0")
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if snap.NextID != 1 {
		t.Fatalf("expected floor of 1, got %d", snap.NextID)
	}
}
