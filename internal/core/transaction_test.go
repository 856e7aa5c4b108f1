package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestKindValidate(t *testing.T) {
	if err := Income.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Expense.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if err := Kind("transfer").Validate(); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-15")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != 3 || d.Day() != 15 {
		t.Fatalf("unexpected parts: %v", d)
	}
	if _, err := ParseDate("15/03/2024"); err == nil {
		t.Fatalf("expected error for wrong format")
	}
}

func TestDraftValidate(t *testing.T) {
	good := Draft{
		Amount:   Money{Cents: 100},
		Kind:     Expense,
		Category: "Food",
		Date:     NewDate(2024, 3, 15),
		Note:     "lunch",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Draft{
		{Amount: Money{Cents: 1}, Kind: "other", Category: "c", Date: NewDate(2024, 1, 1)},
		{Amount: Money{Cents: 1}, Kind: Income, Category: "c", Date: Date{Time: time.Time{}}},
		{Amount: Money{Cents: -1}, Kind: Income, Category: "c", Date: NewDate(2024, 1, 1)},
		{Amount: Money{Cents: 1}, Kind: Income, Category: "  ", Date: NewDate(2024, 1, 1)},
		{Amount: Money{Cents: 1}, Kind: Income, Category: "c", Date: NewDate(2024, 1, 1), Note: strings.Repeat("x", 201)},
	}
	for i, d := range bads {
		if err := d.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestTransactionJSON(t *testing.T) {
	tx := Transaction{
		ID:       7,
		Amount:   Money{Cents: 12050},
		Kind:     Expense,
		Category: "Food",
		Date:     NewDate(2024, 3, 15),
	}
	b, err := json.Marshal(tx)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"type":"expense"`) || !strings.Contains(s, `"date":"2024-03-15"`) {
		t.Fatalf("unexpected encoding: %s", s)
	}
	// note is optional and omitted when empty
	if strings.Contains(s, "note") {
		t.Fatalf("empty note should be omitted: %s", s)
	}

	var back Transaction
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back != tx {
		t.Fatalf("round trip mismatch: %+v != %+v", back, tx)
	}
}
