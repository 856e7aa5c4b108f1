// Package query derives filtered views and aggregate totals from the
// transaction sequence. Everything here is a pure function recomputed from
// scratch per render; a single user's history is small enough that no
// incremental indexing is needed.
package query

import (
	"sort"
	"time"

	"tally/internal/core"
)

// Filter is the transient view state: the month cursor plus the type and
// category filters. A zero Kind or empty Category means "all".
type Filter struct {
	Year     int
	Month    int
	Kind     core.Kind
	Category string
}

// Totals aggregates a filtered set. Balance is always Income minus Expenses;
// an empty set yields all zeros.
type Totals struct {
	Income   core.Money
	Expenses core.Money
	Balance  core.Money
}

// MonthWindow returns the first and last calendar day of the cursor's month.
// Day zero of the following month resolves to the last day, which covers
// varying month lengths and leap years.
func MonthWindow(year, month int) (start, end core.Date) {
	start = core.NewDate(year, month, 1)
	end = core.Date{Time: time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)}
	return start, end
}

// Apply returns the transactions inside the filter's month window whose kind
// and category match, preserving input order.
func Apply(txs []core.Transaction, f Filter) []core.Transaction {
	start, end := MonthWindow(f.Year, f.Month)
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if tx.Date.Before(start) || tx.Date.After(end) {
			continue
		}
		if f.Kind != "" && tx.Kind != f.Kind {
			continue
		}
		if f.Category != "" && tx.Category != f.Category {
			continue
		}
		out = append(out, tx)
	}
	return out
}

// Sum computes the totals over a (typically already filtered) set.
func Sum(txs []core.Transaction) Totals {
	var t Totals
	for _, tx := range txs {
		switch tx.Kind {
		case core.Income:
			t.Income.Cents += tx.Amount.Cents
		case core.Expense:
			t.Expenses.Cents += tx.Amount.Cents
		}
	}
	t.Balance.Cents = t.Income.Cents - t.Expenses.Cents
	return t
}

// Categories returns the distinct category values across the entire store,
// sorted lexicographically. The whole store is scanned, not the current
// month, so the filter options always cover every referenced category.
func Categories(txs []core.Transaction) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(txs))
	for _, tx := range txs {
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}
	sort.Strings(out)
	return out
}

// SelectCategory preserves the currently selected category filter across a
// repopulation of the options: if the selection no longer exists it resets
// to "all" (the empty value).
func SelectCategory(available []string, selected string) string {
	for _, c := range available {
		if c == selected {
			return selected
		}
	}
	return ""
}
