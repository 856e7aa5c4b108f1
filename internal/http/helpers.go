package http

import (
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tally/internal/core"
)

// parseYearMonth extracts the month cursor from query parameters.
// Returns current year/month as defaults if not provided or invalid.
func parseYearMonth(r *http.Request) (year, month int) {
	now := time.Now()
	year = now.Year()
	month = int(now.Month())

	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			month = m
		}
	}
	return year, month
}

// parseKindFilter maps the type filter parameter onto a Kind, where anything
// unknown means "all".
func parseKindFilter(v string) core.Kind {
	kind := core.Kind(strings.ToLower(strings.TrimSpace(v)))
	if kind.Validate() != nil {
		return ""
	}
	return kind
}

// shiftMonth moves the month cursor by delta months.
func shiftMonth(year, month, delta int) (int, int) {
	t := time.Date(year, time.Month(month+delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), int(t.Month())
}

func monthLabel(year, month int) string {
	return time.Month(month).String() + " " + strconv.Itoa(year)
}

// ledgerChangedTrigger builds the HX-Trigger payload emitted after mutations.
func ledgerChangedTrigger(year, month int) string {
	return `{"ledger:changed": {"year": ` + strconv.Itoa(year) + `, "month": ` + strconv.Itoa(month) + `}}`
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func filenameExt(name string) string {
	return filepath.Ext(filepath.Base(name))
}
