package core

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind distinguishes money coming in from money going out.
	Kind string

	Date struct {
		time.Time
	}

	// Draft is a caller-supplied payload for a transaction that has not been
	// assigned an id yet.
	Draft struct {
		Amount   Money
		Kind     Kind
		Category string
		Date     Date
		Note     string
	}

	// Transaction is immutable once created; there is no edit operation,
	// only create and delete.
	Transaction struct {
		ID       int64  `json:"id"`
		Amount   Money  `json:"amount"`
		Kind     Kind   `json:"type"`
		Category string `json:"category"`
		Date     Date   `json:"date"`
		Note     string `json:"note,omitempty"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidDate   = errors.New("invalid date")
	ErrEmptyCategory = errors.New("empty category")
)

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a calendar date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t}, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Before reports whether d falls on an earlier calendar day than other.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// After reports whether d falls on a later calendar day than other.
func (d Date) After(other Date) bool {
	return d.Time.After(other.Time)
}

// MarshalJSON encodes the date as a YYYY-MM-DD string, the format the
// persisted layout uses.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return ErrInvalidDate
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Validate checks a draft the way the form layer is expected to before
// handing it to the store. The store itself accepts drafts as-is.
func (dr Draft) Validate() error {
	if err := dr.Kind.Validate(); err != nil {
		return err
	}
	if err := dr.Date.Validate(); err != nil {
		return err
	}
	if dr.Amount.Cents < 0 {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(dr.Category) == "" {
		return ErrEmptyCategory
	}
	if len(dr.Note) > 200 {
		return errors.New("note too long (max 200 characters)")
	}
	return nil
}
