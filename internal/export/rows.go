// Package export serializes the full ledger to portable row formats (CSV,
// JSON, YAML) and parses the same formats back into drafts for import.
package export

import (
	"fmt"
	"strings"

	"tally/internal/core"
)

// Row is the flat interchange record: type,amount,date,category,note.
// Amounts travel as fixed two-decimal strings, dates as YYYY-MM-DD.
type Row struct {
	Type     string `json:"type" yaml:"type"`
	Amount   string `json:"amount" yaml:"amount"`
	Date     string `json:"date" yaml:"date"`
	Category string `json:"category" yaml:"category"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Format names a supported interchange format.
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat resolves a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case CSV:
		return CSV, nil
	case JSON:
		return JSON, nil
	case YAML, "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unsupported format %q", s)
	}
}

// ContentType returns the MIME type to serve the format with.
func (f Format) ContentType() string {
	switch f {
	case JSON:
		return "application/json"
	case YAML:
		return "application/yaml"
	default:
		return "text/csv"
	}
}

// RowsFromTransactions flattens transactions into interchange rows,
// preserving order. Ids are deliberately not exported; an import allocates
// fresh ones.
func RowsFromTransactions(txs []core.Transaction) []Row {
	out := make([]Row, 0, len(txs))
	for _, tx := range txs {
		out = append(out, Row{
			Type:     string(tx.Kind),
			Amount:   tx.Amount.Decimal(),
			Date:     tx.Date.String(),
			Category: tx.Category,
			Note:     tx.Note,
		})
	}
	return out
}

// Draft converts a row back into a store draft.
func (r Row) Draft() (core.Draft, error) {
	kind := core.Kind(strings.ToLower(strings.TrimSpace(r.Type)))
	if err := kind.Validate(); err != nil {
		return core.Draft{}, err
	}
	cents, err := core.ParseAmountCents(r.Amount)
	if err != nil {
		return core.Draft{}, err
	}
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Draft{}, err
	}
	return core.Draft{
		Amount:   core.Money{Cents: cents},
		Kind:     kind,
		Category: r.Category,
		Date:     date,
		Note:     r.Note,
	}, nil
}

// Encode renders the transactions in the requested format.
func Encode(f Format, txs []core.Transaction) ([]byte, error) {
	rows := RowsFromTransactions(txs)
	switch f {
	case JSON:
		return JSONEncoder{}.EncodeRows(rows)
	case YAML:
		return YAMLEncoder{}.EncodeRows(rows)
	default:
		return CSVEncoder{}.EncodeRows(rows)
	}
}

// Decode parses rows in the requested format into drafts. Rows that fail to
// parse are skipped rather than aborting the whole import.
func Decode(f Format, data []byte) ([]core.Draft, error) {
	var (
		rows []Row
		err  error
	)
	switch f {
	case JSON:
		rows, err = JSONImporter{}.parse(data)
	case YAML:
		rows, err = YAMLImporter{}.parse(data)
	default:
		rows, err = CSVImporter{}.parse(data)
	}
	if err != nil {
		return nil, err
	}
	out := make([]core.Draft, 0, len(rows))
	for _, r := range rows {
		draft, err := r.Draft()
		if err != nil {
			continue
		}
		out = append(out, draft)
	}
	return out, nil
}
