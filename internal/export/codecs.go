package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

var csvHeader = []string{"type", "amount", "date", "category", "note"}

type CSVEncoder struct{}

func (CSVEncoder) EncodeRows(rows []Row) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Type, r.Amount, r.Date, r.Category, r.Note}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type CSVImporter struct{}

func (CSVImporter) parse(data []byte) ([]Row, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	out := make([]Row, 0, len(records))
	for i, rec := range records {
		if i == 0 && len(rec) > 0 && rec[0] == csvHeader[0] {
			continue // header
		}
		if len(rec) < 4 {
			continue
		}
		row := Row{Type: rec[0], Amount: rec[1], Date: rec[2], Category: rec[3]}
		if len(rec) > 4 {
			row.Note = rec[4]
		}
		out = append(out, row)
	}
	return out, nil
}

type JSONEncoder struct{}

func (JSONEncoder) EncodeRows(rows []Row) ([]byte, error) {
	return json.MarshalIndent(rows, "", "  ")
}

type JSONImporter struct{}

func (JSONImporter) parse(data []byte) ([]Row, error) {
	var rows []Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return rows, nil
}

type YAMLEncoder struct{}

func (YAMLEncoder) EncodeRows(rows []Row) ([]byte, error) {
	return yaml.Marshal(rows)
}

type YAMLImporter struct{}

func (YAMLImporter) parse(data []byte) ([]Row, error) {
	var rows []Row
	if err := yaml.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return rows, nil
}
