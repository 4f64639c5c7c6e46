package tracker

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const byteOrderMark = "\ufeff"

// csvTable is a CSV export split into rows addressable by column name.
type csvTable struct {
	kind    Kind
	columns map[string]int
	rows    [][]string
}

// readCSV parses body as a CSV document whose first row names the columns.
// A byte-order mark in front of the first column name is dropped.
func readCSV(kind Kind, body string) (*csvTable, error) {
	r := csv.NewReader(strings.NewReader(body))

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode %s csv: missing header row", kind)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s csv: %w", kind, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, byteOrderMark))
		columns[name] = i
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("decode %s csv: %w", kind, err)
	}
	return &csvTable{kind: kind, columns: columns, rows: rows}, nil
}

// require checks that every named column is present in the header.
func (t *csvTable) require(names ...string) error {
	for _, name := range names {
		if _, ok := t.columns[name]; !ok {
			return &FieldError{Kind: t.kind, Record: -1, Field: name}
		}
	}
	return nil
}

// value returns the cell of row in the named column. The column must have
// been checked with require; the csv reader guarantees equal row widths.
func (t *csvTable) value(row int, name string) string {
	return t.rows[row][t.columns[name]]
}
