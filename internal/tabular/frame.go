// Package tabular holds whole-table dumps as rows of named columns, for export and
// bulk validation.
package tabular

import (
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Frame is an in-memory table: Rows[i][j] is the value of Columns[j] in record i.
type Frame struct {
	Columns []string
	Rows    [][]any
}

// New builds a frame from column names and rows. Every row must have one value per column.
func New(columns []string, rows [][]any) (*Frame, error) {
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, want %d", i, len(row), len(columns))
		}
	}
	return &Frame{Columns: columns, Rows: rows}, nil
}

// FromRecords builds a frame from maps keyed by column. Missing keys become nil.
func FromRecords(columns []string, records []map[string]any) *Frame {
	f := &Frame{Columns: columns, Rows: make([][]any, 0, len(records))}
	for _, rec := range records {
		row := make([]any, len(columns))
		for j, col := range columns {
			row[j] = rec[col]
		}
		f.Rows = append(f.Rows, row)
	}
	return f
}

// FromRows drains rows into a frame. The caller still owns rows and must close it.
func FromRows(rows *sql.Rows) (*Frame, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("read columns: %w", err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("read column types: %w", err)
	}

	f := &Frame{Columns: columns}
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row %d: %w", len(f.Rows), err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok && !isBinary(types[i]) {
				values[i] = string(b)
			}
		}
		f.Rows = append(f.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return f, nil
}

func isBinary(ct *sql.ColumnType) bool {
	switch strings.ToUpper(ct.DatabaseTypeName()) {
	case "BLOB", "BYTEA", "RAW", "LONG RAW", "VARBINARY", "BINARY":
		return true
	}
	return false
}

// Len returns the number of records.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// ColumnIndex returns the position of the named column, or -1.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns every value of the named column.
func (f *Frame) Column(name string) ([]any, bool) {
	idx := f.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	values := make([]any, len(f.Rows))
	for i, row := range f.Rows {
		values[i] = row[idx]
	}
	return values, true
}

// Records returns one map per row, keyed by column name.
func (f *Frame) Records() []map[string]any {
	records := make([]map[string]any, len(f.Rows))
	for i, row := range f.Rows {
		rec := make(map[string]any, len(f.Columns))
		for j, col := range f.Columns {
			rec[col] = row[j]
		}
		records[i] = rec
	}
	return records
}

// WriteCSV writes a header line followed by one line per record. nil is written as an
// empty field and times as RFC 3339 with nanoseconds.
func (f *Frame) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(f.Columns); err != nil {
		return err
	}

	line := make([]string, len(f.Columns))
	for _, row := range f.Rows {
		for j, v := range row {
			line[j] = formatValue(v)
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
