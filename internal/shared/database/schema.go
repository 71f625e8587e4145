package database

import (
	"fmt"
	"regexp"

	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"

	"gorm.io/gorm/schema"
)

// ColumnType is a dialect independent column type.
type ColumnType string

const (
	Integer   ColumnType = "integer"
	BigInt    ColumnType = "bigint"
	Float     ColumnType = "float"
	Boolean   ColumnType = "boolean"
	String    ColumnType = "string" // sized, defaults to 255
	Text      ColumnType = "text"
	Timestamp ColumnType = "timestamp"
	Bytes     ColumnType = "bytes"
)

// ColumnSpec describes one column of a table to create.
type ColumnSpec struct {
	Name       string     `json:"name"`
	Type       ColumnType `json:"type"`
	Size       int        `json:"size,omitempty"`
	PrimaryKey bool       `json:"primaryKey"`
	Nullable   bool       `json:"nullable"`
}

// TableHandle describes the schema of a table, without row data.
type TableHandle struct {
	Name    string       `json:"name"`
	Columns []ColumnInfo `json:"columns"`
}

// ColumnInfo is one column of a TableHandle.
type ColumnInfo struct {
	Name         string `json:"name"`
	DatabaseType string `json:"databaseType"`
	PrimaryKey   bool   `json:"primaryKey"`
	Nullable     bool   `json:"nullable"`
}

// Column returns the named column.
func (h *TableHandle) Column(name string) (ColumnInfo, bool) {
	for _, c := range h.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return ColumnInfo{}, false
}

// ColumnNames returns the column names in table order.
func (h *TableHandle) ColumnNames() []string {
	names := make([]string, 0, len(h.Columns))
	for _, c := range h.Columns {
		names = append(names, c.Name)
	}
	return names
}

var identifierRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier rejects table and column names that would need raw SQL quoting tricks.
func ValidateIdentifier(name string) error {
	if !identifierRegexp.MatchString(name) {
		return fmt.Errorf("invalid identifier %q: %w", name, sharedError.ErrValidation)
	}
	return nil
}

// field converts the spec into a GORM schema field so the dialector can render the type.
// SQLite gets no AUTOINCREMENT flag: an INTEGER primary key already aliases the rowid.
func (c ColumnSpec) field(dialect string) *schema.Field {
	f := &schema.Field{
		Name:       c.Name,
		DBName:     c.Name,
		PrimaryKey: c.PrimaryKey,
		NotNull:    !c.Nullable,
	}

	switch c.Type {
	case Integer:
		f.DataType, f.Size = schema.Int, 32
	case BigInt:
		f.DataType, f.Size = schema.Int, 64
	case Float:
		f.DataType, f.Size = schema.Float, 64
	case Boolean:
		f.DataType = schema.Bool
	case String:
		f.DataType, f.Size = schema.String, c.Size
		if f.Size == 0 {
			f.Size = 255
		}
	case Text:
		f.DataType = schema.String
	case Timestamp:
		f.DataType = schema.Time
	case Bytes:
		f.DataType = schema.Bytes
	}

	if c.PrimaryKey && f.DataType == schema.Int && dialect != "sqlite" {
		f.AutoIncrement = true
	}
	return f
}

func validateSpecs(columns []ColumnSpec) error {
	if len(columns) == 0 {
		return fmt.Errorf("no columns: %w", sharedError.ErrValidation)
	}

	seen := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		if err := ValidateIdentifier(c.Name); err != nil {
			return err
		}
		if _, dup := seen[c.Name]; dup {
			return fmt.Errorf("duplicate column %q: %w", c.Name, sharedError.ErrValidation)
		}
		seen[c.Name] = struct{}{}

		switch c.Type {
		case Integer, BigInt, Float, Boolean, String, Text, Timestamp, Bytes:
		default:
			return fmt.Errorf("column %q: unknown type %q: %w", c.Name, c.Type, sharedError.ErrValidation)
		}
	}
	return nil
}
