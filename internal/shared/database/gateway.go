package database

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/betrhq/betr/go-data-server/internal/config"
	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
	"github.com/betrhq/betr/go-data-server/internal/tabular"

	"gorm.io/gorm"
)

// Gateway runs raw table and database operations. It holds no business logic.
type Gateway struct {
	db     *gorm.DB
	policy config.CreateDatabasePolicy
	log    *slog.Logger
}

// NewGateway creates a gateway over the given session handle
func NewGateway(db *gorm.DB, policy config.CreateDatabasePolicy, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{
		db:     db,
		policy: policy,
		log:    log.With("component", "gateway"),
	}
}

// Gateway returns a gateway over this connection
func (db *DB) Gateway(policy config.CreateDatabasePolicy) *Gateway {
	return NewGateway(db.DB, policy, db.log)
}

// CreateDatabase issues CREATE DATABASE. An existing database is a conflict unless the
// gateway policy is CreateDatabaseIgnore.
func (g *Gateway) CreateDatabase(ctx context.Context, name string) error {
	if err := ValidateIdentifier(name); err != nil {
		return fmt.Errorf("create database: %w", err)
	}

	db := g.db.WithContext(ctx)
	dialect := db.Dialector.Name()
	if dialect != "postgres" {
		return fmt.Errorf("create database %s on %s: %w", name, dialect, sharedError.ErrUnsupported)
	}

	var count int64
	if err := db.Raw("SELECT count(*) FROM pg_database WHERE datname = ?", name).Scan(&count).Error; err != nil {
		return fmt.Errorf("create database %s: lookup: %w: %w", name, sharedError.ErrPersistence, err)
	}

	if count > 0 {
		if g.policy == config.CreateDatabaseIgnore {
			g.log.InfoContext(ctx, "데이터베이스가 이미 존재합니다", "database", name)
			return nil
		}
		return fmt.Errorf("create database %s: already exists: %w", name, sharedError.ErrConflict)
	}

	if err := db.Exec("CREATE DATABASE " + g.quote(name)).Error; err != nil {
		return fmt.Errorf("create database %s: %w: %w", name, sharedError.ErrPersistence, err)
	}

	g.log.InfoContext(ctx, "데이터베이스 생성 완료", "database", name)
	return nil
}

// CreateTable creates name with the given columns in order. Creating a table that
// already exists is a conflict.
func (g *Gateway) CreateTable(ctx context.Context, name string, columns []ColumnSpec) (*TableHandle, error) {
	if err := ValidateIdentifier(name); err != nil {
		return nil, fmt.Errorf("create table: %w", err)
	}
	if err := validateSpecs(columns); err != nil {
		return nil, fmt.Errorf("create table %s: %w", name, err)
	}

	db := g.db.WithContext(ctx)
	if db.Migrator().HasTable(name) {
		return nil, fmt.Errorf("create table %s: already exists: %w", name, sharedError.ErrConflict)
	}

	ddl, handle := g.createTableSQL(db, name, columns)
	if err := db.Exec(ddl).Error; err != nil {
		return nil, fmt.Errorf("create table %s: %w: %w", name, sharedError.ErrPersistence, err)
	}

	g.log.InfoContext(ctx, "테이블 생성 완료", "table", name, "columns", len(columns))
	return handle, nil
}

func (g *Gateway) createTableSQL(db *gorm.DB, name string, columns []ColumnSpec) (string, *TableHandle) {
	dialect := db.Dialector.Name()
	handle := &TableHandle{Name: name, Columns: make([]ColumnInfo, 0, len(columns))}

	var sb strings.Builder
	sb.WriteString("CREATE TABLE ")
	sb.WriteString(g.quote(name))
	sb.WriteString(" (")

	var primaryKeys []string
	for i, c := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}

		dataType := db.Dialector.DataTypeOf(c.field(dialect))
		sb.WriteString(g.quote(c.Name))
		sb.WriteString(" ")
		sb.WriteString(dataType)
		if c.PrimaryKey {
			primaryKeys = append(primaryKeys, g.quote(c.Name))
		} else if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}

		handle.Columns = append(handle.Columns, ColumnInfo{
			Name:         c.Name,
			DatabaseType: dataType,
			PrimaryKey:   c.PrimaryKey,
			Nullable:     c.Nullable && !c.PrimaryKey,
		})
	}

	if len(primaryKeys) > 0 {
		sb.WriteString(", PRIMARY KEY (")
		sb.WriteString(strings.Join(primaryKeys, ", "))
		sb.WriteString(")")
	}
	sb.WriteString(")")

	return sb.String(), handle
}

// DropTable removes the table. A missing table is ErrNotFound.
func (g *Gateway) DropTable(ctx context.Context, name string) error {
	if err := ValidateIdentifier(name); err != nil {
		return fmt.Errorf("drop table: %w", err)
	}

	db := g.db.WithContext(ctx)
	if !db.Migrator().HasTable(name) {
		return fmt.Errorf("drop table %s: %w", name, sharedError.ErrNotFound)
	}

	if err := db.Migrator().DropTable(name); err != nil {
		return fmt.Errorf("drop table %s: %w: %w", name, sharedError.ErrPersistence, err)
	}

	g.log.InfoContext(ctx, "테이블 삭제 완료", "table", name)
	return nil
}

// ReflectTable reads the schema of an existing table from the live database.
func (g *Gateway) ReflectTable(ctx context.Context, name string) (*TableHandle, error) {
	if err := ValidateIdentifier(name); err != nil {
		return nil, fmt.Errorf("reflect table: %w", err)
	}

	db := g.db.WithContext(ctx)
	if !db.Migrator().HasTable(name) {
		return nil, fmt.Errorf("reflect table %s: %w", name, sharedError.ErrNotFound)
	}

	columnTypes, err := db.Migrator().ColumnTypes(name)
	if err != nil {
		return nil, fmt.Errorf("reflect table %s: %w: %w", name, sharedError.ErrPersistence, err)
	}

	handle := &TableHandle{Name: name, Columns: make([]ColumnInfo, 0, len(columnTypes))}
	for _, ct := range columnTypes {
		primaryKey, _ := ct.PrimaryKey()
		nullable, ok := ct.Nullable()
		if !ok {
			nullable = !primaryKey
		}
		handle.Columns = append(handle.Columns, ColumnInfo{
			Name:         ct.Name(),
			DatabaseType: ct.DatabaseTypeName(),
			PrimaryKey:   primaryKey,
			Nullable:     nullable,
		})
	}
	return handle, nil
}

// HasTable reports whether the table exists, regardless of its row count.
func (g *Gateway) HasTable(ctx context.Context, name string) bool {
	if ValidateIdentifier(name) != nil {
		return false
	}
	return g.db.WithContext(ctx).Migrator().HasTable(name)
}

// SelectAll runs an unfiltered SELECT * without pagination.
// Callers must bound the table size.
func (g *Gateway) SelectAll(ctx context.Context, name string) ([]map[string]any, error) {
	return g.selectRows(ctx, name, -1)
}

// TableHasRows reports whether the table holds at least one row. A missing table is
// ErrNotFound rather than false.
func (g *Gateway) TableHasRows(ctx context.Context, name string) (bool, error) {
	rows, err := g.selectRows(ctx, name, 1)
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}

// SelectFrame loads the whole table into a frame, keeping the driver's column order.
func (g *Gateway) SelectFrame(ctx context.Context, name string) (*tabular.Frame, error) {
	if err := ValidateIdentifier(name); err != nil {
		return nil, fmt.Errorf("select %s: %w", name, err)
	}

	db := g.db.WithContext(ctx)
	if !db.Migrator().HasTable(name) {
		return nil, fmt.Errorf("select %s: %w", name, sharedError.ErrNotFound)
	}

	rows, err := db.Table(name).Rows()
	if err != nil {
		return nil, Wrap("select "+name, err)
	}
	defer rows.Close()

	frame, err := tabular.FromRows(rows)
	if err != nil {
		return nil, Wrap("select "+name, err)
	}
	return frame, nil
}

func (g *Gateway) selectRows(ctx context.Context, name string, limit int) ([]map[string]any, error) {
	if err := ValidateIdentifier(name); err != nil {
		return nil, fmt.Errorf("select %s: %w", name, err)
	}

	db := g.db.WithContext(ctx)
	if !db.Migrator().HasTable(name) {
		return nil, fmt.Errorf("select %s: %w", name, sharedError.ErrNotFound)
	}

	query := db.Table(name)
	if limit > 0 {
		query = query.Limit(limit)
	}

	rows := []map[string]any{}
	if err := query.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("select %s: %w: %w", name, sharedError.ErrPersistence, err)
	}
	return rows, nil
}

func (g *Gateway) quote(name string) string {
	var sb strings.Builder
	g.db.Dialector.QuoteTo(&sb, name)
	return sb.String()
}
