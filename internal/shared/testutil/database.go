package testutil

import (
	"log/slog"
	"testing"

	"github.com/betrhq/betr/go-data-server/internal/config"
	"github.com/betrhq/betr/go-data-server/internal/shared/database"
)

// NewTestLogger returns a logger that drops everything
func NewTestLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// SetupTestDB opens a SQLite database file in a temp dir and migrates the given entities.
// The connection is closed when the test ends.
func SetupTestDB(t *testing.T, cfg *config.Config, entities ...any) *database.DB {
	t.Helper()

	log := NewTestLogger()
	db, err := database.New(cfg, log)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		CleanupTestDB(t, db)
	})

	if err := database.Migrate(db.DB, cfg, log, entities...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(t *testing.T, db *database.DB) {
	t.Helper()

	if err := db.Close(); err != nil {
		t.Errorf("Failed to close database: %v", err)
	}
}

// TruncateTable truncates a table for test isolation
func TruncateTable(t *testing.T, db *database.DB, tableName string) {
	t.Helper()

	if err := database.ValidateIdentifier(tableName); err != nil {
		t.Fatalf("Invalid table name %s: %v", tableName, err)
	}
	if err := db.Exec("DELETE FROM " + tableName).Error; err != nil {
		t.Fatalf("Failed to truncate table %s: %v", tableName, err)
	}
}
