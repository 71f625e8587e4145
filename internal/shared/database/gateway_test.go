package database_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/betrhq/betr/go-data-server/internal/config"
	"github.com/betrhq/betr/go-data-server/internal/shared/database"
	sharedError "github.com/betrhq/betr/go-data-server/internal/shared/error"
	"github.com/betrhq/betr/go-data-server/internal/shared/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var fixtureColumns = []database.ColumnSpec{
	{Name: "id", Type: database.BigInt, PrimaryKey: true},
	{Name: "home", Type: database.String, Size: 100},
	{Name: "away", Type: database.String, Size: 100},
	{Name: "kickoff", Type: database.Timestamp, Nullable: true},
}

func setupGateway(t *testing.T) (*database.DB, *database.Gateway) {
	t.Helper()

	cfg := testutil.NewTestConfig(t)
	db := testutil.SetupTestDB(t, cfg)
	return db, db.Gateway(cfg.Database.CreateDatabasePolicy)
}

func TestCreateTable_ThenReflect(t *testing.T) {
	_, gateway := setupGateway(t)
	ctx := context.Background()

	handle, err := gateway.CreateTable(ctx, "fixture", fixtureColumns)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "home", "away", "kickoff"}, handle.ColumnNames())

	reflected, err := gateway.ReflectTable(ctx, "fixture")
	require.NoError(t, err)
	assert.Equal(t, "fixture", reflected.Name)
	assert.Equal(t, handle.ColumnNames(), reflected.ColumnNames())

	id, ok := reflected.Column("id")
	require.True(t, ok)
	assert.True(t, id.PrimaryKey)

	kickoff, ok := reflected.Column("kickoff")
	require.True(t, ok)
	assert.True(t, kickoff.Nullable)
}

func TestCreateTable_AlreadyExists(t *testing.T) {
	_, gateway := setupGateway(t)
	ctx := context.Background()

	_, err := gateway.CreateTable(ctx, "fixture", fixtureColumns)
	require.NoError(t, err)

	_, err = gateway.CreateTable(ctx, "fixture", fixtureColumns)
	assert.ErrorIs(t, err, sharedError.ErrConflict)
}

func TestCreateTable_RejectsBadInput(t *testing.T) {
	_, gateway := setupGateway(t)
	ctx := context.Background()

	testCases := []struct {
		name    string
		table   string
		columns []database.ColumnSpec
	}{
		{name: "Injected table name", table: "fixture; DROP TABLE team", columns: fixtureColumns},
		{name: "No columns", table: "fixture", columns: nil},
		{name: "Duplicate column", table: "fixture", columns: []database.ColumnSpec{
			{Name: "home", Type: database.Text},
			{Name: "home", Type: database.Text},
		}},
		{name: "Unknown type", table: "fixture", columns: []database.ColumnSpec{
			{Name: "home", Type: "varchar2"},
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := gateway.CreateTable(ctx, tc.table, tc.columns)
			assert.ErrorIs(t, err, sharedError.ErrValidation)
		})
	}
}

func TestDropTable(t *testing.T) {
	_, gateway := setupGateway(t)
	ctx := context.Background()

	err := gateway.DropTable(ctx, "fixture")
	assert.ErrorIs(t, err, sharedError.ErrNotFound)

	_, err = gateway.CreateTable(ctx, "fixture", fixtureColumns)
	require.NoError(t, err)
	assert.True(t, gateway.HasTable(ctx, "fixture"))

	require.NoError(t, gateway.DropTable(ctx, "fixture"))
	assert.False(t, gateway.HasTable(ctx, "fixture"))
}

func TestReflectTable_Missing(t *testing.T) {
	_, gateway := setupGateway(t)

	_, err := gateway.ReflectTable(context.Background(), "fixture")

	assert.ErrorIs(t, err, sharedError.ErrNotFound)
}

func TestSelectAll_AndTableHasRows(t *testing.T) {
	// Given: an empty table
	db, gateway := setupGateway(t)
	ctx := context.Background()

	_, err := gateway.CreateTable(ctx, "fixture", fixtureColumns)
	require.NoError(t, err)

	// Then: it exists but holds no rows
	hasRows, err := gateway.TableHasRows(ctx, "fixture")
	require.NoError(t, err)
	assert.False(t, hasRows)

	rows, err := gateway.SelectAll(ctx, "fixture")
	require.NoError(t, err)
	assert.Empty(t, rows)

	// When: rows are inserted
	require.NoError(t, db.Exec(`INSERT INTO fixture (id, home, away) VALUES (1, 'Celtics', 'Lakers'), (2, 'Bruins', 'Rangers')`).Error)

	// Then: both reads see them
	hasRows, err = gateway.TableHasRows(ctx, "fixture")
	require.NoError(t, err)
	assert.True(t, hasRows)

	rows, err = gateway.SelectAll(ctx, "fixture")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Celtics", rows[0]["home"])

	frame, err := gateway.SelectFrame(ctx, "fixture")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "home", "away", "kickoff"}, frame.Columns)
	assert.Equal(t, 2, frame.Len())
}

func TestSelectAll_MissingTable(t *testing.T) {
	_, gateway := setupGateway(t)
	ctx := context.Background()

	_, err := gateway.SelectAll(ctx, "fixture")
	assert.ErrorIs(t, err, sharedError.ErrNotFound)

	_, err = gateway.TableHasRows(ctx, "fixture")
	assert.ErrorIs(t, err, sharedError.ErrNotFound)

	_, err = gateway.SelectFrame(ctx, "fixture")
	assert.ErrorIs(t, err, sharedError.ErrNotFound)
}

func TestCreateDatabase_UnsupportedOnSQLite(t *testing.T) {
	_, gateway := setupGateway(t)

	err := gateway.CreateDatabase(context.Background(), "betr")

	assert.ErrorIs(t, err, sharedError.ErrUnsupported)
}

// setupPostgresMock opens GORM over sqlmock so postgres-only statements can be asserted
func setupPostgresMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	return db, mock
}

var lookupDatabase = regexp.QuoteMeta(`SELECT count(*) FROM pg_database WHERE datname = $1`)

func TestCreateDatabase_Postgres(t *testing.T) {
	testCases := []struct {
		name      string
		policy    config.CreateDatabasePolicy
		existing  int
		expectDDL bool
		wantErr   error
	}{
		{name: "Creates missing database", policy: config.CreateDatabaseError, expectDDL: true},
		{name: "Existing database is a conflict", policy: config.CreateDatabaseError, existing: 1, wantErr: sharedError.ErrConflict},
		{name: "Existing database is ignored", policy: config.CreateDatabaseIgnore, existing: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			db, mock := setupPostgresMock(t)
			gateway := database.NewGateway(db, tc.policy, testutil.NewTestLogger())

			mock.ExpectQuery(lookupDatabase).
				WithArgs("betr").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tc.existing))
			if tc.expectDDL {
				mock.ExpectExec(regexp.QuoteMeta(`CREATE DATABASE "betr"`)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			}

			err := gateway.CreateDatabase(context.Background(), "betr")

			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateDatabase_InvalidName(t *testing.T) {
	db, mock := setupPostgresMock(t)
	gateway := database.NewGateway(db, config.CreateDatabaseError, testutil.NewTestLogger())

	err := gateway.CreateDatabase(context.Background(), `betr"; DROP DATABASE postgres; --`)

	assert.ErrorIs(t, err, sharedError.ErrValidation)
	assert.NoError(t, mock.ExpectationsWereMet())
}
