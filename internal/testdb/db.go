//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"
	"github.com/tenantbot/api-registry/internal/platform/postgres"
)

// TestTimeout defines a default timeout for test database operations.
const TestTimeout = 30 * time.Second

// GetTestDatabaseURL returns DATABASE_URL, falling back to
// REGISTRY_TEST_DB_URL. It returns "" when neither is set.
func GetTestDatabaseURL() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	return os.Getenv("REGISTRY_TEST_DB_URL")
}

var (
	migrateOnce sync.Once
	migrateErr  error
)

// Open returns a connection to a migrated test database and registers its
// closing with t.Cleanup. Migrations run once per test binary.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		url = containerURL(t)
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "failed to ping test database")

	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(ctx, db, nil, "up")
	})
	require.NoError(t, migrateErr, "failed to migrate test database")

	return db
}

// WithTx executes fn within a transaction that is rolled back afterwards.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}

// Truncate removes every user, API and endpoint row.
func Truncate(t *testing.T, db *sql.DB) {
	t.Helper()
	_, err := db.Exec(`TRUNCATE endpoints, apis, users RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "failed to truncate tables")
}

// CountRows returns the number of rows in table.
func CountRows(t *testing.T, db *sql.DB, table string) int {
	t.Helper()
	var n int
	// table names come from test code only
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM `+table).Scan(&n))
	return n
}
