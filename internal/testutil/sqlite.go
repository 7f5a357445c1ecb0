// internal/testutil/sqlite.go
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"starpoint/pkg/db"
)

// NewTestDB opens a migrated ledger file in a per-test temp dir.
func NewTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	return OpenTestDB(t, filepath.Join(t.TempDir(), "starpoint_test.db"))
}

// OpenTestDB opens and migrates the ledger file at path; it is closed on cleanup.
func OpenTestDB(t *testing.T, path string) *sqlx.DB {
	t.Helper()
	database, err := db.NewSQLiteDB(db.Config{Path: path, BusyTimeout: 2 * time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })

	_, err = db.Migrate(context.Background(), database)
	require.NoError(t, err)
	return database
}

// InsertRawDeposit writes a deposit row as-is, bypassing validation and
// normalization, to simulate data written by older versions.
func InsertRawDeposit(t *testing.T, database *sqlx.DB, user string, amount, points float64, at time.Time) {
	t.Helper()
	_, err := database.Exec(`INSERT INTO deposits (user, amount, occurred_at, points) VALUES (?, ?, ?, ?)`,
		user, amount, at.UTC(), points)
	require.NoError(t, err)
}

// InsertRawWithdrawal is InsertRawDeposit for the withdrawal stream; nil amount/points are stored as NULL.
func InsertRawWithdrawal(t *testing.T, database *sqlx.DB, user string, amount, points *float64, at time.Time) {
	t.Helper()
	_, err := database.Exec(`INSERT INTO withdrawals (user, notified_at, amount, points) VALUES (?, ?, ?, ?)`,
		user, at.UTC(), amount, points)
	require.NoError(t, err)
}
