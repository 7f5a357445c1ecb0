// pkg/db/migrate.go
package db

import (
	"context"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS deposits (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user        TEXT     NOT NULL,
		amount      REAL     NOT NULL,
		occurred_at DATETIME NOT NULL,
		points      REAL     NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS withdrawals (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		user        TEXT     NOT NULL,
		notified_at DATETIME NOT NULL,
		amount      REAL,
		points      REAL
	)`,
}

// Files written before the NOT NULL constraints may hold entries without a
// timestamp; they are stamped with the current time so reads never see one.
var repairStatements = []string{
	`UPDATE deposits    SET occurred_at = CURRENT_TIMESTAMP WHERE occurred_at IS NULL`,
	`UPDATE withdrawals SET notified_at = CURRENT_TIMESTAMP WHERE notified_at IS NULL`,
}

// Migrate creates the schema and repairs missing timestamps in one transaction.
// It is idempotent and meant to run once when the store is opened.
// It returns the number of repaired rows.
func Migrate(ctx context.Context, dbConn DBTxBeginner) (int64, error) {
	tx, err := dbConn.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("migrate: failed to begin transaction: %w", err)
	}
	defer RollbackTx(tx)

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return 0, fmt.Errorf("migrate: failed to create schema: %w", err)
		}
	}

	var repaired int64
	for _, stmt := range repairStatements {
		res, err := tx.ExecContext(ctx, stmt)
		if err != nil {
			return 0, fmt.Errorf("migrate: failed to repair timestamps: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("migrate: failed to count repaired rows: %w", err)
		}
		repaired += n
	}

	if err := CommitTx(tx); err != nil {
		return 0, fmt.Errorf("migrate: failed to commit: %w", err)
	}
	return repaired, nil
}
