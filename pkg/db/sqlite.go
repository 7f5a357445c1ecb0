// pkg/db/sqlite.go
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// Config holds database connection configuration.
type Config struct {
	Path        string        `env:"STARPOINT_DB" envDefault:"StarPoint.db"`
	BusyTimeout time.Duration `env:"STARPOINT_BUSY_TIMEOUT" envDefault:"5s"`
}

// DSN builds the go-sqlite3 connection string: WAL journal, busy timeout, foreign keys.
func (c Config) DSN() string {
	return fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_foreign_keys=on",
		c.Path, c.BusyTimeout.Milliseconds())
}

// NewSQLiteDB opens the ledger file and verifies the connection.
// A single connection is shared by all in-process callers; SQLite's WAL
// mode lets outside readers proceed while it writes.
func NewSQLiteDB(cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect(DriverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database %s: %w", cfg.Path, err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database %s: %w", cfg.Path, err)
	}

	return db, nil
}

// JournalMode reports the journal mode of the open database ("wal" when configured correctly).
func JournalMode(ctx context.Context, db sqlx.QueryerContext) (string, error) {
	var mode string
	if err := sqlx.GetContext(ctx, db, &mode, "PRAGMA journal_mode"); err != nil {
		return "", fmt.Errorf("failed to read journal mode: %w", err)
	}
	return mode, nil
}
