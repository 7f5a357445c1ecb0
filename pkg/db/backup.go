// pkg/db/backup.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
)

const busyRetryInterval = 10 * time.Millisecond

// Backup copies the live database into destPath with SQLite's online backup
// API. Pages are copied from a consistent read snapshot, so writers are not
// locked out and the copy is never torn.
func Backup(ctx context.Context, src *sqlx.DB, destPath string) error {
	dst, err := sql.Open(DriverName, destPath)
	if err != nil {
		return fmt.Errorf("backup: failed to open destination: %w", err)
	}
	defer dst.Close()

	dstConn, err := dst.Conn(ctx)
	if err != nil {
		return fmt.Errorf("backup: failed to connect destination: %w", err)
	}
	defer dstConn.Close()

	srcConn, err := src.Conn(ctx)
	if err != nil {
		return fmt.Errorf("backup: failed to acquire source connection: %w", err)
	}
	defer srcConn.Close()

	return dstConn.Raw(func(dstDriver any) error {
		dstSQLite, ok := dstDriver.(*sqlite3.SQLiteConn)
		if !ok {
			return fmt.Errorf("backup: destination is %T, not a SQLite connection", dstDriver)
		}
		return srcConn.Raw(func(srcDriver any) error {
			srcSQLite, ok := srcDriver.(*sqlite3.SQLiteConn)
			if !ok {
				return fmt.Errorf("backup: source is %T, not a SQLite connection", srcDriver)
			}
			return copyPages(dstSQLite, srcSQLite)
		})
	})
}

func copyPages(dst, src *sqlite3.SQLiteConn) error {
	bk, err := dst.Backup("main", src, "main")
	if err != nil {
		return fmt.Errorf("backup: failed to start: %w", err)
	}
	for {
		// Step reports not-done without error while the source is busy.
		done, err := bk.Step(-1)
		if err != nil {
			_ = bk.Finish()
			return fmt.Errorf("backup: failed to copy pages: %w", err)
		}
		if done {
			break
		}
		time.Sleep(busyRetryInterval)
	}
	if err := bk.Finish(); err != nil {
		return fmt.Errorf("backup: failed to finish: %w", err)
	}
	return nil
}

// BackupBytes runs Backup into a temporary file and returns its contents.
// The temporary directory is removed afterwards.
func BackupBytes(ctx context.Context, src *sqlx.DB) ([]byte, error) {
	dir, err := os.MkdirTemp("", "starpoint-backup-*")
	if err != nil {
		return nil, fmt.Errorf("backup: failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "backup.db")
	if err := Backup(ctx, src, path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("backup: failed to read copy: %w", err)
	}
	return data, nil
}
