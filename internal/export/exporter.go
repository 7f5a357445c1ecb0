// internal/export/exporter.go
package export

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"starpoint/internal/domain"
	"starpoint/internal/repository/sqlite"
	"starpoint/internal/service"
	"starpoint/internal/util"
	"starpoint/pkg/db"
)

// Archive member names.
const (
	DepositsMember    = "cargas.csv"
	WithdrawalsMember = "descargas.csv"
	SummaryMember     = "resumen_actual.csv"
	BackupMember      = "StarPoint_backup.db"
)

// BackupFunc produces a consistent binary copy of the live store.
type BackupFunc func(ctx context.Context) ([]byte, error)

// Exporter renders ledger snapshots. It only reads from the store.
type Exporter struct {
	reports  service.ReportService
	backup   BackupFunc
	location *time.Location
	logger   *slog.Logger
}

// NewExporter creates an Exporter formatting timestamps in loc.
func NewExporter(reports service.ReportService, backup BackupFunc, loc *time.Location, logger *slog.Logger) *Exporter {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{reports: reports, backup: backup, location: loc, logger: logger}
}

// ExportSummary renders the aggregate report as an Excel-friendly CSV.
func (e *Exporter) ExportSummary(ctx context.Context) ([]byte, error) {
	summary, err := e.reports.Summary(ctx)
	if err != nil {
		return nil, fmt.Errorf("export summary: %w", err)
	}
	data, err := summaryTable(summary, e.location)
	if err != nil {
		return nil, fmt.Errorf("export summary: %w", err)
	}
	e.logger.Info("Summary exported", "users", len(summary), "bytes", len(data))
	return data, nil
}

// Backup returns the binary copy of the store on its own.
func (e *Exporter) Backup(ctx context.Context) ([]byte, error) {
	data, err := e.backup(ctx)
	if err != nil {
		return nil, &util.BackupError{Err: err}
	}
	return data, nil
}

// ExportFullSnapshot bundles both streams, the summary and a binary backup
// into a zip. The backup is taken first and the tables are read from that
// copy, so every member describes the same instant. A failed backup fails
// the whole archive.
func (e *Exporter) ExportFullSnapshot(ctx context.Context) ([]byte, error) {
	backup, err := e.Backup(ctx)
	if err != nil {
		e.logger.Error("Online backup failed", "error", err)
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	snapshot, err := snapshotOf(ctx, backup, e.logger)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}

	deposits, err := depositsTable(snapshot.Deposits, e.location)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	withdrawals, err := withdrawalsTable(snapshot.Withdrawals, e.location)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}
	summary, err := summaryTable(snapshot.Summary, e.location)
	if err != nil {
		return nil, fmt.Errorf("export snapshot: %w", err)
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	members := []struct {
		name string
		data []byte
	}{
		{DepositsMember, deposits},
		{WithdrawalsMember, withdrawals},
		{SummaryMember, summary},
		{BackupMember, backup},
	}
	for _, m := range members {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: m.name, Method: zip.Deflate, Modified: time.Now()})
		if err != nil {
			return nil, fmt.Errorf("export snapshot: failed to add %s: %w", m.name, err)
		}
		if _, err := w.Write(m.data); err != nil {
			return nil, fmt.Errorf("export snapshot: failed to write %s: %w", m.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("export snapshot: failed to close archive: %w", err)
	}

	e.logger.Info("Full snapshot exported", "deposits", len(snapshot.Deposits),
		"withdrawals", len(snapshot.Withdrawals), "bytes", buf.Len())
	return buf.Bytes(), nil
}

// snapshotOf opens a backup image in a temporary directory and reads the
// ledger state it holds.
func snapshotOf(ctx context.Context, backup []byte, logger *slog.Logger) (*domain.Snapshot, error) {
	dir, err := os.MkdirTemp("", "starpoint-snapshot-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, BackupMember)
	if err := os.WriteFile(path, backup, 0o600); err != nil {
		return nil, fmt.Errorf("failed to stage backup: %w", err)
	}

	copyDB, err := db.NewSQLiteDB(db.Config{Path: path, BusyTimeout: time.Second})
	if err != nil {
		return nil, err
	}
	defer copyDB.Close()

	reports := service.NewReportService(
		copyDB,
		copyDB,
		sqlite.NewDepositRepository(copyDB),
		sqlite.NewWithdrawalRepository(copyDB),
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		logger,
	)
	return reports.Snapshot(ctx)
}

// SummaryFileName is the suggested download name for ExportSummary.
func SummaryFileName(t time.Time) string {
	return fmt.Sprintf("situacion_%s.csv", t.Format("20060102_1504"))
}

// SnapshotFileName is the suggested download name for ExportFullSnapshot.
func SnapshotFileName(t time.Time) string {
	return fmt.Sprintf("starpoint_backup_%s.zip", t.Format("20060102_1504"))
}
