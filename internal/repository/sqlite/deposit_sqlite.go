// internal/repository/sqlite/deposit_sqlite.go
package sqlite

import (
	"context"
	"fmt"

	"starpoint/internal/domain"
	"starpoint/internal/repository"

	"github.com/jmoiron/sqlx"
)

// DepositRepository implements repository.DepositRepository for SQLite.
type DepositRepository struct{}

// NewDepositRepository creates a new DepositRepository.
// The db parameter is not stored; methods receive a DBExecutor so they can run inside a transaction.
func NewDepositRepository(db *sqlx.DB) repository.DepositRepository {
	return &DepositRepository{}
}

// CreateDeposit inserts a new deposit using the provided DBExecutor.
func (r *DepositRepository) CreateDeposit(ctx context.Context, q repository.DBExecutor, deposit *domain.Deposit) error {
	query := `INSERT INTO deposits (user, amount, occurred_at, points)
              VALUES (?, ?, ?, ?) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		deposit.User,
		deposit.Amount,
		deposit.OccurredAt,
		deposit.Points,
	).Scan(&deposit.ID)
	if err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}
	return nil
}

// GetDepositsByUser retrieves the deposits whose trimmed user matches.
func (r *DepositRepository) GetDepositsByUser(ctx context.Context, q repository.DBExecutor, user string, limit int) ([]domain.Deposit, error) {
	deposits := []domain.Deposit{}
	query := `
		SELECT id, user, amount, occurred_at, points
		FROM deposits
		WHERE TRIM(user) = ?
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?`
	if err := q.SelectContext(ctx, &deposits, query, user, sqlLimit(limit)); err != nil {
		return nil, fmt.Errorf("failed to fetch deposits for user '%s': %w", user, err)
	}
	return deposits, nil
}

// ListDeposits retrieves every deposit, newest first.
func (r *DepositRepository) ListDeposits(ctx context.Context, q repository.DBExecutor) ([]domain.Deposit, error) {
	deposits := []domain.Deposit{}
	query := `
		SELECT id, user, amount, occurred_at, points
		FROM deposits
		ORDER BY occurred_at DESC, id DESC`
	if err := q.SelectContext(ctx, &deposits, query); err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	return deposits, nil
}

// sqlLimit maps "no limit" onto SQLite's LIMIT -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
