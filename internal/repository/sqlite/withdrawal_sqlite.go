// internal/repository/sqlite/withdrawal_sqlite.go
package sqlite

import (
	"context"
	"fmt"

	"starpoint/internal/domain"
	"starpoint/internal/repository"

	"github.com/jmoiron/sqlx"
)

// WithdrawalRepository implements repository.WithdrawalRepository for SQLite.
type WithdrawalRepository struct{}

// NewWithdrawalRepository creates a new WithdrawalRepository.
func NewWithdrawalRepository(db *sqlx.DB) repository.WithdrawalRepository {
	return &WithdrawalRepository{}
}

// CreateWithdrawal inserts a new withdrawal using the provided DBExecutor.
func (r *WithdrawalRepository) CreateWithdrawal(ctx context.Context, q repository.DBExecutor, withdrawal *domain.Withdrawal) error {
	query := `INSERT INTO withdrawals (user, notified_at, amount, points)
              VALUES (?, ?, ?, ?) RETURNING id`
	err := q.QueryRowContext(ctx, query,
		withdrawal.User,
		withdrawal.NotifiedAt,
		withdrawal.Amount,
		withdrawal.Points,
	).Scan(&withdrawal.ID)
	if err != nil {
		return fmt.Errorf("failed to create withdrawal: %w", err)
	}
	return nil
}

// GetWithdrawalsByUser retrieves the withdrawals whose trimmed user matches.
func (r *WithdrawalRepository) GetWithdrawalsByUser(ctx context.Context, q repository.DBExecutor, user string, limit int) ([]domain.Withdrawal, error) {
	withdrawals := []domain.Withdrawal{}
	query := `
		SELECT id, user, notified_at, amount, points
		FROM withdrawals
		WHERE TRIM(user) = ?
		ORDER BY notified_at DESC, id DESC
		LIMIT ?`
	if err := q.SelectContext(ctx, &withdrawals, query, user, sqlLimit(limit)); err != nil {
		return nil, fmt.Errorf("failed to fetch withdrawals for user '%s': %w", user, err)
	}
	return withdrawals, nil
}

// ListWithdrawals retrieves every withdrawal, newest first.
func (r *WithdrawalRepository) ListWithdrawals(ctx context.Context, q repository.DBExecutor) ([]domain.Withdrawal, error) {
	withdrawals := []domain.Withdrawal{}
	query := `
		SELECT id, user, notified_at, amount, points
		FROM withdrawals
		ORDER BY notified_at DESC, id DESC`
	if err := q.SelectContext(ctx, &withdrawals, query); err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, nil
}
