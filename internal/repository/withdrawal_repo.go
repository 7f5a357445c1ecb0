// internal/repository/withdrawal_repo.go
package repository

import (
	"context"

	"starpoint/internal/domain"
)

// WithdrawalRepository defines the data operations on the withdrawal stream.
type WithdrawalRepository interface {
	// CreateWithdrawal appends a withdrawal and sets its ID.
	CreateWithdrawal(ctx context.Context, q DBExecutor, withdrawal *domain.Withdrawal) error
	// GetWithdrawalsByUser returns the newest withdrawals of a normalized user; limit <= 0 means all.
	GetWithdrawalsByUser(ctx context.Context, q DBExecutor, user string, limit int) ([]domain.Withdrawal, error)
	// ListWithdrawals returns the whole stream, newest first.
	ListWithdrawals(ctx context.Context, q DBExecutor) ([]domain.Withdrawal, error)
}
