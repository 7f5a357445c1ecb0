// internal/repository/deposit_repo.go
package repository

import (
	"context"

	"starpoint/internal/domain"
)

// DepositRepository defines the data operations on the deposit stream.
type DepositRepository interface {
	// CreateDeposit appends a deposit and sets its ID.
	CreateDeposit(ctx context.Context, q DBExecutor, deposit *domain.Deposit) error
	// GetDepositsByUser returns the newest deposits of a normalized user; limit <= 0 means all.
	GetDepositsByUser(ctx context.Context, q DBExecutor, user string, limit int) ([]domain.Deposit, error)
	// ListDeposits returns the whole stream, newest first.
	ListDeposits(ctx context.Context, q DBExecutor) ([]domain.Deposit, error)
}
