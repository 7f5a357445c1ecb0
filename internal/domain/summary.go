// internal/domain/summary.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UserSummary aggregates both streams for one normalized user.
type UserSummary struct {
	User             string          `json:"user"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	WithdrawalAmount decimal.Decimal `json:"withdrawal_amount"`
	DepositPoints    decimal.Decimal `json:"deposit_points"`
	WithdrawalPoints decimal.Decimal `json:"withdrawal_points"`
	Balance          decimal.Decimal `json:"balance"`
	LastActivity     time.Time       `json:"last_activity"`
}

// Snapshot is the full ledger state read in a single transaction.
type Snapshot struct {
	Deposits    []Deposit
	Withdrawals []Withdrawal
	Summary     []UserSummary
}
