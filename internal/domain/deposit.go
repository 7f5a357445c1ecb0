// internal/domain/deposit.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit represents a "carga": money in, points accrued.
type Deposit struct {
	ID         int64           `db:"id" json:"id"`
	User       string          `db:"user" json:"user"`
	Amount     decimal.Decimal `db:"amount" json:"amount"`
	OccurredAt time.Time       `db:"occurred_at" json:"occurred_at"`
	Points     decimal.Decimal `db:"points" json:"points"`
}

// NewDeposit creates a Deposit for an already normalized user.
func NewDeposit(user string, amount decimal.Decimal, at time.Time, points decimal.Decimal) *Deposit {
	return &Deposit{
		User:       user,
		Amount:     amount,
		OccurredAt: at.UTC(),
		Points:     points,
	}
}
