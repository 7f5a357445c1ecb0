// internal/domain/withdrawal.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Withdrawal represents a "retiro": money out, points debited.
// Amount and Points are nullable in storage; entries written by this
// package always carry both.
type Withdrawal struct {
	ID         int64               `db:"id" json:"id"`
	User       string              `db:"user" json:"user"`
	NotifiedAt time.Time           `db:"notified_at" json:"notified_at"`
	Amount     decimal.NullDecimal `db:"amount" json:"amount"`
	Points     decimal.NullDecimal `db:"points" json:"points"`
}

// NewWithdrawal creates a Withdrawal for an already normalized user.
func NewWithdrawal(user string, amount decimal.Decimal, at time.Time, points decimal.Decimal) *Withdrawal {
	return &Withdrawal{
		User:       user,
		NotifiedAt: at.UTC(),
		Amount:     decimal.NewNullDecimal(amount),
		Points:     decimal.NewNullDecimal(points),
	}
}

// PointsOrZero returns the debited points, treating an absent value as zero.
func (w Withdrawal) PointsOrZero() decimal.Decimal {
	if !w.Points.Valid {
		return decimal.Zero
	}
	return w.Points.Decimal
}

// AmountOrZero returns the withdrawn amount, treating an absent value as zero.
func (w Withdrawal) AmountOrZero() decimal.Decimal {
	if !w.Amount.Valid {
		return decimal.Zero
	}
	return w.Amount.Decimal
}
