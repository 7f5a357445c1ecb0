// internal/domain/movement.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind labels a history row.
type MovementKind string

const (
	MovementDeposit    MovementKind = "deposit"
	MovementWithdrawal MovementKind = "withdrawal"
)

// DisplayLayout is the dd/mm/yyyy hh:mm layout used in history, summaries and exports.
const DisplayLayout = "02/01/2006 15:04"

// Movement is one row of a user's merged history.
type Movement struct {
	EntryID    int64               `json:"entry_id"`
	At         time.Time           `json:"at"`
	Date       string              `json:"date"`
	Kind       MovementKind        `json:"kind"`
	Amount     decimal.NullDecimal `json:"amount"`
	AmountText string              `json:"amount_text"`
	Points     decimal.Decimal     `json:"points"` // signed: withdrawals are negative
}
