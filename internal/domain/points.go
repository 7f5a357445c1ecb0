// internal/domain/points.go
package domain

import "github.com/shopspring/decimal"

var (
	// DefaultMinAmount is the smallest amount that accrues or debits points.
	DefaultMinAmount = decimal.NewFromInt(2000)
	// DefaultPointsRate is the points earned per unit of amount (0.4 points per 2000).
	DefaultPointsRate = decimal.RequireFromString("0.0002")
)

// PointsRule converts monetary amounts into points.
type PointsRule struct {
	MinAmount decimal.Decimal
	Rate      decimal.Decimal
}

// DefaultPointsRule returns the rule with the reference threshold and rate.
func DefaultPointsRule() PointsRule {
	return PointsRule{MinAmount: DefaultMinAmount, Rate: DefaultPointsRate}
}

// PointsFor returns zero below the threshold, otherwise amount*rate rounded to two places.
func (r PointsRule) PointsFor(amount decimal.Decimal) decimal.Decimal {
	if !r.Eligible(amount) {
		return decimal.Zero
	}
	return amount.Mul(r.Rate).Round(2)
}

// Eligible reports whether amount reaches the minimum threshold.
func (r PointsRule) Eligible(amount decimal.Decimal) bool {
	return amount.GreaterThanOrEqual(r.MinAmount)
}
