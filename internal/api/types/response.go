// internal/api/types/response.go
package types

import "github.com/shopspring/decimal"

// ListResponse defines a generic structure for list API responses.
// T represents the type of data contained in the 'Data' slice.
type ListResponse[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// NewListResponse wraps items, rendering a nil slice as an empty array.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Data: items, Count: len(items)}
}

// BalanceResponse is the body of GET /users/{user}/balance.
type BalanceResponse struct {
	User        string          `json:"user"`
	Balance     decimal.Decimal `json:"balance"`
	BalanceText string          `json:"balance_text"`
	Negative    bool            `json:"negative"`
}

// NormalizeResponse reports how many stored identifiers were rewritten.
type NormalizeResponse struct {
	Changed int64 `json:"changed"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
}
