// internal/repository/user_repo.go
package repository

import "context"

// UserRepository covers identifiers, which only exist implicitly in the two streams.
type UserRepository interface {
	// ListUsers returns the distinct trimmed identifiers, ordered case-insensitively.
	ListUsers(ctx context.Context, q DBExecutor) ([]string, error)
	// NormalizeUsers rewrites stored identifiers to their canonical form and
	// returns how many rows changed. Callers run it inside a transaction.
	NormalizeUsers(ctx context.Context, q DBExecutor) (int64, error)
}
