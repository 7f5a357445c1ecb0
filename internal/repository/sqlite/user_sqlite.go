// internal/repository/sqlite/user_sqlite.go
package sqlite

import (
	"context"
	"fmt"

	"starpoint/internal/domain"
	"starpoint/internal/repository"

	"github.com/jmoiron/sqlx"
)

// UserRepository implements repository.UserRepository for SQLite.
type UserRepository struct{}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &UserRepository{}
}

// ListUsers returns the distinct identifiers across both streams.
func (r *UserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]string, error) {
	users := []string{}
	query := `
		SELECT user
		FROM (SELECT TRIM(user) AS user FROM deposits
		      UNION
		      SELECT TRIM(user) AS user FROM withdrawals)
		ORDER BY user COLLATE NOCASE, user`
	if err := q.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

type storedUser struct {
	ID   int64  `db:"id"`
	User string `db:"user"`
}

// NormalizeUsers rewrites identifiers with surrounding whitespace in both tables.
// SQLite's TRIM only strips spaces, so rows are normalized with domain.NormalizeUser.
func (r *UserRepository) NormalizeUsers(ctx context.Context, q repository.DBExecutor) (int64, error) {
	var changed int64
	for _, table := range []string{"deposits", "withdrawals"} {
		rows := []storedUser{}
		if err := q.SelectContext(ctx, &rows, fmt.Sprintf(`SELECT id, user FROM %s`, table)); err != nil {
			return 0, fmt.Errorf("failed to read users from %s: %w", table, err)
		}
		for _, row := range rows {
			canonical := domain.NormalizeUser(row.User)
			if canonical == row.User {
				continue
			}
			if _, err := q.ExecContext(ctx, fmt.Sprintf(`UPDATE %s SET user = ? WHERE id = ?`, table), canonical, row.ID); err != nil {
				return 0, fmt.Errorf("failed to normalize user of %s %d: %w", table, row.ID, err)
			}
			changed++
		}
	}
	return changed, nil
}
