// internal/repository/sqlite/repository_test.go
package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"starpoint/internal/domain"
	"starpoint/internal/testutil"
)

func TestDepositRepository_CreateAndFetch(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	repo := NewDepositRepository(database)

	base := time.Date(2025, time.May, 2, 18, 30, 0, 0, time.UTC)
	first := domain.NewDeposit("alice", decimal.NewFromInt(2000), base, decimal.RequireFromString("0.4"))
	second := domain.NewDeposit("alice", decimal.RequireFromString("10000.5"), base.Add(time.Hour), decimal.NewFromInt(2))
	other := domain.NewDeposit("bob", decimal.NewFromInt(5000), base, decimal.NewFromInt(1))

	for _, d := range []*domain.Deposit{first, second, other} {
		require.NoError(t, repo.CreateDeposit(ctx, database, d))
	}
	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)

	got, err := repo.GetDepositsByUser(ctx, database, "alice", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("10000.5")))
	assert.True(t, got[1].Points.Equal(decimal.RequireFromString("0.4")))
	assert.True(t, got[1].OccurredAt.Equal(base))

	limited, err := repo.GetDepositsByUser(ctx, database, "alice", 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, second.ID, limited[0].ID)

	all, err := repo.ListDeposits(ctx, database)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestWithdrawalRepository_NullableColumns(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	repo := NewWithdrawalRepository(database)

	at := time.Date(2025, time.May, 3, 21, 5, 0, 0, time.UTC)
	w := domain.NewWithdrawal("carol", decimal.NewFromInt(4000), at, decimal.RequireFromString("0.8"))
	require.NoError(t, repo.CreateWithdrawal(ctx, database, w))
	testutil.InsertRawWithdrawal(t, database, "carol", nil, nil, at.Add(-time.Hour))

	got, err := repo.GetWithdrawalsByUser(ctx, database, "carol", 0)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, w.ID, got[0].ID)
	assert.True(t, got[0].Amount.Valid)
	assert.True(t, got[0].PointsOrZero().Equal(decimal.RequireFromString("0.8")))

	assert.False(t, got[1].Amount.Valid)
	assert.False(t, got[1].Points.Valid)
	assert.True(t, got[1].PointsOrZero().IsZero())
}

func TestRepositories_MatchTrimmedUser(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	at := time.Now().UTC()

	testutil.InsertRawDeposit(t, database, " dave ", 2000, 0.4, at)
	testutil.InsertRawDeposit(t, database, "dave", 2000, 0.4, at)

	got, err := NewDepositRepository(database).GetDepositsByUser(ctx, database, "dave", 0)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestUserRepository_ListUsers(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	at := time.Now().UTC()
	points := 0.4

	testutil.InsertRawDeposit(t, database, "bob", 2000, 0.4, at)
	testutil.InsertRawDeposit(t, database, " Alice", 2000, 0.4, at)
	testutil.InsertRawWithdrawal(t, database, "alice2", &points, &points, at)
	testutil.InsertRawWithdrawal(t, database, "bob ", &points, &points, at)

	users, err := NewUserRepository(database).ListUsers(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice", "alice2", "bob"}, users)
}

func TestUserRepository_NormalizeUsers(t *testing.T) {
	ctx := context.Background()
	database := testutil.NewTestDB(t)
	repo := NewUserRepository(database)
	at := time.Now().UTC()
	points := 0.4

	testutil.InsertRawDeposit(t, database, " erin ", 2000, 0.4, at)
	testutil.InsertRawDeposit(t, database, "erin", 2000, 0.4, at)
	testutil.InsertRawDeposit(t, database, "\tfrank\n", 2000, 0.4, at)
	testutil.InsertRawWithdrawal(t, database, "erin  ", &points, &points, at)

	changed, err := repo.NormalizeUsers(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, int64(3), changed)

	changed, err = repo.NormalizeUsers(ctx, database)
	require.NoError(t, err)
	assert.Zero(t, changed)

	var raw []string
	require.NoError(t, database.SelectContext(ctx, &raw,
		`SELECT user FROM deposits UNION ALL SELECT user FROM withdrawals ORDER BY user`))
	assert.Equal(t, []string{"erin", "erin", "erin", "frank"}, raw)
}
