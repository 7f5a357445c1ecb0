// internal/service/report_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"starpoint/internal/domain"
	"starpoint/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummary_MergesWhitespaceVariants(t *testing.T) {
	ctx := context.Background()
	ledger, reports, database := newTestServices(t)

	_, err := ledger.RecordDeposit(ctx, "alice", amount("2000"), fixedNow)
	require.NoError(t, err)
	testutil.InsertRawDeposit(t, database, " alice ", 10000, 2, fixedNow.Add(-time.Hour))

	summary, err := reports.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 1)

	row := summary[0]
	assert.Equal(t, "alice", row.User)
	assert.True(t, row.DepositAmount.Equal(amount("12000")))
	assert.True(t, row.DepositPoints.Equal(amount("2.4")))
	assert.True(t, row.WithdrawalAmount.IsZero())
	assert.True(t, row.Balance.Equal(amount("2.4")))
	assert.True(t, row.LastActivity.Equal(fixedNow))
}

func TestSummary_TotalsBalanceAndOrdering(t *testing.T) {
	ctx := context.Background()
	ledger, reports, database := newTestServices(t)
	early := fixedNow.Add(-48 * time.Hour)

	_, err := ledger.RecordDeposit(ctx, "bob", amount("10000"), early)
	require.NoError(t, err)
	_, err = ledger.RecordWithdrawal(ctx, "bob", amount("20000"), fixedNow)
	require.NoError(t, err)
	_, err = ledger.RecordDeposit(ctx, "Alice", amount("5000"), early)
	require.NoError(t, err)
	_, err = ledger.RecordWithdrawal(ctx, "carl", amount("2000"), early)
	require.NoError(t, err)
	testutil.InsertRawWithdrawal(t, database, "carl", nil, nil, early.Add(time.Hour))

	summary, err := reports.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary, 3)
	assert.Equal(t, []string{"Alice", "bob", "carl"}, []string{summary[0].User, summary[1].User, summary[2].User})

	bob := summary[1]
	assert.True(t, bob.DepositPoints.Equal(amount("2")))
	assert.True(t, bob.WithdrawalPoints.Equal(amount("4")))
	assert.True(t, bob.Balance.Equal(amount("-2")))
	// Latest activity comes from the withdrawal stream.
	assert.True(t, bob.LastActivity.Equal(fixedNow))

	carl := summary[2]
	assert.True(t, carl.WithdrawalAmount.Equal(amount("2000")))
	assert.True(t, carl.Balance.Equal(amount("-0.4")))
	assert.True(t, carl.LastActivity.Equal(early.Add(time.Hour)))
}

func TestSummary_NormalizationPassIsIdempotent(t *testing.T) {
	ctx := context.Background()
	ledger, reports, database := newTestServices(t)

	testutil.InsertRawDeposit(t, database, "  erin", 2000, 0.4, fixedNow)
	testutil.InsertRawDeposit(t, database, "erin\t", 4000, 0.8, fixedNow)
	_, err := ledger.RecordDeposit(ctx, "erin", amount("2000"), fixedNow)
	require.NoError(t, err)

	before, err := reports.Summary(ctx)
	require.NoError(t, err)

	changed, err := ledger.NormalizeStoredUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)
	once, err := reports.Summary(ctx)
	require.NoError(t, err)

	changed, err = ledger.NormalizeStoredUsers(ctx)
	require.NoError(t, err)
	assert.Zero(t, changed)
	twice, err := reports.Summary(ctx)
	require.NoError(t, err)

	require.Len(t, once, 1)
	assert.Equal(t, before, once)
	assert.Equal(t, once, twice)
	assert.True(t, once[0].Balance.Equal(amount("1.6")))
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, Summarize(nil, nil))
}

func TestSummarize_AbsentWithdrawalValuesCountAsZero(t *testing.T) {
	at := time.Date(2025, time.January, 5, 9, 0, 0, 0, time.UTC)
	withdrawals := []domain.Withdrawal{
		{ID: 1, User: "gus", NotifiedAt: at},
		{ID: 2, User: "gus ", NotifiedAt: at.Add(time.Minute), Amount: decimal.NewNullDecimal(amount("3000")), Points: decimal.NewNullDecimal(amount("0.6"))},
	}

	summary := Summarize(nil, withdrawals)

	require.Len(t, summary, 1)
	assert.True(t, summary[0].WithdrawalAmount.Equal(amount("3000")))
	assert.True(t, summary[0].Balance.Equal(amount("-0.6")))
	assert.True(t, summary[0].DepositAmount.IsZero())
	assert.True(t, summary[0].LastActivity.Equal(at.Add(time.Minute)))
}
