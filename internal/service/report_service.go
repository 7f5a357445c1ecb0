// internal/service/report_service.go
package service

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"starpoint/internal/domain"
	"starpoint/internal/repository"
	"starpoint/pkg/db"

	"github.com/shopspring/decimal"
)

// ReportService builds cross-user aggregates.
type ReportService interface {
	// Summary returns one row per normalized user, ordered case-insensitively.
	Summary(ctx context.Context) ([]domain.UserSummary, error)
	// Snapshot reads both streams and the summary in a single read transaction.
	Snapshot(ctx context.Context) (*domain.Snapshot, error)
}

type reportService struct {
	dbBeginner     db.DBTxBeginner
	dbExecutor     repository.DBExecutor
	depositRepo    repository.DepositRepository
	withdrawalRepo repository.WithdrawalRepository
	beginTx        db.BeginTxFunc
	commitTx       db.CommitTxFunc
	rollbackTx     db.RollbackTxFunc
	logger         *slog.Logger
}

// NewReportService creates a new instance of ReportService.
func NewReportService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	depositRepo repository.DepositRepository,
	withdrawalRepo repository.WithdrawalRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	logger *slog.Logger,
) ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &reportService{
		dbBeginner:     dbBeginner,
		dbExecutor:     dbExecutor,
		depositRepo:    depositRepo,
		withdrawalRepo: withdrawalRepo,
		beginTx:        beginTx,
		commitTx:       commitTx,
		rollbackTx:     rollbackTx,
		logger:         logger,
	}
}

func (s *reportService) Summary(ctx context.Context) ([]domain.UserSummary, error) {
	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.Summary, nil
}

func (s *reportService) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	snapshot := &domain.Snapshot{}
	err := runInTx(ctx, s.dbBeginner, s.beginTx, s.commitTx, s.rollbackTx, "snapshot", func(q repository.DBExecutor) error {
		var err error
		if snapshot.Deposits, err = s.depositRepo.ListDeposits(ctx, q); err != nil {
			return err
		}
		snapshot.Withdrawals, err = s.withdrawalRepo.ListWithdrawals(ctx, q)
		return err
	})
	if err != nil {
		return nil, err
	}

	snapshot.Summary = Summarize(snapshot.Deposits, snapshot.Withdrawals)
	s.logger.Debug("Ledger snapshot read", "deposits", len(snapshot.Deposits),
		"withdrawals", len(snapshot.Withdrawals), "users", len(snapshot.Summary))
	return snapshot, nil
}

// Summarize groups both streams by normalized user. Rows are ordered
// case-insensitively, with the raw identifier as tie-breaker.
func Summarize(deposits []domain.Deposit, withdrawals []domain.Withdrawal) []domain.UserSummary {
	byUser := make(map[string]*domain.UserSummary)
	row := func(raw string) *domain.UserSummary {
		user := domain.NormalizeUser(raw)
		r, ok := byUser[user]
		if !ok {
			r = &domain.UserSummary{
				User:             user,
				DepositAmount:    decimal.Zero,
				WithdrawalAmount: decimal.Zero,
				DepositPoints:    decimal.Zero,
				WithdrawalPoints: decimal.Zero,
			}
			byUser[user] = r
		}
		return r
	}

	for _, d := range deposits {
		r := row(d.User)
		r.DepositAmount = r.DepositAmount.Add(d.Amount)
		r.DepositPoints = r.DepositPoints.Add(d.Points)
		if d.OccurredAt.After(r.LastActivity) {
			r.LastActivity = d.OccurredAt
		}
	}
	for _, w := range withdrawals {
		r := row(w.User)
		r.WithdrawalAmount = r.WithdrawalAmount.Add(w.AmountOrZero())
		r.WithdrawalPoints = r.WithdrawalPoints.Add(w.PointsOrZero())
		if w.NotifiedAt.After(r.LastActivity) {
			r.LastActivity = w.NotifiedAt
		}
	}

	summary := make([]domain.UserSummary, 0, len(byUser))
	for _, r := range byUser {
		r.Balance = r.DepositPoints.Sub(r.WithdrawalPoints)
		summary = append(summary, *r)
	}
	sort.Slice(summary, func(i, j int) bool {
		a, b := strings.ToLower(summary[i].User), strings.ToLower(summary[j].User)
		if a != b {
			return a < b
		}
		return summary[i].User < summary[j].User
	})
	return summary
}
