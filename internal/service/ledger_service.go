// internal/service/ledger_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"starpoint/internal/domain"
	"starpoint/internal/repository"
	"starpoint/internal/util"
	"starpoint/pkg/db"

	"github.com/shopspring/decimal"
)

// DefaultHistoryLimit caps HistoryOf when the caller passes no limit.
const DefaultHistoryLimit = 200

// LedgerService defines recording, balance and history operations.
type LedgerService interface {
	RecordDeposit(ctx context.Context, user string, amount decimal.Decimal, at time.Time) (*domain.Deposit, error)
	RecordWithdrawal(ctx context.Context, user string, amount decimal.Decimal, at time.Time) (*domain.Withdrawal, error)
	// WithdrawalTime turns free text such as "9 PM" into a timestamp for today.
	WithdrawalTime(raw string) (time.Time, error)
	ListUsers(ctx context.Context) ([]string, error)
	BalanceOf(ctx context.Context, user string) (decimal.Decimal, error)
	HistoryOf(ctx context.Context, user string, limit int) ([]domain.Movement, error)
	NormalizeStoredUsers(ctx context.Context) (int64, error)
}

// LedgerOptions carries the rule and presentation settings of a LedgerService.
type LedgerOptions struct {
	Rule         domain.PointsRule
	HistoryLimit int
	Location     *time.Location
	Now          func() time.Time
	Logger       *slog.Logger
}

func (o LedgerOptions) withDefaults() LedgerOptions {
	if o.Rule.Rate.IsZero() {
		o.Rule = domain.DefaultPointsRule()
	}
	if o.HistoryLimit <= 0 {
		o.HistoryLimit = DefaultHistoryLimit
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// ledgerService implements the LedgerService interface.
type ledgerService struct {
	dbBeginner     db.DBTxBeginner       // For starting transactions (e.g., *sqlx.DB)
	dbExecutor     repository.DBExecutor // For non-transactional reads (e.g., *sqlx.DB)
	depositRepo    repository.DepositRepository
	withdrawalRepo repository.WithdrawalRepository
	userRepo       repository.UserRepository
	beginTx        db.BeginTxFunc
	commitTx       db.CommitTxFunc
	rollbackTx     db.RollbackTxFunc
	opts           LedgerOptions
}

// NewLedgerService creates a new instance of LedgerService.
func NewLedgerService(
	dbBeginner db.DBTxBeginner,
	dbExecutor repository.DBExecutor,
	depositRepo repository.DepositRepository,
	withdrawalRepo repository.WithdrawalRepository,
	userRepo repository.UserRepository,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	opts LedgerOptions,
) LedgerService {
	return &ledgerService{
		dbBeginner:     dbBeginner,
		dbExecutor:     dbExecutor,
		depositRepo:    depositRepo,
		withdrawalRepo: withdrawalRepo,
		userRepo:       userRepo,
		beginTx:        beginTx,
		commitTx:       commitTx,
		rollbackTx:     rollbackTx,
		opts:           opts.withDefaults(),
	}
}

// validateSubmission normalizes the user and checks the amount threshold.
func (s *ledgerService) validateSubmission(user string, amount decimal.Decimal) (string, error) {
	canonical, err := requireUser(user)
	if err != nil {
		return "", err
	}
	if !s.opts.Rule.Eligible(amount) {
		return "", util.NewValidationError("amount",
			fmt.Sprintf("minimum amount is %s", util.FormatThousands(s.opts.Rule.MinAmount)))
	}
	return canonical, nil
}

func requireUser(user string) (string, error) {
	canonical := domain.NormalizeUser(user)
	if canonical == "" {
		return "", util.NewValidationError("user", "must not be empty")
	}
	return canonical, nil
}

func (s *ledgerService) stamp(at time.Time) time.Time {
	if at.IsZero() {
		return s.opts.Now()
	}
	return at
}

// RecordDeposit validates and appends a deposit in its own transaction.
func (s *ledgerService) RecordDeposit(ctx context.Context, user string, amount decimal.Decimal, at time.Time) (*domain.Deposit, error) {
	canonical, err := s.validateSubmission(user, amount)
	if err != nil {
		return nil, err
	}

	deposit := domain.NewDeposit(canonical, amount, s.stamp(at), s.opts.Rule.PointsFor(amount))
	err = s.inTx(ctx, "record deposit", func(q repository.DBExecutor) error {
		return s.depositRepo.CreateDeposit(ctx, q, deposit)
	})
	if err != nil {
		return nil, err
	}

	s.opts.Logger.Info("Deposit recorded", "id", deposit.ID, "user", deposit.User,
		"amount", deposit.Amount.String(), "points", deposit.Points.String())
	return deposit, nil
}

// RecordWithdrawal validates and appends a withdrawal in its own transaction.
func (s *ledgerService) RecordWithdrawal(ctx context.Context, user string, amount decimal.Decimal, at time.Time) (*domain.Withdrawal, error) {
	canonical, err := s.validateSubmission(user, amount)
	if err != nil {
		return nil, err
	}

	withdrawal := domain.NewWithdrawal(canonical, amount, s.stamp(at), s.opts.Rule.PointsFor(amount))
	err = s.inTx(ctx, "record withdrawal", func(q repository.DBExecutor) error {
		return s.withdrawalRepo.CreateWithdrawal(ctx, q, withdrawal)
	})
	if err != nil {
		return nil, err
	}

	s.opts.Logger.Info("Withdrawal recorded", "id", withdrawal.ID, "user", withdrawal.User,
		"amount", withdrawal.Amount.Decimal.String(), "points", withdrawal.Points.Decimal.String())
	return withdrawal, nil
}

// WithdrawalTime places a free-text time of day on today's date.
func (s *ledgerService) WithdrawalTime(raw string) (time.Time, error) {
	tod, err := util.ParseTimeOfDay(raw)
	if err != nil {
		return time.Time{}, err
	}
	return tod.On(s.opts.Now().In(s.opts.Location)), nil
}

// ListUsers returns every known user identifier.
func (s *ledgerService) ListUsers(ctx context.Context) ([]string, error) {
	users, err := s.userRepo.ListUsers(ctx, s.dbExecutor)
	if err != nil {
		return nil, &util.StorageError{Op: "list users", Err: err}
	}
	return users, nil
}

// BalanceOf returns deposit points minus withdrawal points. It may be negative.
func (s *ledgerService) BalanceOf(ctx context.Context, user string) (decimal.Decimal, error) {
	canonical, err := requireUser(user)
	if err != nil {
		return decimal.Zero, err
	}

	deposits, err := s.depositRepo.GetDepositsByUser(ctx, s.dbExecutor, canonical, 0)
	if err != nil {
		return decimal.Zero, &util.StorageError{Op: "balance", Err: err}
	}
	withdrawals, err := s.withdrawalRepo.GetWithdrawalsByUser(ctx, s.dbExecutor, canonical, 0)
	if err != nil {
		return decimal.Zero, &util.StorageError{Op: "balance", Err: err}
	}

	balance := decimal.Zero
	for _, d := range deposits {
		balance = balance.Add(d.Points)
	}
	for _, w := range withdrawals {
		balance = balance.Sub(w.PointsOrZero())
	}
	return balance, nil
}

// HistoryOf merges both streams for a user, newest first.
func (s *ledgerService) HistoryOf(ctx context.Context, user string, limit int) ([]domain.Movement, error) {
	canonical, err := requireUser(user)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.opts.HistoryLimit
	}

	deposits, err := s.depositRepo.GetDepositsByUser(ctx, s.dbExecutor, canonical, limit)
	if err != nil {
		return nil, &util.StorageError{Op: "history", Err: err}
	}
	withdrawals, err := s.withdrawalRepo.GetWithdrawalsByUser(ctx, s.dbExecutor, canonical, limit)
	if err != nil {
		return nil, &util.StorageError{Op: "history", Err: err}
	}

	movements := make([]domain.Movement, 0, len(deposits)+len(withdrawals))
	for _, d := range deposits {
		amount := decimal.NewNullDecimal(d.Amount)
		movements = append(movements, domain.Movement{
			EntryID:    d.ID,
			At:         d.OccurredAt,
			Kind:       domain.MovementDeposit,
			Amount:     amount,
			AmountText: util.FormatOptionalThousands(amount),
			Points:     d.Points.Round(2),
		})
	}
	for _, w := range withdrawals {
		movements = append(movements, domain.Movement{
			EntryID:    w.ID,
			At:         w.NotifiedAt,
			Kind:       domain.MovementWithdrawal,
			Amount:     w.Amount,
			AmountText: util.FormatOptionalThousands(w.Amount),
			Points:     w.PointsOrZero().Neg().Round(2),
		})
	}

	sortMovements(movements)
	if len(movements) > limit {
		movements = movements[:limit]
	}
	for i := range movements {
		movements[i].Date = movements[i].At.In(s.opts.Location).Format(domain.DisplayLayout)
	}
	return movements, nil
}

// sortMovements orders newest first; equal timestamps put withdrawals
// before deposits, then higher IDs first.
func sortMovements(movements []domain.Movement) {
	sort.SliceStable(movements, func(i, j int) bool {
		a, b := movements[i], movements[j]
		if !a.At.Equal(b.At) {
			return a.At.After(b.At)
		}
		if a.Kind != b.Kind {
			return a.Kind == domain.MovementWithdrawal
		}
		return a.EntryID > b.EntryID
	})
}

// NormalizeStoredUsers runs the corrective identifier pass, all-or-nothing.
func (s *ledgerService) NormalizeStoredUsers(ctx context.Context) (int64, error) {
	var changed int64
	err := s.inTx(ctx, "normalize users", func(q repository.DBExecutor) error {
		n, err := s.userRepo.NormalizeUsers(ctx, q)
		changed = n
		return err
	})
	if err != nil {
		return 0, err
	}
	s.opts.Logger.Info("User identifiers normalized", "changed", changed)
	return changed, nil
}

// inTx runs fn in a transaction and wraps any failure as a StorageError.
func (s *ledgerService) inTx(ctx context.Context, op string, fn func(q repository.DBExecutor) error) error {
	return runInTx(ctx, s.dbBeginner, s.beginTx, s.commitTx, s.rollbackTx, op, fn)
}

func runInTx(
	ctx context.Context,
	beginner db.DBTxBeginner,
	beginTx db.BeginTxFunc,
	commitTx db.CommitTxFunc,
	rollbackTx db.RollbackTxFunc,
	op string,
	fn func(q repository.DBExecutor) error,
) error {
	txController, err := beginTx(ctx, beginner)
	if err != nil {
		return &util.StorageError{Op: op, Err: fmt.Errorf("failed to begin transaction: %w", err)}
	}
	defer rollbackTx(txController)

	txExecutor, ok := txController.(repository.DBExecutor)
	if !ok {
		return &util.StorageError{Op: op, Err: fmt.Errorf("transaction controller does not implement DBExecutor")}
	}

	if err := fn(txExecutor); err != nil {
		return &util.StorageError{Op: op, Err: err}
	}

	if err := commitTx(txController); err != nil {
		return &util.StorageError{Op: op, Err: fmt.Errorf("failed to commit transaction: %w", err)}
	}
	return nil
}
