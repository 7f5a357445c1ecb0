// internal/service/mocks_test.go
package service

import (
	"context"
	"database/sql"
	"errors"

	"starpoint/internal/domain"
	"starpoint/internal/repository"

	"github.com/stretchr/testify/mock"
)

var errUnexpectedQuery = errors.New("unexpected direct query on mock transaction")

// MockDepositRepository is a mock implementation of repository.DepositRepository.
type MockDepositRepository struct {
	mock.Mock
}

func (m *MockDepositRepository) CreateDeposit(ctx context.Context, q repository.DBExecutor, deposit *domain.Deposit) error {
	args := m.Called(ctx, q, deposit)
	return args.Error(0)
}

func (m *MockDepositRepository) GetDepositsByUser(ctx context.Context, q repository.DBExecutor, user string, limit int) ([]domain.Deposit, error) {
	args := m.Called(ctx, q, user, limit)
	return args.Get(0).([]domain.Deposit), args.Error(1)
}

func (m *MockDepositRepository) ListDeposits(ctx context.Context, q repository.DBExecutor) ([]domain.Deposit, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Deposit), args.Error(1)
}

// MockWithdrawalRepository is a mock implementation of repository.WithdrawalRepository.
type MockWithdrawalRepository struct {
	mock.Mock
}

func (m *MockWithdrawalRepository) CreateWithdrawal(ctx context.Context, q repository.DBExecutor, withdrawal *domain.Withdrawal) error {
	args := m.Called(ctx, q, withdrawal)
	return args.Error(0)
}

func (m *MockWithdrawalRepository) GetWithdrawalsByUser(ctx context.Context, q repository.DBExecutor, user string, limit int) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, q, user, limit)
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalRepository) ListWithdrawals(ctx context.Context, q repository.DBExecutor) ([]domain.Withdrawal, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]domain.Withdrawal), args.Error(1)
}

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) ListUsers(ctx context.Context, q repository.DBExecutor) ([]string, error) {
	args := m.Called(ctx, q)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRepository) NormalizeUsers(ctx context.Context, q repository.DBExecutor) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}

// MockTxController is a mock implementation of db.TxController that also
// satisfies repository.DBExecutor. Repositories are mocked, so its query
// methods should never run.
type MockTxController struct {
	mock.Mock
}

func (m *MockTxController) Commit() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockTxController) GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return errUnexpectedQuery
}

func (m *MockTxController) SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	return errUnexpectedQuery
}

func (m *MockTxController) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return nil, errUnexpectedQuery
}

func (m *MockTxController) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return &sql.Row{}
}
