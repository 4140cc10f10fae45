package ledger

import (
	"context"
	"time"

	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockCustomerLedgerRepository is a mock implementation of ledger.CustomerLedgerRepository
type MockCustomerLedgerRepository struct {
	mock.Mock
}

func (m *MockCustomerLedgerRepository) Append(ctx context.Context, entry *ledger.CustomerLedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockCustomerLedgerRepository) FindForCustomer(ctx context.Context, companyID, customerID uuid.UUID, dateRange ledger.DateRange) ([]ledger.CustomerLedgerEntry, error) {
	args := m.Called(ctx, companyID, customerID, dateRange)
	return args.Get(0).([]ledger.CustomerLedgerEntry), args.Error(1)
}

func (m *MockCustomerLedgerRepository) BalanceBefore(ctx context.Context, companyID, customerID uuid.UUID, cutoff time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, customerID, cutoff)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// MockSupplierLedgerRepository is a mock implementation of ledger.SupplierLedgerRepository
type MockSupplierLedgerRepository struct {
	mock.Mock
}

func (m *MockSupplierLedgerRepository) Append(ctx context.Context, entry *ledger.SupplierLedgerEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockSupplierLedgerRepository) FindForSupplier(ctx context.Context, companyID, supplierID uuid.UUID, dateRange ledger.DateRange) ([]ledger.SupplierLedgerEntry, error) {
	args := m.Called(ctx, companyID, supplierID, dateRange)
	return args.Get(0).([]ledger.SupplierLedgerEntry), args.Error(1)
}

func (m *MockSupplierLedgerRepository) BalanceBefore(ctx context.Context, companyID, supplierID uuid.UUID, cutoff time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, supplierID, cutoff)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}
