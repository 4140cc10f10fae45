package billing

import (
	"context"
	"time"

	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/billing"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByOrderID(ctx context.Context, companyID, orderID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, companyID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByAppointmentID(ctx context.Context, companyID, appointmentID uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, companyID, appointmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateStatus(ctx context.Context, invoice *billing.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of billing.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, companyID, invoiceID)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) AppendRefund(ctx context.Context, refund *billing.PaymentRefund) error {
	args := m.Called(ctx, refund)
	return args.Error(0)
}

func (m *MockPaymentRepository) SumAppliedByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentRepository) SumRefundsByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	args := m.Called(ctx, companyID, invoiceID)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

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

// MockAccountRepository is a mock implementation of accounting.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*accounting.Account, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*accounting.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]accounting.Account, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]accounting.Account), args.Error(1)
}

func (m *MockAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, companyID, code)
	return args.Bool(0), args.Error(1)
}

// MockJournalEntryRepository is a mock implementation of accounting.JournalEntryRepository
type MockJournalEntryRepository struct {
	mock.Mock
}

func (m *MockJournalEntryRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*accounting.JournalEntry, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindBySource(ctx context.Context, companyID uuid.UUID, source accounting.SourceRef) ([]accounting.JournalEntry, error) {
	args := m.Called(ctx, companyID, source)
	return args.Get(0).([]accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]accounting.JournalEntry, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]accounting.JournalEntry), args.Error(1)
}

func (m *MockJournalEntryRepository) Create(ctx context.Context, entry *accounting.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
