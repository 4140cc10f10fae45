package trade

import (
	"context"
	"time"

	"github.com/clinicerp/backend/internal/domain/billing"
	"github.com/clinicerp/backend/internal/domain/inventory"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, companyID, customerID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	args := m.Called(ctx, companyID, customerID, filter)
	return args.Get(0).([]trade.Order), args.Error(1)
}

func (m *MockOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

// MockStockItemRepository is a mock implementation of inventory.StockItemRepository
type MockStockItemRepository struct {
	mock.Mock
}

func (m *MockStockItemRepository) FindByProduct(ctx context.Context, companyID, productID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, companyID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindByProductForUpdate(ctx context.Context, companyID, productID uuid.UUID) (*inventory.StockItem, error) {
	args := m.Called(ctx, companyID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]inventory.StockItem, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]inventory.StockItem), args.Error(1)
}

func (m *MockStockItemRepository) Create(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

// MockStockMovementRepository is a mock implementation of inventory.StockMovementRepository
type MockStockMovementRepository struct {
	mock.Mock
}

func (m *MockStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	args := m.Called(ctx, movement)
	return args.Error(0)
}

func (m *MockStockMovementRepository) FindByProduct(ctx context.Context, companyID, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, companyID, productID, filter)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

func (m *MockStockMovementRepository) FindByReference(ctx context.Context, companyID uuid.UUID, ref inventory.MovementRef) ([]inventory.StockMovement, error) {
	args := m.Called(ctx, companyID, ref)
	return args.Get(0).([]inventory.StockMovement), args.Error(1)
}

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
