package purchasing

import (
	"context"
	"time"

	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/inventory"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockPurchaseOrderRepository is a mock implementation of trade.PurchaseOrderRepository
type MockPurchaseOrderRepository struct {
	mock.Mock
}

func (m *MockPurchaseOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	args := m.Called(ctx, companyID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	args := m.Called(ctx, actor, filter)
	return args.Get(0).([]trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) FindBySupplier(ctx context.Context, companyID, supplierID uuid.UUID, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	args := m.Called(ctx, companyID, supplierID, filter)
	return args.Get(0).([]trade.PurchaseOrder), args.Error(1)
}

func (m *MockPurchaseOrderRepository) Create(ctx context.Context, po *trade.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

func (m *MockPurchaseOrderRepository) Update(ctx context.Context, po *trade.PurchaseOrder) error {
	args := m.Called(ctx, po)
	return args.Error(0)
}

// MockSupplierPaymentRepository is a mock implementation of trade.SupplierPaymentRepository
type MockSupplierPaymentRepository struct {
	mock.Mock
}

func (m *MockSupplierPaymentRepository) FindByPurchaseOrder(ctx context.Context, companyID, purchaseOrderID uuid.UUID) ([]trade.SupplierPayment, error) {
	args := m.Called(ctx, companyID, purchaseOrderID)
	return args.Get(0).([]trade.SupplierPayment), args.Error(1)
}

func (m *MockSupplierPaymentRepository) Create(ctx context.Context, payment *trade.SupplierPayment) error {
	args := m.Called(ctx, payment)
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
