package trade

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/billing"
	"github.com/clinicerp/backend/internal/domain/inventory"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/clinicerp/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a sales
// order operation touches. Stock decrements, movement rows, the order itself
// and any invoice it raises commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the order-side repositories
// within a transaction. All repositories share the same underlying database
// transaction.
type TransactionalRepositories interface {
	OrderRepo() trade.OrderRepository
	StockItemRepo() inventory.StockItemRepository
	StockMovementRepo() inventory.StockMovementRepository
	InvoiceRepo() billing.InvoiceRepository
	CustomerLedgerRepo() ledger.CustomerLedgerRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	orderRepo          trade.OrderRepository
	stockItemRepo      inventory.StockItemRepository
	stockMovementRepo  inventory.StockMovementRepository
	invoiceRepo        billing.InvoiceRepository
	customerLedgerRepo ledger.CustomerLedgerRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	orderRepo trade.OrderRepository,
	stockItemRepo inventory.StockItemRepository,
	stockMovementRepo inventory.StockMovementRepository,
	invoiceRepo billing.InvoiceRepository,
	customerLedgerRepo ledger.CustomerLedgerRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		orderRepo:          orderRepo,
		stockItemRepo:      stockItemRepo,
		stockMovementRepo:  stockMovementRepo,
		invoiceRepo:        invoiceRepo,
		customerLedgerRepo: customerLedgerRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() trade.OrderRepository { return s.orderRepo }

// StockItemRepo returns the stock item repository
func (s *NoOpTransactionScope) StockItemRepo() inventory.StockItemRepository {
	return s.stockItemRepo
}

// StockMovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) StockMovementRepo() inventory.StockMovementRepository {
	return s.stockMovementRepo
}

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository { return s.invoiceRepo }

// CustomerLedgerRepo returns the customer ledger repository
func (s *NoOpTransactionScope) CustomerLedgerRepo() ledger.CustomerLedgerRepository {
	return s.customerLedgerRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
