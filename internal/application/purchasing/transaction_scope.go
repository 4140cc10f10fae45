package purchasing

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/inventory"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/clinicerp/backend/internal/domain/trade"
)

// TransactionScope provides transactional access to the repositories a
// purchasing operation touches. Receiving goods writes the purchase order,
// stock rows, movements, the supplier ledger and the journal together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the purchasing-side
// repositories within a transaction. All repositories share the same
// underlying database transaction.
type TransactionalRepositories interface {
	PurchaseOrderRepo() trade.PurchaseOrderRepository
	SupplierPaymentRepo() trade.SupplierPaymentRepository
	StockItemRepo() inventory.StockItemRepository
	StockMovementRepo() inventory.StockMovementRepository
	SupplierLedgerRepo() ledger.SupplierLedgerRepository
	AccountRepo() accounting.AccountRepository
	JournalRepo() accounting.JournalEntryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	purchaseOrderRepo   trade.PurchaseOrderRepository
	supplierPaymentRepo trade.SupplierPaymentRepository
	stockItemRepo       inventory.StockItemRepository
	stockMovementRepo   inventory.StockMovementRepository
	supplierLedgerRepo  ledger.SupplierLedgerRepository
	accountRepo         accounting.AccountRepository
	journalRepo         accounting.JournalEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	purchaseOrderRepo trade.PurchaseOrderRepository,
	supplierPaymentRepo trade.SupplierPaymentRepository,
	stockItemRepo inventory.StockItemRepository,
	stockMovementRepo inventory.StockMovementRepository,
	supplierLedgerRepo ledger.SupplierLedgerRepository,
	accountRepo accounting.AccountRepository,
	journalRepo accounting.JournalEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		purchaseOrderRepo:   purchaseOrderRepo,
		supplierPaymentRepo: supplierPaymentRepo,
		stockItemRepo:       stockItemRepo,
		stockMovementRepo:   stockMovementRepo,
		supplierLedgerRepo:  supplierLedgerRepo,
		accountRepo:         accountRepo,
		journalRepo:         journalRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// PurchaseOrderRepo returns the purchase order repository
func (s *NoOpTransactionScope) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return s.purchaseOrderRepo
}

// SupplierPaymentRepo returns the supplier payment repository
func (s *NoOpTransactionScope) SupplierPaymentRepo() trade.SupplierPaymentRepository {
	return s.supplierPaymentRepo
}

// StockItemRepo returns the stock item repository
func (s *NoOpTransactionScope) StockItemRepo() inventory.StockItemRepository {
	return s.stockItemRepo
}

// StockMovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) StockMovementRepo() inventory.StockMovementRepository {
	return s.stockMovementRepo
}

// SupplierLedgerRepo returns the supplier ledger repository
func (s *NoOpTransactionScope) SupplierLedgerRepo() ledger.SupplierLedgerRepository {
	return s.supplierLedgerRepo
}

// AccountRepo returns the account repository
func (s *NoOpTransactionScope) AccountRepo() accounting.AccountRepository { return s.accountRepo }

// JournalRepo returns the journal entry repository
func (s *NoOpTransactionScope) JournalRepo() accounting.JournalEntryRepository {
	return s.journalRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
