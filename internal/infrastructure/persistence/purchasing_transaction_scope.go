package persistence

import (
	"context"

	apppurchasing "github.com/clinicerp/backend/internal/application/purchasing"
	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/inventory"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/clinicerp/backend/internal/domain/trade"
	"gorm.io/gorm"
)

// GormPurchasingTransactionScope implements the purchasing TransactionScope
// using GORM transactions
type GormPurchasingTransactionScope struct {
	db *gorm.DB
}

// NewGormPurchasingTransactionScope creates a new GormPurchasingTransactionScope
func NewGormPurchasingTransactionScope(db *gorm.DB) *GormPurchasingTransactionScope {
	return &GormPurchasingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormPurchasingTransactionScope) Execute(ctx context.Context, fn func(repos apppurchasing.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&purchasingTxRepositories{tx: tx})
	})
}

type purchasingTxRepositories struct {
	tx *gorm.DB
}

func (r *purchasingTxRepositories) PurchaseOrderRepo() trade.PurchaseOrderRepository {
	return NewGormPurchaseOrderRepository(r.tx)
}

func (r *purchasingTxRepositories) SupplierPaymentRepo() trade.SupplierPaymentRepository {
	return NewGormSupplierPaymentRepository(r.tx)
}

func (r *purchasingTxRepositories) StockItemRepo() inventory.StockItemRepository {
	return NewGormStockItemRepository(r.tx)
}

func (r *purchasingTxRepositories) StockMovementRepo() inventory.StockMovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

func (r *purchasingTxRepositories) SupplierLedgerRepo() ledger.SupplierLedgerRepository {
	return NewGormSupplierLedgerRepository(r.tx)
}

func (r *purchasingTxRepositories) AccountRepo() accounting.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

func (r *purchasingTxRepositories) JournalRepo() accounting.JournalEntryRepository {
	return NewGormJournalEntryRepository(r.tx)
}

var _ apppurchasing.TransactionScope = (*GormPurchasingTransactionScope)(nil)
var _ apppurchasing.TransactionalRepositories = (*purchasingTxRepositories)(nil)
