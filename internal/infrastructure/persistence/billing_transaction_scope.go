package persistence

import (
	"context"

	appbilling "github.com/clinicerp/backend/internal/application/billing"
	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/billing"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"gorm.io/gorm"
)

// GormBillingTransactionScope implements the billing TransactionScope
// using GORM transactions
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos appbilling.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&billingTxRepositories{tx: tx})
	})
}

type billingTxRepositories struct {
	tx *gorm.DB
}

func (r *billingTxRepositories) InvoiceRepo() billing.InvoiceRepository {
	return NewGormInvoiceRepository(r.tx)
}

func (r *billingTxRepositories) PaymentRepo() billing.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

func (r *billingTxRepositories) CustomerLedgerRepo() ledger.CustomerLedgerRepository {
	return NewGormCustomerLedgerRepository(r.tx)
}

func (r *billingTxRepositories) AccountRepo() accounting.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

func (r *billingTxRepositories) JournalRepo() accounting.JournalEntryRepository {
	return NewGormJournalEntryRepository(r.tx)
}

var _ appbilling.TransactionScope = (*GormBillingTransactionScope)(nil)
var _ appbilling.TransactionalRepositories = (*billingTxRepositories)(nil)
