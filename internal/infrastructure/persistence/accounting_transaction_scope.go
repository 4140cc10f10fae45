package persistence

import (
	"context"

	appaccounting "github.com/clinicerp/backend/internal/application/accounting"
	"github.com/clinicerp/backend/internal/domain/accounting"
	"gorm.io/gorm"
)

// GormAccountingTransactionScope implements the accounting TransactionScope
// using GORM transactions
type GormAccountingTransactionScope struct {
	db *gorm.DB
}

// NewGormAccountingTransactionScope creates a new GormAccountingTransactionScope
func NewGormAccountingTransactionScope(db *gorm.DB) *GormAccountingTransactionScope {
	return &GormAccountingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormAccountingTransactionScope) Execute(ctx context.Context, fn func(repos appaccounting.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&accountingTxRepositories{tx: tx})
	})
}

type accountingTxRepositories struct {
	tx *gorm.DB
}

func (r *accountingTxRepositories) AccountRepo() accounting.AccountRepository {
	return NewGormAccountRepository(r.tx)
}

func (r *accountingTxRepositories) JournalRepo() accounting.JournalEntryRepository {
	return NewGormJournalEntryRepository(r.tx)
}

var _ appaccounting.TransactionScope = (*GormAccountingTransactionScope)(nil)
var _ appaccounting.TransactionalRepositories = (*accountingTxRepositories)(nil)
