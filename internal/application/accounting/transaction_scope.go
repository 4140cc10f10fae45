package accounting

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/accounting"
)

// TransactionScope provides transactional access to accounting repositories.
// When a function is executed within a transaction scope, all repository
// operations are part of the same database transaction and commit or roll
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the accounting repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// AccountRepo returns the account repository scoped to the current transaction
	AccountRepo() accounting.AccountRepository
	// JournalRepo returns the journal entry repository scoped to the current transaction
	JournalRepo() accounting.JournalEntryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	accountRepo accounting.AccountRepository
	journalRepo accounting.JournalEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	accountRepo accounting.AccountRepository,
	journalRepo accounting.JournalEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{accountRepo: accountRepo, journalRepo: journalRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// AccountRepo returns the account repository
func (s *NoOpTransactionScope) AccountRepo() accounting.AccountRepository {
	return s.accountRepo
}

// JournalRepo returns the journal entry repository
func (s *NoOpTransactionScope) JournalRepo() accounting.JournalEntryRepository {
	return s.journalRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
