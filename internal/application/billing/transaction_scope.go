package billing

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/billing"
	"github.com/clinicerp/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the repositories a
// billing operation touches. Recording a payment writes four rows (payment,
// customer ledger, journal entry, invoice status); they commit or roll back
// together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the billing-side repositories
// within a transaction. All repositories share the same underlying database
// transaction.
type TransactionalRepositories interface {
	InvoiceRepo() billing.InvoiceRepository
	PaymentRepo() billing.PaymentRepository
	CustomerLedgerRepo() ledger.CustomerLedgerRepository
	AccountRepo() accounting.AccountRepository
	JournalRepo() accounting.JournalEntryRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	invoiceRepo        billing.InvoiceRepository
	paymentRepo        billing.PaymentRepository
	customerLedgerRepo ledger.CustomerLedgerRepository
	accountRepo        accounting.AccountRepository
	journalRepo        accounting.JournalEntryRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	customerLedgerRepo ledger.CustomerLedgerRepository,
	accountRepo accounting.AccountRepository,
	journalRepo accounting.JournalEntryRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		invoiceRepo:        invoiceRepo,
		paymentRepo:        paymentRepo,
		customerLedgerRepo: customerLedgerRepo,
		accountRepo:        accountRepo,
		journalRepo:        journalRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InvoiceRepo returns the invoice repository
func (s *NoOpTransactionScope) InvoiceRepo() billing.InvoiceRepository { return s.invoiceRepo }

// PaymentRepo returns the payment repository
func (s *NoOpTransactionScope) PaymentRepo() billing.PaymentRepository { return s.paymentRepo }

// CustomerLedgerRepo returns the customer ledger repository
func (s *NoOpTransactionScope) CustomerLedgerRepo() ledger.CustomerLedgerRepository {
	return s.customerLedgerRepo
}

// AccountRepo returns the account repository
func (s *NoOpTransactionScope) AccountRepo() accounting.AccountRepository { return s.accountRepo }

// JournalRepo returns the journal entry repository
func (s *NoOpTransactionScope) JournalRepo() accounting.JournalEntryRepository {
	return s.journalRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
