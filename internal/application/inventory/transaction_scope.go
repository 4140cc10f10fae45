package inventory

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the inventory
// repositories. Every stock mutation and its paired movement row commit or
// roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the inventory repositories
// within a transaction. Both repositories share the same underlying database
// transaction.
type TransactionalRepositories interface {
	StockItemRepo() inventory.StockItemRepository
	StockMovementRepo() inventory.StockMovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing with mock repositories.
type NoOpTransactionScope struct {
	stockItemRepo     inventory.StockItemRepository
	stockMovementRepo inventory.StockMovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	stockItemRepo inventory.StockItemRepository,
	stockMovementRepo inventory.StockMovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{stockItemRepo: stockItemRepo, stockMovementRepo: stockMovementRepo}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// StockItemRepo returns the stock item repository
func (s *NoOpTransactionScope) StockItemRepo() inventory.StockItemRepository {
	return s.stockItemRepo
}

// StockMovementRepo returns the stock movement repository
func (s *NoOpTransactionScope) StockMovementRepo() inventory.StockMovementRepository {
	return s.stockMovementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
