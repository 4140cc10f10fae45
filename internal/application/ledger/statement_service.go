package ledger

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementService folds ledger rows into running-balance statements. It is
// a pure read side: no locks are taken and nothing is written.
type StatementService struct {
	customerLedgerRepo ledger.CustomerLedgerRepository
	supplierLedgerRepo ledger.SupplierLedgerRepository
}

// NewStatementService creates a new StatementService
func NewStatementService(
	customerLedgerRepo ledger.CustomerLedgerRepository,
	supplierLedgerRepo ledger.SupplierLedgerRepository,
) *StatementService {
	return &StatementService{
		customerLedgerRepo: customerLedgerRepo,
		supplierLedgerRepo: supplierLedgerRepo,
	}
}

// CustomerStatement builds a customer statement for the given range. The
// opening balance covers everything dated before the range start; an
// unbounded start has an opening balance of zero.
func (s *StatementService) CustomerStatement(ctx context.Context, actor shared.Actor, companyID, customerID uuid.UUID, dateRange ledger.DateRange) (*ledger.Statement, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}

	opening := decimal.Zero
	if dateRange.From != nil {
		var err error
		opening, err = s.customerLedgerRepo.BalanceBefore(ctx, companyID, customerID, *dateRange.From)
		if err != nil {
			return nil, err
		}
	}

	rows, err := s.customerLedgerRepo.FindForCustomer(ctx, companyID, customerID, dateRange)
	if err != nil {
		return nil, err
	}

	statement := ledger.BuildCustomerStatement(opening, rows)
	return &statement, nil
}

// SupplierStatement builds a supplier statement for the given range
func (s *StatementService) SupplierStatement(ctx context.Context, actor shared.Actor, companyID, supplierID uuid.UUID, dateRange ledger.DateRange) (*ledger.Statement, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}

	opening := decimal.Zero
	if dateRange.From != nil {
		var err error
		opening, err = s.supplierLedgerRepo.BalanceBefore(ctx, companyID, supplierID, *dateRange.From)
		if err != nil {
			return nil, err
		}
	}

	rows, err := s.supplierLedgerRepo.FindForSupplier(ctx, companyID, supplierID, dateRange)
	if err != nil {
		return nil, err
	}

	statement := ledger.BuildSupplierStatement(opening, rows)
	return &statement, nil
}
