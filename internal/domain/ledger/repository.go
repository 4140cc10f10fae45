package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateRange bounds a statement query. Nil endpoints mean unbounded.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// CustomerLedgerRepository persists customer ledger rows (append-only)
type CustomerLedgerRepository interface {
	Append(ctx context.Context, entry *CustomerLedgerEntry) error
	// FindForCustomer returns rows inside the range ordered by (entry_date, id) ascending
	FindForCustomer(ctx context.Context, companyID, customerID uuid.UUID, dateRange DateRange) ([]CustomerLedgerEntry, error)
	// BalanceBefore returns sum(debit - credit) over all rows dated before the cutoff
	BalanceBefore(ctx context.Context, companyID, customerID uuid.UUID, cutoff time.Time) (decimal.Decimal, error)
}

// SupplierLedgerRepository persists supplier ledger rows (append-only)
type SupplierLedgerRepository interface {
	Append(ctx context.Context, entry *SupplierLedgerEntry) error
	FindForSupplier(ctx context.Context, companyID, supplierID uuid.UUID, dateRange DateRange) ([]SupplierLedgerEntry, error)
	BalanceBefore(ctx context.Context, companyID, supplierID uuid.UUID, cutoff time.Time) (decimal.Decimal, error)
}
