package persistence

import (
	"context"
	"time"

	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSupplierLedgerRepository implements SupplierLedgerRepository using GORM
type GormSupplierLedgerRepository struct {
	db *gorm.DB
}

// NewGormSupplierLedgerRepository creates a new GormSupplierLedgerRepository
func NewGormSupplierLedgerRepository(db *gorm.DB) *GormSupplierLedgerRepository {
	return &GormSupplierLedgerRepository{db: db}
}

// Append inserts a ledger row. Rows are never updated or deleted.
func (r *GormSupplierLedgerRepository) Append(ctx context.Context, entry *ledger.SupplierLedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindForSupplier returns rows inside the range ordered by (entry_date, id)
// ascending
func (r *GormSupplierLedgerRepository) FindForSupplier(ctx context.Context, companyID, supplierID uuid.UUID, dateRange ledger.DateRange) ([]ledger.SupplierLedgerEntry, error) {
	var entries []ledger.SupplierLedgerEntry
	query := r.db.WithContext(ctx).
		Where("company_id = ? AND supplier_id = ?", companyID, supplierID)
	query = applyDateRange(query, dateRange)

	if err := query.Order("entry_date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// BalanceBefore returns sum(debit - credit) over all rows dated before the cutoff
func (r *GormSupplierLedgerRepository) BalanceBefore(ctx context.Context, companyID, supplierID uuid.UUID, cutoff time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&ledger.SupplierLedgerEntry{}).
		Select("COALESCE(SUM(debit - credit), 0) as total").
		Where("company_id = ? AND supplier_id = ? AND entry_date < ?", companyID, supplierID, cutoff).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

var _ ledger.SupplierLedgerRepository = (*GormSupplierLedgerRepository)(nil)
