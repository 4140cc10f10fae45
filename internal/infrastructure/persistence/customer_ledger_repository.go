package persistence

import (
	"context"
	"time"

	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormCustomerLedgerRepository implements CustomerLedgerRepository using GORM
type GormCustomerLedgerRepository struct {
	db *gorm.DB
}

// NewGormCustomerLedgerRepository creates a new GormCustomerLedgerRepository
func NewGormCustomerLedgerRepository(db *gorm.DB) *GormCustomerLedgerRepository {
	return &GormCustomerLedgerRepository{db: db}
}

// Append inserts a ledger row. Rows are never updated or deleted.
func (r *GormCustomerLedgerRepository) Append(ctx context.Context, entry *ledger.CustomerLedgerEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// FindForCustomer returns rows inside the range ordered by (entry_date, id)
// ascending
func (r *GormCustomerLedgerRepository) FindForCustomer(ctx context.Context, companyID, customerID uuid.UUID, dateRange ledger.DateRange) ([]ledger.CustomerLedgerEntry, error) {
	var entries []ledger.CustomerLedgerEntry
	query := r.db.WithContext(ctx).
		Where("company_id = ? AND customer_id = ?", companyID, customerID)
	query = applyDateRange(query, dateRange)

	if err := query.Order("entry_date ASC, id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// BalanceBefore returns sum(debit - credit) over all rows dated before the cutoff
func (r *GormCustomerLedgerRepository) BalanceBefore(ctx context.Context, companyID, customerID uuid.UUID, cutoff time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&ledger.CustomerLedgerEntry{}).
		Select("COALESCE(SUM(debit - credit), 0) as total").
		Where("company_id = ? AND customer_id = ? AND entry_date < ?", companyID, customerID, cutoff).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// applyDateRange bounds a ledger query by entry_date. The lower bound is
// inclusive, the upper bound exclusive, so adjacent ranges never double-count.
func applyDateRange(query *gorm.DB, dateRange ledger.DateRange) *gorm.DB {
	if dateRange.From != nil {
		query = query.Where("entry_date >= ?", *dateRange.From)
	}
	if dateRange.To != nil {
		query = query.Where("entry_date < ?", *dateRange.To)
	}
	return query
}

var _ ledger.CustomerLedgerRepository = (*GormCustomerLedgerRepository)(nil)
