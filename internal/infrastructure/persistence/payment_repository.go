package persistence

import (
	"context"
	"errors"

	"github.com/clinicerp/backend/internal/domain/billing"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPaymentRepository implements PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByIDForCompany finds a payment with its refunds within a company
func (r *GormPaymentRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Payment, error) {
	return r.findOne(r.db.WithContext(ctx), companyID, id)
}

// FindByIDForUpdate loads the payment under a FOR UPDATE row lock so
// concurrent refunds never evaluate the remaining cap on stale data
func (r *GormPaymentRepository) FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*billing.Payment, error) {
	return r.findOne(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		companyID, id,
	)
}

func (r *GormPaymentRepository) findOne(query *gorm.DB, companyID, id uuid.UUID) (*billing.Payment, error) {
	var payment billing.Payment
	if err := query.
		Preload("Refunds").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &payment, nil
}

// FindByInvoice finds all payments recorded against an invoice
func (r *GormPaymentRepository) FindByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]billing.Payment, error) {
	var payments []billing.Payment
	if err := r.db.WithContext(ctx).
		Preload("Refunds").
		Where("company_id = ? AND invoice_id = ?", companyID, invoiceID).
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Create persists a payment
func (r *GormPaymentRepository) Create(ctx context.Context, payment *billing.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// AppendRefund inserts a refund row. Refunds are never updated or deleted.
func (r *GormPaymentRepository) AppendRefund(ctx context.Context, refund *billing.PaymentRefund) error {
	return r.db.WithContext(ctx).Create(refund).Error
}

// SumAppliedByInvoice returns the sum of applied amounts over the invoice's payments
func (r *GormPaymentRepository) SumAppliedByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&billing.Payment{}).
		Select("COALESCE(SUM(applied_amount), 0) as total").
		Where("company_id = ? AND invoice_id = ?", companyID, invoiceID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// SumRefundsByInvoice returns the sum of refund amounts over the invoice's payments
func (r *GormPaymentRepository) SumRefundsByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&billing.PaymentRefund{}).
		Select("COALESCE(SUM(payment_refunds.amount), 0) as total").
		Joins("JOIN payments ON payments.id = payment_refunds.payment_id").
		Where("payments.company_id = ? AND payments.invoice_id = ?", companyID, invoiceID).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

var _ billing.PaymentRepository = (*GormPaymentRepository)(nil)
