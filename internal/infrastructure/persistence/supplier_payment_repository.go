package persistence

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/trade"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplierPaymentRepository implements SupplierPaymentRepository using GORM
type GormSupplierPaymentRepository struct {
	db *gorm.DB
}

// NewGormSupplierPaymentRepository creates a new GormSupplierPaymentRepository
func NewGormSupplierPaymentRepository(db *gorm.DB) *GormSupplierPaymentRepository {
	return &GormSupplierPaymentRepository{db: db}
}

// FindByPurchaseOrder finds all payments made against a purchase order
func (r *GormSupplierPaymentRepository) FindByPurchaseOrder(ctx context.Context, companyID, purchaseOrderID uuid.UUID) ([]trade.SupplierPayment, error) {
	var payments []trade.SupplierPayment
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND purchase_order_id = ?", companyID, purchaseOrderID).
		Order("paid_at ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Create persists a supplier payment
func (r *GormSupplierPaymentRepository) Create(ctx context.Context, payment *trade.SupplierPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

var _ trade.SupplierPaymentRepository = (*GormSupplierPaymentRepository)(nil)
