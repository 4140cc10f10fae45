package persistence

import (
	"context"
	"errors"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/domain/trade"
	"github.com/clinicerp/backend/internal/infrastructure/persistence/tenantscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByIDForCompany finds a purchase order with its items within a company
func (r *GormPurchaseOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	return r.findOne(r.db.WithContext(ctx), companyID, id)
}

// FindByIDForUpdate loads the purchase order under a FOR UPDATE row lock so
// receipt and payment are serialized per order
func (r *GormPurchaseOrderRepository) FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	return r.findOne(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		companyID, id,
	)
}

func (r *GormPurchaseOrderRepository) findOne(query *gorm.DB, companyID, id uuid.UUID) (*trade.PurchaseOrder, error) {
	var po trade.PurchaseOrder
	if err := query.
		Preload("Items").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindAllForActor lists the purchase orders visible to the actor
func (r *GormPurchaseOrderRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	query := applyFilter(
		tenantscope.Scoped(
			r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}).Preload("Items"),
			actor,
		),
		filter, purchaseOrderSortFields,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindBySupplier finds all purchase orders placed with a supplier
func (r *GormPurchaseOrderRepository) FindBySupplier(ctx context.Context, companyID, supplierID uuid.UUID, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	query := applyFilter(
		r.db.WithContext(ctx).Model(&trade.PurchaseOrder{}).
			Preload("Items").
			Where("company_id = ? AND supplier_id = ?", companyID, supplierID),
		filter, purchaseOrderSortFields,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Create persists a purchase order together with its items
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, po *trade.PurchaseOrder) error {
	return r.db.WithContext(ctx).Create(po).Error
}

// Update persists a purchase order's mutable fields with an optimistic
// version check
func (r *GormPurchaseOrderRepository) Update(ctx context.Context, po *trade.PurchaseOrder) error {
	result := r.db.WithContext(ctx).
		Model(po).
		Where("id = ? AND version = ?", po.ID, po.Version-1).
		Updates(map[string]interface{}{
			"status":      po.Status,
			"total":       po.Total,
			"ordered_at":  po.OrderedAt,
			"received_at": po.ReceivedAt,
			"version":     po.Version,
			"updated_at":  po.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ trade.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
