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

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByIDForCompany finds an order with its items within a company
func (r *GormOrderRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*trade.Order, error) {
	return r.findOne(r.db.WithContext(ctx), companyID, id)
}

// FindByIDForUpdate loads the order under a FOR UPDATE row lock so confirm
// and cancel are serialized per order
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*trade.Order, error) {
	return r.findOne(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		companyID, id,
	)
}

func (r *GormOrderRepository) findOne(query *gorm.DB, companyID, id uuid.UUID) (*trade.Order, error) {
	var order trade.Order
	if err := query.
		Preload("Items").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAllForActor lists the orders visible to the actor
func (r *GormOrderRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := applyFilter(
		tenantscope.Scoped(
			r.db.WithContext(ctx).Model(&trade.Order{}).Preload("Items"),
			actor,
		),
		filter, orderSortFields,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByCustomer finds all orders placed by a customer
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, companyID, customerID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	query := applyFilter(
		r.db.WithContext(ctx).Model(&trade.Order{}).
			Preload("Items").
			Where("company_id = ? AND customer_id = ?", companyID, customerID),
		filter, orderSortFields,
	)
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Create persists an order together with its items
func (r *GormOrderRepository) Create(ctx context.Context, order *trade.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

// Update persists an order's mutable fields with an optimistic version check
func (r *GormOrderRepository) Update(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(order).
		Where("id = ? AND version = ?", order.ID, order.Version-1).
		Updates(map[string]interface{}{
			"status":     order.Status,
			"total":      order.Total,
			"version":    order.Version,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ trade.OrderRepository = (*GormOrderRepository)(nil)
