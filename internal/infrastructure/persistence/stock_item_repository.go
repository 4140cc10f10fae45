package persistence

import (
	"context"
	"errors"

	"github.com/clinicerp/backend/internal/domain/inventory"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/infrastructure/persistence/tenantscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockItemRepository implements StockItemRepository using GORM
type GormStockItemRepository struct {
	db *gorm.DB
}

// NewGormStockItemRepository creates a new GormStockItemRepository
func NewGormStockItemRepository(db *gorm.DB) *GormStockItemRepository {
	return &GormStockItemRepository{db: db}
}

// FindByProduct finds the stock row for a company-product combination
func (r *GormStockItemRepository) FindByProduct(ctx context.Context, companyID, productID uuid.UUID) (*inventory.StockItem, error) {
	return r.findOne(r.db.WithContext(ctx), companyID, productID)
}

// FindByProductForUpdate loads the stock row under a FOR UPDATE row lock.
// All decrements go through this so the check-then-decrement is serialized
// per product.
func (r *GormStockItemRepository) FindByProductForUpdate(ctx context.Context, companyID, productID uuid.UUID) (*inventory.StockItem, error) {
	return r.findOne(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		companyID, productID,
	)
}

func (r *GormStockItemRepository) findOne(query *gorm.DB, companyID, productID uuid.UUID) (*inventory.StockItem, error) {
	var item inventory.StockItem
	if err := query.
		Where("company_id = ? AND product_id = ?", companyID, productID).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAllForActor lists the stock rows visible to the actor
func (r *GormStockItemRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]inventory.StockItem, error) {
	var items []inventory.StockItem
	query := applyFilter(
		tenantscope.Scoped(r.db.WithContext(ctx).Model(&inventory.StockItem{}), actor),
		filter, stockItemSortFields,
	)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create persists a new stock row
func (r *GormStockItemRepository) Create(ctx context.Context, item *inventory.StockItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Save persists the quantity with an optimistic version check as a second
// guard behind the row lock
func (r *GormStockItemRepository) Save(ctx context.Context, item *inventory.StockItem) error {
	result := r.db.WithContext(ctx).
		Model(item).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Updates(map[string]interface{}{
			"stock_quantity": item.StockQuantity,
			"version":        item.Version,
			"updated_at":     item.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ inventory.StockItemRepository = (*GormStockItemRepository)(nil)
