package persistence

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/inventory"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStockMovementRepository implements StockMovementRepository using GORM
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append inserts a movement row. The history is append-only.
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByProduct finds the movement history for a product
func (r *GormStockMovementRepository) FindByProduct(ctx context.Context, companyID, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	query := r.db.WithContext(ctx).Model(&inventory.StockMovement{}).
		Where("company_id = ? AND product_id = ?", companyID, productID)

	if filter.Page > 0 && filter.PageSize > 0 {
		query = applyFilter(query, filter, stockMovementSortFields)
	} else {
		// Unpaginated reads feed reconciliation replays, which need the
		// full history in insertion order.
		query = query.Order("created_at ASC, id ASC")
	}

	if err := query.Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindByReference finds all movements caused by one source document
func (r *GormStockMovementRepository) FindByReference(ctx context.Context, companyID uuid.UUID, ref inventory.MovementRef) ([]inventory.StockMovement, error) {
	var movements []inventory.StockMovement
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND reference_type = ? AND reference_id = ?", companyID, ref.Type, ref.ID).
		Order("created_at ASC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

var _ inventory.StockMovementRepository = (*GormStockMovementRepository)(nil)
