package inventory

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StockItemRepository defines persistence operations for stock items
type StockItemRepository interface {
	FindByProduct(ctx context.Context, companyID, productID uuid.UUID) (*StockItem, error)
	// FindByProductForUpdate loads the stock row under a row lock inside the
	// current transaction. All decrements go through this so the
	// check-then-decrement is serialized per product.
	FindByProductForUpdate(ctx context.Context, companyID, productID uuid.UUID) (*StockItem, error)
	FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]StockItem, error)
	Create(ctx context.Context, item *StockItem) error
	// Save persists the quantity together with an optimistic version check
	Save(ctx context.Context, item *StockItem) error
}

// StockMovementRepository defines persistence operations for the append-only
// movement history
type StockMovementRepository interface {
	Append(ctx context.Context, movement *StockMovement) error
	FindByProduct(ctx context.Context, companyID, productID uuid.UUID, filter shared.Filter) ([]StockMovement, error)
	FindByReference(ctx context.Context, companyID uuid.UUID, ref MovementRef) ([]StockMovement, error)
}
