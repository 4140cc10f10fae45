package inventory

import (
	"time"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockItem tracks the on-hand quantity of one product for one company.
// The composite identifier is CompanyID + ProductID. Quantity never goes
// negative; every mutation goes through Increase or Decrease, which return
// the movement row the caller must persist in the same transaction.
type StockItem struct {
	shared.CompanyAggregateRoot
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_stock_items_company_product,priority:2"`
	StockQuantity decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockItem) TableName() string {
	return "stock_items"
}

// NewStockItem creates a stock record for a company-product combination
func NewStockItem(companyID, productID uuid.UUID) (*StockItem, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	return &StockItem{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		ProductID:            productID,
		StockQuantity:        decimal.Zero,
	}, nil
}

// Increase adds stock and returns the paired inbound movement
func (s *StockItem) Increase(quantity decimal.Decimal, ref MovementRef, createdBy *uuid.UUID) (*StockMovement, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	s.StockQuantity = s.StockQuantity.Add(quantity)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return newMovement(s, MovementTypeIn, quantity, ref, createdBy), nil
}

// Decrease removes stock and returns the paired outbound movement. The
// balance may never go negative; callers load the item under a row lock
// before calling this so the check holds under concurrency.
func (s *StockItem) Decrease(quantity decimal.Decimal, ref MovementRef, createdBy *uuid.UUID) (*StockMovement, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if err := ref.Validate(); err != nil {
		return nil, err
	}
	if s.StockQuantity.LessThan(quantity) {
		return nil, shared.NewConflictError("INSUFFICIENT_STOCK",
			"Insufficient stock: have "+s.StockQuantity.String()+", need "+quantity.String())
	}

	s.StockQuantity = s.StockQuantity.Sub(quantity)
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	return newMovement(s, MovementTypeOut, quantity, ref, createdBy), nil
}

// HasStock reports whether at least the given quantity is on hand
func (s *StockItem) HasStock(quantity decimal.Decimal) bool {
	return s.StockQuantity.GreaterThanOrEqual(quantity)
}

// ReconcileQuantity replays movements on top of an opening balance and
// returns the quantity the item should hold. A mismatch with StockQuantity
// means a mutation bypassed the movement pairing.
func ReconcileQuantity(opening decimal.Decimal, movements []StockMovement) decimal.Decimal {
	balance := opening
	for _, m := range movements {
		switch m.Type {
		case MovementTypeIn:
			balance = balance.Add(m.Quantity)
		case MovementTypeOut:
			balance = balance.Sub(m.Quantity)
		}
	}
	return balance
}
