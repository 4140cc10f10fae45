package trade

import (
	"time"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a sales order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusConfirmed || s == OrderStatusCancelled
}

// OrderItem is one product line on an order
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Order is a sales order. Its total is always derived from its items and
// never accepted from callers.
type Order struct {
	shared.CompanyAggregateRoot
	CustomerID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status     OrderStatus     `gorm:"type:varchar(20);not null;index"`
	Total      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Items      []OrderItem     `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order with no items
func NewOrder(companyID, customerID uuid.UUID) (*Order, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	return &Order{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		CustomerID:           customerID,
		Status:               OrderStatusPending,
		Total:                decimal.Zero,
	}, nil
}

// AddItem appends a product line and refreshes the derived total
func (o *Order) AddItem(productID uuid.UUID, name string, quantity, unitPrice decimal.Decimal) error {
	if o.Status != OrderStatusPending {
		return shared.NewConflictError("INVALID_STATE", "Items can only be added to pending orders")
	}
	if productID == uuid.Nil {
		return shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Item name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_QUANTITY", "Item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewValidationError("INVALID_PRICE", "Item price cannot be negative")
	}

	o.Items = append(o.Items, OrderItem{
		BaseEntity: shared.NewBaseEntity(),
		OrderID:    o.ID,
		ProductID:  productID,
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  unitPrice.Round(2),
		LineTotal:  quantity.Mul(unitPrice).Round(2),
	})
	o.Total = o.ComputeTotal()
	o.UpdatedAt = time.Now()
	return nil
}

// ComputeTotal recomputes the order total from its items. Confirmation uses
// this rather than the stored column so a tampered total can never leak into
// an invoice.
func (o *Order) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.LineTotal)
	}
	return total.Round(2)
}

// Confirm transitions pending -> confirmed. The caller is responsible for
// invoice creation; the guard here only enforces the state machine.
func (o *Order) Confirm() error {
	switch o.Status {
	case OrderStatusConfirmed:
		return shared.NewConflictError("ALREADY_CONFIRMED", "Order is already confirmed")
	case OrderStatusCancelled:
		return shared.NewConflictError("INVALID_STATE", "Cancelled orders cannot be confirmed")
	}
	if len(o.Items) == 0 {
		return shared.NewConflictError("EMPTY_ORDER", "Order has no items to confirm")
	}

	o.Total = o.ComputeTotal()
	o.Status = OrderStatusConfirmed
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}

// Cancel transitions pending -> cancelled. Cancelling twice is rejected so
// stock is never restored twice.
func (o *Order) Cancel() error {
	switch o.Status {
	case OrderStatusCancelled:
		return shared.NewConflictError("ALREADY_CANCELLED", "Order is already cancelled")
	case OrderStatusConfirmed:
		return shared.NewConflictError("INVALID_STATE", "Confirmed orders cannot be cancelled")
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	o.IncrementVersion()
	return nil
}
