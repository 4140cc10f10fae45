package trade

import (
	"time"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft     PurchaseOrderStatus = "draft"
	PurchaseOrderStatusOrdered   PurchaseOrderStatus = "ordered"
	PurchaseOrderStatusReceived  PurchaseOrderStatus = "received"
	PurchaseOrderStatusPaid      PurchaseOrderStatus = "paid"
	PurchaseOrderStatusCancelled PurchaseOrderStatus = "cancelled"
)

// IsValid checks if the status is a valid PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusOrdered, PurchaseOrderStatusReceived,
		PurchaseOrderStatusPaid, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of PurchaseOrderStatus
func (s PurchaseOrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks whether the target status is reachable in one step.
// The lifecycle is draft -> ordered -> received -> paid, with cancellation
// allowed until goods have been received.
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusOrdered || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusOrdered:
		return target == PurchaseOrderStatusReceived || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusReceived:
		return target == PurchaseOrderStatusPaid
	}
	return false
}

// PurchaseOrderItem is one product line on a purchase order
type PurchaseOrderItem struct {
	shared.BaseEntity
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// PurchaseOrder is an order placed with a supplier
type PurchaseOrder struct {
	shared.CompanyAggregateRoot
	SupplierID uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status     PurchaseOrderStatus `gorm:"type:varchar(20);not null;index"`
	Total      decimal.Decimal     `gorm:"type:decimal(18,2);not null"`
	OrderedAt  *time.Time
	ReceivedAt *time.Time
	Items      []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a draft purchase order with no items
func NewPurchaseOrder(companyID, supplierID uuid.UUID) (*PurchaseOrder, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}

	return &PurchaseOrder{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		SupplierID:           supplierID,
		Status:               PurchaseOrderStatusDraft,
		Total:                decimal.Zero,
	}, nil
}

// AddItem appends a product line and refreshes the derived total
func (po *PurchaseOrder) AddItem(productID uuid.UUID, name string, quantity, unitCost decimal.Decimal) error {
	if po.Status != PurchaseOrderStatusDraft {
		return shared.NewConflictError("INVALID_STATE", "Items can only be added to draft purchase orders")
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
	if unitCost.IsNegative() {
		return shared.NewValidationError("INVALID_COST", "Item cost cannot be negative")
	}

	po.Items = append(po.Items, PurchaseOrderItem{
		BaseEntity:      shared.NewBaseEntity(),
		PurchaseOrderID: po.ID,
		ProductID:       productID,
		Name:            name,
		Quantity:        quantity,
		UnitCost:        unitCost.Round(2),
		LineTotal:       quantity.Mul(unitCost).Round(2),
	})
	po.Total = po.ComputeTotal()
	po.UpdatedAt = time.Now()
	return nil
}

// ComputeTotal recomputes the purchase order total from its items
func (po *PurchaseOrder) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range po.Items {
		total = total.Add(item.LineTotal)
	}
	return total.Round(2)
}

func (po *PurchaseOrder) transition(target PurchaseOrderStatus) error {
	if po.Status == target {
		return shared.NewConflictError("INVALID_STATE", "Purchase order is already "+target.String())
	}
	if !po.Status.CanTransitionTo(target) {
		return shared.NewConflictError("INVALID_STATE",
			"Cannot transition purchase order from "+po.Status.String()+" to "+target.String())
	}
	po.Status = target
	po.UpdatedAt = time.Now()
	po.IncrementVersion()
	return nil
}

// Place transitions draft -> ordered
func (po *PurchaseOrder) Place(at time.Time) error {
	if len(po.Items) == 0 {
		return shared.NewConflictError("EMPTY_ORDER", "Purchase order has no items to place")
	}
	if err := po.transition(PurchaseOrderStatusOrdered); err != nil {
		return err
	}
	po.Total = po.ComputeTotal()
	po.OrderedAt = &at
	return nil
}

// Receive transitions ordered -> received. The caller increments stock in the
// same transaction so receipt and stock movement land together.
func (po *PurchaseOrder) Receive(at time.Time) error {
	if err := po.transition(PurchaseOrderStatusReceived); err != nil {
		return err
	}
	po.ReceivedAt = &at
	return nil
}

// MarkPaid transitions received -> paid. Only the supplier payment flow calls
// this, so a paid purchase order always has a matching payment row.
func (po *PurchaseOrder) MarkPaid() error {
	return po.transition(PurchaseOrderStatusPaid)
}

// Cancel transitions draft or ordered -> cancelled
func (po *PurchaseOrder) Cancel() error {
	if po.Status == PurchaseOrderStatusCancelled {
		return shared.NewConflictError("ALREADY_CANCELLED", "Purchase order is already cancelled")
	}
	return po.transition(PurchaseOrderStatusCancelled)
}

// SupplierPayment is money paid to a supplier against a received purchase order
type SupplierPayment struct {
	shared.CompanyAggregateRoot
	PurchaseOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	SupplierID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method          string          `gorm:"type:varchar(20);not null"`
	PaidAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SupplierPayment) TableName() string {
	return "supplier_payments"
}

// NewSupplierPayment records money paid out against a purchase order
func NewSupplierPayment(companyID, purchaseOrderID, supplierID uuid.UUID, amount decimal.Decimal, method string, paidAt time.Time) (*SupplierPayment, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PURCHASE_ORDER", "Purchase order ID cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if method == "" {
		return nil, shared.NewValidationError("INVALID_METHOD", "Payment method cannot be empty")
	}

	return &SupplierPayment{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		PurchaseOrderID:      purchaseOrderID,
		SupplierID:           supplierID,
		Amount:               amount.Round(2),
		Method:               method,
		PaidAt:               paidAt,
	}, nil
}
