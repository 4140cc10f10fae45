package inventory

import (
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType is the direction of a stock movement
type MovementType string

const (
	MovementTypeIn  MovementType = "in"
	MovementTypeOut MovementType = "out"
)

// IsValid checks if the movement type is valid
func (t MovementType) IsValid() bool {
	return t == MovementTypeIn || t == MovementTypeOut
}

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// ReferenceType names the document that caused a stock movement
type ReferenceType string

const (
	ReferenceTypeOrder         ReferenceType = "order"
	ReferenceTypePurchaseOrder ReferenceType = "purchase_order"
	ReferenceTypeAppointment   ReferenceType = "appointment"
	ReferenceTypeAdjustment    ReferenceType = "adjustment"
)

// IsValid checks if the reference type is valid
func (t ReferenceType) IsValid() bool {
	switch t {
	case ReferenceTypeOrder, ReferenceTypePurchaseOrder, ReferenceTypeAppointment, ReferenceTypeAdjustment:
		return true
	}
	return false
}

// MovementRef points a movement at the document that caused it
type MovementRef struct {
	Type ReferenceType `gorm:"column:reference_type;type:varchar(30);not null"`
	ID   uuid.UUID     `gorm:"column:reference_id;type:uuid;not null;index"`
}

// Validate checks the reference is complete
func (r MovementRef) Validate() error {
	if !r.Type.IsValid() {
		return shared.NewValidationError("INVALID_REFERENCE", "Movement reference type is not valid")
	}
	if r.ID == uuid.Nil {
		return shared.NewValidationError("INVALID_REFERENCE", "Movement reference ID cannot be empty")
	}
	return nil
}

// OrderRef builds a reference to a sales order
func OrderRef(id uuid.UUID) MovementRef {
	return MovementRef{Type: ReferenceTypeOrder, ID: id}
}

// PurchaseOrderRef builds a reference to a purchase order
func PurchaseOrderRef(id uuid.UUID) MovementRef {
	return MovementRef{Type: ReferenceTypePurchaseOrder, ID: id}
}

// AppointmentRef builds a reference to an appointment
func AppointmentRef(id uuid.UUID) MovementRef {
	return MovementRef{Type: ReferenceTypeAppointment, ID: id}
}

// AdjustmentRef builds a reference to a manual adjustment
func AdjustmentRef(id uuid.UUID) MovementRef {
	return MovementRef{Type: ReferenceTypeAdjustment, ID: id}
}

// StockMovement is the append-only audit row paired with every stock
// mutation. BalanceAfter snapshots the quantity the item held once the
// movement was applied, so the history can be reconciled without replaying
// from zero.
type StockMovement struct {
	shared.BaseEntity
	CompanyID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	StockItemID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Type         MovementType    `gorm:"type:varchar(10);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	BalanceAfter decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Reference    MovementRef     `gorm:"embedded"`
	CreatedBy    *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

func newMovement(item *StockItem, movementType MovementType, quantity decimal.Decimal, ref MovementRef, createdBy *uuid.UUID) *StockMovement {
	return &StockMovement{
		BaseEntity:   shared.NewBaseEntity(),
		CompanyID:    item.CompanyID,
		ProductID:    item.ProductID,
		StockItemID:  item.ID,
		Type:         movementType,
		Quantity:     quantity,
		BalanceAfter: item.StockQuantity,
		Reference:    ref,
		CreatedBy:    createdBy,
	}
}
