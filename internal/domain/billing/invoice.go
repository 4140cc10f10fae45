package billing

import (
	"fmt"
	"time"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the derived payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "unpaid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusUnpaid, InvoiceStatusPartiallyPaid, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// InvoiceSource identifies which business object an invoice was raised from.
// An invoice has at most one source.
type InvoiceSource string

const (
	InvoiceSourceOrder         InvoiceSource = "order"
	InvoiceSourceAppointment   InvoiceSource = "appointment"
	InvoiceSourceTreatmentPlan InvoiceSource = "treatment_plan"
)

// IsValid checks if the invoice source is valid
func (s InvoiceSource) IsValid() bool {
	switch s {
	case InvoiceSourceOrder, InvoiceSourceAppointment, InvoiceSourceTreatmentPlan:
		return true
	}
	return false
}

// InvoiceItem is a line copied from the source document at invoice creation
type InvoiceItem struct {
	shared.BaseEntity
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID *uuid.UUID      `gorm:"type:uuid;index"`
	Name      string          `gorm:"type:varchar(255);not null"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	LineTotal decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (InvoiceItem) TableName() string {
	return "invoice_items"
}

// Invoice is a billing document whose status is derived from payments and
// refunds, never set directly by callers (except cancellation).
type Invoice struct {
	shared.CompanyAggregateRoot
	Number          string          `gorm:"type:varchar(50);not null;uniqueIndex:idx_invoices_company_number,priority:2"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID         *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_invoices_order,where:order_id IS NOT NULL"`
	AppointmentID   *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_invoices_appointment,where:appointment_id IS NOT NULL"`
	TreatmentPlanID *uuid.UUID      `gorm:"type:uuid;uniqueIndex:idx_invoices_treatment_plan,where:treatment_plan_id IS NOT NULL"`
	Total           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Status          InvoiceStatus   `gorm:"type:varchar(20);not null;index"`
	IssuedAt        time.Time       `gorm:"not null"`
	Items           []InvoiceItem   `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// GenerateInvoiceNumber builds an externally visible invoice number. Unique
// per tenant (timestamp plus an id fragment), not sequential or gap-free.
func GenerateInvoiceNumber(at time.Time, id uuid.UUID) string {
	return fmt.Sprintf("INV-%s-%s", at.Format("20060102150405"), id.String()[:8])
}

// NewInvoice creates an unpaid invoice. Source linkage is set afterwards with
// exactly one of the ForOrder/ForAppointment/ForTreatmentPlan builders.
func NewInvoice(companyID, customerID uuid.UUID, total decimal.Decimal, issuedAt time.Time) (*Invoice, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if total.IsNegative() {
		return nil, shared.NewValidationError("INVALID_TOTAL", "Invoice total cannot be negative")
	}

	inv := &Invoice{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		CustomerID:           customerID,
		Total:                total.Round(2),
		Status:               InvoiceStatusUnpaid,
		IssuedAt:             issuedAt,
	}
	inv.Number = GenerateInvoiceNumber(issuedAt, inv.ID)
	return inv, nil
}

// ForOrder links the invoice to its source order
func (i *Invoice) ForOrder(orderID uuid.UUID) error {
	if i.hasSource() {
		return shared.NewConflictError("INVALID_STATE", "Invoice already has a source")
	}
	i.OrderID = &orderID
	return nil
}

// ForAppointment links the invoice to its source appointment
func (i *Invoice) ForAppointment(appointmentID uuid.UUID) error {
	if i.hasSource() {
		return shared.NewConflictError("INVALID_STATE", "Invoice already has a source")
	}
	i.AppointmentID = &appointmentID
	return nil
}

// ForTreatmentPlan links the invoice to its source treatment plan
func (i *Invoice) ForTreatmentPlan(planID uuid.UUID) error {
	if i.hasSource() {
		return shared.NewConflictError("INVALID_STATE", "Invoice already has a source")
	}
	i.TreatmentPlanID = &planID
	return nil
}

func (i *Invoice) hasSource() bool {
	return i.OrderID != nil || i.AppointmentID != nil || i.TreatmentPlanID != nil
}

// AddItem copies one line onto the invoice
func (i *Invoice) AddItem(productID *uuid.UUID, name string, quantity, unitPrice decimal.Decimal) error {
	if name == "" {
		return shared.NewValidationError("INVALID_NAME", "Invoice item name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewValidationError("INVALID_QUANTITY", "Invoice item quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return shared.NewValidationError("INVALID_PRICE", "Invoice item price cannot be negative")
	}

	i.Items = append(i.Items, InvoiceItem{
		BaseEntity: shared.NewBaseEntity(),
		InvoiceID:  i.ID,
		ProductID:  productID,
		Name:       name,
		Quantity:   quantity,
		UnitPrice:  unitPrice.Round(2),
		LineTotal:  quantity.Mul(unitPrice).Round(2),
	})
	return nil
}

// Cancel marks the invoice cancelled. No payments may be recorded afterwards.
func (i *Invoice) Cancel() error {
	if i.Status == InvoiceStatusCancelled {
		return shared.NewConflictError("INVALID_STATE", "Invoice is already cancelled")
	}
	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return nil
}

// DeriveStatus computes invoice status from the net paid amount. All amounts
// are compared at 2 decimal places.
//
//	net_paid <= 0          -> unpaid
//	0 < net_paid < total   -> partially_paid
//	net_paid >= total      -> paid
func DeriveStatus(total, paymentsApplied, refundsApplied decimal.Decimal) InvoiceStatus {
	netPaid := NetPaid(paymentsApplied, refundsApplied)
	switch {
	case netPaid.LessThanOrEqual(decimal.Zero):
		return InvoiceStatusUnpaid
	case netPaid.LessThan(total.Round(2)):
		return InvoiceStatusPartiallyPaid
	default:
		return InvoiceStatusPaid
	}
}

// NetPaid returns payments applied minus refunds applied, rounded to 2 places
func NetPaid(paymentsApplied, refundsApplied decimal.Decimal) decimal.Decimal {
	return paymentsApplied.Sub(refundsApplied).Round(2)
}

// Remaining returns the invoice total minus net paid, floored at zero
func Remaining(total, paymentsApplied, refundsApplied decimal.Decimal) decimal.Decimal {
	remaining := total.Round(2).Sub(NetPaid(paymentsApplied, refundsApplied))
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ApplyDerivedStatus recomputes and stores the status from ledger totals,
// reporting whether the invoice was touched. Cancelled invoices keep their
// status regardless of payment state and must not be written back: the
// version only moves when this returns true, so callers skip the optimistic
// update on false.
func (i *Invoice) ApplyDerivedStatus(paymentsApplied, refundsApplied decimal.Decimal) bool {
	if i.Status == InvoiceStatusCancelled {
		return false
	}
	i.Status = DeriveStatus(i.Total, paymentsApplied, refundsApplied)
	i.UpdatedAt = time.Now()
	i.IncrementVersion()
	return true
}
