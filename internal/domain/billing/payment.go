package billing

import (
	"fmt"
	"time"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod is how a payment was collected
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodCard     PaymentMethod = "card"
	PaymentMethodTransfer PaymentMethod = "transfer"
	PaymentMethodCredit   PaymentMethod = "credit" // drawn from customer credit balance
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodCredit:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentRefund is a partial or full refund recorded against one payment
type PaymentRefund struct {
	shared.BaseEntity
	PaymentID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount     decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	RefundedAt time.Time       `gorm:"not null"`
	CreatedBy  *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PaymentRefund) TableName() string {
	return "payment_refunds"
}

// Payment is money received against an invoice. AppliedAmount is the portion
// counted against the invoice balance; for full application it equals Amount.
type Payment struct {
	shared.CompanyAggregateRoot
	InvoiceID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	AppliedAmount decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Method        PaymentMethod   `gorm:"type:varchar(20);not null"`
	PaidAt        time.Time       `gorm:"not null"`
	ReceivedBy    *uuid.UUID      `gorm:"type:uuid"`
	Refunds       []PaymentRefund `gorm:"foreignKey:PaymentID;references:ID"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment records money received against an invoice. The applied amount
// defaults to the full payment amount.
func NewPayment(companyID, invoiceID uuid.UUID, amount decimal.Decimal, method PaymentMethod, paidAt time.Time) (*Payment, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if invoiceID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("INVALID_METHOD", "Payment method is not valid")
	}

	return &Payment{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		InvoiceID:            invoiceID,
		Amount:               amount.Round(2),
		AppliedAmount:        amount.Round(2),
		Method:               method,
		PaidAt:               paidAt,
	}, nil
}

// SetReceivedBy records the collecting user
func (p *Payment) SetReceivedBy(userID uuid.UUID) {
	p.ReceivedBy = &userID
}

// TotalRefunded returns the sum of all refunds on this payment
func (p *Payment) TotalRefunded() decimal.Decimal {
	total := decimal.Zero
	for _, r := range p.Refunds {
		total = total.Add(r.Amount)
	}
	return total.Round(2)
}

// RefundableRemaining returns how much of this payment can still be refunded
func (p *Payment) RefundableRemaining() decimal.Decimal {
	return p.Amount.Sub(p.TotalRefunded()).Round(2)
}

// Refund records a refund against this payment. The cumulative refunded
// amount may never exceed the payment amount; violations report the exact
// remaining refundable figure so the caller can correct and resubmit.
func (p *Payment) Refund(amount decimal.Decimal, refundedAt time.Time, createdBy uuid.UUID) (*PaymentRefund, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Refund amount must be positive")
	}

	remaining := p.RefundableRemaining()
	if amount.Round(2).GreaterThan(remaining) {
		return nil, shared.NewConflictError("REFUND_EXCEEDS_PAID",
			fmt.Sprintf("Refund exceeds paid amount, remaining=%s", remaining.StringFixed(2)))
	}

	refund := PaymentRefund{
		BaseEntity: shared.NewBaseEntity(),
		PaymentID:  p.ID,
		Amount:     amount.Round(2),
		RefundedAt: refundedAt,
	}
	refund.CreatedBy = &createdBy

	p.Refunds = append(p.Refunds, refund)
	p.UpdatedAt = time.Now()
	p.IncrementVersion()

	return &p.Refunds[len(p.Refunds)-1], nil
}
