package billing

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Invoice, error)
	// FindByIDForUpdate loads the invoice under a row lock inside the
	// current transaction so status recomputation is serialized.
	FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*Invoice, error)
	FindByOrderID(ctx context.Context, companyID, orderID uuid.UUID) (*Invoice, error)
	FindByAppointmentID(ctx context.Context, companyID, appointmentID uuid.UUID) (*Invoice, error)
	FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]Invoice, error)
	Create(ctx context.Context, invoice *Invoice) error
	UpdateStatus(ctx context.Context, invoice *Invoice) error
}

// PaymentRepository defines persistence operations for payments and refunds
type PaymentRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Payment, error)
	// FindByIDForUpdate loads the payment and its refunds under a row lock so
	// concurrent refunds never evaluate the remaining cap on stale data.
	FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*Payment, error)
	FindByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) ([]Payment, error)
	Create(ctx context.Context, payment *Payment) error
	AppendRefund(ctx context.Context, refund *PaymentRefund) error
	// SumAppliedByInvoice returns the sum of applied amounts over the invoice's payments
	SumAppliedByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) (decimal.Decimal, error)
	// SumRefundsByInvoice returns the sum of refund amounts over the invoice's payments
	SumRefundsByInvoice(ctx context.Context, companyID, invoiceID uuid.UUID) (decimal.Decimal, error)
}
