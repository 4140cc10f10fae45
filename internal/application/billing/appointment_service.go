package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/billing"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/infrastructure/persistence/tenantscope"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentService raises invoices when clinical appointments complete
type AppointmentService struct {
	scope TransactionScope
	audit shared.AuditRecorder
}

// NewAppointmentService creates a new AppointmentService
func NewAppointmentService(scope TransactionScope) *AppointmentService {
	return &AppointmentService{scope: scope, audit: shared.NoOpAuditRecorder{}}
}

// SetAuditRecorder sets the audit sink
func (s *AppointmentService) SetAuditRecorder(recorder shared.AuditRecorder) {
	s.audit = recorder
}

// ChargeItem is one billable line from a completed appointment
type ChargeItem struct {
	ProductID *uuid.UUID
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CompleteAppointmentInput describes the billing side of a completed appointment
type CompleteAppointmentInput struct {
	AppointmentID uuid.UUID
	CustomerID    uuid.UUID
	Amount        decimal.Decimal
	Items         []ChargeItem
	CompletedAt   time.Time
}

// Complete raises the invoice for a completed appointment. The operation is
// idempotent: if the appointment already has an invoice, that invoice is
// returned and nothing new is written. A positive amount also posts
// Dr Accounts Receivable / Cr Sales Revenue and a customer ledger debit.
func (s *AppointmentService) Complete(ctx context.Context, actor shared.Actor, companyID uuid.UUID, input CompleteAppointmentInput) (*billing.Invoice, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}
	completedAt := input.CompletedAt
	if completedAt.IsZero() {
		completedAt = time.Now()
	}

	var invoice *billing.Invoice
	var created bool
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.InvoiceRepo().FindByAppointmentID(ctx, companyID, input.AppointmentID)
		if err == nil {
			invoice = existing
			return nil
		}
		if !shared.IsKind(err, shared.KindNotFound) {
			return err
		}

		invoice, err = billing.NewInvoice(companyID, input.CustomerID, input.Amount, completedAt)
		if err != nil {
			return err
		}
		if err := invoice.ForAppointment(input.AppointmentID); err != nil {
			return err
		}
		invoice.SetCreatedBy(actor.UserID)
		if err := tenantscope.ApplyOnCreate(invoice, actor); err != nil {
			return err
		}
		for _, item := range input.Items {
			if err := invoice.AddItem(item.ProductID, item.Name, item.Quantity, item.UnitPrice); err != nil {
				return err
			}
		}
		if err := repos.InvoiceRepo().Create(ctx, invoice); err != nil {
			return err
		}
		created = true

		// Zero-amount visits produce an invoice for the record but no
		// postings.
		if invoice.Total.IsZero() {
			return nil
		}

		row, err := ledger.NewCustomerLedgerEntry(companyID, invoice.CustomerID, completedAt,
			ledger.EntryTypeInvoice, invoice.Total, decimal.Zero,
			fmt.Sprintf("Invoice %s", invoice.Number))
		if err != nil {
			return err
		}
		row.WithInvoice(invoice.ID).WithCreatedBy(actor.UserID)
		if err := repos.CustomerLedgerRepo().Append(ctx, row); err != nil {
			return err
		}

		receivable, err := findRequiredAccount(ctx, repos.AccountRepo(), companyID, accounting.CodeAccountsReceivable)
		if err != nil {
			return err
		}
		sales, err := findRequiredAccount(ctx, repos.AccountRepo(), companyID, accounting.CodeSalesRevenue)
		if err != nil {
			return err
		}
		source, err := accounting.NewSourceRef(accounting.SourceTypeInvoice, invoice.ID)
		if err != nil {
			return err
		}
		entry, err := accounting.NewJournalEntry(companyID, completedAt,
			fmt.Sprintf("Invoice %s", invoice.Number), &source,
			[]accounting.LineInput{
				{AccountID: receivable.ID, Debit: invoice.Total},
				{AccountID: sales.ID, Credit: invoice.Total},
			}, actor.UserID)
		if err != nil {
			return err
		}
		return repos.JournalRepo().Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	if created {
		s.audit.Record(ctx, shared.AuditEvent{
			CompanyID:   companyID,
			ActorID:     actor.UserID,
			Action:      "invoice.created",
			SubjectType: "invoice",
			SubjectID:   invoice.ID,
			Properties:  map[string]string{"source": "appointment"},
		})
	}
	return invoice, nil
}
