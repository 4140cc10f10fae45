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

// PaymentService records payments and refunds against invoices. Each
// operation is a single transaction over the payment row, the customer
// ledger, the journal and the invoice's derived status.
type PaymentService struct {
	scope TransactionScope
	audit shared.AuditRecorder
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(scope TransactionScope) *PaymentService {
	return &PaymentService{scope: scope, audit: shared.NoOpAuditRecorder{}}
}

// SetAuditRecorder sets the audit sink
func (s *PaymentService) SetAuditRecorder(recorder shared.AuditRecorder) {
	s.audit = recorder
}

// RecordPaymentInput is the caller-facing shape of a payment
type RecordPaymentInput struct {
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	Method    billing.PaymentMethod
	PaidAt    time.Time
}

// RefundInput is the caller-facing shape of a refund
type RefundInput struct {
	PaymentID  uuid.UUID
	Amount     decimal.Decimal
	RefundedAt time.Time
}

// RecordPayment applies money to an invoice. The invoice row is locked for
// the duration so concurrent payments against the same invoice serialize;
// the amount may not exceed the invoice's remaining balance.
func (s *PaymentService) RecordPayment(ctx context.Context, actor shared.Actor, companyID uuid.UUID, input RecordPaymentInput) (*billing.Payment, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}
	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	var payment *billing.Payment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		invoice, err := repos.InvoiceRepo().FindByIDForUpdate(ctx, companyID, input.InvoiceID)
		if err != nil {
			return err
		}
		if invoice.Status == billing.InvoiceStatusCancelled {
			return shared.NewConflictError("INVALID_STATE", "Cannot record a payment against a cancelled invoice")
		}

		applied, err := repos.PaymentRepo().SumAppliedByInvoice(ctx, companyID, invoice.ID)
		if err != nil {
			return err
		}
		refunded, err := repos.PaymentRepo().SumRefundsByInvoice(ctx, companyID, invoice.ID)
		if err != nil {
			return err
		}
		remaining := billing.Remaining(invoice.Total, applied, refunded)
		if input.Amount.Round(2).GreaterThan(remaining) {
			return shared.NewConflictError("PAYMENT_EXCEEDS_REMAINING",
				fmt.Sprintf("Payment exceeds remaining balance, remaining=%s", remaining.StringFixed(2)))
		}

		payment, err = billing.NewPayment(companyID, invoice.ID, input.Amount, input.Method, paidAt)
		if err != nil {
			return err
		}
		payment.SetReceivedBy(actor.UserID)
		payment.SetCreatedBy(actor.UserID)
		if err := tenantscope.ApplyOnCreate(payment, actor); err != nil {
			return err
		}
		if err := repos.PaymentRepo().Create(ctx, payment); err != nil {
			return err
		}

		row, err := ledger.NewCustomerLedgerEntry(companyID, invoice.CustomerID, paidAt,
			ledger.EntryTypePayment, decimal.Zero, payment.AppliedAmount,
			fmt.Sprintf("Payment (%s) for invoice %s", input.Method, invoice.Number))
		if err != nil {
			return err
		}
		row.WithInvoice(invoice.ID).WithPayment(payment.ID).WithCreatedBy(actor.UserID)
		if err := repos.CustomerLedgerRepo().Append(ctx, row); err != nil {
			return err
		}

		if err := s.postJournal(ctx, repos, companyID, paidAt,
			fmt.Sprintf("Payment for invoice %s", invoice.Number),
			accounting.SourceTypePayment, payment.ID,
			accounting.CodeCashBank, accounting.CodeAccountsReceivable,
			payment.AppliedAmount, actor.UserID); err != nil {
			return err
		}

		if invoice.ApplyDerivedStatus(applied.Add(payment.AppliedAmount), refunded) {
			return repos.InvoiceRepo().UpdateStatus(ctx, invoice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   companyID,
		ActorID:     actor.UserID,
		Action:      "payment.recorded",
		SubjectType: "payment",
		SubjectID:   payment.ID,
		Properties:  map[string]string{"amount": payment.Amount.StringFixed(2)},
	})
	return payment, nil
}

// Refund returns money on a payment. The payment row is locked so the
// cumulative-refund cap is evaluated on current data; the invoice status is
// recomputed from the new ledger totals in the same transaction.
func (s *PaymentService) Refund(ctx context.Context, actor shared.Actor, companyID uuid.UUID, input RefundInput) (*billing.PaymentRefund, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}
	refundedAt := input.RefundedAt
	if refundedAt.IsZero() {
		refundedAt = time.Now()
	}

	var refund *billing.PaymentRefund
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		payment, err := repos.PaymentRepo().FindByIDForUpdate(ctx, companyID, input.PaymentID)
		if err != nil {
			return err
		}

		refund, err = payment.Refund(input.Amount, refundedAt, actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.PaymentRepo().AppendRefund(ctx, refund); err != nil {
			return err
		}

		invoice, err := repos.InvoiceRepo().FindByIDForUpdate(ctx, companyID, payment.InvoiceID)
		if err != nil {
			return err
		}

		row, err := ledger.NewCustomerLedgerEntry(companyID, invoice.CustomerID, refundedAt,
			ledger.EntryTypeRefund, refund.Amount, decimal.Zero,
			fmt.Sprintf("Refund on invoice %s", invoice.Number))
		if err != nil {
			return err
		}
		row.WithInvoice(invoice.ID).WithPayment(payment.ID).WithRefund(refund.ID).WithCreatedBy(actor.UserID)
		if err := repos.CustomerLedgerRepo().Append(ctx, row); err != nil {
			return err
		}

		if err := s.postJournal(ctx, repos, companyID, refundedAt,
			fmt.Sprintf("Refund on invoice %s", invoice.Number),
			accounting.SourceTypeRefund, refund.ID,
			accounting.CodeAccountsReceivable, accounting.CodeCashBank,
			refund.Amount, actor.UserID); err != nil {
			return err
		}

		// AppendRefund runs inside this transaction, so the sums already
		// include the new refund row.
		applied, err := repos.PaymentRepo().SumAppliedByInvoice(ctx, companyID, invoice.ID)
		if err != nil {
			return err
		}
		refunded, err := repos.PaymentRepo().SumRefundsByInvoice(ctx, companyID, invoice.ID)
		if err != nil {
			return err
		}
		if invoice.ApplyDerivedStatus(applied, refunded) {
			return repos.InvoiceRepo().UpdateStatus(ctx, invoice)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   companyID,
		ActorID:     actor.UserID,
		Action:      "payment.refunded",
		SubjectType: "payment",
		SubjectID:   input.PaymentID,
		Properties:  map[string]string{"amount": refund.Amount.StringFixed(2)},
	})
	return refund, nil
}

// ListInvoices returns the invoices visible to the actor
func (s *PaymentService) ListInvoices(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		invoices, err = repos.InvoiceRepo().FindAllForActor(ctx, actor, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// postJournal writes a two-line entry debiting one well-known account and
// crediting another. A tenant missing either account is misconfigured.
func (s *PaymentService) postJournal(
	ctx context.Context,
	repos TransactionalRepositories,
	companyID uuid.UUID,
	entryDate time.Time,
	description string,
	sourceType accounting.SourceType,
	sourceID uuid.UUID,
	debitCode, creditCode string,
	amount decimal.Decimal,
	createdBy uuid.UUID,
) error {
	debitAccount, err := findRequiredAccount(ctx, repos.AccountRepo(), companyID, debitCode)
	if err != nil {
		return err
	}
	creditAccount, err := findRequiredAccount(ctx, repos.AccountRepo(), companyID, creditCode)
	if err != nil {
		return err
	}

	source, err := accounting.NewSourceRef(sourceType, sourceID)
	if err != nil {
		return err
	}
	entry, err := accounting.NewJournalEntry(companyID, entryDate, description, &source,
		[]accounting.LineInput{
			{AccountID: debitAccount.ID, Debit: amount},
			{AccountID: creditAccount.ID, Credit: amount},
		}, createdBy)
	if err != nil {
		return err
	}
	return repos.JournalRepo().Create(ctx, entry)
}

func findRequiredAccount(ctx context.Context, repo accounting.AccountRepository, companyID uuid.UUID, code string) (*accounting.Account, error) {
	account, err := repo.FindByCode(ctx, companyID, code)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return nil, shared.NewConfigurationError("MISSING_ACCOUNT",
				fmt.Sprintf("Tenant chart of accounts is missing account %s", code))
		}
		return nil, err
	}
	return account, nil
}
