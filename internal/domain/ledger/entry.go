// Package ledger holds the customer and supplier sub-ledgers: append-only
// debit/credit rows that running-balance statements are folded from. Rows are
// never updated or deleted; corrections append compensating rows.
package ledger

import (
	"time"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryType labels what business event produced a ledger row
type EntryType string

const (
	EntryTypeInvoice         EntryType = "invoice"
	EntryTypePayment         EntryType = "payment"
	EntryTypeRefund          EntryType = "refund"
	EntryTypePurchase        EntryType = "purchase"
	EntryTypeSupplierPayment EntryType = "supplier_payment"
)

// IsValid checks if the entry type is valid
func (t EntryType) IsValid() bool {
	switch t {
	case EntryTypeInvoice, EntryTypePayment, EntryTypeRefund,
		EntryTypePurchase, EntryTypeSupplierPayment:
		return true
	}
	return false
}

// String returns the string representation of EntryType
func (t EntryType) String() string {
	return string(t)
}

// CustomerLedgerEntry is one append-only row on a customer's sub-ledger.
// Balance convention: debits increase what the customer owes, credits reduce
// it, so running balance = sum(debit - credit) in (entry_date, id) order.
type CustomerLedgerEntry struct {
	shared.BaseEntity
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_customer_ledger_scope,priority:1"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_customer_ledger_scope,priority:2"`
	EntryDate   time.Time       `gorm:"type:date;not null;index:idx_customer_ledger_scope,priority:3"`
	Type        EntryType       `gorm:"type:varchar(30);not null"`
	Debit       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Credit      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description string          `gorm:"type:varchar(500)"`
	InvoiceID   *uuid.UUID      `gorm:"type:uuid;index"`
	PaymentID   *uuid.UUID      `gorm:"type:uuid;index"`
	RefundID    *uuid.UUID      `gorm:"type:uuid"`
	CreatedBy   *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (CustomerLedgerEntry) TableName() string {
	return "customer_ledger_entries"
}

// Delta returns debit minus credit for this row
func (e *CustomerLedgerEntry) Delta() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// NewCustomerLedgerEntry creates a customer ledger row
func NewCustomerLedgerEntry(
	companyID, customerID uuid.UUID,
	entryDate time.Time,
	entryType EntryType,
	debit, credit decimal.Decimal,
	description string,
) (*CustomerLedgerEntry, error) {
	if err := validateEntry(companyID, customerID, entryType, debit, credit); err != nil {
		return nil, err
	}
	return &CustomerLedgerEntry{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   companyID,
		CustomerID:  customerID,
		EntryDate:   entryDate,
		Type:        entryType,
		Debit:       debit.Round(2),
		Credit:      credit.Round(2),
		Description: description,
	}, nil
}

// WithInvoice links the row to an invoice
func (e *CustomerLedgerEntry) WithInvoice(invoiceID uuid.UUID) *CustomerLedgerEntry {
	e.InvoiceID = &invoiceID
	return e
}

// WithPayment links the row to a payment
func (e *CustomerLedgerEntry) WithPayment(paymentID uuid.UUID) *CustomerLedgerEntry {
	e.PaymentID = &paymentID
	return e
}

// WithRefund links the row to a payment refund
func (e *CustomerLedgerEntry) WithRefund(refundID uuid.UUID) *CustomerLedgerEntry {
	e.RefundID = &refundID
	return e
}

// WithCreatedBy records the acting user
func (e *CustomerLedgerEntry) WithCreatedBy(userID uuid.UUID) *CustomerLedgerEntry {
	e.CreatedBy = &userID
	return e
}

// SupplierLedgerEntry is one append-only row on a supplier's sub-ledger.
// Convention mirrors the customer side: purchases credit the supplier
// account (we owe more), supplier payments debit it.
type SupplierLedgerEntry struct {
	shared.BaseEntity
	CompanyID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_supplier_ledger_scope,priority:1"`
	SupplierID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_supplier_ledger_scope,priority:2"`
	EntryDate         time.Time       `gorm:"type:date;not null;index:idx_supplier_ledger_scope,priority:3"`
	Type              EntryType       `gorm:"type:varchar(30);not null"`
	Debit             decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Credit            decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Description       string          `gorm:"type:varchar(500)"`
	PurchaseOrderID   *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierPaymentID *uuid.UUID      `gorm:"type:uuid;index"`
	CreatedBy         *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (SupplierLedgerEntry) TableName() string {
	return "supplier_ledger_entries"
}

// Delta returns debit minus credit for this row
func (e *SupplierLedgerEntry) Delta() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// NewSupplierLedgerEntry creates a supplier ledger row
func NewSupplierLedgerEntry(
	companyID, supplierID uuid.UUID,
	entryDate time.Time,
	entryType EntryType,
	debit, credit decimal.Decimal,
	description string,
) (*SupplierLedgerEntry, error) {
	if err := validateEntry(companyID, supplierID, entryType, debit, credit); err != nil {
		return nil, err
	}
	return &SupplierLedgerEntry{
		BaseEntity:  shared.NewBaseEntity(),
		CompanyID:   companyID,
		SupplierID:  supplierID,
		EntryDate:   entryDate,
		Type:        entryType,
		Debit:       debit.Round(2),
		Credit:      credit.Round(2),
		Description: description,
	}, nil
}

// WithPurchaseOrder links the row to a purchase order
func (e *SupplierLedgerEntry) WithPurchaseOrder(poID uuid.UUID) *SupplierLedgerEntry {
	e.PurchaseOrderID = &poID
	return e
}

// WithSupplierPayment links the row to a supplier payment
func (e *SupplierLedgerEntry) WithSupplierPayment(paymentID uuid.UUID) *SupplierLedgerEntry {
	e.SupplierPaymentID = &paymentID
	return e
}

// WithCreatedBy records the acting user
func (e *SupplierLedgerEntry) WithCreatedBy(userID uuid.UUID) *SupplierLedgerEntry {
	e.CreatedBy = &userID
	return e
}

func validateEntry(companyID, partyID uuid.UUID, entryType EntryType, debit, credit decimal.Decimal) error {
	if companyID == uuid.Nil {
		return shared.NewValidationError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if partyID == uuid.Nil {
		return shared.NewValidationError("INVALID_PARTY", "Party ID cannot be empty")
	}
	if !entryType.IsValid() {
		return shared.NewValidationError("INVALID_ENTRY_TYPE", "Ledger entry type is not valid")
	}
	if debit.IsNegative() || credit.IsNegative() {
		return shared.NewValidationError("NEGATIVE_AMOUNT", "Ledger amounts cannot be negative")
	}
	if debit.IsZero() && credit.IsZero() {
		return shared.NewValidationError("EMPTY_ENTRY", "Ledger entry must have a debit or a credit")
	}
	return nil
}
