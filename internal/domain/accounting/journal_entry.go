package accounting

import (
	"fmt"
	"time"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourceType identifies the kind of business object a journal entry traces to
type SourceType string

const (
	SourceTypeInvoice         SourceType = "invoice"
	SourceTypePayment         SourceType = "payment"
	SourceTypeRefund          SourceType = "refund"
	SourceTypePurchaseOrder   SourceType = "purchase_order"
	SourceTypeSupplierPayment SourceType = "supplier_payment"
	SourceTypeJournalEntry    SourceType = "journal_entry" // reversing entries point at the original
	SourceTypeManual          SourceType = "manual"
)

// IsValid checks if the source type is valid
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypeInvoice, SourceTypePayment, SourceTypeRefund,
		SourceTypePurchaseOrder, SourceTypeSupplierPayment,
		SourceTypeJournalEntry, SourceTypeManual:
		return true
	}
	return false
}

// String returns the string representation of SourceType
func (s SourceType) String() string {
	return string(s)
}

// SourceRef ties a journal entry to exactly one business object. It replaces
// a dynamically resolved polymorphic association with an explicit tag + id
// pair that readers resolve themselves.
type SourceRef struct {
	Type SourceType `gorm:"type:varchar(30);column:source_type"`
	ID   uuid.UUID  `gorm:"type:uuid;column:source_id"`
}

// NewSourceRef creates a source reference
func NewSourceRef(sourceType SourceType, id uuid.UUID) (SourceRef, error) {
	if !sourceType.IsValid() {
		return SourceRef{}, shared.NewValidationError("INVALID_SOURCE_TYPE", "Source type is not valid")
	}
	if id == uuid.Nil {
		return SourceRef{}, shared.NewValidationError("INVALID_SOURCE_ID", "Source ID cannot be empty")
	}
	return SourceRef{Type: sourceType, ID: id}, nil
}

// JournalLine is one debit or credit posting within a journal entry.
// Exactly one of Debit/Credit is non-zero on a well-formed line.
type JournalLine struct {
	shared.BaseEntity
	JournalEntryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	AccountID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Debit          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Credit         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (JournalLine) TableName() string {
	return "journal_lines"
}

// LineInput is the caller-facing shape of one posting
type LineInput struct {
	AccountID uuid.UUID
	Debit     decimal.Decimal
	Credit    decimal.Decimal
}

// JournalEntry is an immutable double-entry bookkeeping record. There is no
// update or delete path; corrections are made with reversing entries.
type JournalEntry struct {
	shared.CompanyAggregateRoot
	EntryDate   time.Time  `gorm:"type:date;not null;index"`
	Description string     `gorm:"type:varchar(500)"`
	SourceRef   *SourceRef `gorm:"embedded"`
	Lines       []JournalLine `gorm:"foreignKey:JournalEntryID;references:ID"`
}

// TableName returns the table name for GORM
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// NewJournalEntry builds a balanced journal entry or fails without side
// effects. Balance is checked at 2 decimal places: round(sum(debit), 2) must
// equal round(sum(credit), 2) across all lines.
func NewJournalEntry(
	companyID uuid.UUID,
	entryDate time.Time,
	description string,
	source *SourceRef,
	lines []LineInput,
	createdBy uuid.UUID,
) (*JournalEntry, error) {
	if companyID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_COMPANY", "Company ID cannot be empty")
	}
	if len(lines) < 2 {
		return nil, shared.NewValidationError("TOO_FEW_LINES", "A journal entry needs at least two lines")
	}
	if source != nil && !source.Type.IsValid() {
		return nil, shared.NewValidationError("INVALID_SOURCE_TYPE", "Source type is not valid")
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range lines {
		if line.AccountID == uuid.Nil {
			return nil, shared.NewValidationError("INVALID_ACCOUNT", fmt.Sprintf("Line %d has no account", i+1))
		}
		if line.Debit.IsNegative() || line.Credit.IsNegative() {
			return nil, shared.NewValidationError("NEGATIVE_AMOUNT", fmt.Sprintf("Line %d has a negative amount", i+1))
		}
		if line.Debit.IsZero() == line.Credit.IsZero() {
			return nil, shared.NewValidationError("AMBIGUOUS_LINE", fmt.Sprintf("Line %d must have exactly one of debit or credit set", i+1))
		}
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}

	if !totalDebit.Round(2).Equal(totalCredit.Round(2)) {
		return nil, &shared.DomainError{
			Kind: shared.KindConflict,
			Code: "UNBALANCED_ENTRY",
			Message: fmt.Sprintf("Unbalanced entry: debits %s do not equal credits %s",
				totalDebit.Round(2).StringFixed(2), totalCredit.Round(2).StringFixed(2)),
		}
	}

	entry := &JournalEntry{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		EntryDate:            entryDate,
		Description:          description,
		SourceRef:            source,
	}
	entry.SetCreatedBy(createdBy)

	for _, line := range lines {
		entry.Lines = append(entry.Lines, JournalLine{
			BaseEntity:     shared.NewBaseEntity(),
			JournalEntryID: entry.ID,
			AccountID:      line.AccountID,
			Debit:          line.Debit.Round(2),
			Credit:         line.Credit.Round(2),
		})
	}

	return entry, nil
}

// TotalDebit returns the sum of all debit amounts
func (e *JournalEntry) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total.Round(2)
}

// TotalCredit returns the sum of all credit amounts
func (e *JournalEntry) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total.Round(2)
}

// IsBalanced reports whether debits equal credits at 2 decimal places
func (e *JournalEntry) IsBalanced() bool {
	return e.TotalDebit().Equal(e.TotalCredit())
}

// ReversalOf builds the compensating entry for this one: every line's debit
// and credit are swapped and the new entry's source points back here.
func (e *JournalEntry) ReversalOf(entryDate time.Time, createdBy uuid.UUID) (*JournalEntry, error) {
	lines := make([]LineInput, 0, len(e.Lines))
	for _, line := range e.Lines {
		lines = append(lines, LineInput{
			AccountID: line.AccountID,
			Debit:     line.Credit,
			Credit:    line.Debit,
		})
	}
	source, err := NewSourceRef(SourceTypeJournalEntry, e.ID)
	if err != nil {
		return nil, err
	}
	return NewJournalEntry(
		e.CompanyID,
		entryDate,
		fmt.Sprintf("Reversal of %s", e.ID),
		&source,
		lines,
		createdBy,
	)
}
