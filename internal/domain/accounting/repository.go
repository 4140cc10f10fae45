package accounting

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// AccountRepository defines persistence operations for chart-of-accounts rows
type AccountRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Account, error)
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Account, error)
	// FindAllForActor lists the rows the actor may see: a company-bound
	// actor gets its own company's rows, a super-admin gets every tenant's.
	FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]Account, error)
	Save(ctx context.Context, account *Account) error
	ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error)
}

// JournalEntryRepository defines persistence operations for journal entries.
// Entries are append-only: there is deliberately no update or delete method.
type JournalEntryRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*JournalEntry, error)
	FindBySource(ctx context.Context, companyID uuid.UUID, source SourceRef) ([]JournalEntry, error)
	FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]JournalEntry, error)
	Create(ctx context.Context, entry *JournalEntry) error
}
