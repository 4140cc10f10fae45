package accounting

import (
	"context"
	"time"

	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/infrastructure/persistence/tenantscope"
	"github.com/google/uuid"
)

// JournalService posts and reverses journal entries. Entries are immutable:
// there is no update or delete operation, only compensating reversals.
type JournalService struct {
	scope       TransactionScope
	journalRepo accounting.JournalEntryRepository
	audit       shared.AuditRecorder
}

// NewJournalService creates a new JournalService
func NewJournalService(scope TransactionScope, journalRepo accounting.JournalEntryRepository) *JournalService {
	return &JournalService{
		scope:       scope,
		journalRepo: journalRepo,
		audit:       shared.NoOpAuditRecorder{},
	}
}

// SetAuditRecorder sets the audit sink for posted entries
func (s *JournalService) SetAuditRecorder(recorder shared.AuditRecorder) {
	s.audit = recorder
}

// PostEntryInput is the caller-facing shape of a manual journal posting
type PostEntryInput struct {
	EntryDate   time.Time
	Description string
	Source      *accounting.SourceRef
	Lines       []accounting.LineInput
}

// Post atomically writes a balanced journal entry. Every referenced account
// must exist within the tenant's chart; an unbalanced or malformed entry is
// rejected before any write happens.
func (s *JournalService) Post(ctx context.Context, actor shared.Actor, companyID uuid.UUID, input PostEntryInput) (*accounting.JournalEntry, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}

	entryDate := input.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}

	entry, err := accounting.NewJournalEntry(companyID, entryDate, input.Description, input.Source, input.Lines, actor.UserID)
	if err != nil {
		return nil, err
	}
	if err := tenantscope.ApplyOnCreate(entry, actor); err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		seen := make(map[uuid.UUID]bool)
		for _, line := range entry.Lines {
			if seen[line.AccountID] {
				continue
			}
			seen[line.AccountID] = true
			if _, err := repos.AccountRepo().FindByIDForCompany(ctx, companyID, line.AccountID); err != nil {
				return err
			}
		}
		return repos.JournalRepo().Create(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   companyID,
		ActorID:     actor.UserID,
		Action:      "journal.posted",
		SubjectType: "journal_entry",
		SubjectID:   entry.ID,
	})
	return entry, nil
}

// Reverse posts the compensating entry for an existing one: the same lines
// with debits and credits swapped, sourced back to the original entry. The
// original is left untouched.
func (s *JournalService) Reverse(ctx context.Context, actor shared.Actor, companyID, entryID uuid.UUID) (*accounting.JournalEntry, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}

	var reversal *accounting.JournalEntry
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		original, err := repos.JournalRepo().FindByIDForCompany(ctx, companyID, entryID)
		if err != nil {
			return err
		}
		reversal, err = original.ReversalOf(time.Now(), actor.UserID)
		if err != nil {
			return err
		}
		if err := tenantscope.ApplyOnCreate(reversal, actor); err != nil {
			return err
		}
		return repos.JournalRepo().Create(ctx, reversal)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   companyID,
		ActorID:     actor.UserID,
		Action:      "journal.reversed",
		SubjectType: "journal_entry",
		SubjectID:   entryID,
	})
	return reversal, nil
}

// GetEntry loads one journal entry within the tenant's scope
func (s *JournalService) GetEntry(ctx context.Context, actor shared.Actor, companyID, entryID uuid.UUID) (*accounting.JournalEntry, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}
	return s.journalRepo.FindByIDForCompany(ctx, companyID, entryID)
}

// ListEntries returns the journal entries visible to the actor
func (s *JournalService) ListEntries(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]accounting.JournalEntry, error) {
	return s.journalRepo.FindAllForActor(ctx, actor, filter)
}

// FindBySource returns the entries traced to one business object
func (s *JournalService) FindBySource(ctx context.Context, actor shared.Actor, companyID uuid.UUID, source accounting.SourceRef) ([]accounting.JournalEntry, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}
	return s.journalRepo.FindBySource(ctx, companyID, source)
}
