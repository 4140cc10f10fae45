package persistence

import (
	"context"
	"errors"

	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/infrastructure/persistence/tenantscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormJournalEntryRepository implements JournalEntryRepository using GORM.
// Entries are append-only; the repository deliberately has no update or
// delete method.
type GormJournalEntryRepository struct {
	db *gorm.DB
}

// NewGormJournalEntryRepository creates a new GormJournalEntryRepository
func NewGormJournalEntryRepository(db *gorm.DB) *GormJournalEntryRepository {
	return &GormJournalEntryRepository{db: db}
}

// FindByIDForCompany finds a journal entry with its lines within a company
func (r *GormJournalEntryRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*accounting.JournalEntry, error) {
	var entry accounting.JournalEntry
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindBySource finds entries posted for a given source document
func (r *GormJournalEntryRepository) FindBySource(ctx context.Context, companyID uuid.UUID, source accounting.SourceRef) ([]accounting.JournalEntry, error) {
	var entries []accounting.JournalEntry
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		Where("company_id = ? AND source_type = ? AND source_id = ?", companyID, source.Type, source.ID).
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAllForActor lists the journal entries visible to the actor
func (r *GormJournalEntryRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]accounting.JournalEntry, error) {
	var entries []accounting.JournalEntry
	query := applyFilter(
		tenantscope.Scoped(
			r.db.WithContext(ctx).Model(&accounting.JournalEntry{}).Preload("Lines"),
			actor,
		),
		filter, journalEntrySortFields,
	)
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Create persists a journal entry together with its lines
func (r *GormJournalEntryRepository) Create(ctx context.Context, entry *accounting.JournalEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

var _ accounting.JournalEntryRepository = (*GormJournalEntryRepository)(nil)
