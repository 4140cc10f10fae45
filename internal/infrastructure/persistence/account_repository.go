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

// GormAccountRepository implements AccountRepository using GORM
type GormAccountRepository struct {
	db *gorm.DB
}

// NewGormAccountRepository creates a new GormAccountRepository
func NewGormAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

// FindByIDForCompany finds an account by ID within a company
func (r *GormAccountRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*accounting.Account, error) {
	var account accounting.Account
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND id = ?", companyID, id).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindByCode finds an account by its code within a company
func (r *GormAccountRepository) FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*accounting.Account, error) {
	var account accounting.Account
	if err := r.db.WithContext(ctx).
		Where("company_id = ? AND code = ?", companyID, code).
		First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// FindAllForActor lists the accounts visible to the actor. Tenant scoping
// happens here: company-bound actors get their own chart, super-admins get
// every tenant's, unbound actors match nothing.
func (r *GormAccountRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]accounting.Account, error) {
	var accounts []accounting.Account
	query := applyFilter(
		tenantscope.Scoped(r.db.WithContext(ctx).Model(&accounting.Account{}), actor),
		filter, accountSortFields,
	)
	if err := query.Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Save creates or updates an account
func (r *GormAccountRepository) Save(ctx context.Context, account *accounting.Account) error {
	return r.db.WithContext(ctx).Save(account).Error
}

// ExistsByCode checks whether an account code is taken within a company
func (r *GormAccountRepository) ExistsByCode(ctx context.Context, companyID uuid.UUID, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&accounting.Account{}).
		Where("company_id = ? AND code = ?", companyID, code).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ accounting.AccountRepository = (*GormAccountRepository)(nil)
