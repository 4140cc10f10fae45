package persistence

import (
	"context"
	"errors"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/domain/tenant"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCompanyRepository implements CompanyRepository using GORM.
// Companies are the tenant roots, so this repository is intentionally not
// company-scoped.
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*tenant.Company, error) {
	var company tenant.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindBySlug finds a company by its slug
func (r *GormCompanyRepository) FindBySlug(ctx context.Context, slug string) (*tenant.Company, error) {
	var company tenant.Company
	if err := r.db.WithContext(ctx).First(&company, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *tenant.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// ExistsBySlug checks whether a slug is taken
func (r *GormCompanyRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&tenant.Company{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ tenant.CompanyRepository = (*GormCompanyRepository)(nil)
