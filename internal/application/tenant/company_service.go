package tenant

import (
	"context"
	"fmt"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/domain/tenant"
	"github.com/google/uuid"
)

// ChartSeeder creates the well-known accounts a new tenant needs before it
// can post anything. Implemented by the accounting chart service.
type ChartSeeder interface {
	SeedDefaultChart(ctx context.Context, actor shared.Actor, companyID uuid.UUID) error
}

// CompanyService manages tenant registration and lifecycle. Only super
// admins may touch companies; regular actors never cross the tenant boundary.
type CompanyService struct {
	companyRepo tenant.CompanyRepository
	chartSeeder ChartSeeder
	audit       shared.AuditRecorder
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo tenant.CompanyRepository, chartSeeder ChartSeeder) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		chartSeeder: chartSeeder,
		audit:       shared.NoOpAuditRecorder{},
	}
}

// SetAuditRecorder replaces the audit sink
func (s *CompanyService) SetAuditRecorder(audit shared.AuditRecorder) {
	s.audit = audit
}

// RegisterCompanyInput is the caller-facing shape of a new tenant
type RegisterCompanyInput struct {
	Name      string
	Slug      string
	TrialDays int
}

// Register creates a new tenant in trial status and seeds its default chart
// of accounts
func (s *CompanyService) Register(ctx context.Context, actor shared.Actor, input RegisterCompanyInput) (*tenant.Company, error) {
	if !actor.SuperAdmin {
		return nil, shared.ErrCrossTenantReference
	}

	exists, err := s.companyRepo.ExistsBySlug(ctx, input.Slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("SLUG_TAKEN",
			fmt.Sprintf("Company slug %s is already in use", input.Slug))
	}

	company, err := tenant.NewCompany(input.Name, input.Slug, input.TrialDays)
	if err != nil {
		return nil, err
	}
	company.SetCreatedBy(actor.UserID)

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	if err := s.chartSeeder.SeedDefaultChart(ctx, actor, company.ID); err != nil {
		return nil, fmt.Errorf("seeding chart for company %s: %w", company.Slug, err)
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   company.ID,
		ActorID:     actor.UserID,
		Action:      "company.registered",
		SubjectType: "company",
		SubjectID:   company.ID,
		Properties:  map[string]string{"slug": company.Slug},
	})
	return company, nil
}

// Activate moves a tenant out of trial or suspension
func (s *CompanyService) Activate(ctx context.Context, actor shared.Actor, companyID uuid.UUID) (*tenant.Company, error) {
	return s.transition(ctx, actor, companyID, "company.activated", (*tenant.Company).Activate)
}

// Suspend disables a tenant. Data is kept; operations against the tenant are
// rejected until it is activated again.
func (s *CompanyService) Suspend(ctx context.Context, actor shared.Actor, companyID uuid.UUID) (*tenant.Company, error) {
	return s.transition(ctx, actor, companyID, "company.suspended", (*tenant.Company).Suspend)
}

// Get loads one tenant. Regular actors may only read their own company.
func (s *CompanyService) Get(ctx context.Context, actor shared.Actor, companyID uuid.UUID) (*tenant.Company, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}
	return s.companyRepo.FindByID(ctx, companyID)
}

// GetBySlug resolves a tenant by its slug. Super admin only; slugs enumerate
// tenants.
func (s *CompanyService) GetBySlug(ctx context.Context, actor shared.Actor, slug string) (*tenant.Company, error) {
	if !actor.SuperAdmin {
		return nil, shared.ErrCrossTenantReference
	}
	return s.companyRepo.FindBySlug(ctx, slug)
}

func (s *CompanyService) transition(ctx context.Context, actor shared.Actor, companyID uuid.UUID, action string, apply func(*tenant.Company) error) (*tenant.Company, error) {
	if !actor.SuperAdmin {
		return nil, shared.ErrCrossTenantReference
	}

	company, err := s.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := apply(company); err != nil {
		return nil, err
	}
	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   company.ID,
		ActorID:     actor.UserID,
		Action:      action,
		SubjectType: "company",
		SubjectID:   company.ID,
		Properties:  map[string]string{"status": company.Status.String()},
	})
	return company, nil
}
