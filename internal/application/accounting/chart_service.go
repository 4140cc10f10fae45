package accounting

import (
	"context"
	"fmt"

	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/infrastructure/persistence/tenantscope"
	"github.com/google/uuid"
)

// ChartService manages a tenant's chart of accounts
type ChartService struct {
	accountRepo accounting.AccountRepository
}

// NewChartService creates a new ChartService
func NewChartService(accountRepo accounting.AccountRepository) *ChartService {
	return &ChartService{accountRepo: accountRepo}
}

// CreateAccountInput is the caller-facing shape of a new account
type CreateAccountInput struct {
	Code     string
	Name     string
	Type     accounting.AccountType
	ParentID *uuid.UUID
}

// SeedDefaultChart creates the well-known accounts for a tenant. It is
// idempotent: accounts whose code already exists are left untouched, so it is
// safe to run again for tenants created before a code was added to the
// default chart.
func (s *ChartService) SeedDefaultChart(ctx context.Context, actor shared.Actor, companyID uuid.UUID) error {
	if !actor.CanAccess(companyID) {
		return shared.ErrCrossTenantReference
	}

	for _, def := range accounting.DefaultChart() {
		exists, err := s.accountRepo.ExistsByCode(ctx, companyID, def.Code)
		if err != nil {
			return fmt.Errorf("checking account code %s: %w", def.Code, err)
		}
		if exists {
			continue
		}

		account, err := accounting.NewAccount(companyID, def.Code, def.Name, def.Type)
		if err != nil {
			return err
		}
		account.SetCreatedBy(actor.UserID)
		if err := tenantscope.ApplyOnCreate(account, actor); err != nil {
			return err
		}
		if err := s.accountRepo.Save(ctx, account); err != nil {
			return fmt.Errorf("seeding account %s: %w", def.Code, err)
		}
	}
	return nil
}

// CreateAccount adds an account to the tenant's chart
func (s *ChartService) CreateAccount(ctx context.Context, actor shared.Actor, companyID uuid.UUID, input CreateAccountInput) (*accounting.Account, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}

	exists, err := s.accountRepo.ExistsByCode(ctx, companyID, input.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewConflictError("ACCOUNT_CODE_TAKEN",
			fmt.Sprintf("Account code %s is already in use", input.Code))
	}

	account, err := accounting.NewAccount(companyID, input.Code, input.Name, input.Type)
	if err != nil {
		return nil, err
	}
	account.SetCreatedBy(actor.UserID)
	if err := tenantscope.ApplyOnCreate(account, actor); err != nil {
		return nil, err
	}

	if input.ParentID != nil {
		parent, err := s.accountRepo.FindByIDForCompany(ctx, companyID, *input.ParentID)
		if err != nil {
			return nil, err
		}
		if err := account.SetParent(parent); err != nil {
			return nil, err
		}
	}

	if err := s.accountRepo.Save(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetAccount loads one account within the tenant's scope
func (s *ChartService) GetAccount(ctx context.Context, actor shared.Actor, companyID, accountID uuid.UUID) (*accounting.Account, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}
	return s.accountRepo.FindByIDForCompany(ctx, companyID, accountID)
}

// ListAccounts returns the accounts visible to the actor. A company-bound
// actor gets its own chart, a super-admin gets every tenant's, and an actor
// bound to no company gets nothing.
func (s *ChartService) ListAccounts(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]accounting.Account, error) {
	return s.accountRepo.FindAllForActor(ctx, actor, filter)
}
