// Package tenantscope applies company scoping to GORM queries.
//
// Every business table carries a company_id column. Queries built through
// Scoped are restricted to the actor's company; super-admins bypass the
// restriction. An actor bound to no company gets a query that matches
// nothing rather than everything.
package tenantscope

import (
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CompanyScope restricts a query to one company's rows
func CompanyScope(companyID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("company_id = ?", companyID)
	}
}

// Scoped returns a query restricted to the rows the actor may see.
// Super-admins see everything; a company-bound actor sees its company's
// rows; an unbound actor sees nothing.
func Scoped(db *gorm.DB, actor shared.Actor) *gorm.DB {
	if actor.SuperAdmin {
		return db
	}
	if !actor.HasCompany() {
		return db.Where("1 = 0")
	}
	return db.Scopes(CompanyScope(actor.Company()))
}

// Owned is the minimal shape ApplyOnCreate needs from a row
type Owned interface {
	GetCompanyID() uuid.UUID
	SetCompanyID(companyID uuid.UUID)
}

// ApplyOnCreate stamps the actor's company onto a row about to be inserted.
// A row already stamped with a different company is a cross-tenant write and
// is rejected. Super-admins may insert pre-stamped rows for any company but
// cannot insert unstamped ones.
func ApplyOnCreate(row Owned, actor shared.Actor) error {
	owner := row.GetCompanyID()

	if actor.SuperAdmin {
		if owner == uuid.Nil {
			return shared.NewValidationError("INVALID_COMPANY", "Company ID cannot be empty")
		}
		return nil
	}

	if !actor.HasCompany() {
		return shared.ErrCrossTenantReference
	}
	if owner == uuid.Nil {
		row.SetCompanyID(actor.Company())
		return nil
	}
	if owner != actor.Company() {
		return shared.ErrCrossTenantReference
	}
	return nil
}
