package shared

import "github.com/google/uuid"

// Actor is the authenticated identity on whose behalf a core operation runs.
// The core never authenticates; callers supply the actor explicitly on every
// operation so no ambient request state is consulted.
type Actor struct {
	UserID     uuid.UUID
	CompanyID  *uuid.UUID
	SuperAdmin bool
}

// NewActor creates an actor belonging to a company
func NewActor(userID, companyID uuid.UUID) Actor {
	return Actor{UserID: userID, CompanyID: &companyID}
}

// NewSuperAdmin creates an actor that bypasses tenant scoping
func NewSuperAdmin(userID uuid.UUID) Actor {
	return Actor{UserID: userID, SuperAdmin: true}
}

// HasCompany reports whether the actor is bound to a company
func (a Actor) HasCompany() bool {
	return a.CompanyID != nil && *a.CompanyID != uuid.Nil
}

// Company returns the actor's company id, or uuid.Nil when unbound
func (a Actor) Company() uuid.UUID {
	if a.CompanyID == nil {
		return uuid.Nil
	}
	return *a.CompanyID
}

// CanAccess reports whether the actor may touch rows owned by companyID.
// Super-admins bypass scoping entirely.
func (a Actor) CanAccess(companyID uuid.UUID) bool {
	if a.SuperAdmin {
		return true
	}
	return a.HasCompany() && a.Company() == companyID
}
