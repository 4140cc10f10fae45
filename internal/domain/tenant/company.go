package tenant

import (
	"fmt"
	"regexp"
	"time"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyStatus represents the lifecycle status of a company (tenant)
type CompanyStatus string

const (
	CompanyStatusTrial     CompanyStatus = "trial"
	CompanyStatusActive    CompanyStatus = "active"
	CompanyStatusSuspended CompanyStatus = "suspended"
)

// IsValid checks if the status is a valid CompanyStatus
func (s CompanyStatus) IsValid() bool {
	switch s {
	case CompanyStatusTrial, CompanyStatusActive, CompanyStatusSuspended:
		return true
	}
	return false
}

// String returns the string representation of CompanyStatus
func (s CompanyStatus) String() string {
	return string(s)
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// Company is the tenant aggregate. Every business entity in the system is
// partitioned by a company id. Companies are never deleted, only suspended.
type Company struct {
	shared.BaseAggregateRoot
	Name        string        `gorm:"type:varchar(255);not null"`
	Slug        string        `gorm:"type:varchar(100);not null;uniqueIndex"`
	Status      CompanyStatus `gorm:"type:varchar(20);not null;index"`
	TrialEndsAt *time.Time
	CreatedBy   *uuid.UUID `gorm:"type:uuid;index"`
}

// SetCreatedBy sets the creator user ID
func (c *Company) SetCreatedBy(userID uuid.UUID) {
	c.CreatedBy = &userID
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a company in trial status
func NewCompany(name, slug string, trialDays int) (*Company, error) {
	if name == "" {
		return nil, shared.NewValidationError("INVALID_NAME", "Company name cannot be empty")
	}
	if !slugPattern.MatchString(slug) {
		return nil, shared.NewValidationError("INVALID_SLUG", "Company slug must be lowercase alphanumeric with dashes")
	}
	if trialDays < 0 {
		return nil, shared.NewValidationError("INVALID_TRIAL", "Trial days cannot be negative")
	}

	c := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Slug:              slug,
		Status:            CompanyStatusTrial,
	}
	if trialDays > 0 {
		trialEnd := time.Now().AddDate(0, 0, trialDays)
		c.TrialEndsAt = &trialEnd
	}
	return c, nil
}

// Activate moves the company out of trial or suspension
func (c *Company) Activate() error {
	if c.Status == CompanyStatusActive {
		return shared.NewConflictError("INVALID_STATE", "Company is already active")
	}
	c.Status = CompanyStatusActive
	c.TrialEndsAt = nil
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// Suspend disables the company. Suspended tenants keep their data but all
// operations against them are rejected by callers.
func (c *Company) Suspend() error {
	if c.Status == CompanyStatusSuspended {
		return shared.NewConflictError("INVALID_STATE", fmt.Sprintf("Company %s is already suspended", c.Slug))
	}
	c.Status = CompanyStatusSuspended
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
	return nil
}

// IsOperational reports whether business operations may run for this tenant
func (c *Company) IsOperational() bool {
	switch c.Status {
	case CompanyStatusActive:
		return true
	case CompanyStatusTrial:
		return c.TrialEndsAt == nil || time.Now().Before(*c.TrialEndsAt)
	}
	return false
}

// TrialExpired reports whether a trial tenant has passed its trial window
func (c *Company) TrialExpired() bool {
	return c.Status == CompanyStatusTrial && c.TrialEndsAt != nil && time.Now().After(*c.TrialEndsAt)
}
