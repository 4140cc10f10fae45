package tenant

import (
	"context"

	"github.com/google/uuid"
)

// CompanyRepository defines persistence operations for companies
type CompanyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	FindBySlug(ctx context.Context, slug string) (*Company, error)
	Save(ctx context.Context, company *Company) error
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}
