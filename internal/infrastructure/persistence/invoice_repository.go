package persistence

import (
	"context"
	"errors"

	"github.com/clinicerp/backend/internal/domain/billing"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/infrastructure/persistence/tenantscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForCompany finds an invoice with its items within a company
func (r *GormInvoiceRepository) FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*billing.Invoice, error) {
	return r.findOne(r.db.WithContext(ctx), companyID, id)
}

// FindByIDForUpdate loads the invoice under a FOR UPDATE row lock.
// Callers run this inside a transaction so status recomputation is
// serialized per invoice.
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*billing.Invoice, error) {
	return r.findOne(
		r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}),
		companyID, id,
	)
}

func (r *GormInvoiceRepository) findOne(query *gorm.DB, companyID, id uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := query.
		Preload("Items").
		Where("company_id = ? AND id = ?", companyID, id).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindByOrderID finds the invoice raised for a sales order
func (r *GormInvoiceRepository) FindByOrderID(ctx context.Context, companyID, orderID uuid.UUID) (*billing.Invoice, error) {
	return r.findBySource(ctx, companyID, "order_id = ?", orderID)
}

// FindByAppointmentID finds the invoice raised for an appointment
func (r *GormInvoiceRepository) FindByAppointmentID(ctx context.Context, companyID, appointmentID uuid.UUID) (*billing.Invoice, error) {
	return r.findBySource(ctx, companyID, "appointment_id = ?", appointmentID)
}

func (r *GormInvoiceRepository) findBySource(ctx context.Context, companyID uuid.UUID, cond string, sourceID uuid.UUID) (*billing.Invoice, error) {
	var invoice billing.Invoice
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Scopes(tenantscope.CompanyScope(companyID)).
		Where(cond, sourceID).
		First(&invoice).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAllForActor lists the invoices visible to the actor
func (r *GormInvoiceRepository) FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]billing.Invoice, error) {
	var invoices []billing.Invoice
	query := applyFilter(
		tenantscope.Scoped(
			r.db.WithContext(ctx).Model(&billing.Invoice{}).Preload("Items"),
			actor,
		),
		filter, invoiceSortFields,
	)
	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// Create persists an invoice together with its items
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

// UpdateStatus persists a recomputed status with an optimistic version check
func (r *GormInvoiceRepository) UpdateStatus(ctx context.Context, invoice *billing.Invoice) error {
	result := r.db.WithContext(ctx).
		Model(invoice).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version-1).
		Updates(map[string]interface{}{
			"status":     invoice.Status,
			"version":    invoice.Version,
			"updated_at": invoice.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
