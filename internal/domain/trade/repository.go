package trade

import (
	"context"

	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines persistence operations for sales orders
type OrderRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*Order, error)
	// FindByIDForUpdate loads the order under a row lock inside the current
	// transaction so confirm and cancel are serialized per order.
	FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*Order, error)
	FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]Order, error)
	FindByCustomer(ctx context.Context, companyID, customerID uuid.UUID, filter shared.Filter) ([]Order, error)
	Create(ctx context.Context, order *Order) error
	Update(ctx context.Context, order *Order) error
}

// PurchaseOrderRepository defines persistence operations for purchase orders
type PurchaseOrderRepository interface {
	FindByIDForCompany(ctx context.Context, companyID, id uuid.UUID) (*PurchaseOrder, error)
	FindByIDForUpdate(ctx context.Context, companyID, id uuid.UUID) (*PurchaseOrder, error)
	FindAllForActor(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]PurchaseOrder, error)
	FindBySupplier(ctx context.Context, companyID, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)
	Create(ctx context.Context, po *PurchaseOrder) error
	Update(ctx context.Context, po *PurchaseOrder) error
}

// SupplierPaymentRepository defines persistence operations for supplier payments
type SupplierPaymentRepository interface {
	FindByPurchaseOrder(ctx context.Context, companyID, purchaseOrderID uuid.UUID) ([]SupplierPayment, error)
	Create(ctx context.Context, payment *SupplierPayment) error
}
