package trade

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicerp/backend/internal/domain/billing"
	"github.com/clinicerp/backend/internal/domain/inventory"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/domain/trade"
	"github.com/clinicerp/backend/internal/infrastructure/persistence/tenantscope"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderService drives the sales order lifecycle: creation reserves stock,
// confirmation raises the invoice, cancellation returns stock.
type OrderService struct {
	scope TransactionScope
	audit shared.AuditRecorder
}

// NewOrderService creates a new OrderService
func NewOrderService(scope TransactionScope) *OrderService {
	return &OrderService{scope: scope, audit: shared.NoOpAuditRecorder{}}
}

// SetAuditRecorder sets the audit sink
func (s *OrderService) SetAuditRecorder(recorder shared.AuditRecorder) {
	s.audit = recorder
}

// OrderItemInput is one requested product line
type OrderItemInput struct {
	ProductID uuid.UUID
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateOrderInput is the caller-facing shape of a new order
type CreateOrderInput struct {
	CustomerID uuid.UUID
	Items      []OrderItemInput
}

// Create opens a pending order and decrements stock for every line. Each
// stock row is loaded under a row lock before the on-hand check, so two
// concurrent orders can never oversell the same product. Any line failing
// the check rolls the whole order back.
func (s *OrderService) Create(ctx context.Context, actor shared.Actor, companyID uuid.UUID, input CreateOrderInput) (*trade.Order, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}
	if len(input.Items) == 0 {
		return nil, shared.NewValidationError("EMPTY_ORDER", "Order must have at least one item")
	}

	var order *trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		order, err = trade.NewOrder(companyID, input.CustomerID)
		if err != nil {
			return err
		}
		order.SetCreatedBy(actor.UserID)
		if err := tenantscope.ApplyOnCreate(order, actor); err != nil {
			return err
		}

		for _, item := range input.Items {
			if err := order.AddItem(item.ProductID, item.Name, item.Quantity, item.UnitPrice); err != nil {
				return err
			}
			if err := s.issueStock(ctx, repos, companyID, item.ProductID, item.Quantity,
				inventory.OrderRef(order.ID), actor.UserID); err != nil {
				return err
			}
		}

		return repos.OrderRepo().Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   companyID,
		ActorID:     actor.UserID,
		Action:      "order.created",
		SubjectType: "order",
		SubjectID:   order.ID,
	})
	return order, nil
}

// Confirm finalizes a pending order: the total is recomputed from its items
// and an unpaid invoice is raised with a matching customer ledger debit. An
// order that already has an invoice cannot be confirmed again.
func (s *OrderService) Confirm(ctx context.Context, actor shared.Actor, companyID, orderID uuid.UUID) (*billing.Invoice, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}

	var invoice *billing.Invoice
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForUpdate(ctx, companyID, orderID)
		if err != nil {
			return err
		}

		if _, err := repos.InvoiceRepo().FindByOrderID(ctx, companyID, orderID); err == nil {
			return shared.NewConflictError("ALREADY_INVOICED", "Order already has an invoice")
		} else if !shared.IsKind(err, shared.KindNotFound) {
			return err
		}

		if err := order.Confirm(); err != nil {
			return err
		}
		if err := repos.OrderRepo().Update(ctx, order); err != nil {
			return err
		}

		now := time.Now()
		invoice, err = billing.NewInvoice(companyID, order.CustomerID, order.Total, now)
		if err != nil {
			return err
		}
		if err := invoice.ForOrder(order.ID); err != nil {
			return err
		}
		invoice.SetCreatedBy(actor.UserID)
		if err := tenantscope.ApplyOnCreate(invoice, actor); err != nil {
			return err
		}
		for _, item := range order.Items {
			productID := item.ProductID
			if err := invoice.AddItem(&productID, item.Name, item.Quantity, item.UnitPrice); err != nil {
				return err
			}
		}
		if err := repos.InvoiceRepo().Create(ctx, invoice); err != nil {
			return err
		}

		row, err := ledger.NewCustomerLedgerEntry(companyID, order.CustomerID, now,
			ledger.EntryTypeInvoice, invoice.Total, decimal.Zero,
			fmt.Sprintf("Invoice %s", invoice.Number))
		if err != nil {
			return err
		}
		row.WithInvoice(invoice.ID).WithCreatedBy(actor.UserID)
		return repos.CustomerLedgerRepo().Append(ctx, row)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   companyID,
		ActorID:     actor.UserID,
		Action:      "order.confirmed",
		SubjectType: "order",
		SubjectID:   orderID,
	})
	return invoice, nil
}

// Cancel voids a pending order and returns its stock with in-movements.
// The double-cancel guard in the aggregate keeps stock from being restored
// twice.
func (s *OrderService) Cancel(ctx context.Context, actor shared.Actor, companyID, orderID uuid.UUID) error {
	if !actor.CanAccess(companyID) {
		return shared.ErrCrossTenantReference
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		order, err := repos.OrderRepo().FindByIDForUpdate(ctx, companyID, orderID)
		if err != nil {
			return err
		}
		if err := order.Cancel(); err != nil {
			return err
		}

		for _, item := range order.Items {
			stock, err := repos.StockItemRepo().FindByProductForUpdate(ctx, companyID, item.ProductID)
			if err != nil {
				return err
			}
			movement, err := stock.Increase(item.Quantity, inventory.OrderRef(order.ID), &actor.UserID)
			if err != nil {
				return err
			}
			if err := repos.StockItemRepo().Save(ctx, stock); err != nil {
				return err
			}
			if err := repos.StockMovementRepo().Append(ctx, movement); err != nil {
				return err
			}
		}

		return repos.OrderRepo().Update(ctx, order)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   companyID,
		ActorID:     actor.UserID,
		Action:      "order.cancelled",
		SubjectType: "order",
		SubjectID:   orderID,
	})
	return nil
}

// List returns the orders visible to the actor
func (s *OrderService) List(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]trade.Order, error) {
	var orders []trade.Order
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		orders, err = repos.OrderRepo().FindAllForActor(ctx, actor, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// issueStock locks the product's stock row, checks the on-hand balance and
// writes the decrement plus its movement. A product with no stock row has
// nothing on hand.
func (s *OrderService) issueStock(
	ctx context.Context,
	repos TransactionalRepositories,
	companyID, productID uuid.UUID,
	quantity decimal.Decimal,
	ref inventory.MovementRef,
	userID uuid.UUID,
) error {
	stock, err := repos.StockItemRepo().FindByProductForUpdate(ctx, companyID, productID)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return shared.NewConflictError("INSUFFICIENT_STOCK",
				fmt.Sprintf("Insufficient stock: product %s has none on hand", productID))
		}
		return err
	}
	movement, err := stock.Decrease(quantity, ref, &userID)
	if err != nil {
		return err
	}
	if err := repos.StockItemRepo().Save(ctx, stock); err != nil {
		return err
	}
	return repos.StockMovementRepo().Append(ctx, movement)
}
