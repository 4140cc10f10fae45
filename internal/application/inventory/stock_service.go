package inventory

import (
	"context"
	"fmt"

	"github.com/clinicerp/backend/internal/domain/inventory"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/infrastructure/persistence/tenantscope"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockService exposes direct stock mutations (receipts, issues, manual
// adjustments) outside of the order and purchasing flows. Every mutation
// locks the stock row and writes its paired movement in one transaction.
type StockService struct {
	scope        TransactionScope
	stockRepo    inventory.StockItemRepository
	movementRepo inventory.StockMovementRepository
	audit        shared.AuditRecorder
}

// NewStockService creates a new StockService
func NewStockService(
	scope TransactionScope,
	stockRepo inventory.StockItemRepository,
	movementRepo inventory.StockMovementRepository,
) *StockService {
	return &StockService{
		scope:        scope,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
		audit:        shared.NoOpAuditRecorder{},
	}
}

// SetAuditRecorder sets the audit sink
func (s *StockService) SetAuditRecorder(recorder shared.AuditRecorder) {
	s.audit = recorder
}

// MutationInput is the caller-facing shape of one stock mutation
type MutationInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	Reference inventory.MovementRef
}

// ReconciliationResult compares a stock item's stored quantity against its
// movement history
type ReconciliationResult struct {
	ProductID uuid.UUID
	Stored    decimal.Decimal
	Replayed  decimal.Decimal
	InSync    bool
}

// Receive adds stock for a product, creating the stock row on first receipt
func (s *StockService) Receive(ctx context.Context, actor shared.Actor, companyID uuid.UUID, input MutationInput) (*inventory.StockMovement, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}

	var movement *inventory.StockMovement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		stock, err := repos.StockItemRepo().FindByProductForUpdate(ctx, companyID, input.ProductID)
		if err != nil {
			if !shared.IsKind(err, shared.KindNotFound) {
				return err
			}
			stock, err = inventory.NewStockItem(companyID, input.ProductID)
			if err != nil {
				return err
			}
			if err := tenantscope.ApplyOnCreate(stock, actor); err != nil {
				return err
			}
			if err := repos.StockItemRepo().Create(ctx, stock); err != nil {
				return err
			}
		}

		movement, err = stock.Increase(input.Quantity, input.Reference, &actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.StockItemRepo().Save(ctx, stock); err != nil {
			return err
		}
		return repos.StockMovementRepo().Append(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   companyID,
		ActorID:     actor.UserID,
		Action:      "stock.received",
		SubjectType: "stock_movement",
		SubjectID:   movement.ID,
		Properties: map[string]string{
			"product_id": input.ProductID.String(),
			"quantity":   input.Quantity.String(),
		},
	})
	return movement, nil
}

// Issue removes stock for a product. The row lock serializes the
// check-then-decrement, so the balance never goes negative under concurrent
// issues.
func (s *StockService) Issue(ctx context.Context, actor shared.Actor, companyID uuid.UUID, input MutationInput) (*inventory.StockMovement, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}

	var movement *inventory.StockMovement
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		stock, err := repos.StockItemRepo().FindByProductForUpdate(ctx, companyID, input.ProductID)
		if err != nil {
			if shared.IsKind(err, shared.KindNotFound) {
				return shared.NewConflictError("INSUFFICIENT_STOCK",
					fmt.Sprintf("Insufficient stock: product %s has none on hand", input.ProductID))
			}
			return err
		}

		movement, err = stock.Decrease(input.Quantity, input.Reference, &actor.UserID)
		if err != nil {
			return err
		}
		if err := repos.StockItemRepo().Save(ctx, stock); err != nil {
			return err
		}
		return repos.StockMovementRepo().Append(ctx, movement)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   companyID,
		ActorID:     actor.UserID,
		Action:      "stock.issued",
		SubjectType: "stock_movement",
		SubjectID:   movement.ID,
		Properties: map[string]string{
			"product_id": input.ProductID.String(),
			"quantity":   input.Quantity.String(),
		},
	})
	return movement, nil
}

// List returns the stock rows visible to the actor
func (s *StockService) List(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]inventory.StockItem, error) {
	return s.stockRepo.FindAllForActor(ctx, actor, filter)
}

// OnHand returns the stored quantity for a product. A product without a
// stock row has zero on hand.
func (s *StockService) OnHand(ctx context.Context, actor shared.Actor, companyID, productID uuid.UUID) (decimal.Decimal, error) {
	if !actor.CanAccess(companyID) {
		return decimal.Zero, shared.ErrCrossTenantReference
	}
	stock, err := s.stockRepo.FindByProduct(ctx, companyID, productID)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return stock.StockQuantity, nil
}

// Movements returns the movement history for a product
func (s *StockService) Movements(ctx context.Context, actor shared.Actor, companyID, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}
	return s.movementRepo.FindByProduct(ctx, companyID, productID, filter)
}

// Reconcile replays the full movement history for a product and compares it
// against the stored quantity. Out-of-sync items indicate a mutation that
// bypassed the movement pairing.
func (s *StockService) Reconcile(ctx context.Context, actor shared.Actor, companyID, productID uuid.UUID) (*ReconciliationResult, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}

	stock, err := s.stockRepo.FindByProduct(ctx, companyID, productID)
	if err != nil {
		return nil, err
	}
	movements, err := s.movementRepo.FindByProduct(ctx, companyID, productID, shared.Filter{})
	if err != nil {
		return nil, err
	}

	replayed := inventory.ReconcileQuantity(decimal.Zero, movements)
	return &ReconciliationResult{
		ProductID: productID,
		Stored:    stock.StockQuantity,
		Replayed:  replayed,
		InSync:    replayed.Equal(stock.StockQuantity),
	}, nil
}
