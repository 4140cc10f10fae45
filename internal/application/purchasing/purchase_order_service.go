package purchasing

import (
	"context"
	"fmt"
	"time"

	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/inventory"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/domain/trade"
	"github.com/clinicerp/backend/internal/infrastructure/persistence/tenantscope"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseOrderService drives the supplier-side flow: drafting and placing
// purchase orders, receiving goods into stock, and paying suppliers.
type PurchaseOrderService struct {
	scope TransactionScope
	audit shared.AuditRecorder
}

// NewPurchaseOrderService creates a new PurchaseOrderService
func NewPurchaseOrderService(scope TransactionScope) *PurchaseOrderService {
	return &PurchaseOrderService{scope: scope, audit: shared.NoOpAuditRecorder{}}
}

// SetAuditRecorder sets the audit sink
func (s *PurchaseOrderService) SetAuditRecorder(recorder shared.AuditRecorder) {
	s.audit = recorder
}

// PurchaseItemInput is one requested supplier line
type PurchaseItemInput struct {
	ProductID uuid.UUID
	Name      string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// CreatePurchaseOrderInput is the caller-facing shape of a new purchase order
type CreatePurchaseOrderInput struct {
	SupplierID uuid.UUID
	Items      []PurchaseItemInput
}

// SupplierPaymentInput is the caller-facing shape of a payment to a supplier
type SupplierPaymentInput struct {
	PurchaseOrderID uuid.UUID
	Amount          decimal.Decimal
	Method          string
	PaidAt          time.Time
}

// Create drafts a purchase order
func (s *PurchaseOrderService) Create(ctx context.Context, actor shared.Actor, companyID uuid.UUID, input CreatePurchaseOrderInput) (*trade.PurchaseOrder, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}

	po, err := trade.NewPurchaseOrder(companyID, input.SupplierID)
	if err != nil {
		return nil, err
	}
	po.SetCreatedBy(actor.UserID)
	if err := tenantscope.ApplyOnCreate(po, actor); err != nil {
		return nil, err
	}
	for _, item := range input.Items {
		if err := po.AddItem(item.ProductID, item.Name, item.Quantity, item.UnitCost); err != nil {
			return nil, err
		}
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		return repos.PurchaseOrderRepo().Create(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	return po, nil
}

// Place moves a draft purchase order to ordered
func (s *PurchaseOrderService) Place(ctx context.Context, actor shared.Actor, companyID, purchaseOrderID uuid.UUID) error {
	if !actor.CanAccess(companyID) {
		return shared.ErrCrossTenantReference
	}
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrderRepo().FindByIDForUpdate(ctx, companyID, purchaseOrderID)
		if err != nil {
			return err
		}
		if err := po.Place(time.Now()); err != nil {
			return err
		}
		return repos.PurchaseOrderRepo().Update(ctx, po)
	})
}

// Receive books delivered goods: every line increments stock with a paired
// in-movement, the supplier ledger is credited for the order total and the
// goods cost is journaled Dr Cost of Goods / Cr Accounts Payable.
func (s *PurchaseOrderService) Receive(ctx context.Context, actor shared.Actor, companyID, purchaseOrderID uuid.UUID) error {
	if !actor.CanAccess(companyID) {
		return shared.ErrCrossTenantReference
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrderRepo().FindByIDForUpdate(ctx, companyID, purchaseOrderID)
		if err != nil {
			return err
		}
		now := time.Now()
		if err := po.Receive(now); err != nil {
			return err
		}

		for _, item := range po.Items {
			if err := s.receiveStock(ctx, repos, companyID, item.ProductID, item.Quantity,
				inventory.PurchaseOrderRef(po.ID), actor.UserID); err != nil {
				return err
			}
		}
		if err := repos.PurchaseOrderRepo().Update(ctx, po); err != nil {
			return err
		}

		row, err := ledger.NewSupplierLedgerEntry(companyID, po.SupplierID, now,
			ledger.EntryTypePurchase, decimal.Zero, po.Total,
			fmt.Sprintf("Goods received on purchase order %s", po.ID))
		if err != nil {
			return err
		}
		row.WithPurchaseOrder(po.ID).WithCreatedBy(actor.UserID)
		if err := repos.SupplierLedgerRepo().Append(ctx, row); err != nil {
			return err
		}

		return s.postJournal(ctx, repos, companyID, now,
			fmt.Sprintf("Goods received on purchase order %s", po.ID),
			accounting.SourceTypePurchaseOrder, po.ID,
			accounting.CodeCostOfGoods, accounting.CodeAccountsPayable,
			po.Total, actor.UserID)
	})
	if err != nil {
		return err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   companyID,
		ActorID:     actor.UserID,
		Action:      "purchase_order.received",
		SubjectType: "purchase_order",
		SubjectID:   purchaseOrderID,
	})
	return nil
}

// RecordPayment pays a supplier against a received purchase order. The order
// flips to paid once cumulative payments cover its total; overpayment is
// rejected. The supplier ledger is debited and the payment journaled
// Dr Accounts Payable / Cr Cash.
func (s *PurchaseOrderService) RecordPayment(ctx context.Context, actor shared.Actor, companyID uuid.UUID, input SupplierPaymentInput) (*trade.SupplierPayment, error) {
	if !actor.CanAccess(companyID) {
		return nil, shared.ErrCrossTenantReference
	}
	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	var payment *trade.SupplierPayment
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrderRepo().FindByIDForUpdate(ctx, companyID, input.PurchaseOrderID)
		if err != nil {
			return err
		}
		if po.Status != trade.PurchaseOrderStatusReceived {
			return shared.NewConflictError("INVALID_STATE",
				"Supplier payments are only recorded against received purchase orders")
		}

		previous, err := repos.SupplierPaymentRepo().FindByPurchaseOrder(ctx, companyID, po.ID)
		if err != nil {
			return err
		}
		paidSoFar := decimal.Zero
		for _, p := range previous {
			paidSoFar = paidSoFar.Add(p.Amount)
		}
		outstanding := po.Total.Sub(paidSoFar).Round(2)
		if input.Amount.Round(2).GreaterThan(outstanding) {
			return shared.NewConflictError("PAYMENT_EXCEEDS_TOTAL",
				fmt.Sprintf("Payment exceeds outstanding balance, outstanding=%s", outstanding.StringFixed(2)))
		}

		payment, err = trade.NewSupplierPayment(companyID, po.ID, po.SupplierID, input.Amount, input.Method, paidAt)
		if err != nil {
			return err
		}
		payment.SetCreatedBy(actor.UserID)
		if err := tenantscope.ApplyOnCreate(payment, actor); err != nil {
			return err
		}
		if err := repos.SupplierPaymentRepo().Create(ctx, payment); err != nil {
			return err
		}

		if paidSoFar.Add(payment.Amount).GreaterThanOrEqual(po.Total) {
			if err := po.MarkPaid(); err != nil {
				return err
			}
			if err := repos.PurchaseOrderRepo().Update(ctx, po); err != nil {
				return err
			}
		}

		row, err := ledger.NewSupplierLedgerEntry(companyID, po.SupplierID, paidAt,
			ledger.EntryTypeSupplierPayment, payment.Amount, decimal.Zero,
			fmt.Sprintf("Payment (%s) on purchase order %s", input.Method, po.ID))
		if err != nil {
			return err
		}
		row.WithPurchaseOrder(po.ID).WithSupplierPayment(payment.ID).WithCreatedBy(actor.UserID)
		if err := repos.SupplierLedgerRepo().Append(ctx, row); err != nil {
			return err
		}

		return s.postJournal(ctx, repos, companyID, paidAt,
			fmt.Sprintf("Supplier payment on purchase order %s", po.ID),
			accounting.SourceTypeSupplierPayment, payment.ID,
			accounting.CodeAccountsPayable, accounting.CodeCashBank,
			payment.Amount, actor.UserID)
	})
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, shared.AuditEvent{
		CompanyID:   companyID,
		ActorID:     actor.UserID,
		Action:      "supplier_payment.recorded",
		SubjectType: "supplier_payment",
		SubjectID:   payment.ID,
		Properties:  map[string]string{"amount": payment.Amount.StringFixed(2)},
	})
	return payment, nil
}

// List returns the purchase orders visible to the actor
func (s *PurchaseOrderService) List(ctx context.Context, actor shared.Actor, filter shared.Filter) ([]trade.PurchaseOrder, error) {
	var orders []trade.PurchaseOrder
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		orders, err = repos.PurchaseOrderRepo().FindAllForActor(ctx, actor, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// Cancel voids a draft or ordered purchase order
func (s *PurchaseOrderService) Cancel(ctx context.Context, actor shared.Actor, companyID, purchaseOrderID uuid.UUID) error {
	if !actor.CanAccess(companyID) {
		return shared.ErrCrossTenantReference
	}
	return s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		po, err := repos.PurchaseOrderRepo().FindByIDForUpdate(ctx, companyID, purchaseOrderID)
		if err != nil {
			return err
		}
		if err := po.Cancel(); err != nil {
			return err
		}
		return repos.PurchaseOrderRepo().Update(ctx, po)
	})
}

// receiveStock locks or creates the product's stock row and writes the
// increment plus its movement
func (s *PurchaseOrderService) receiveStock(
	ctx context.Context,
	repos TransactionalRepositories,
	companyID, productID uuid.UUID,
	quantity decimal.Decimal,
	ref inventory.MovementRef,
	userID uuid.UUID,
) error {
	stock, err := repos.StockItemRepo().FindByProductForUpdate(ctx, companyID, productID)
	if err != nil {
		if !shared.IsKind(err, shared.KindNotFound) {
			return err
		}
		stock, err = inventory.NewStockItem(companyID, productID)
		if err != nil {
			return err
		}
		if err := repos.StockItemRepo().Create(ctx, stock); err != nil {
			return err
		}
	}

	movement, err := stock.Increase(quantity, ref, &userID)
	if err != nil {
		return err
	}
	if err := repos.StockItemRepo().Save(ctx, stock); err != nil {
		return err
	}
	return repos.StockMovementRepo().Append(ctx, movement)
}

// postJournal writes a two-line entry between two well-known accounts
func (s *PurchaseOrderService) postJournal(
	ctx context.Context,
	repos TransactionalRepositories,
	companyID uuid.UUID,
	entryDate time.Time,
	description string,
	sourceType accounting.SourceType,
	sourceID uuid.UUID,
	debitCode, creditCode string,
	amount decimal.Decimal,
	createdBy uuid.UUID,
) error {
	debitAccount, err := findRequiredAccount(ctx, repos.AccountRepo(), companyID, debitCode)
	if err != nil {
		return err
	}
	creditAccount, err := findRequiredAccount(ctx, repos.AccountRepo(), companyID, creditCode)
	if err != nil {
		return err
	}

	source, err := accounting.NewSourceRef(sourceType, sourceID)
	if err != nil {
		return err
	}
	entry, err := accounting.NewJournalEntry(companyID, entryDate, description, &source,
		[]accounting.LineInput{
			{AccountID: debitAccount.ID, Debit: amount},
			{AccountID: creditAccount.ID, Credit: amount},
		}, createdBy)
	if err != nil {
		return err
	}
	return repos.JournalRepo().Create(ctx, entry)
}

func findRequiredAccount(ctx context.Context, repo accounting.AccountRepository, companyID uuid.UUID, code string) (*accounting.Account, error) {
	account, err := repo.FindByCode(ctx, companyID, code)
	if err != nil {
		if shared.IsKind(err, shared.KindNotFound) {
			return nil, shared.NewConfigurationError("MISSING_ACCOUNT",
				fmt.Sprintf("Tenant chart of accounts is missing account %s", code))
		}
		return nil, err
	}
	return account, nil
}
