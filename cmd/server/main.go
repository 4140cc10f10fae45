package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	accountingapp "github.com/clinicerp/backend/internal/application/accounting"
	billingapp "github.com/clinicerp/backend/internal/application/billing"
	inventoryapp "github.com/clinicerp/backend/internal/application/inventory"
	ledgerapp "github.com/clinicerp/backend/internal/application/ledger"
	purchasingapp "github.com/clinicerp/backend/internal/application/purchasing"
	tenantapp "github.com/clinicerp/backend/internal/application/tenant"
	tradeapp "github.com/clinicerp/backend/internal/application/trade"
	"github.com/clinicerp/backend/internal/domain/shared"
	"github.com/clinicerp/backend/internal/infrastructure/audit"
	"github.com/clinicerp/backend/internal/infrastructure/config"
	"github.com/clinicerp/backend/internal/infrastructure/logger"
	"github.com/clinicerp/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting accounting engine",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	eng := newEngine(db.DB)
	if cfg.Audit.Enabled {
		eng.attachAudit(audit.NewGormAuditRecorder(db.DB, log))
	}

	log.Info("Accounting engine ready",
		zap.Bool("audit", cfg.Audit.Enabled),
		zap.Int("trial_days", cfg.Billing.TrialDays),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Info("Shutting down")
}

// engine bundles the wired application services. The module exposes no
// transport of its own; embedding processes reach the services through
// this container.
type engine struct {
	Companies    *tenantapp.CompanyService
	Chart        *accountingapp.ChartService
	Journals     *accountingapp.JournalService
	Payments     *billingapp.PaymentService
	Appointments *billingapp.AppointmentService
	Orders       *tradeapp.OrderService
	Purchasing   *purchasingapp.PurchaseOrderService
	Stock        *inventoryapp.StockService
	Statements   *ledgerapp.StatementService
}

func newEngine(db *gorm.DB) *engine {
	accountRepo := persistence.NewGormAccountRepository(db)
	journalRepo := persistence.NewGormJournalEntryRepository(db)
	customerLedgerRepo := persistence.NewGormCustomerLedgerRepository(db)
	supplierLedgerRepo := persistence.NewGormSupplierLedgerRepository(db)
	stockItemRepo := persistence.NewGormStockItemRepository(db)
	stockMovementRepo := persistence.NewGormStockMovementRepository(db)
	companyRepo := persistence.NewGormCompanyRepository(db)

	chartService := accountingapp.NewChartService(accountRepo)

	return &engine{
		Companies:    tenantapp.NewCompanyService(companyRepo, chartService),
		Chart:        chartService,
		Journals:     accountingapp.NewJournalService(persistence.NewGormAccountingTransactionScope(db), journalRepo),
		Payments:     billingapp.NewPaymentService(persistence.NewGormBillingTransactionScope(db)),
		Appointments: billingapp.NewAppointmentService(persistence.NewGormBillingTransactionScope(db)),
		Orders:       tradeapp.NewOrderService(persistence.NewGormTradeTransactionScope(db)),
		Purchasing:   purchasingapp.NewPurchaseOrderService(persistence.NewGormPurchasingTransactionScope(db)),
		Stock:        inventoryapp.NewStockService(persistence.NewGormInventoryTransactionScope(db), stockItemRepo, stockMovementRepo),
		Statements:   ledgerapp.NewStatementService(customerLedgerRepo, supplierLedgerRepo),
	}
}

// attachAudit routes audit events from every mutating service to the recorder
func (e *engine) attachAudit(recorder shared.AuditRecorder) {
	e.Companies.SetAuditRecorder(recorder)
	e.Journals.SetAuditRecorder(recorder)
	e.Payments.SetAuditRecorder(recorder)
	e.Appointments.SetAuditRecorder(recorder)
	e.Orders.SetAuditRecorder(recorder)
	e.Purchasing.SetAuditRecorder(recorder)
	e.Stock.SetAuditRecorder(recorder)
}
