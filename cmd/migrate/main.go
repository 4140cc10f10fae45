package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/clinicerp/backend/internal/domain/accounting"
	"github.com/clinicerp/backend/internal/domain/billing"
	"github.com/clinicerp/backend/internal/domain/inventory"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/clinicerp/backend/internal/domain/tenant"
	"github.com/clinicerp/backend/internal/domain/trade"
	"github.com/clinicerp/backend/internal/infrastructure/audit"
	"github.com/clinicerp/backend/internal/infrastructure/config"
	"github.com/clinicerp/backend/internal/infrastructure/logger"
	"github.com/clinicerp/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
)

func main() {
	var logLevel string
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	log, err := logger.New(&logger.Config{
		Level:  logLevel,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	log.Info("Running schema migration",
		zap.String("database", cfg.Database.DBName),
		zap.String("host", cfg.Database.Host),
	)

	// Parents before children so foreign keys resolve.
	models := []any{
		&tenant.Company{},
		&accounting.Account{},
		&accounting.JournalEntry{},
		&accounting.JournalLine{},
		&ledger.CustomerLedgerEntry{},
		&ledger.SupplierLedgerEntry{},
		&trade.Order{},
		&trade.OrderItem{},
		&trade.PurchaseOrder{},
		&trade.PurchaseOrderItem{},
		&trade.SupplierPayment{},
		&billing.Invoice{},
		&billing.InvoiceItem{},
		&billing.Payment{},
		&billing.PaymentRefund{},
		&inventory.StockItem{},
		&inventory.StockMovement{},
		&audit.AuditLog{},
	}

	if err := db.DB.AutoMigrate(models...); err != nil {
		log.Fatal("Migration failed", zap.Error(err))
	}

	log.Info("Migration completed", zap.Int("models", len(models)))
}
