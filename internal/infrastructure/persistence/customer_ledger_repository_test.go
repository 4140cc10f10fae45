package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/clinicerp/backend/internal/domain/ledger"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockCustomerLedgerRepository creates a GormCustomerLedgerRepository with a mocked SQL connection
func newMockCustomerLedgerRepository(t *testing.T) (*GormCustomerLedgerRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormCustomerLedgerRepository(gormDB), mock, mockDB
}

func TestGormCustomerLedgerRepository_Append(t *testing.T) {
	t.Run("inserts a ledger row", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerLedgerRepository(t)
		defer mockDB.Close()

		entry, err := ledger.NewCustomerLedgerEntry(
			uuid.New(), uuid.New(), time.Now(),
			ledger.EntryTypeInvoice,
			decimal.NewFromInt(120), decimal.Zero,
			"Invoice INV-001",
		)
		require.NoError(t, err)

		mock.ExpectExec(`INSERT INTO "customer_ledger_entries"`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err = repo.Append(context.Background(), entry)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerLedgerRepository_FindForCustomer(t *testing.T) {
	companyID := uuid.New()
	customerID := uuid.New()

	t.Run("bounds the window and orders by date then id", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerLedgerRepository(t)
		defer mockDB.Close()

		from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"id", "company_id", "customer_id", "entry_date", "type", "debit", "credit"}).
			AddRow(uuid.New(), companyID, customerID, from, "invoice", decimal.NewFromInt(120), decimal.Zero).
			AddRow(uuid.New(), companyID, customerID, from.AddDate(0, 0, 10), "payment", decimal.Zero, decimal.NewFromInt(50))

		mock.ExpectQuery(`SELECT \* FROM "customer_ledger_entries" WHERE company_id = \$1 AND customer_id = \$2 AND entry_date >= \$3 AND entry_date < \$4 ORDER BY entry_date ASC, id ASC`).
			WithArgs(companyID, customerID, from, to).
			WillReturnRows(rows)

		entries, err := repo.FindForCustomer(context.Background(), companyID, customerID, ledger.DateRange{From: &from, To: &to})

		assert.NoError(t, err)
		assert.Len(t, entries, 2)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an unbounded range reads the full history", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerLedgerRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "customer_ledger_entries" WHERE company_id = \$1 AND customer_id = \$2 ORDER BY entry_date ASC, id ASC`).
			WithArgs(companyID, customerID).
			WillReturnRows(sqlmock.NewRows([]string{"id", "company_id", "customer_id", "entry_date", "type", "debit", "credit"}))

		entries, err := repo.FindForCustomer(context.Background(), companyID, customerID, ledger.DateRange{})

		assert.NoError(t, err)
		assert.Empty(t, entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormCustomerLedgerRepository_BalanceBefore(t *testing.T) {
	t.Run("sums debit minus credit before the cutoff", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerLedgerRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		customerID := uuid.New()
		cutoff := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(debit - credit\), 0\) as total FROM "customer_ledger_entries" WHERE company_id = \$1 AND customer_id = \$2 AND entry_date < \$3`).
			WithArgs(companyID, customerID, cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("150.00"))

		balance, err := repo.BalanceBefore(context.Background(), companyID, customerID, cutoff)

		assert.NoError(t, err)
		assert.True(t, balance.Equal(decimal.NewFromInt(150)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("an empty ledger opens at zero", func(t *testing.T) {
		repo, mock, mockDB := newMockCustomerLedgerRepository(t)
		defer mockDB.Close()

		companyID := uuid.New()
		customerID := uuid.New()
		cutoff := time.Now()

		mock.ExpectQuery(`SELECT COALESCE\(SUM\(debit - credit\), 0\) as total FROM "customer_ledger_entries"`).
			WithArgs(companyID, customerID, cutoff).
			WillReturnRows(sqlmock.NewRows([]string{"total"}).AddRow("0"))

		balance, err := repo.BalanceBefore(context.Background(), companyID, customerID, cutoff)

		assert.NoError(t, err)
		assert.True(t, balance.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
