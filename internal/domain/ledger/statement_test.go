package ledger

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	out, err := decimal.NewFromString(v)
	if err != nil {
		panic(err)
	}
	return out
}

func customerEntry(t *testing.T, companyID, customerID uuid.UUID, day time.Time, entryType EntryType, debit, credit string) CustomerLedgerEntry {
	t.Helper()
	e, err := NewCustomerLedgerEntry(companyID, customerID, day, entryType, d(debit), d(credit), "")
	require.NoError(t, err)
	return *e
}

func TestNewCustomerLedgerEntry_Validation(t *testing.T) {
	companyID := uuid.New()
	customerID := uuid.New()
	now := time.Now()

	_, err := NewCustomerLedgerEntry(uuid.Nil, customerID, now, EntryTypeInvoice, d("10"), d("0"), "")
	assert.Error(t, err)

	_, err = NewCustomerLedgerEntry(companyID, uuid.Nil, now, EntryTypeInvoice, d("10"), d("0"), "")
	assert.Error(t, err)

	_, err = NewCustomerLedgerEntry(companyID, customerID, now, EntryType("bogus"), d("10"), d("0"), "")
	assert.Error(t, err)

	_, err = NewCustomerLedgerEntry(companyID, customerID, now, EntryTypeInvoice, d("-1"), d("0"), "")
	assert.Error(t, err)

	_, err = NewCustomerLedgerEntry(companyID, customerID, now, EntryTypeInvoice, d("0"), d("0"), "")
	assert.Error(t, err)

	e, err := NewCustomerLedgerEntry(companyID, customerID, now, EntryTypeInvoice, d("35.00"), d("0"), "invoice")
	require.NoError(t, err)
	assert.Equal(t, "35.00", e.Delta().StringFixed(2))
}

func TestBuildCustomerStatement_RunningBalance(t *testing.T) {
	companyID := uuid.New()
	customerID := uuid.New()
	day1 := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	entries := []CustomerLedgerEntry{
		customerEntry(t, companyID, customerID, day1, EntryTypeInvoice, "35.00", "0"),
		customerEntry(t, companyID, customerID, day2, EntryTypePayment, "0", "20.00"),
		customerEntry(t, companyID, customerID, day2, EntryTypePayment, "0", "15.00"),
	}

	stmt := BuildCustomerStatement(decimal.Zero, entries)

	require.Len(t, stmt.Rows, 3)
	assert.Equal(t, "0.00", stmt.OpeningBalance.StringFixed(2))
	assert.Equal(t, "35.00", stmt.Rows[0].Balance.StringFixed(2))
	assert.Equal(t, "0.00", stmt.ClosingBalance.StringFixed(2))
}

func TestBuildCustomerStatement_OrdersByDateThenID(t *testing.T) {
	companyID := uuid.New()
	customerID := uuid.New()
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	a := customerEntry(t, companyID, customerID, day, EntryTypeInvoice, "10.00", "0")
	b := customerEntry(t, companyID, customerID, day, EntryTypeInvoice, "20.00", "0")

	// Same date: the id tie-break makes the order deterministic regardless
	// of the slice order passed in.
	first := BuildCustomerStatement(decimal.Zero, []CustomerLedgerEntry{a, b})
	second := BuildCustomerStatement(decimal.Zero, []CustomerLedgerEntry{b, a})

	require.Len(t, first.Rows, 2)
	assert.Equal(t, first.Rows[0].EntryID, second.Rows[0].EntryID)
	assert.Equal(t, first.Rows[1].EntryID, second.Rows[1].EntryID)
	assert.Equal(t, "30.00", first.ClosingBalance.StringFixed(2))
	assert.Equal(t, "30.00", second.ClosingBalance.StringFixed(2))
}

func TestBuildCustomerStatement_SplitWindowsReproduceClosing(t *testing.T) {
	companyID := uuid.New()
	customerID := uuid.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	var all []CustomerLedgerEntry
	for i := 0; i < 10; i++ {
		day := base.AddDate(0, 0, i)
		if i%2 == 0 {
			all = append(all, customerEntry(t, companyID, customerID, day, EntryTypeInvoice, "12.34", "0"))
		} else {
			all = append(all, customerEntry(t, companyID, customerID, day, EntryTypePayment, "0", "5.67"))
		}
	}

	full := BuildCustomerStatement(decimal.Zero, all)

	// Split at day 5: opening window + period must land on the same closing balance
	opening := BuildCustomerStatement(decimal.Zero, all[:5])
	period := BuildCustomerStatement(opening.ClosingBalance, all[5:])

	assert.True(t, full.ClosingBalance.Equal(period.ClosingBalance),
		"full=%s split=%s", full.ClosingBalance, period.ClosingBalance)
}

func TestBuildSupplierStatement(t *testing.T) {
	companyID := uuid.New()
	supplierID := uuid.New()
	day := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	purchase, err := NewSupplierLedgerEntry(companyID, supplierID, day, EntryTypePurchase, d("0"), d("200.00"), "PO received")
	require.NoError(t, err)
	payment, err := NewSupplierLedgerEntry(companyID, supplierID, day.AddDate(0, 0, 3), EntryTypeSupplierPayment, d("200.00"), d("0"), "paid")
	require.NoError(t, err)

	stmt := BuildSupplierStatement(decimal.Zero, []SupplierLedgerEntry{*purchase, *payment})

	require.Len(t, stmt.Rows, 2)
	assert.Equal(t, "-200.00", stmt.Rows[0].Balance.StringFixed(2))
	assert.Equal(t, "0.00", stmt.ClosingBalance.StringFixed(2))
}

func TestBuildCustomerStatement_Empty(t *testing.T) {
	stmt := BuildCustomerStatement(d("12.50"), nil)
	assert.Empty(t, stmt.Rows)
	assert.Equal(t, "12.50", stmt.OpeningBalance.StringFixed(2))
	assert.Equal(t, "12.50", stmt.ClosingBalance.StringFixed(2))
}
