package inventory

import (
	"testing"

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

func newTestItem(t *testing.T, quantity string) *StockItem {
	t.Helper()
	item, err := NewStockItem(uuid.New(), uuid.New())
	require.NoError(t, err)
	if quantity != "0" {
		_, err = item.Increase(d(quantity), AdjustmentRef(uuid.New()), nil)
		require.NoError(t, err)
	}
	return item
}

func TestNewStockItem(t *testing.T) {
	item := newTestItem(t, "0")
	assert.True(t, item.StockQuantity.IsZero())

	_, err := NewStockItem(uuid.Nil, uuid.New())
	assert.Error(t, err)
	_, err = NewStockItem(uuid.New(), uuid.Nil)
	assert.Error(t, err)
}

func TestStockItem_Increase(t *testing.T) {
	t.Run("returns paired inbound movement", func(t *testing.T) {
		item := newTestItem(t, "0")
		ref := PurchaseOrderRef(uuid.New())

		m, err := item.Increase(d("10"), ref, nil)
		require.NoError(t, err)

		assert.Equal(t, "10", item.StockQuantity.String())
		assert.Equal(t, MovementTypeIn, m.Type)
		assert.Equal(t, "10", m.Quantity.String())
		assert.Equal(t, "10", m.BalanceAfter.String())
		assert.Equal(t, ref, m.Reference)
		assert.Equal(t, item.ID, m.StockItemID)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		item := newTestItem(t, "0")
		_, err := item.Increase(d("0"), AdjustmentRef(uuid.New()), nil)
		assert.Error(t, err)
		_, err = item.Increase(d("-1"), AdjustmentRef(uuid.New()), nil)
		assert.Error(t, err)
	})

	t.Run("rejects incomplete reference", func(t *testing.T) {
		item := newTestItem(t, "0")
		_, err := item.Increase(d("1"), MovementRef{}, nil)
		assert.Error(t, err)
		_, err = item.Increase(d("1"), MovementRef{Type: ReferenceTypeOrder}, nil)
		assert.Error(t, err)
	})
}

func TestStockItem_Decrease(t *testing.T) {
	t.Run("returns paired outbound movement", func(t *testing.T) {
		item := newTestItem(t, "10")
		ref := OrderRef(uuid.New())

		m, err := item.Decrease(d("4"), ref, nil)
		require.NoError(t, err)

		assert.Equal(t, "6", item.StockQuantity.String())
		assert.Equal(t, MovementTypeOut, m.Type)
		assert.Equal(t, "6", m.BalanceAfter.String())
	})

	t.Run("never goes negative", func(t *testing.T) {
		item := newTestItem(t, "3")

		_, err := item.Decrease(d("5"), OrderRef(uuid.New()), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Insufficient stock")
		assert.Equal(t, "3", item.StockQuantity.String(), "balance untouched on rejection")
	})

	t.Run("exact balance drains to zero", func(t *testing.T) {
		item := newTestItem(t, "5")
		_, err := item.Decrease(d("5"), OrderRef(uuid.New()), nil)
		require.NoError(t, err)
		assert.True(t, item.StockQuantity.IsZero())
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		item := newTestItem(t, "5")
		_, err := item.Decrease(d("0"), OrderRef(uuid.New()), nil)
		assert.Error(t, err)
	})
}

func TestReconcileQuantity(t *testing.T) {
	item := newTestItem(t, "0")

	var movements []StockMovement
	for _, step := range []struct {
		in  bool
		qty string
	}{
		{true, "10"}, {false, "3"}, {true, "5"}, {false, "7"},
	} {
		var m *StockMovement
		var err error
		if step.in {
			m, err = item.Increase(d(step.qty), AdjustmentRef(uuid.New()), nil)
		} else {
			m, err = item.Decrease(d(step.qty), OrderRef(uuid.New()), nil)
		}
		require.NoError(t, err)
		movements = append(movements, *m)
	}

	replayed := ReconcileQuantity(decimal.Zero, movements)
	assert.True(t, replayed.Equal(item.StockQuantity), "replayed %s, item holds %s", replayed, item.StockQuantity)
	assert.Equal(t, "5", replayed.String())
}

func TestMovementRef_Validate(t *testing.T) {
	assert.NoError(t, OrderRef(uuid.New()).Validate())
	assert.NoError(t, AppointmentRef(uuid.New()).Validate())
	assert.Error(t, MovementRef{Type: "shipment", ID: uuid.New()}.Validate())
	assert.Error(t, MovementRef{Type: ReferenceTypeOrder, ID: uuid.Nil}.Validate())
}
