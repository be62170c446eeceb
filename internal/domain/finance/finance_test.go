package finance

import (
	"testing"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickCashAccount(t *testing.T) {
	tenantID := uuid.New()
	bank, err := NewAccount(tenantID, "Banco Nación", AccountAsset, "1.1.02")
	require.NoError(t, err)
	cash, err := NewAccount(tenantID, "Caja Principal", AccountAsset, "1.1.01")
	require.NoError(t, err)

	t.Run("prefers the cash account", func(t *testing.T) {
		picked := PickCashAccount([]Account{*bank, *cash})
		require.NotNil(t, picked)
		assert.Equal(t, cash.ID, picked.ID)
	})

	t.Run("falls back to the first asset", func(t *testing.T) {
		picked := PickCashAccount([]Account{*bank})
		require.NotNil(t, picked)
		assert.Equal(t, bank.ID, picked.ID)
	})

	t.Run("nil without assets", func(t *testing.T) {
		assert.Nil(t, PickCashAccount(nil))
	})
}

func TestSplitFinancialCost(t *testing.T) {
	t.Run("applies the percentage", func(t *testing.T) {
		net, cost := SplitFinancialCost(decimal.NewFromInt(200), decimal.RequireFromString("3.50"))
		assert.Equal(t, "193.00", net.StringFixed(2))
		assert.Equal(t, "7.00", cost.StringFixed(2))
	})

	t.Run("zero percentage keeps the full amount", func(t *testing.T) {
		net, cost := SplitFinancialCost(decimal.NewFromInt(50), decimal.Zero)
		assert.True(t, net.Equal(decimal.NewFromInt(50)))
		assert.True(t, cost.IsZero())
	})

	t.Run("net plus cost equals amount", func(t *testing.T) {
		amount := decimal.RequireFromString("33.33")
		net, cost := SplitFinancialCost(amount, decimal.RequireFromString("2.9"))
		assert.True(t, net.Add(cost).Equal(amount))
	})
}

func TestNewAccount_Validation(t *testing.T) {
	_, err := NewAccount(uuid.New(), "Caja", AccountType("Otro"), "1")
	assert.ErrorIs(t, err, shared.ErrValidation)
}

func TestNewTransaction(t *testing.T) {
	_, err := NewTransaction(uuid.New(), uuid.New(), decimal.Zero, "x")
	assert.ErrorIs(t, err, shared.ErrValidation)

	saleID := uuid.New()
	tx, err := NewTransaction(uuid.New(), uuid.New(), decimal.NewFromInt(10), "x")
	require.NoError(t, err)
	tx.ForSale(saleID)
	require.NotNil(t, tx.RelatedSaleID)
	assert.Equal(t, saleID, *tx.RelatedSaleID)
	assert.Equal(t, "Pago a proveedor por OC #12", SupplierPaymentDescription(12))
}
