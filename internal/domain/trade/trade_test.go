package trade

import (
	"testing"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPriceFromCost(t *testing.T) {
	assert.Equal(t, "60.00", PriceFromCost(decimal.NewFromInt(50)).StringFixed(2))
	assert.Equal(t, "12.35", PriceFromCost(decimal.RequireFromString("10.29")).StringFixed(2))
}

func TestIsImmediatePayment(t *testing.T) {
	assert.True(t, IsImmediatePayment("Efectivo"))
	assert.True(t, IsImmediatePayment("Transferencia"))
	assert.True(t, IsImmediatePayment("Mercado Pago"))
	assert.False(t, IsImmediatePayment("Tarjeta de Crédito"))
	assert.False(t, IsImmediatePayment(PaymentMethodToBeDefined))
}

func TestPaymentStatusFor(t *testing.T) {
	total := decimal.NewFromInt(100)
	assert.Equal(t, PaymentStatusPending, PaymentStatusFor(total, decimal.Zero))
	assert.Equal(t, PaymentStatusPartial, PaymentStatusFor(total, decimal.NewFromInt(60)))
	assert.Equal(t, PaymentStatusPaid, PaymentStatusFor(total, decimal.NewFromInt(100)))
}

func TestQuotation(t *testing.T) {
	productID := uuid.New()
	newQuotation := func(t *testing.T) *Quotation {
		q, err := NewQuotation(uuid.New(), QuotationNumber(7), uuid.New(), []QuotationLine{
			{ProductID: &productID, Quantity: 2, UnitPrice: decimal.NewFromInt(15)},
			{ProductID: &productID, Quantity: 1, UnitPrice: decimal.RequireFromString("9.50")},
		}, nil)
		require.NoError(t, err)
		return q
	}

	t.Run("numbers and totals", func(t *testing.T) {
		q := newQuotation(t)
		assert.Equal(t, "PRE-007", q.Number)
		assert.Equal(t, "39.50", q.TotalAmount.StringFixed(2))
		assert.Equal(t, QuotationDraft, q.Status)
	})

	t.Run("accept is single use", func(t *testing.T) {
		q := newQuotation(t)
		require.NoError(t, q.Accept())
		err := q.Accept()
		assert.ErrorIs(t, err, shared.ErrAlreadyConverted)
		assert.ErrorIs(t, q.Reject(), shared.ErrInvalidState)
	})

	t.Run("send then reject", func(t *testing.T) {
		q := newQuotation(t)
		require.NoError(t, q.Send())
		assert.ErrorIs(t, q.Send(), shared.ErrInvalidState)
		require.NoError(t, q.Reject())
	})
}

func TestSale_AddItem(t *testing.T) {
	sale, err := NewSale(uuid.New(), nil, nil, PaymentMethodCash, nil)
	require.NoError(t, err)
	product := uuid.New()

	_, err = sale.AddItem(SaleLine{ProductID: product, Quantity: 2, UnitPrice: decimal.NewFromInt(60), Cost: decimal.NewFromInt(50)})
	require.NoError(t, err)
	_, err = sale.AddItem(SaleLine{ProductID: product, Quantity: 1, UnitPrice: decimal.NewFromInt(60), Cost: decimal.NewFromInt(50)})
	require.NoError(t, err)

	assert.Equal(t, "180.00", sale.TotalAmount.StringFixed(2))
	assert.Equal(t, int64(3), sale.SoldQuantities()[product])

	_, err = sale.AddItem(SaleLine{ProductID: product, Quantity: 0})
	assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
}

func TestDeliveryRules(t *testing.T) {
	product := uuid.New()

	t.Run("merges repeated products", func(t *testing.T) {
		merged, err := MergeDeliveryLines([]DeliveryLine{
			{ProductID: product, Quantity: 2},
			{ProductID: uuid.New(), Quantity: 1},
			{ProductID: product, Quantity: 3},
		})
		require.NoError(t, err)
		require.Len(t, merged, 2)
		assert.Equal(t, int64(5), merged[0].Quantity)
	})

	t.Run("not in sale", func(t *testing.T) {
		err := CheckDeliverable(DeliveryLine{ProductID: product, Quantity: 1}, 0, 0)
		assert.ErrorIs(t, err, shared.ErrNotInSale)
	})

	t.Run("exceeds remaining", func(t *testing.T) {
		err := CheckDeliverable(DeliveryLine{ProductID: product, Quantity: 3}, 5, 3)
		assert.ErrorIs(t, err, shared.ErrExceedsRemaining)
	})

	t.Run("fits remaining", func(t *testing.T) {
		assert.NoError(t, CheckDeliverable(DeliveryLine{ProductID: product, Quantity: 2}, 5, 3))
	})
}

func TestPurchaseOrder(t *testing.T) {
	po, err := NewPurchaseOrder(uuid.New(), 1, uuid.New(), []PurchaseLine{
		{RawMaterialID: uuid.New(), Quantity: decimal.NewFromInt(10), UnitPrice: decimal.RequireFromString("2.50")},
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "25.00", po.TotalAmount.StringFixed(2))

	assert.Equal(t, PurchasePartial, PurchaseStatusFor(po.TotalAmount, decimal.NewFromInt(10)))
	assert.Equal(t, PurchasePaid, PurchaseStatusFor(po.TotalAmount, decimal.NewFromInt(25)))

	require.NoError(t, po.Cancel())
	assert.ErrorIs(t, po.EnsurePayable(), shared.ErrInvalidState)
}
