package inventory

import (
	"testing"
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStockAdjustment(t *testing.T) {
	tenantID := uuid.New()
	productID := uuid.New()
	materialID := uuid.New()
	lotID := uuid.New()

	t.Run("rejects both product and raw material", func(t *testing.T) {
		_, err := NewStockAdjustment(tenantID, StockAdjustmentInput{
			ProductID:      &productID,
			RawMaterialID:  &materialID,
			AdjustmentType: AdjustmentCorrection,
			Quantity:       decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("rejects neither target", func(t *testing.T) {
		_, err := NewStockAdjustment(tenantID, StockAdjustmentInput{
			AdjustmentType: AdjustmentCorrection,
			Quantity:       decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		_, err := NewStockAdjustment(tenantID, StockAdjustmentInput{
			ProductID:      &productID,
			AdjustmentType: AdjustmentOpening,
			Quantity:       decimal.Zero,
		})
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})

	t.Run("product adjustments need whole units", func(t *testing.T) {
		_, err := NewStockAdjustment(tenantID, StockAdjustmentInput{
			ProductID:      &productID,
			AdjustmentType: AdjustmentWriteOff,
			Quantity:       decimal.RequireFromString("-1.5"),
		})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("raw material adjustments need a lot", func(t *testing.T) {
		_, err := NewStockAdjustment(tenantID, StockAdjustmentInput{
			RawMaterialID:  &materialID,
			AdjustmentType: AdjustmentReturn,
			Quantity:       decimal.NewFromInt(4),
		})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("accepts a signed product adjustment", func(t *testing.T) {
		userID := uuid.New()
		adj, err := NewStockAdjustment(tenantID, StockAdjustmentInput{
			ProductID:      &productID,
			AdjustmentType: AdjustmentWriteOff,
			Quantity:       decimal.NewFromInt(-3),
			UserID:         &userID,
		})
		require.NoError(t, err)
		assert.True(t, adj.IsProductAdjustment())
		assert.Equal(t, int64(-3), adj.UnitDelta())
		require.NotNil(t, adj.CreatedBy)
		assert.Equal(t, userID, *adj.CreatedBy)
	})

	t.Run("accepts a lot adjustment", func(t *testing.T) {
		adj, err := NewStockAdjustment(tenantID, StockAdjustmentInput{
			RawMaterialID:  &materialID,
			MaterialLotID:  &lotID,
			AdjustmentType: AdjustmentOpening,
			Quantity:       decimal.RequireFromString("12.5"),
		})
		require.NoError(t, err)
		assert.False(t, adj.IsProductAdjustment())
	})

	t.Run("nil product id counts as absent", func(t *testing.T) {
		nilProduct := uuid.Nil
		adj, err := NewStockAdjustment(tenantID, StockAdjustmentInput{
			ProductID:      &nilProduct,
			RawMaterialID:  &materialID,
			MaterialLotID:  &lotID,
			AdjustmentType: AdjustmentCorrection,
			Quantity:       decimal.NewFromInt(2),
		})
		require.NoError(t, err)
		assert.False(t, adj.IsProductAdjustment())
		assert.Nil(t, adj.ProductID)

		adj.ProductID = &nilProduct
		assert.False(t, adj.IsProductAdjustment())
	})
}

func TestNewInternalDeliveryNote(t *testing.T) {
	tenantID := uuid.New()
	origin := uuid.New()
	destination := uuid.New()
	lines := []TransferLine{{ProductID: uuid.New(), Quantity: 3}}

	t.Run("rejects identical origin and destination", func(t *testing.T) {
		_, err := NewInternalDeliveryNote(tenantID, origin, origin, lines, "", nil)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("rejects non positive quantities", func(t *testing.T) {
		_, err := NewInternalDeliveryNote(tenantID, origin, destination, []TransferLine{{ProductID: uuid.New(), Quantity: 0}}, "", nil)
		assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
	})

	t.Run("walks draft to received", func(t *testing.T) {
		note, err := NewInternalDeliveryNote(tenantID, origin, destination, lines, "", nil)
		require.NoError(t, err)
		require.Len(t, note.Items, 1)
		assert.Equal(t, note.ID, note.Items[0].NoteID)

		assert.ErrorIs(t, note.MarkReceived(time.Now()), shared.ErrInvalidState)
		require.NoError(t, note.MarkDispatched(time.Now()))
		require.NoError(t, note.MarkReceived(time.Now()))
		assert.Equal(t, InternalDeliveryReceived, note.Status)
		assert.ErrorIs(t, note.Cancel(), shared.ErrInvalidState)
	})
}

func TestMaterialLot_Covers(t *testing.T) {
	lot, err := NewMaterialLot(uuid.New(), uuid.New(), nil, decimal.NewFromInt(5), decimal.NewFromInt(100), "L-1")
	require.NoError(t, err)
	assert.True(t, lot.Covers(decimal.NewFromInt(100)))
	assert.False(t, lot.Covers(decimal.NewFromInt(150)))
}
