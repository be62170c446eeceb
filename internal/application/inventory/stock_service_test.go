package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/persistence"
	"github.com/ejarriada/Fanaticos/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockFixture struct {
	scope    unitofwork.TransactionScope
	tenantID uuid.UUID
	stock    *StockService
	notes    *InternalDeliveryService
	product  uuid.UUID
	factory  uuid.UUID
	store    uuid.UUID
}

func newStockFixture(t *testing.T) *stockFixture {
	t.Helper()
	scope := persistence.NewGormTransactionScope(testutil.NewSQLiteDB(t))
	ledger := NewStockLedger("")
	f := &stockFixture{
		scope:    scope,
		tenantID: uuid.New(),
		stock:    NewStockService(scope, ledger),
		notes:    NewInternalDeliveryService(scope, ledger),
	}
	ctx := context.Background()

	product, err := catalog.NewProduct(f.tenantID, "Camiseta", "CAM-1", nil)
	require.NoError(t, err)
	require.NoError(t, scope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.ProductRepo().Save(ctx, product)
	}))
	f.product = product.ID

	factory, err := f.stock.FactoryLocal(ctx, f.tenantID)
	require.NoError(t, err)
	assert.Equal(t, inventory.DefaultFactoryLocalName, factory.Name)
	f.factory = factory.ID

	store, err := f.stock.CreateLocal(ctx, f.tenantID, CreateLocalRequest{Name: "Local Centro"})
	require.NoError(t, err)
	f.store = store.ID
	return f
}

func (f *stockFixture) newRawMaterial(t *testing.T, name string) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	material, err := catalog.NewRawMaterial(f.tenantID, name, "metro")
	require.NoError(t, err)
	require.NoError(t, f.scope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.RawMaterialRepo().Save(ctx, material)
	}))
	return material.ID
}

func (f *stockFixture) quantityAt(t *testing.T, localID uuid.UUID) int64 {
	t.Helper()
	ctx := context.Background()
	var qty int64
	require.NoError(t, f.scope.Execute(ctx, func(repos unitofwork.Repositories) error {
		var err error
		qty, err = repos.InventoryRepo().QuantityOf(ctx, f.tenantID, f.product, localID)
		return err
	}))
	return qty
}

func TestStockService_Adjust(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	_, err := f.stock.Adjust(ctx, f.tenantID, AdjustStockRequest{ProductID: f.product, Delta: 0})
	require.ErrorIs(t, err, shared.ErrInvalidQuantity)
	assert.Equal(t, int64(0), f.quantityAt(t, f.factory))

	level, err := f.stock.Adjust(ctx, f.tenantID, AdjustStockRequest{ProductID: f.product, Delta: 10})
	require.NoError(t, err)
	assert.Equal(t, f.factory, level.LocalID, "no location means the factory")
	assert.Equal(t, int64(10), level.Quantity)

	level, err = f.stock.Adjust(ctx, f.tenantID, AdjustStockRequest{ProductID: f.product, Delta: -4})
	require.NoError(t, err)
	assert.Equal(t, int64(6), level.Quantity)

	_, err = f.stock.Adjust(ctx, f.tenantID, AdjustStockRequest{ProductID: f.product, Delta: -7})
	require.ErrorIs(t, err, shared.ErrInsufficientStock)
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, int64(7), domainErr.Details["requested"])
	assert.Equal(t, int64(6), domainErr.Details["available"])
	assert.Equal(t, int64(6), f.quantityAt(t, f.factory), "failed deduction leaves stock untouched")
}

func TestStockService_Adjust_UnknownProduct(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.stock.Adjust(context.Background(), f.tenantID, AdjustStockRequest{ProductID: uuid.New(), Delta: 1})

	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestStockService_Transfer_UnknownProduct(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()

	other, err := catalog.NewProduct(uuid.New(), "Buzo", "BUZ-1", nil)
	require.NoError(t, err)
	require.NoError(t, f.scope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.ProductRepo().Save(ctx, other)
	}))

	for _, productID := range []uuid.UUID{uuid.New(), other.ID} {
		_, err := f.stock.Transfer(ctx, f.tenantID, TransferStockRequest{
			ProductID: productID, FromLocalID: f.factory, ToLocalID: f.store, Quantity: 1,
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	}
}

func TestStockService_Transfer(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()
	_, err := f.stock.Adjust(ctx, f.tenantID, AdjustStockRequest{ProductID: f.product, Delta: 10})
	require.NoError(t, err)

	t.Run("conserves the total", func(t *testing.T) {
		result, err := f.stock.Transfer(ctx, f.tenantID, TransferStockRequest{
			ProductID: f.product, FromLocalID: f.factory, ToLocalID: f.store, Quantity: 4,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(6), result.From.Quantity)
		assert.Equal(t, int64(4), result.To.Quantity)
		assert.Equal(t, int64(10), f.quantityAt(t, f.factory)+f.quantityAt(t, f.store))
	})

	t.Run("non positive quantity", func(t *testing.T) {
		for _, qty := range []int64{0, -3} {
			_, err := f.stock.Transfer(ctx, f.tenantID, TransferStockRequest{
				ProductID: f.product, FromLocalID: f.factory, ToLocalID: f.store, Quantity: qty,
			})
			assert.ErrorIs(t, err, shared.ErrInvalidQuantity)
		}
	})

	t.Run("short source changes nothing", func(t *testing.T) {
		_, err := f.stock.Transfer(ctx, f.tenantID, TransferStockRequest{
			ProductID: f.product, FromLocalID: f.store, ToLocalID: f.factory, Quantity: 5,
		})
		require.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(6), f.quantityAt(t, f.factory))
		assert.Equal(t, int64(4), f.quantityAt(t, f.store))
	})

	t.Run("same location", func(t *testing.T) {
		_, err := f.stock.Transfer(ctx, f.tenantID, TransferStockRequest{
			ProductID: f.product, FromLocalID: f.factory, ToLocalID: f.factory, Quantity: 1,
		})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})
}

func TestStockService_DeductRawMaterial_CheapestCoveringLot(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()
	tela := f.newRawMaterial(t, "Tela")

	lotA, err := f.stock.CreateLot(ctx, f.tenantID, CreateMaterialLotRequest{
		RawMaterialID: tela, Cost: decimal.NewFromInt(5), CurrentStock: decimal.NewFromInt(100), BatchNumber: "A",
	})
	require.NoError(t, err)
	lotB, err := f.stock.CreateLot(ctx, f.tenantID, CreateMaterialLotRequest{
		RawMaterialID: tela, Cost: decimal.NewFromInt(4), CurrentStock: decimal.NewFromInt(200), BatchNumber: "B",
	})
	require.NoError(t, err)

	used, err := f.stock.DeductRawMaterial(ctx, f.tenantID, DeductRawMaterialRequest{RawMaterialID: tela, Quantity: decimal.NewFromInt(150)})
	require.NoError(t, err)
	assert.Equal(t, lotB.ID, used.ID)
	assert.Equal(t, "50", used.CurrentStock.String())

	_, err = f.stock.DeductRawMaterial(ctx, f.tenantID, DeductRawMaterialRequest{RawMaterialID: tela, Quantity: decimal.NewFromInt(250)})
	require.ErrorIs(t, err, shared.ErrInsufficientStock, "stock split across lots is not combined")
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Tela", domainErr.Details["material"])
	assert.Equal(t, "250", domainErr.Details["required"])
	assert.Equal(t, "100", domainErr.Details["available"])

	lots, err := f.stock.ListLots(ctx, f.tenantID, tela)
	require.NoError(t, err)
	stocks := map[uuid.UUID]string{}
	for _, lot := range lots {
		stocks[lot.ID] = lot.CurrentStock.String()
	}
	assert.Equal(t, map[uuid.UUID]string{lotA.ID: "100", lotB.ID: "50"}, stocks)

	total, err := f.stock.TotalRawMaterialStock(ctx, f.tenantID, tela)
	require.NoError(t, err)
	assert.Equal(t, "150", total.String())
}

func TestStockService_CreateAdjustment(t *testing.T) {
	f := newStockFixture(t)
	ctx := context.Background()
	tela := f.newRawMaterial(t, "Tela")
	lot, err := f.stock.CreateLot(ctx, f.tenantID, CreateMaterialLotRequest{
		RawMaterialID: tela, Cost: decimal.NewFromInt(3), CurrentStock: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	t.Run("product adjustment defaults to the factory", func(t *testing.T) {
		adj, err := f.stock.CreateAdjustment(ctx, f.tenantID, CreateStockAdjustmentRequest{
			ProductID:      &f.product,
			AdjustmentType: string(inventory.AdjustmentOpening),
			Quantity:       decimal.NewFromInt(12),
		})
		require.NoError(t, err)
		require.NotNil(t, adj.LocalID)
		assert.Equal(t, f.factory, *adj.LocalID)
		assert.Equal(t, int64(12), f.quantityAt(t, f.factory))
	})

	t.Run("raw material adjustment hits the lot", func(t *testing.T) {
		_, err := f.stock.CreateAdjustment(ctx, f.tenantID, CreateStockAdjustmentRequest{
			RawMaterialID:  &tela,
			MaterialLotID:  &lot.ID,
			AdjustmentType: string(inventory.AdjustmentWriteOff),
			Quantity:       decimal.RequireFromString("-2.5"),
		})
		require.NoError(t, err)
		lots, err := f.stock.ListLots(ctx, f.tenantID, tela)
		require.NoError(t, err)
		require.Len(t, lots, 1)
		assert.Equal(t, "7.5", lots[0].CurrentStock.String())
	})

	t.Run("both product and raw material", func(t *testing.T) {
		_, err := f.stock.CreateAdjustment(ctx, f.tenantID, CreateStockAdjustmentRequest{
			ProductID:      &f.product,
			RawMaterialID:  &tela,
			MaterialLotID:  &lot.ID,
			AdjustmentType: string(inventory.AdjustmentCorrection),
			Quantity:       decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("lot of another material", func(t *testing.T) {
		hilo := f.newRawMaterial(t, "Hilo")
		_, err := f.stock.CreateAdjustment(ctx, f.tenantID, CreateStockAdjustmentRequest{
			RawMaterialID:  &hilo,
			MaterialLotID:  &lot.ID,
			AdjustmentType: string(inventory.AdjustmentCorrection),
			Quantity:       decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("negative result is refused", func(t *testing.T) {
		_, err := f.stock.CreateAdjustment(ctx, f.tenantID, CreateStockAdjustmentRequest{
			ProductID:      &f.product,
			AdjustmentType: string(inventory.AdjustmentWriteOff),
			Quantity:       decimal.NewFromInt(-13),
		})
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
	})

	adjustments, err := f.stock.ListAdjustments(ctx, f.tenantID, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, adjustments, 2, "only applied adjustments are recorded")
}

func TestStockService_CreateLocal_DuplicateName(t *testing.T) {
	f := newStockFixture(t)

	_, err := f.stock.CreateLocal(context.Background(), f.tenantID, CreateLocalRequest{Name: "Local Centro"})

	assert.ErrorIs(t, err, shared.ErrAlreadyExists)
}
