package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/finance"
	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryItemRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormInventoryItemRepository(db)
	ctx := context.Background()
	tenantID, productID, localID := uuid.New(), uuid.New(), uuid.New()

	t.Run("get or create is idempotent", func(t *testing.T) {
		first, err := repo.GetOrCreate(ctx, tenantID, productID, localID)
		require.NoError(t, err)
		second, err := repo.GetOrCreate(ctx, tenantID, productID, localID)
		require.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, int64(0), second.Quantity)
	})

	t.Run("increase accumulates on the existing row", func(t *testing.T) {
		require.NoError(t, repo.Increase(ctx, tenantID, productID, localID, 10))
		require.NoError(t, repo.Increase(ctx, tenantID, productID, localID, 5))

		qty, err := repo.QuantityOf(ctx, tenantID, productID, localID)
		require.NoError(t, err)
		assert.Equal(t, int64(15), qty)

		items, err := repo.FindByProduct(ctx, tenantID, productID)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("decrease never goes negative", func(t *testing.T) {
		ok, err := repo.DecreaseIfAvailable(ctx, tenantID, productID, localID, 20)
		require.NoError(t, err)
		assert.False(t, ok)

		ok, err = repo.DecreaseIfAvailable(ctx, tenantID, productID, localID, 15)
		require.NoError(t, err)
		assert.True(t, ok)

		qty, err := repo.QuantityOf(ctx, tenantID, productID, localID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), qty)
	})

	t.Run("other tenants see nothing", func(t *testing.T) {
		qty, err := repo.QuantityOf(ctx, uuid.New(), productID, localID)
		require.NoError(t, err)
		assert.Equal(t, int64(0), qty)
	})
}

func TestMaterialLotRepository_CheapestCovering(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMaterialLotRepository(db)
	ctx := context.Background()
	tenantID, rawMaterialID := uuid.New(), uuid.New()

	lotA, err := inventory.NewMaterialLot(tenantID, rawMaterialID, nil, decimal.NewFromInt(5), decimal.NewFromInt(100), "A")
	require.NoError(t, err)
	lotB, err := inventory.NewMaterialLot(tenantID, rawMaterialID, nil, decimal.NewFromInt(4), decimal.NewFromInt(200), "B")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, lotA))
	require.NoError(t, repo.Save(ctx, lotB))

	lot, err := repo.FindCheapestCovering(ctx, tenantID, rawMaterialID, decimal.NewFromInt(150))
	require.NoError(t, err)
	assert.Equal(t, lotB.ID, lot.ID)

	lot, err = repo.FindCheapestCovering(ctx, tenantID, rawMaterialID, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.Equal(t, lotB.ID, lot.ID, "cheaper lot wins when both cover")

	_, err = repo.FindCheapestCovering(ctx, tenantID, rawMaterialID, decimal.NewFromInt(250))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	largest, err := repo.LargestStock(ctx, tenantID, rawMaterialID)
	require.NoError(t, err)
	assert.True(t, largest.Equal(decimal.NewFromInt(200)))
}

func TestMaterialLotRepository_ApplyDelta(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormMaterialLotRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	lot, err := inventory.NewMaterialLot(tenantID, uuid.New(), nil, decimal.NewFromInt(5), decimal.NewFromInt(10), "")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, lot))

	ok, err := repo.ApplyDelta(ctx, tenantID, lot.ID, decimal.NewFromInt(-11))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ApplyDelta(ctx, tenantID, lot.ID, decimal.NewFromInt(-4))
	require.NoError(t, err)
	assert.True(t, ok)

	reloaded, err := repo.FindByIDForTenant(ctx, tenantID, lot.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.CurrentStock.Equal(decimal.NewFromInt(6)))

	_, err = repo.ApplyDelta(ctx, tenantID, uuid.New(), decimal.NewFromInt(1))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestLocalRepository_GetOrCreateByName(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormLocalRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	first, err := repo.GetOrCreateByName(ctx, tenantID, inventory.DefaultFactoryLocalName)
	require.NoError(t, err)
	second, err := repo.GetOrCreateByName(ctx, tenantID, inventory.DefaultFactoryLocalName)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	other, err := repo.GetOrCreateByName(ctx, uuid.New(), inventory.DefaultFactoryLocalName)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestDesignRepository_SkipsOrphanLines(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tenantID := uuid.New()
	designs := NewGormDesignRepository(db)

	design, err := catalog.NewDesign(tenantID, "Camiseta", "CAM-01", "", nil)
	require.NoError(t, err)
	require.NoError(t, designs.Save(ctx, design))

	fabric, err := catalog.NewRawMaterial(tenantID, "Tela", "metro")
	require.NoError(t, err)
	require.NoError(t, NewGormRawMaterialRepository(db).Save(ctx, fabric))

	cut, err := catalog.NewProcess(tenantID, "Corte", decimal.NewFromInt(3))
	require.NoError(t, err)
	require.NoError(t, NewGormProcessRepository(db).Save(ctx, cut))

	step, err := catalog.NewDesignProcess(design, cut, 1, nil)
	require.NoError(t, err)
	require.NoError(t, designs.SaveProcess(ctx, step))

	kept, err := catalog.NewDesignMaterial(design, fabric.ID, decimal.NewFromInt(2), decimal.NewFromInt(4), &step.ID)
	require.NoError(t, err)
	orphan, err := catalog.NewDesignMaterial(design, uuid.New(), decimal.NewFromInt(1), decimal.NewFromInt(99), nil)
	require.NoError(t, err)
	require.NoError(t, designs.SaveMaterial(ctx, kept))
	require.NoError(t, designs.SaveMaterial(ctx, orphan))

	materials, err := designs.FindMaterials(ctx, tenantID, design.ID)
	require.NoError(t, err)
	require.Len(t, materials, 1)
	assert.Equal(t, kept.ID, materials[0].ID)
	assert.Equal(t, "Tela", materials[0].MaterialName())

	processes, err := designs.FindProcesses(ctx, tenantID, design.ID)
	require.NoError(t, err)
	require.Len(t, processes, 1)
	assert.Equal(t, "Corte", processes[0].ProcessName())

	forStep, err := designs.FindMaterialsForStep(ctx, tenantID, step.ID)
	require.NoError(t, err)
	assert.Len(t, forStep, 1)

	byName, err := designs.FindProcessByName(ctx, tenantID, design.ID, "Corte")
	require.NoError(t, err)
	assert.Equal(t, step.ID, byName.ID)

	_, err = designs.FindProcessByName(ctx, tenantID, design.ID, "Bordado")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, designs.UpdateCalculatedCost(ctx, tenantID, design.ID, decimal.NewFromInt(11)))
	reloaded, err := designs.FindByIDForTenant(ctx, tenantID, design.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.CalculatedCost.Equal(decimal.NewFromInt(11)))

	locked, err := designs.FindForUpdate(ctx, tenantID, design.ID)
	require.NoError(t, err)
	assert.Len(t, locked.Processes, 1)
	assert.Len(t, locked.Materials, 2)
	_, err = designs.FindForUpdate(ctx, uuid.New(), design.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	require.NoError(t, designs.DeleteProcess(ctx, tenantID, step.ID))
	line, err := designs.FindMaterialByID(ctx, tenantID, kept.ID)
	require.NoError(t, err)
	assert.Nil(t, line.DesignProcessID)
}

func TestPurchaseOrderRepository_SequenceAndPaid(t *testing.T) {
	db := newTestDB(t)
	repo := NewGormPurchaseOrderRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	seq, err := repo.NextSequence(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), seq)

	po, err := trade.NewPurchaseOrder(tenantID, seq, uuid.New(), []trade.PurchaseLine{
		{RawMaterialID: uuid.New(), Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10)},
	}, nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, po))

	seq, err = repo.NextSequence(ctx, tenantID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), seq)

	paid, err := repo.IncrementPaid(ctx, tenantID, po.ID, decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, paid.Equal(decimal.NewFromInt(40)))

	paid, err = repo.IncrementPaid(ctx, tenantID, po.ID, decimal.NewFromInt(60))
	require.NoError(t, err)
	assert.True(t, paid.Equal(decimal.NewFromInt(100)))

	_, err = repo.IncrementPaid(ctx, uuid.New(), po.ID, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTransactionRepository_Sums(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tenantID, clientID := uuid.New(), uuid.New()

	sale, err := trade.NewSale(tenantID, &clientID, nil, trade.PaymentMethodCash, nil)
	require.NoError(t, err)
	require.NoError(t, NewGormSaleRepository(db).Create(ctx, sale))

	account, err := finance.NewAccount(tenantID, "Caja", finance.AccountAsset, "1.1")
	require.NoError(t, err)
	require.NoError(t, NewGormAccountRepository(db).Save(ctx, account))

	txRepo := NewGormTransactionRepository(db)
	for _, amount := range []int64{60, 30, -10} {
		tx, err := finance.NewTransaction(tenantID, account.ID, decimal.NewFromInt(amount), "pago")
		require.NoError(t, err)
		require.NoError(t, txRepo.Create(ctx, tx.ForSale(sale.ID)))
	}

	paid, err := txRepo.SumPositiveForSale(ctx, tenantID, sale.ID)
	require.NoError(t, err)
	assert.True(t, paid.Equal(decimal.NewFromInt(90)))

	balance, err := txRepo.SumForClient(ctx, tenantID, clientID)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(80)))

	none, err := txRepo.SumForSupplier(ctx, tenantID, uuid.New())
	require.NoError(t, err)
	assert.True(t, none.IsZero())

	onAccount, err := txRepo.SumForAccount(ctx, tenantID, account.ID)
	require.NoError(t, err)
	assert.True(t, onAccount.Equal(decimal.NewFromInt(80)))
}

func TestTransactionScope_RollsBack(t *testing.T) {
	db := newTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()
	tenantID, productID, localID := uuid.New(), uuid.New(), uuid.New()
	boom := errors.New("boom")

	err := scope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if err := repos.InventoryRepo().Increase(ctx, tenantID, productID, localID, 7); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	qty, err := NewGormInventoryItemRepository(db).QuantityOf(ctx, tenantID, productID, localID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), qty)
}
