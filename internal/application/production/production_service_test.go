package production

import (
	"context"
	"errors"
	"testing"

	catapp "github.com/ejarriada/Fanaticos/internal/application/catalog"
	invapp "github.com/ejarriada/Fanaticos/internal/application/inventory"
	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/production"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/persistence"
	"github.com/ejarriada/Fanaticos/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productionFixture struct {
	scope    unitofwork.TransactionScope
	tenantID uuid.UUID
	service  *ProductionService
	stock    *invapp.StockService
	tela     uuid.UUID
	lotA     uuid.UUID
	lotB     uuid.UUID
	camiseta uuid.UUID
	short    uuid.UUID
}

// newProductionFixture builds a design with two steps: Corte consumes 1.5
// of Tela per unit and Empaque consumes nothing. Tela has lot A (100 at
// cost 5) and lot B (200 at cost 4).
func newProductionFixture(t *testing.T) *productionFixture {
	t.Helper()
	ctx := context.Background()
	scope := persistence.NewGormTransactionScope(testutil.NewSQLiteDB(t))
	ledger := invapp.NewStockLedger("")
	f := &productionFixture{
		scope:    scope,
		tenantID: uuid.New(),
		service:  NewProductionService(scope, ledger),
		stock:    invapp.NewStockService(scope, ledger),
	}

	refs := catapp.NewReferenceService(scope)
	tela, err := refs.CreateRawMaterial(ctx, f.tenantID, catapp.CreateRawMaterialRequest{Name: "Tela"})
	require.NoError(t, err)
	f.tela = tela.ID
	corte, err := refs.CreateProcess(ctx, f.tenantID, catapp.CreateProcessRequest{Name: "Corte", Cost: decimal.NewFromInt(5)})
	require.NoError(t, err)
	empaque, err := refs.CreateProcess(ctx, f.tenantID, catapp.CreateProcessRequest{Name: catalog.PackagingProcessName})
	require.NoError(t, err)

	step := 1
	design, err := catapp.NewDesignService(scope).Create(ctx, f.tenantID, catapp.CreateDesignRequest{
		Name: "Camiseta titular",
		Processes: []catapp.DesignProcessInput{
			{ProcessID: corte.ID, Order: 1},
			{ProcessID: empaque.ID, Order: 2},
		},
		Materials: []catapp.DesignMaterialInput{
			{RawMaterialID: tela.ID, Quantity: decimal.RequireFromString("1.5"), Cost: decimal.NewFromInt(4), Step: &step},
		},
	})
	require.NoError(t, err)

	products := catapp.NewProductService(scope)
	camiseta, err := products.Create(ctx, f.tenantID, catapp.CreateProductRequest{Name: "Camiseta", SKU: "CAM", DesignID: &design.ID})
	require.NoError(t, err)
	f.camiseta = camiseta.ID
	short, err := products.Create(ctx, f.tenantID, catapp.CreateProductRequest{Name: "Short", SKU: "SHO"})
	require.NoError(t, err)
	f.short = short.ID

	lotA, err := f.stock.CreateLot(ctx, f.tenantID, invapp.CreateMaterialLotRequest{
		RawMaterialID: tela.ID, Cost: decimal.NewFromInt(5), CurrentStock: decimal.NewFromInt(100), BatchNumber: "A",
	})
	require.NoError(t, err)
	f.lotA = lotA.ID
	lotB, err := f.stock.CreateLot(ctx, f.tenantID, invapp.CreateMaterialLotRequest{
		RawMaterialID: tela.ID, Cost: decimal.NewFromInt(4), CurrentStock: decimal.NewFromInt(200), BatchNumber: "B",
	})
	require.NoError(t, err)
	f.lotB = lotB.ID
	return f
}

func (f *productionFixture) newOrder(t *testing.T, baseProduct uuid.UUID, quantities ...int64) *ProductionOrderResponse {
	t.Helper()
	items := make([]OrderItemInput, 0, len(quantities))
	for i, qty := range quantities {
		product := f.camiseta
		if i%2 == 1 {
			product = f.short
		}
		items = append(items, OrderItemInput{ProductID: product, Quantity: qty})
	}
	order, err := f.service.CreateOrder(context.Background(), f.tenantID, CreateProductionOrderRequest{
		BaseProductID: &baseProduct,
		Team:          "Club Atlético",
		Items:         items,
	})
	require.NoError(t, err)
	return order
}

func (f *productionFixture) lotStocks(t *testing.T) map[uuid.UUID]string {
	t.Helper()
	lots, err := f.stock.ListLots(context.Background(), f.tenantID, f.tela)
	require.NoError(t, err)
	stocks := make(map[uuid.UUID]string, len(lots))
	for _, lot := range lots {
		stocks[lot.ID] = lot.CurrentStock.String()
	}
	return stocks
}

func (f *productionFixture) factoryStock(t *testing.T, productID uuid.UUID) int64 {
	t.Helper()
	levels, err := f.stock.StockByProduct(context.Background(), f.tenantID, productID)
	require.NoError(t, err)
	var total int64
	for _, level := range levels {
		total += level.Quantity
	}
	return total
}

func TestProductionService_CompleteProcess_FullRun(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()
	order := f.newOrder(t, f.camiseta, 10, 20)

	result, err := f.service.CompleteProcess(ctx, f.tenantID, order.ID, CompleteProcessRequest{ProcessName: "Corte"})
	require.NoError(t, err)
	require.Len(t, result.Consumed, 1)
	assert.Equal(t, "45", result.Consumed[0].Quantity, "1.5 per unit times 30 units")
	assert.Equal(t, "Tela", result.Consumed[0].Material)
	assert.Equal(t, f.lotB, result.Consumed[0].LotID, "cheapest lot covering the quantity")
	assert.Equal(t, string(production.OrderInProgress), result.Order.Status)
	assert.Equal(t, "Corte", result.Order.CurrentProcessName)
	assert.Zero(t, result.Credited)
	assert.Equal(t, map[uuid.UUID]string{f.lotA: "100", f.lotB: "155"}, f.lotStocks(t))

	result, err = f.service.CompleteProcess(ctx, f.tenantID, order.ID, CompleteProcessRequest{ProcessName: catalog.PackagingProcessName})
	require.NoError(t, err)
	assert.Empty(t, result.Consumed)
	assert.Equal(t, int64(30), result.Credited)
	assert.Equal(t, string(production.OrderCompleted), result.Order.Status)
	assert.Equal(t, int64(10), f.factoryStock(t, f.camiseta))
	assert.Equal(t, int64(20), f.factoryStock(t, f.short))

	logs, err := f.service.ProcessLogs(ctx, f.tenantID, order.ID)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, int64(30), logs[0].QuantityProcessed)

	_, err = f.service.CompleteProcess(ctx, f.tenantID, order.ID, CompleteProcessRequest{ProcessName: catalog.PackagingProcessName})
	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Equal(t, int64(10), f.factoryStock(t, f.camiseta), "a completed order credits nothing more")
}

func TestProductionService_CompleteProcess_ShortLotsRollBack(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()
	order := f.newOrder(t, f.camiseta, 150)

	_, err := f.service.CompleteProcess(ctx, f.tenantID, order.ID, CompleteProcessRequest{ProcessName: "Corte"})

	require.ErrorIs(t, err, shared.ErrInsufficientStock, "225 is above every single lot even though the lots hold 300")
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Tela", domainErr.Details["material"])
	assert.Equal(t, "225", domainErr.Details["required"])

	assert.Equal(t, map[uuid.UUID]string{f.lotA: "100", f.lotB: "200"}, f.lotStocks(t))
	loaded, err := f.service.GetOrder(ctx, f.tenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(production.OrderPending), loaded.Status)
	assert.Empty(t, loaded.CurrentProcessName)
	logs, err := f.service.ProcessLogs(ctx, f.tenantID, order.ID)
	require.NoError(t, err)
	assert.Empty(t, logs)
}

func TestProductionService_CompleteProcess_Resolution(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	t.Run("unknown process", func(t *testing.T) {
		order := f.newOrder(t, f.camiseta, 1)
		_, err := f.service.CompleteProcess(ctx, f.tenantID, order.ID, CompleteProcessRequest{ProcessName: "Bordado"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("base product without design", func(t *testing.T) {
		order := f.newOrder(t, f.short, 1)
		_, err := f.service.CompleteProcess(ctx, f.tenantID, order.ID, CompleteProcessRequest{ProcessName: "Corte"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("cancelled order", func(t *testing.T) {
		order := f.newOrder(t, f.camiseta, 1)
		_, err := f.service.CancelOrder(ctx, f.tenantID, order.ID)
		require.NoError(t, err)
		_, err = f.service.CompleteProcess(ctx, f.tenantID, order.ID, CompleteProcessRequest{ProcessName: "Corte"})
		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("other tenant", func(t *testing.T) {
		order := f.newOrder(t, f.camiseta, 1)
		_, err := f.service.CompleteProcess(ctx, uuid.New(), order.ID, CompleteProcessRequest{ProcessName: "Corte"})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestProductionService_StartOrder(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()
	order := f.newOrder(t, f.camiseta, 2)

	started, err := f.service.StartOrder(ctx, f.tenantID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, string(production.OrderInProgress), started.Status)

	_, err = f.service.StartOrder(ctx, f.tenantID, order.ID)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestProductionService_OrderNotes(t *testing.T) {
	f := newProductionFixture(t)
	ctx := context.Background()

	sale, err := trade.NewSale(f.tenantID, nil, nil, trade.PaymentMethodToBeDefined, nil)
	require.NoError(t, err)
	require.NoError(t, f.scope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.SaleRepo().Create(ctx, sale)
	}))

	note, err := f.service.CreateOrderNote(ctx, f.tenantID, CreateOrderNoteRequest{SaleID: sale.ID, ShippingMethod: "Retiro"})
	require.NoError(t, err)
	assert.Equal(t, string(production.OrderNotePending), note.Status)

	_, err = f.service.CreateOrderNote(ctx, f.tenantID, CreateOrderNoteRequest{SaleID: sale.ID})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	_, err = f.service.CreateOrderNote(ctx, f.tenantID, CreateOrderNoteRequest{SaleID: uuid.New()})
	assert.ErrorIs(t, err, shared.ErrNotFound)

	base := f.camiseta
	order, err := f.service.CreateOrder(ctx, f.tenantID, CreateProductionOrderRequest{
		OrderNoteID:   &note.ID,
		BaseProductID: &base,
		Items:         []OrderItemInput{{ProductID: f.camiseta, Quantity: 3, Customizations: map[string]any{"name": "PEREZ"}}},
	})
	require.NoError(t, err)

	orders, err := f.service.ListOrdersByNote(ctx, f.tenantID, note.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "PEREZ", orders[0].Items[0].Customizations["name"])
}
