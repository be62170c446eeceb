package trade

import (
	"context"
	"errors"
	"testing"

	finapp "github.com/ejarriada/Fanaticos/internal/application/finance"
	invapp "github.com/ejarriada/Fanaticos/internal/application/inventory"
	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/catalog"
	"github.com/ejarriada/Fanaticos/internal/domain/partner"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/persistence"
	"github.com/ejarriada/Fanaticos/tests/testutil"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tradeFixture struct {
	scope      unitofwork.TransactionScope
	tenantID   uuid.UUID
	quotations *QuotationService
	sales      *SaleService
	deliveries *DeliveryService
	purchases  *PurchaseService
	stock      *invapp.StockService
	accounts   *finapp.AccountService
	client     uuid.UUID
	camiseta   uuid.UUID
	short      uuid.UUID
	gorra      uuid.UUID
}

func newTradeFixture(t *testing.T) *tradeFixture {
	t.Helper()
	scope := persistence.NewGormTransactionScope(testutil.NewSQLiteDB(t))
	ledger := invapp.NewStockLedger("")
	f := &tradeFixture{
		scope:      scope,
		tenantID:   uuid.New(),
		quotations: NewQuotationService(scope),
		sales:      NewSaleService(scope),
		deliveries: NewDeliveryService(scope, ledger),
		purchases:  NewPurchaseService(scope),
		stock:      invapp.NewStockService(scope, ledger),
		accounts:   finapp.NewAccountService(scope),
	}
	ctx := context.Background()

	client, err := partner.NewClient(f.tenantID, "Club Atlético", "")
	require.NoError(t, err)
	require.NoError(t, scope.Execute(ctx, func(repos unitofwork.Repositories) error {
		return repos.ClientRepo().Save(ctx, client)
	}))
	f.client = client.ID

	f.camiseta = f.newProduct(t, "Camiseta", "CAM", decimal.NewFromInt(50))
	f.short = f.newProduct(t, "Short", "SHO", decimal.NewFromInt(50))
	f.gorra = f.newProduct(t, "Gorra", "", decimal.Zero)
	return f
}

// newProduct stores a product whose design costs cost. An empty code
// stores a product without a design.
func (f *tradeFixture) newProduct(t *testing.T, name, code string, cost decimal.Decimal) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	var designID *uuid.UUID
	var productID uuid.UUID
	require.NoError(t, f.scope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if code != "" {
			design, err := catalog.NewDesign(f.tenantID, name+" diseño", code, "", nil)
			require.NoError(t, err)
			design.CalculatedCost = cost
			if err := repos.DesignRepo().Save(ctx, design); err != nil {
				return err
			}
			designID = &design.ID
		}
		product, err := catalog.NewProduct(f.tenantID, name, name+"-1", designID)
		require.NoError(t, err)
		if err := repos.ProductRepo().Save(ctx, product); err != nil {
			return err
		}
		productID = product.ID
		return nil
	}))
	return productID
}

func (f *tradeFixture) addFactoryStock(t *testing.T, productID uuid.UUID, qty int64) {
	t.Helper()
	_, err := f.stock.Adjust(context.Background(), f.tenantID, invapp.AdjustStockRequest{ProductID: productID, Delta: qty})
	require.NoError(t, err)
}

func (f *tradeFixture) factoryStock(t *testing.T, productID uuid.UUID) int64 {
	t.Helper()
	levels, err := f.stock.StockByProduct(context.Background(), f.tenantID, productID)
	require.NoError(t, err)
	var total int64
	for _, level := range levels {
		total += level.Quantity
	}
	return total
}

func (f *tradeFixture) newSale(t *testing.T, items ...SaleItemInput) *SaleResponse {
	t.Helper()
	sale, err := f.sales.Create(context.Background(), f.tenantID, CreateSaleRequest{
		ClientID:      &f.client,
		PaymentMethod: trade.PaymentMethodToBeDefined,
		Items:         items,
	})
	require.NoError(t, err)
	return sale
}

func price(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func TestQuotationService_ConvertToSale(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()

	quotation, err := f.quotations.Create(ctx, f.tenantID, CreateQuotationRequest{
		ClientID: f.client,
		Items: []QuotationItemInput{
			{ProductID: &f.camiseta, Quantity: 2, UnitPrice: price(70)},
			{ProductID: &f.short, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "PRE-001", quotation.Number)
	assert.Equal(t, "200.00", shared.MoneyString(quotation.TotalAmount), "70×2 quoted plus 60 priced from cost")

	sale, err := f.quotations.ConvertToSale(ctx, f.tenantID, quotation.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "180.00", shared.MoneyString(sale.TotalAmount))
	assert.Equal(t, trade.PaymentMethodToBeDefined, sale.PaymentMethod)
	assert.Equal(t, f.client, *sale.ClientID)
	assert.Equal(t, quotation.ID, *sale.RelatedQuotationID)
	assert.Nil(t, sale.Payment)
	require.Len(t, sale.Items, 2)
	for _, item := range sale.Items {
		assert.Equal(t, "60.00", shared.MoneyString(item.UnitPrice))
		assert.Equal(t, "50.00", shared.MoneyString(item.Cost))
	}

	stored, err := f.quotations.Get(ctx, f.tenantID, quotation.ID)
	require.NoError(t, err)
	assert.Equal(t, string(trade.QuotationAccepted), stored.Status)

	_, err = f.quotations.ConvertToSale(ctx, f.tenantID, quotation.ID, nil)
	assert.True(t, errors.Is(err, shared.ErrAlreadyConverted))

	sales, err := f.sales.List(ctx, f.tenantID, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestQuotationService_ConvertToSale_MissingDesign(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()

	for _, items := range [][]QuotationItemInput{
		{{ProductID: &f.camiseta, Quantity: 1}, {ProductID: &f.gorra, Quantity: 3, UnitPrice: price(10)}},
		{{Description: "Bordado especial", Quantity: 1, UnitPrice: price(25)}},
	} {
		quotation, err := f.quotations.Create(ctx, f.tenantID, CreateQuotationRequest{ClientID: f.client, Items: items})
		require.NoError(t, err)

		_, err = f.quotations.ConvertToSale(ctx, f.tenantID, quotation.ID, nil)
		assert.True(t, errors.Is(err, shared.ErrMissingDesign))

		stored, err := f.quotations.Get(ctx, f.tenantID, quotation.ID)
		require.NoError(t, err)
		assert.Equal(t, string(trade.QuotationDraft), stored.Status)
	}

	sales, err := f.sales.List(ctx, f.tenantID, shared.Filter{})
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestQuotationService_Lifecycle(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	create := func() *QuotationResponse {
		q, err := f.quotations.Create(ctx, f.tenantID, CreateQuotationRequest{
			ClientID: f.client,
			Items:    []QuotationItemInput{{ProductID: &f.camiseta, Quantity: 1}},
		})
		require.NoError(t, err)
		return q
	}

	first := create()
	second := create()
	assert.Equal(t, "PRE-001", first.Number)
	assert.Equal(t, "PRE-002", second.Number)
	assert.Equal(t, "60.00", shared.MoneyString(first.Items[0].UnitPrice))

	sent, err := f.quotations.Send(ctx, f.tenantID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, string(trade.QuotationSent), sent.Status)
	_, err = f.quotations.Send(ctx, f.tenantID, first.ID)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	rejected, err := f.quotations.Reject(ctx, f.tenantID, first.ID)
	require.NoError(t, err)
	assert.Equal(t, string(trade.QuotationRejected), rejected.Status)

	_, err = f.quotations.ConvertToSale(ctx, f.tenantID, second.ID, nil)
	require.NoError(t, err)
	_, err = f.quotations.Reject(ctx, f.tenantID, second.ID)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	_, err = f.quotations.Create(ctx, f.tenantID, CreateQuotationRequest{
		ClientID: uuid.New(),
		Items:    []QuotationItemInput{{ProductID: &f.camiseta, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestSaleService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("immediate payment is posted", func(t *testing.T) {
		f := newTradeFixture(t)
		caja, err := f.accounts.CreateAccount(ctx, f.tenantID, finapp.CreateAccountRequest{Name: "Caja", AccountType: "Activo", Code: "1.1"})
		require.NoError(t, err)

		sale, err := f.sales.Create(ctx, f.tenantID, CreateSaleRequest{
			ClientID:      &f.client,
			PaymentMethod: trade.PaymentMethodCash,
			Items:         []SaleItemInput{{ProductID: f.camiseta, Quantity: 2}},
			OrderNote:     &OrderNoteInput{ShippingMethod: "Retira en fábrica"},
		})
		require.NoError(t, err)
		assert.Equal(t, "120.00", shared.MoneyString(sale.TotalAmount))
		require.NotNil(t, sale.Payment)
		assert.Equal(t, caja.ID, sale.Payment.AccountID)
		assert.Equal(t, "120.00", shared.MoneyString(sale.Payment.Amount))
		require.NotNil(t, sale.OrderNote)
		assert.Equal(t, sale.ID, sale.OrderNote.SaleID)

		balance, err := f.accounts.AccountBalance(ctx, f.tenantID, caja.ID)
		require.NoError(t, err)
		assert.Equal(t, "120.00", shared.MoneyString(balance.Balance))
	})

	t.Run("deferred payment is not posted", func(t *testing.T) {
		f := newTradeFixture(t)
		sale := f.newSale(t, SaleItemInput{ProductID: f.gorra, Quantity: 3, UnitPrice: price(15)})
		assert.Equal(t, "45.00", shared.MoneyString(sale.TotalAmount))
		assert.Nil(t, sale.Payment)
		assert.Nil(t, sale.OrderNote)
		assert.True(t, sale.Items[0].Cost.IsZero())
	})

	t.Run("unknown product rolls back", func(t *testing.T) {
		f := newTradeFixture(t)
		_, err := f.sales.Create(ctx, f.tenantID, CreateSaleRequest{
			PaymentMethod: trade.PaymentMethodCash,
			Items:         []SaleItemInput{{ProductID: uuid.New(), Quantity: 1}},
		})
		assert.True(t, errors.Is(err, shared.ErrNotFound))
		sales, err := f.sales.List(ctx, f.tenantID, shared.Filter{})
		require.NoError(t, err)
		assert.Empty(t, sales)
	})
}

func TestDeliveryService_Create(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	sale := f.newSale(t, SaleItemInput{ProductID: f.camiseta, Quantity: 5})
	f.addFactoryStock(t, f.camiseta, 4)

	deliver := func(items ...DeliveryItemInput) (*DeliveryNoteResponse, error) {
		return f.deliveries.Create(ctx, f.tenantID, sale.ID, CreateDeliveryNoteRequest{Items: items})
	}

	_, err := deliver(DeliveryItemInput{ProductID: f.short, Quantity: 1})
	assert.True(t, errors.Is(err, shared.ErrNotInSale))

	_, err = deliver(DeliveryItemInput{ProductID: f.camiseta, Quantity: 6})
	assert.True(t, errors.Is(err, shared.ErrExceedsRemaining))

	_, err = deliver(DeliveryItemInput{ProductID: f.camiseta, Quantity: 5})
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.Equal(t, int64(4), f.factoryStock(t, f.camiseta))

	_, err = deliver(DeliveryItemInput{ProductID: f.camiseta, Quantity: 0})
	assert.True(t, errors.Is(err, shared.ErrInvalidQuantity))

	note, err := deliver(
		DeliveryItemInput{ProductID: f.camiseta, Quantity: 2},
		DeliveryItemInput{ProductID: f.camiseta, Quantity: 1},
	)
	require.NoError(t, err)
	require.Len(t, note.Items, 1)
	assert.Equal(t, int64(3), note.Items[0].Quantity)
	assert.Equal(t, string(trade.DeliveryPending), note.Status)
	assert.Equal(t, int64(1), f.factoryStock(t, f.camiseta))

	progress, err := f.deliveries.Progress(ctx, f.tenantID, sale.ID)
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, DeliveryProgressResponse{ProductID: f.camiseta, Sold: 5, Delivered: 3, Remaining: 2}, progress[0])

	f.addFactoryStock(t, f.camiseta, 10)
	_, err = deliver(DeliveryItemInput{ProductID: f.camiseta, Quantity: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrExceedsRemaining))
	var domainErr *shared.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, int64(2), domainErr.Details["remaining"])

	_, err = deliver(DeliveryItemInput{ProductID: f.camiseta, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(9), f.factoryStock(t, f.camiseta))

	notes, err := f.deliveries.ListBySale(ctx, f.tenantID, sale.ID)
	require.NoError(t, err)
	assert.Len(t, notes, 2)
}

func TestDeliveryService_Create_ValidatesEveryLineFirst(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()
	sale := f.newSale(t,
		SaleItemInput{ProductID: f.camiseta, Quantity: 2},
		SaleItemInput{ProductID: f.short, Quantity: 2},
	)
	f.addFactoryStock(t, f.camiseta, 2)

	_, err := f.deliveries.Create(ctx, f.tenantID, sale.ID, CreateDeliveryNoteRequest{Items: []DeliveryItemInput{
		{ProductID: f.camiseta, Quantity: 2},
		{ProductID: f.short, Quantity: 1},
	}})
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.Equal(t, int64(2), f.factoryStock(t, f.camiseta))

	notes, err := f.deliveries.ListBySale(ctx, f.tenantID, sale.ID)
	require.NoError(t, err)
	assert.Empty(t, notes)

	_, err = f.deliveries.Create(ctx, f.tenantID, uuid.New(), CreateDeliveryNoteRequest{Items: []DeliveryItemInput{{ProductID: f.camiseta, Quantity: 1}}})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestPurchaseService(t *testing.T) {
	f := newTradeFixture(t)
	ctx := context.Background()

	supplier, err := partner.NewSupplier(f.tenantID, "Textil Sur", "")
	require.NoError(t, err)
	material, err := catalog.NewRawMaterial(f.tenantID, "Tela", "metro")
	require.NoError(t, err)
	require.NoError(t, f.scope.Execute(ctx, func(repos unitofwork.Repositories) error {
		if err := repos.SupplierRepo().Save(ctx, supplier); err != nil {
			return err
		}
		return repos.RawMaterialRepo().Save(ctx, material)
	}))

	create := func() *PurchaseOrderResponse {
		order, err := f.purchases.Create(ctx, f.tenantID, CreatePurchaseOrderRequest{
			SupplierID: supplier.ID,
			Items: []PurchaseItemInput{
				{RawMaterialID: material.ID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5)},
			},
		})
		require.NoError(t, err)
		return order
	}

	first := create()
	assert.Equal(t, int64(1), first.Number)
	assert.Equal(t, "50.00", shared.MoneyString(first.TotalAmount))
	assert.Equal(t, string(trade.PurchasePending), first.Status)
	second := create()
	assert.Equal(t, int64(2), second.Number)

	receipt, err := f.purchases.Receive(ctx, f.tenantID, first.ID, ReceivePurchaseOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, string(trade.PurchaseReceived), receipt.Order.Status)
	require.NotNil(t, receipt.Order.ReceivedAt)
	require.Len(t, receipt.Lots, 1)

	lots, err := f.stock.ListLots(ctx, f.tenantID, material.ID)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, receipt.Lots[0], lots[0].ID)
	assert.Equal(t, "10", lots[0].CurrentStock.String())
	assert.Equal(t, "5", lots[0].Cost.String())
	assert.Equal(t, "OC-1", lots[0].BatchNumber)
	assert.Equal(t, supplier.ID, *lots[0].SupplierID)

	_, err = f.purchases.Receive(ctx, f.tenantID, first.ID, ReceivePurchaseOrderRequest{})
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
	_, err = f.purchases.Cancel(ctx, f.tenantID, first.ID)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))

	cancelled, err := f.purchases.Cancel(ctx, f.tenantID, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(trade.PurchaseCancelled), cancelled.Status)

	_, err = f.purchases.Create(ctx, f.tenantID, CreatePurchaseOrderRequest{
		SupplierID: supplier.ID,
		Items:      []PurchaseItemInput{{RawMaterialID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
	})
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
