package inventory

import (
	"context"
	"errors"
	"strings"

	"github.com/ejarriada/Fanaticos/internal/application/unitofwork"
	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLedger applies quantity movements to finished-goods inventory and
// raw material lots. Its methods run on the repositories of the caller's
// transaction, so a movement commits or rolls back with the business
// operation that caused it.
type StockLedger struct {
	factoryName string
}

// NewStockLedger creates a ledger whose factory location has the given
// name. An empty name means inventory.DefaultFactoryLocalName.
func NewStockLedger(factoryName string) *StockLedger {
	factoryName = strings.TrimSpace(factoryName)
	if factoryName == "" {
		factoryName = inventory.DefaultFactoryLocalName
	}
	return &StockLedger{factoryName: factoryName}
}

// FactoryName returns the name of the factory location
func (l *StockLedger) FactoryName() string {
	return l.factoryName
}

// FactoryLocal returns the factory location, creating it on first use
func (l *StockLedger) FactoryLocal(ctx context.Context, repos unitofwork.Repositories, tenantID uuid.UUID) (*inventory.Local, error) {
	return repos.LocalRepo().GetOrCreateByName(ctx, tenantID, l.factoryName)
}

// Adjust applies a signed delta to the stock of a product at a location and
// returns the resulting quantity. The row is created at zero when absent.
// A zero delta fails with InvalidQuantity. A deduction that would leave the
// row negative fails with InsufficientStock and changes nothing.
func (l *StockLedger) Adjust(ctx context.Context, repos unitofwork.Repositories, tenantID, productID, localID uuid.UUID, delta int64) (int64, error) {
	if delta == 0 {
		return 0, shared.ErrInvalidQuantity
	}
	items := repos.InventoryRepo()
	if _, err := items.GetOrCreate(ctx, tenantID, productID, localID); err != nil {
		return 0, err
	}

	if delta > 0 {
		if err := items.Increase(ctx, tenantID, productID, localID, delta); err != nil {
			return 0, err
		}
	} else if err := l.decrease(ctx, repos, tenantID, productID, localID, -delta); err != nil {
		return 0, err
	}
	return items.QuantityOf(ctx, tenantID, productID, localID)
}

// Transfer moves qty units of a product between two locations. Both legs
// run on the same transaction.
func (l *StockLedger) Transfer(ctx context.Context, repos unitofwork.Repositories, tenantID, productID, fromID, toID uuid.UUID, qty int64) error {
	if qty <= 0 {
		return shared.ErrInvalidQuantity
	}
	if fromID == toID {
		return shared.Validationf("Origin and destination must be different locations")
	}
	if err := l.decrease(ctx, repos, tenantID, productID, fromID, qty); err != nil {
		return err
	}
	return repos.InventoryRepo().Increase(ctx, tenantID, productID, toID, qty)
}

// Credit adds units to a location
func (l *StockLedger) Credit(ctx context.Context, repos unitofwork.Repositories, tenantID, productID, localID uuid.UUID, qty int64) error {
	if qty <= 0 {
		return shared.ErrInvalidQuantity
	}
	return repos.InventoryRepo().Increase(ctx, tenantID, productID, localID, qty)
}

// Debit removes units from a location, failing with InsufficientStock when
// the location holds fewer
func (l *StockLedger) Debit(ctx context.Context, repos unitofwork.Repositories, tenantID, productID, localID uuid.UUID, qty int64) error {
	if qty <= 0 {
		return shared.ErrInvalidQuantity
	}
	return l.decrease(ctx, repos, tenantID, productID, localID, qty)
}

func (l *StockLedger) decrease(ctx context.Context, repos unitofwork.Repositories, tenantID, productID, localID uuid.UUID, qty int64) error {
	ok, err := repos.InventoryRepo().DecreaseIfAvailable(ctx, tenantID, productID, localID, qty)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	available, err := repos.InventoryRepo().QuantityOf(ctx, tenantID, productID, localID)
	if err != nil {
		return err
	}
	return shared.NewDomainErrorf(shared.CodeInsufficientStock,
		"Insufficient stock of product %s: requested %d, available %d", productID, qty, available).
		WithDetail("product_id", productID.String()).
		WithDetail("local_id", localID.String()).
		WithDetail("requested", qty).
		WithDetail("available", available)
}

// DeductRawMaterial takes qty from the cheapest lot of the raw material
// that holds at least qty on its own. Stock spread over several lots is not
// combined: when no single lot covers qty the call fails with
// InsufficientStock naming the material, the required amount and the
// largest single-lot stock.
func (l *StockLedger) DeductRawMaterial(ctx context.Context, repos unitofwork.Repositories, tenantID, rawMaterialID uuid.UUID, qty decimal.Decimal) (*inventory.MaterialLot, error) {
	if !qty.IsPositive() {
		return nil, shared.ErrInvalidQuantity
	}

	lots := repos.MaterialLotRepo()
	lot, err := lots.FindCheapestCovering(ctx, tenantID, rawMaterialID, qty)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, l.lotShortage(ctx, repos, tenantID, rawMaterialID, qty)
	}
	if err != nil {
		return nil, err
	}

	ok, err := lots.ApplyDelta(ctx, tenantID, lot.ID, qty.Neg())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, l.lotShortage(ctx, repos, tenantID, rawMaterialID, qty)
	}
	lot.CurrentStock = lot.CurrentStock.Sub(qty)
	return lot, nil
}

// AdjustLot applies a signed delta to one lot, refusing to go below zero
func (l *StockLedger) AdjustLot(ctx context.Context, repos unitofwork.Repositories, tenantID, lotID uuid.UUID, delta decimal.Decimal) (*inventory.MaterialLot, error) {
	if delta.IsZero() {
		return nil, shared.ErrInvalidQuantity
	}
	lots := repos.MaterialLotRepo()
	ok, err := lots.ApplyDelta(ctx, tenantID, lotID, delta)
	if err != nil {
		return nil, err
	}
	lot, err := lots.FindByIDForTenant(ctx, tenantID, lotID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.NewDomainErrorf(shared.CodeInsufficientStock,
			"Insufficient stock in lot %s: requested %s, available %s", lotID, delta.Neg(), lot.CurrentStock).
			WithDetail("lot_id", lotID.String()).
			WithDetail("requested", delta.Neg().String()).
			WithDetail("available", lot.CurrentStock.String())
	}
	return lot, nil
}

func (l *StockLedger) lotShortage(ctx context.Context, repos unitofwork.Repositories, tenantID, rawMaterialID uuid.UUID, required decimal.Decimal) error {
	available, err := repos.MaterialLotRepo().LargestStock(ctx, tenantID, rawMaterialID)
	if err != nil {
		return err
	}
	name := rawMaterialID.String()
	if material, err := repos.RawMaterialRepo().FindByIDForTenant(ctx, tenantID, rawMaterialID); err == nil {
		name = material.Name
	}
	return shared.NewDomainErrorf(shared.CodeInsufficientStock,
		"Insufficient stock of %s: required %s, largest lot holds %s", name, required, available).
		WithDetail("raw_material_id", rawMaterialID.String()).
		WithDetail("material", name).
		WithDetail("required", required.String()).
		WithDetail("available", available.String())
}
