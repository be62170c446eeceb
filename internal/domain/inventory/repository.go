package inventory

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocalRepository persists locations
type LocalRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Local, error)
	FindByName(ctx context.Context, tenantID uuid.UUID, name string) (*Local, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Local, error)
	// GetOrCreateByName returns the named location, inserting it if absent.
	// Concurrent callers converge on the same row.
	GetOrCreateByName(ctx context.Context, tenantID uuid.UUID, name string) (*Local, error)
	Save(ctx context.Context, local *Local) error
}

// InventoryItemRepository persists finished-goods stock rows. Quantity
// changes are single statements so concurrent writers never lose updates.
type InventoryItemRepository interface {
	// Find returns the stock row, or shared.ErrNotFound
	Find(ctx context.Context, tenantID, productID, localID uuid.UUID) (*InventoryItem, error)
	// QuantityOf returns the stock at a location, zero if there is no row
	QuantityOf(ctx context.Context, tenantID, productID, localID uuid.UUID) (int64, error)
	// GetOrCreate returns the row, inserting it with quantity 0 if absent
	GetOrCreate(ctx context.Context, tenantID, productID, localID uuid.UUID) (*InventoryItem, error)
	// Increase upserts the row and adds qty to it
	Increase(ctx context.Context, tenantID, productID, localID uuid.UUID, qty int64) error
	// DecreaseIfAvailable subtracts qty only if the row holds at least qty.
	// It reports false, without changing anything, when stock is short.
	DecreaseIfAvailable(ctx context.Context, tenantID, productID, localID uuid.UUID, qty int64) (bool, error)
	FindByProduct(ctx context.Context, tenantID, productID uuid.UUID) ([]InventoryItem, error)
	FindByLocal(ctx context.Context, tenantID, localID uuid.UUID, filter shared.Filter) ([]InventoryItem, error)
}

// MaterialLotRepository persists raw material supplier lots
type MaterialLotRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*MaterialLot, error)
	FindByRawMaterial(ctx context.Context, tenantID, rawMaterialID uuid.UUID) ([]MaterialLot, error)
	// FindCheapestCovering locks and returns the lowest-cost lot whose stock
	// alone covers qty, or shared.ErrNotFound
	FindCheapestCovering(ctx context.Context, tenantID, rawMaterialID uuid.UUID, qty decimal.Decimal) (*MaterialLot, error)
	// LargestStock returns the highest current_stock among the material lots
	LargestStock(ctx context.Context, tenantID, rawMaterialID uuid.UUID) (decimal.Decimal, error)
	// ApplyDelta adds delta to the lot stock, refusing to go below zero. It
	// reports false when the lot would turn negative.
	ApplyDelta(ctx context.Context, tenantID, lotID uuid.UUID, delta decimal.Decimal) (bool, error)
	Save(ctx context.Context, lot *MaterialLot) error
}

// StockAdjustmentRepository persists adjustment records
type StockAdjustmentRepository interface {
	Save(ctx context.Context, adjustment *StockAdjustment) error
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]StockAdjustment, error)
}

// InternalDeliveryNoteRepository persists transfer notes
type InternalDeliveryNoteRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*InternalDeliveryNote, error)
	// Create inserts the note with its items
	Create(ctx context.Context, note *InternalDeliveryNote) error
	// UpdateStatus persists status and timestamps only
	UpdateStatus(ctx context.Context, note *InternalDeliveryNote) error
}
