package trade

import (
	"context"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuotationRepository persists quotations with their items
type QuotationRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Quotation, error)
	// FindForUpdate loads the quotation and locks its row until the
	// transaction ends
	FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Quotation, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Quotation, error)
	NextSequence(ctx context.Context, tenantID uuid.UUID) (int64, error)
	Create(ctx context.Context, quotation *Quotation) error
	UpdateStatus(ctx context.Context, quotation *Quotation) error
}

// SaleRepository persists sales with their items
type SaleRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	// FindForUpdate loads the sale and locks its row until the transaction
	// ends, serialising payments and deliveries of the same sale
	FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*Sale, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Sale, error)
	FindByQuotation(ctx context.Context, tenantID, quotationID uuid.UUID) (*Sale, error)
	Create(ctx context.Context, sale *Sale) error
	CreateItem(ctx context.Context, item *SaleItem) error
	UpdateTotal(ctx context.Context, tenantID, saleID uuid.UUID, total decimal.Decimal) error
	// SoldQuantity returns Σ SaleItem.quantity of the product in the sale
	SoldQuantity(ctx context.Context, tenantID, saleID, productID uuid.UUID) (int64, error)
}

// DeliveryNoteRepository persists delivery notes with their items
type DeliveryNoteRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*DeliveryNote, error)
	FindBySale(ctx context.Context, tenantID, saleID uuid.UUID) ([]DeliveryNote, error)
	Create(ctx context.Context, note *DeliveryNote) error
	// DeliveredQuantity returns Σ DeliveryNoteItem.quantity of the product
	// across every delivery note of the sale
	DeliveredQuantity(ctx context.Context, tenantID, saleID, productID uuid.UUID) (int64, error)
}

// PurchaseOrderRepository persists purchase orders with their items
type PurchaseOrderRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)
	FindForUpdate(ctx context.Context, tenantID, id uuid.UUID) (*PurchaseOrder, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)
	NextSequence(ctx context.Context, tenantID uuid.UUID) (int64, error)
	Create(ctx context.Context, order *PurchaseOrder) error
	// IncrementPaid adds amount to paid_amount in one statement and returns
	// the new value
	IncrementPaid(ctx context.Context, tenantID, id uuid.UUID, amount decimal.Decimal) (decimal.Decimal, error)
	// UpdateStatus persists status and received_at
	UpdateStatus(ctx context.Context, order *PurchaseOrder) error
}
