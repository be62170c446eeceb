package trade

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PurchaseStatus represents the status of a purchase order
type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "Pendiente"
	PurchasePartial   PurchaseStatus = "Pago Parcial"
	PurchasePaid      PurchaseStatus = "Pagada"
	PurchaseReceived  PurchaseStatus = "Recibida"
	PurchaseCancelled PurchaseStatus = "Cancelada"
)

// PurchaseStatusFor derives the payment status once paid has been updated
func PurchaseStatusFor(total, paid decimal.Decimal) PurchaseStatus {
	switch {
	case paid.GreaterThanOrEqual(total):
		return PurchasePaid
	case paid.IsPositive():
		return PurchasePartial
	}
	return PurchasePending
}

// PurchaseOrder buys raw materials from a supplier
type PurchaseOrder struct {
	shared.TenantAggregateRoot
	Number               int64           `gorm:"not null;index"`
	SupplierID           uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderDate            time.Time       `gorm:"not null"`
	ExpectedDeliveryDate *time.Time
	ReceivedAt           *time.Time
	Status               PurchaseStatus  `gorm:"type:varchar(20);not null;default:'Pendiente'"`
	TotalAmount          decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaidAmount           decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;references:ID"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// PurchaseOrderItem is one raw material line
type PurchaseOrderItem struct {
	shared.BaseEntity
	PurchaseOrderID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	RawMaterialID      uuid.UUID       `gorm:"type:uuid;not null"`
	Quantity           decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	UnitPrice          decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DestinationLocalID *uuid.UUID      `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// PurchaseLine carries the fields of a new purchase order item
type PurchaseLine struct {
	RawMaterialID      uuid.UUID
	Quantity           decimal.Decimal
	UnitPrice          decimal.Decimal
	DestinationLocalID *uuid.UUID
}

// NewPurchaseOrder creates a pending order and totals its lines
func NewPurchaseOrder(tenantID uuid.UUID, number int64, supplierID uuid.UUID, lines []PurchaseLine, expected *time.Time, userID *uuid.UUID) (*PurchaseOrder, error) {
	if supplierID == uuid.Nil {
		return nil, shared.Validationf("Purchase order supplier is required")
	}
	if len(lines) == 0 {
		return nil, shared.Validationf("A purchase order needs at least one item")
	}
	po := &PurchaseOrder{
		TenantAggregateRoot:  shared.NewTenantAggregateRootWithCreator(tenantID, userID),
		Number:               number,
		SupplierID:           supplierID,
		OrderDate:            time.Now(),
		ExpectedDeliveryDate: expected,
		Status:               PurchasePending,
		PaidAmount:           decimal.Zero,
	}
	total := decimal.Zero
	for _, l := range lines {
		if l.RawMaterialID == uuid.Nil {
			return nil, shared.Validationf("Every purchase item needs a raw material")
		}
		if !l.Quantity.IsPositive() {
			return nil, shared.ErrInvalidQuantity
		}
		if l.UnitPrice.IsNegative() {
			return nil, shared.Validationf("Unit price cannot be negative")
		}
		po.Items = append(po.Items, PurchaseOrderItem{
			BaseEntity:         shared.NewBaseEntity(),
			PurchaseOrderID:    po.ID,
			RawMaterialID:      l.RawMaterialID,
			Quantity:           l.Quantity,
			UnitPrice:          l.UnitPrice,
			DestinationLocalID: l.DestinationLocalID,
		})
		total = total.Add(l.Quantity.Mul(l.UnitPrice))
	}
	po.TotalAmount = shared.RoundMoney(total)
	return po, nil
}

// EnsurePayable rejects payments on cancelled orders
func (po *PurchaseOrder) EnsurePayable() error {
	if po.Status == PurchaseCancelled {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Purchase order #%d is cancelled", po.Number)
	}
	return nil
}

// MarkReceived records the arrival of the goods
func (po *PurchaseOrder) MarkReceived(at time.Time) error {
	if po.Status == PurchaseCancelled || po.ReceivedAt != nil {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Purchase order #%d cannot be received in status %s", po.Number, po.Status)
	}
	po.Status = PurchaseReceived
	po.ReceivedAt = &at
	po.Touch()
	return nil
}

// Cancel cancels an order that has not been paid or received
func (po *PurchaseOrder) Cancel() error {
	if po.PaidAmount.IsPositive() || po.ReceivedAt != nil || po.Status == PurchaseCancelled {
		return shared.NewDomainErrorf(shared.CodeInvalidState, "Purchase order #%d cannot be cancelled in status %s", po.Number, po.Status)
	}
	po.Status = PurchaseCancelled
	po.Touch()
	return nil
}
