package inventory

import (
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
)

// InventoryItem is the quantity of a finished product at a location. There
// is at most one row per (tenant, product, local) and Quantity is never
// negative.
type InventoryItem struct {
	shared.BaseEntity
	TenantID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_items_key,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_items_key,priority:2"`
	LocalID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_inventory_items_key,priority:3"`
	Quantity  int64     `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryItem) TableName() string {
	return "inventory_items"
}

// NewInventoryItem creates an empty stock row
func NewInventoryItem(tenantID, productID, localID uuid.UUID) (*InventoryItem, error) {
	if productID == uuid.Nil {
		return nil, shared.Validationf("Product ID cannot be empty")
	}
	if localID == uuid.Nil {
		return nil, shared.Validationf("Local ID cannot be empty")
	}
	return &InventoryItem{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		ProductID:  productID,
		LocalID:    localID,
	}, nil
}

// CanDeduct reports whether qty units can be taken without going negative
func (i *InventoryItem) CanDeduct(qty int64) bool {
	return i.Quantity >= qty
}
