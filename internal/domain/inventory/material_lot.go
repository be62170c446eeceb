package inventory

import (
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MaterialLot is a supplier-sourced stock lot of a raw material, with its
// own cost and batch identity. A raw material may be stocked across many
// lots.
type MaterialLot struct {
	shared.TenantAggregateRoot
	RawMaterialID uuid.UUID       `gorm:"type:uuid;not null;index:idx_material_lots_material_cost,priority:1"`
	SupplierID    *uuid.UUID      `gorm:"type:uuid;index"`
	SupplierCode  string          `gorm:"type:varchar(100)"`
	Cost          decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;index:idx_material_lots_material_cost,priority:2"`
	CurrentStock  decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	BatchNumber   string          `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (MaterialLot) TableName() string {
	return "material_lots"
}

// NewMaterialLot creates a lot with its opening stock
func NewMaterialLot(tenantID, rawMaterialID uuid.UUID, supplierID *uuid.UUID, cost, stock decimal.Decimal, batchNumber string) (*MaterialLot, error) {
	if rawMaterialID == uuid.Nil {
		return nil, shared.Validationf("Raw material is required")
	}
	if cost.IsNegative() {
		return nil, shared.Validationf("Lot cost cannot be negative")
	}
	if stock.IsNegative() {
		return nil, shared.ErrInvalidQuantity
	}
	return &MaterialLot{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		RawMaterialID:       rawMaterialID,
		SupplierID:          supplierID,
		Cost:                cost,
		CurrentStock:        stock,
		BatchNumber:         batchNumber,
	}, nil
}

// Covers reports whether this lot alone can supply qty
func (l *MaterialLot) Covers(qty decimal.Decimal) bool {
	return l.CurrentStock.GreaterThanOrEqual(qty)
}
