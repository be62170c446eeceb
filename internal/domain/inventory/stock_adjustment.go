package inventory

import (
	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdjustmentType classifies a manual stock adjustment
type AdjustmentType string

const (
	AdjustmentCorrection AdjustmentType = "Correccion"
	AdjustmentReturn     AdjustmentType = "Devolucion"
	AdjustmentWriteOff   AdjustmentType = "Baja"
	AdjustmentOpening    AdjustmentType = "Inicial"
)

// IsValid checks if the type is known
func (t AdjustmentType) IsValid() bool {
	switch t {
	case AdjustmentCorrection, AdjustmentReturn, AdjustmentWriteOff, AdjustmentOpening:
		return true
	}
	return false
}

// StockAdjustment is an audited manual change of stock. It targets either a
// product at a location or a raw material lot, never both.
type StockAdjustment struct {
	shared.TenantAggregateRoot
	ProductID      *uuid.UUID      `gorm:"type:uuid;index"`
	LocalID        *uuid.UUID      `gorm:"type:uuid"`
	RawMaterialID  *uuid.UUID      `gorm:"type:uuid;index"`
	MaterialLotID  *uuid.UUID      `gorm:"type:uuid"`
	AdjustmentType AdjustmentType  `gorm:"type:varchar(20);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	Notes          string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (StockAdjustment) TableName() string {
	return "stock_adjustments"
}

// StockAdjustmentInput carries the fields of a new adjustment
type StockAdjustmentInput struct {
	ProductID      *uuid.UUID
	LocalID        *uuid.UUID
	RawMaterialID  *uuid.UUID
	MaterialLotID  *uuid.UUID
	AdjustmentType AdjustmentType
	Quantity       decimal.Decimal
	Notes          string
	UserID         *uuid.UUID
}

// NewStockAdjustment validates and creates an adjustment record
func NewStockAdjustment(tenantID uuid.UUID, in StockAdjustmentInput) (*StockAdjustment, error) {
	hasProduct := isSet(in.ProductID)
	hasMaterial := isSet(in.RawMaterialID)
	if hasProduct == hasMaterial {
		return nil, shared.Validationf("A stock adjustment must name exactly one of product or raw material")
	}
	if !in.AdjustmentType.IsValid() {
		return nil, shared.Validationf("Unknown adjustment type %q", in.AdjustmentType)
	}
	if in.Quantity.IsZero() {
		return nil, shared.ErrInvalidQuantity
	}
	if hasProduct && !in.Quantity.Equal(in.Quantity.Truncate(0)) {
		return nil, shared.Validationf("Product adjustments must use whole units")
	}
	if hasMaterial && !isSet(in.MaterialLotID) {
		return nil, shared.Validationf("Raw material adjustments must name a supplier lot")
	}
	if !hasProduct {
		in.ProductID = nil
	}
	if !hasMaterial {
		in.RawMaterialID = nil
	}
	return &StockAdjustment{
		TenantAggregateRoot: shared.NewTenantAggregateRootWithCreator(tenantID, in.UserID),
		ProductID:           in.ProductID,
		LocalID:             in.LocalID,
		RawMaterialID:       in.RawMaterialID,
		MaterialLotID:       in.MaterialLotID,
		AdjustmentType:      in.AdjustmentType,
		Quantity:            in.Quantity,
		Notes:               in.Notes,
	}, nil
}

// IsProductAdjustment reports whether the adjustment targets finished goods
func (a *StockAdjustment) IsProductAdjustment() bool {
	return isSet(a.ProductID)
}

// isSet treats a nil pointer and a pointer to uuid.Nil alike
func isSet(id *uuid.UUID) bool {
	return id != nil && *id != uuid.Nil
}

// UnitDelta returns the quantity as whole units, for product adjustments
func (a *StockAdjustment) UnitDelta() int64 {
	return a.Quantity.IntPart()
}
