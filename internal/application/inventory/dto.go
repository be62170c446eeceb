package inventory

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Stock DTOs ====================

// AdjustStockRequest applies a signed delta. A nil LocalID means the
// factory location.
type AdjustStockRequest struct {
	ProductID uuid.UUID  `json:"product_id" binding:"required"`
	LocalID   *uuid.UUID `json:"local_id"`
	Delta     int64      `json:"delta"`
}

// TransferStockRequest moves units between two locations
type TransferStockRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	FromLocalID uuid.UUID `json:"from_local_id" binding:"required"`
	ToLocalID   uuid.UUID `json:"to_local_id" binding:"required"`
	Quantity    int64     `json:"quantity"`
}

// StockLevelResponse is the stock of a product at a location
type StockLevelResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	LocalID   uuid.UUID `json:"local_id"`
	Quantity  int64     `json:"quantity"`
}

// TransferResultResponse reports both legs of a transfer
type TransferResultResponse struct {
	From StockLevelResponse `json:"from"`
	To   StockLevelResponse `json:"to"`
}

func toStockLevelResponse(item *inventory.InventoryItem) StockLevelResponse {
	return StockLevelResponse{ProductID: item.ProductID, LocalID: item.LocalID, Quantity: item.Quantity}
}

// CreateStockAdjustmentRequest records an adjustment and applies it. Exactly
// one of ProductID and RawMaterialID must be set.
type CreateStockAdjustmentRequest struct {
	ProductID      *uuid.UUID      `json:"product_id"`
	LocalID        *uuid.UUID      `json:"local_id"`
	RawMaterialID  *uuid.UUID      `json:"raw_material_id"`
	MaterialLotID  *uuid.UUID      `json:"material_lot_id"`
	AdjustmentType string          `json:"adjustment_type" binding:"required,oneof=Correccion Devolucion Baja Inicial"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
	Notes          string          `json:"notes"`
	UserID         *uuid.UUID      `json:"-"`
}

// StockAdjustmentResponse represents a recorded adjustment
type StockAdjustmentResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      *uuid.UUID      `json:"product_id,omitempty"`
	LocalID        *uuid.UUID      `json:"local_id,omitempty"`
	RawMaterialID  *uuid.UUID      `json:"raw_material_id,omitempty"`
	MaterialLotID  *uuid.UUID      `json:"material_lot_id,omitempty"`
	AdjustmentType string          `json:"adjustment_type"`
	Quantity       decimal.Decimal `json:"quantity"`
	Notes          string          `json:"notes"`
	CreatedBy      *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func toStockAdjustmentResponse(a *inventory.StockAdjustment) StockAdjustmentResponse {
	return StockAdjustmentResponse{
		ID:             a.ID,
		ProductID:      a.ProductID,
		LocalID:        a.LocalID,
		RawMaterialID:  a.RawMaterialID,
		MaterialLotID:  a.MaterialLotID,
		AdjustmentType: string(a.AdjustmentType),
		Quantity:       a.Quantity,
		Notes:          a.Notes,
		CreatedBy:      a.CreatedBy,
		CreatedAt:      a.CreatedAt,
	}
}

// ==================== Lot DTOs ====================

// CreateMaterialLotRequest registers a supplier lot of a raw material
type CreateMaterialLotRequest struct {
	RawMaterialID uuid.UUID       `json:"raw_material_id" binding:"required"`
	SupplierID    *uuid.UUID      `json:"supplier_id"`
	SupplierCode  string          `json:"supplier_code" binding:"max=100"`
	Cost          decimal.Decimal `json:"cost"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	BatchNumber   string          `json:"batch_number" binding:"max=100"`
}

// AdjustLotRequest applies a signed delta to a lot
type AdjustLotRequest struct {
	Delta decimal.Decimal `json:"delta" binding:"required"`
}

// DeductRawMaterialRequest consumes raw material from the cheapest lot
// that covers the quantity
type DeductRawMaterialRequest struct {
	RawMaterialID uuid.UUID       `json:"raw_material_id" binding:"required"`
	Quantity      decimal.Decimal `json:"quantity" binding:"required"`
}

// MaterialLotResponse represents a supplier lot
type MaterialLotResponse struct {
	ID            uuid.UUID       `json:"id"`
	RawMaterialID uuid.UUID       `json:"raw_material_id"`
	SupplierID    *uuid.UUID      `json:"supplier_id,omitempty"`
	SupplierCode  string          `json:"supplier_code"`
	Cost          decimal.Decimal `json:"cost"`
	CurrentStock  decimal.Decimal `json:"current_stock"`
	BatchNumber   string          `json:"batch_number"`
}

// ToMaterialLotResponse converts a lot to its response
func ToMaterialLotResponse(l *inventory.MaterialLot) MaterialLotResponse {
	return MaterialLotResponse{
		ID:            l.ID,
		RawMaterialID: l.RawMaterialID,
		SupplierID:    l.SupplierID,
		SupplierCode:  l.SupplierCode,
		Cost:          l.Cost,
		CurrentStock:  l.CurrentStock,
		BatchNumber:   l.BatchNumber,
	}
}

// ==================== Local DTOs ====================

// CreateLocalRequest creates a location
type CreateLocalRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=100"`
	Address string `json:"address" binding:"max=255"`
}

// LocalResponse represents a location
type LocalResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
}

func toLocalResponse(l *inventory.Local) LocalResponse {
	return LocalResponse{ID: l.ID, Name: l.Name, Address: l.Address}
}

// ==================== Internal Delivery DTOs ====================

// InternalDeliveryItemInput is one line of an internal delivery note
type InternalDeliveryItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// CreateInternalDeliveryRequest creates a transfer note between locations
type CreateInternalDeliveryRequest struct {
	OriginLocalID      uuid.UUID                   `json:"origin_local_id" binding:"required"`
	DestinationLocalID uuid.UUID                   `json:"destination_local_id" binding:"required"`
	Items              []InternalDeliveryItemInput `json:"items" binding:"required,min=1,dive"`
	Notes              string                      `json:"notes"`
	UserID             *uuid.UUID                  `json:"-"`
}

// InternalDeliveryItemResponse is one line of a note
type InternalDeliveryItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// InternalDeliveryResponse represents an internal delivery note
type InternalDeliveryResponse struct {
	ID                 uuid.UUID                      `json:"id"`
	OriginLocalID      uuid.UUID                      `json:"origin_local_id"`
	DestinationLocalID uuid.UUID                      `json:"destination_local_id"`
	Status             string                         `json:"status"`
	DispatchedAt       *time.Time                     `json:"dispatched_at,omitempty"`
	ReceivedAt         *time.Time                     `json:"received_at,omitempty"`
	Notes              string                         `json:"notes"`
	Items              []InternalDeliveryItemResponse `json:"items"`
	CreatedAt          time.Time                      `json:"created_at"`
}

// ToInternalDeliveryResponse converts a note to its response
func ToInternalDeliveryResponse(n *inventory.InternalDeliveryNote) InternalDeliveryResponse {
	items := make([]InternalDeliveryItemResponse, 0, len(n.Items))
	for _, item := range n.Items {
		items = append(items, InternalDeliveryItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return InternalDeliveryResponse{
		ID:                 n.ID,
		OriginLocalID:      n.OriginLocalID,
		DestinationLocalID: n.DestinationLocalID,
		Status:             string(n.Status),
		DispatchedAt:       n.DispatchedAt,
		ReceivedAt:         n.ReceivedAt,
		Notes:              n.Notes,
		Items:              items,
		CreatedAt:          n.CreatedAt,
	}
}
