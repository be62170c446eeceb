package production

import (
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/production"
	"github.com/google/uuid"
)

// ==================== Order Note DTOs ====================

// CreateOrderNoteRequest requests production for a sale
type CreateOrderNoteRequest struct {
	SaleID                uuid.UUID  `json:"sale_id" binding:"required"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
	ShippingMethod        string     `json:"shipping_method" binding:"max=100"`
	Details               string     `json:"details"`
	UserID                *uuid.UUID `json:"-"`
}

// OrderNoteResponse represents an order note
type OrderNoteResponse struct {
	ID                    uuid.UUID  `json:"id"`
	SaleID                uuid.UUID  `json:"sale_id"`
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date,omitempty"`
	ShippingMethod        string     `json:"shipping_method"`
	Status                string     `json:"status"`
	Details               string     `json:"details"`
	CreatedAt             time.Time  `json:"created_at"`
}

// ToOrderNoteResponse converts an order note to its response
func ToOrderNoteResponse(n *production.OrderNote) OrderNoteResponse {
	return OrderNoteResponse{
		ID:                    n.ID,
		SaleID:                n.SaleID,
		EstimatedDeliveryDate: n.EstimatedDeliveryDate,
		ShippingMethod:        n.ShippingMethod,
		Status:                string(n.Status),
		Details:               n.Details,
		CreatedAt:             n.CreatedAt,
	}
}

// ==================== Production Order DTOs ====================

// OrderItemInput is one line of a production order
type OrderItemInput struct {
	ProductID      uuid.UUID      `json:"product_id" binding:"required"`
	Quantity       int64          `json:"quantity" binding:"required,gt=0"`
	SizeID         *uuid.UUID     `json:"size_id"`
	ColorID        *uuid.UUID     `json:"color_id"`
	Customizations map[string]any `json:"customizations"`
}

// CreateProductionOrderRequest creates a production order
type CreateProductionOrderRequest struct {
	OrderNoteID           *uuid.UUID       `json:"order_note_id"`
	BaseProductID         *uuid.UUID       `json:"base_product_id"`
	Team                  string           `json:"equipo" binding:"max=100"`
	TeamDetail            string           `json:"detalle_equipo" binding:"max=255"`
	CustomizationDetails  map[string]any   `json:"customization_details"`
	OpType                string           `json:"op_type" binding:"omitempty,oneof=Medias Indumentaria"`
	EstimatedDeliveryDate *time.Time       `json:"estimated_delivery_date"`
	Details               string           `json:"details"`
	Items                 []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	UserID                *uuid.UUID       `json:"-"`
}

// CompleteProcessRequest names the design step that finished
type CompleteProcessRequest struct {
	ProcessName string     `json:"process_name" binding:"required,min=1,max=100"`
	UserID      *uuid.UUID `json:"-"`
}

// OrderItemResponse is one line of a production order
type OrderItemResponse struct {
	ID             uuid.UUID      `json:"id"`
	ProductID      uuid.UUID      `json:"product_id"`
	Quantity       int64          `json:"quantity"`
	SizeID         *uuid.UUID     `json:"size_id,omitempty"`
	ColorID        *uuid.UUID     `json:"color_id,omitempty"`
	Customizations map[string]any `json:"customizations,omitempty"`
}

// ProductionOrderResponse represents a production order
type ProductionOrderResponse struct {
	ID                    uuid.UUID           `json:"id"`
	OrderNoteID           *uuid.UUID          `json:"order_note_id,omitempty"`
	BaseProductID         *uuid.UUID          `json:"base_product_id,omitempty"`
	Team                  string              `json:"equipo"`
	TeamDetail            string              `json:"detalle_equipo"`
	CustomizationDetails  map[string]any      `json:"customization_details,omitempty"`
	OpType                string              `json:"op_type"`
	Status                string              `json:"status"`
	EstimatedDeliveryDate *time.Time          `json:"estimated_delivery_date,omitempty"`
	CurrentProcessID      *uuid.UUID          `json:"current_process_id,omitempty"`
	CurrentProcessName    string              `json:"current_process,omitempty"`
	Details               string              `json:"details"`
	Items                 []OrderItemResponse `json:"items"`
	TotalUnits            int64               `json:"total_units"`
	CreatedAt             time.Time           `json:"created_at"`
}

// ToProductionOrderResponse converts an order to its response
func ToProductionOrderResponse(o *production.ProductionOrder) ProductionOrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, OrderItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			Quantity:       item.Quantity,
			SizeID:         item.SizeID,
			ColorID:        item.ColorID,
			Customizations: item.Customizations,
		})
	}
	return ProductionOrderResponse{
		ID:                    o.ID,
		OrderNoteID:           o.OrderNoteID,
		BaseProductID:         o.BaseProductID,
		Team:                  o.Team,
		TeamDetail:            o.TeamDetail,
		CustomizationDetails:  o.CustomizationDetails,
		OpType:                string(o.OpType),
		Status:                string(o.Status),
		EstimatedDeliveryDate: o.EstimatedDeliveryDate,
		CurrentProcessID:      o.CurrentProcessID,
		CurrentProcessName:    o.CurrentProcessName,
		Details:               o.Details,
		Items:                 items,
		TotalUnits:            o.TotalUnits(),
		CreatedAt:             o.CreatedAt,
	}
}

// MaterialConsumption reports one raw material taken by a step
type MaterialConsumption struct {
	RawMaterialID uuid.UUID `json:"raw_material_id"`
	Material      string    `json:"material"`
	LotID         uuid.UUID `json:"lot_id"`
	Quantity      string    `json:"quantity"`
}

// CompleteProcessResponse reports the outcome of a finished step
type CompleteProcessResponse struct {
	Order    ProductionOrderResponse `json:"order"`
	Consumed []MaterialConsumption   `json:"consumed"`
	// Credited is the number of finished units added to the factory, non
	// zero only for the packaging step
	Credited int64 `json:"credited"`
}

// ProcessLogResponse represents one completed step
type ProcessLogResponse struct {
	ID                uuid.UUID `json:"id"`
	DesignProcessID   uuid.UUID `json:"design_process_id"`
	ProcessName       string    `json:"process_name"`
	EndTime           time.Time `json:"end_time"`
	QuantityProcessed int64     `json:"quantity_processed"`
}

func toProcessLogResponse(l *production.ProcessLog) ProcessLogResponse {
	return ProcessLogResponse{
		ID:                l.ID,
		DesignProcessID:   l.DesignProcessID,
		ProcessName:       l.ProcessName,
		EndTime:           l.EndTime,
		QuantityProcessed: l.QuantityProcessed,
	}
}
