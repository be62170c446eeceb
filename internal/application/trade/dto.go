package trade

import (
	"time"

	finapp "github.com/ejarriada/Fanaticos/internal/application/finance"
	prodapp "github.com/ejarriada/Fanaticos/internal/application/production"
	"github.com/ejarriada/Fanaticos/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ==================== Quotation DTOs ====================

// QuotationItemInput is one line of a new quotation. A nil UnitPrice is
// priced from the design cost of the product.
type QuotationItemInput struct {
	ProductID   *uuid.UUID       `json:"product_id"`
	SizeID      *uuid.UUID       `json:"size_id"`
	ColorID     *uuid.UUID       `json:"color_id"`
	Description string           `json:"description" binding:"max=255"`
	Quantity    int64            `json:"quantity" binding:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price"`
}

// CreateQuotationRequest creates a draft quotation
type CreateQuotationRequest struct {
	ClientID uuid.UUID            `json:"client_id" binding:"required"`
	Items    []QuotationItemInput `json:"items" binding:"required,min=1,dive"`
	Notes    string               `json:"notes"`
	UserID   *uuid.UUID           `json:"-"`
}

// QuotationItemResponse represents a quotation line
type QuotationItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	SizeID      *uuid.UUID      `json:"size_id,omitempty"`
	ColorID     *uuid.UUID      `json:"color_id,omitempty"`
	Description string          `json:"description,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Cost        decimal.Decimal `json:"cost"`
}

// QuotationResponse represents a quotation
type QuotationResponse struct {
	ID          uuid.UUID               `json:"id"`
	Number      string                  `json:"number"`
	ClientID    uuid.UUID               `json:"client_id"`
	Date        time.Time               `json:"date"`
	TotalAmount decimal.Decimal         `json:"total_amount"`
	Status      string                  `json:"status"`
	Notes       string                  `json:"notes,omitempty"`
	Items       []QuotationItemResponse `json:"items"`
}

// ToQuotationResponse converts a quotation to its response
func ToQuotationResponse(q *trade.Quotation) QuotationResponse {
	resp := QuotationResponse{
		ID:          q.ID,
		Number:      q.Number,
		ClientID:    q.ClientID,
		Date:        q.Date,
		TotalAmount: q.TotalAmount,
		Status:      string(q.Status),
		Notes:       q.Notes,
		Items:       make([]QuotationItemResponse, 0, len(q.Items)),
	}
	for _, item := range q.Items {
		resp.Items = append(resp.Items, QuotationItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			SizeID:      item.SizeID,
			ColorID:     item.ColorID,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Cost:        item.Cost,
		})
	}
	return resp
}

// ==================== Sale DTOs ====================

// SaleItemInput is one line of a new sale. A nil UnitPrice is priced from
// the design cost of the product.
type SaleItemInput struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// OrderNoteInput asks for an order note to be opened with the sale
type OrderNoteInput struct {
	EstimatedDeliveryDate *time.Time `json:"estimated_delivery_date"`
	ShippingMethod        string     `json:"shipping_method" binding:"max=100"`
	Details               string     `json:"details"`
}

// CreateSaleRequest creates a sale. Sales paid with Efectivo, Transferencia
// or Mercado Pago are posted to the ledger in the same transaction.
type CreateSaleRequest struct {
	ClientID      *uuid.UUID      `json:"client_id"`
	LocalID       *uuid.UUID      `json:"local_id"`
	PaymentMethod string          `json:"payment_method" binding:"required,max=50"`
	Items         []SaleItemInput `json:"items" binding:"required,min=1,dive"`
	OrderNote     *OrderNoteInput `json:"order_note"`
	UserID        *uuid.UUID      `json:"-"`
}

// SaleItemResponse represents a sale line
type SaleItemResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Cost      decimal.Decimal `json:"cost"`
}

// SaleResponse represents a sale
type SaleResponse struct {
	ID                 uuid.UUID                   `json:"id"`
	ClientID           *uuid.UUID                  `json:"client_id,omitempty"`
	LocalID            *uuid.UUID                  `json:"local_id,omitempty"`
	RelatedQuotationID *uuid.UUID                  `json:"related_quotation_id,omitempty"`
	Date               time.Time                   `json:"date"`
	TotalAmount        decimal.Decimal             `json:"total_amount"`
	PaymentMethod      string                      `json:"payment_method"`
	Items              []SaleItemResponse          `json:"items"`
	Payment            *finapp.TransactionResponse `json:"payment,omitempty"`
	OrderNote          *prodapp.OrderNoteResponse  `json:"order_note,omitempty"`
}

// ToSaleResponse converts a sale to its response
func ToSaleResponse(s *trade.Sale) SaleResponse {
	resp := SaleResponse{
		ID:                 s.ID,
		ClientID:           s.ClientID,
		LocalID:            s.LocalID,
		RelatedQuotationID: s.RelatedQuotationID,
		Date:               s.Date,
		TotalAmount:        s.TotalAmount,
		PaymentMethod:      s.PaymentMethod,
		Items:              make([]SaleItemResponse, 0, len(s.Items)),
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, SaleItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Cost:      item.Cost,
		})
	}
	return resp
}

// ==================== Delivery Note DTOs ====================

// DeliveryItemInput is a requested product quantity
type DeliveryItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int64     `json:"quantity" binding:"required,gt=0"`
}

// CreateDeliveryNoteRequest dispatches sold goods from the factory
type CreateDeliveryNoteRequest struct {
	Items          []DeliveryItemInput `json:"items" binding:"required,min=1,dive"`
	TrackingNumber string              `json:"tracking_number" binding:"max=100"`
	Notes          string              `json:"notes"`
	UserID         *uuid.UUID          `json:"-"`
}

// DeliveryNoteItemResponse represents a dispatched line
type DeliveryNoteItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int64     `json:"quantity"`
}

// DeliveryNoteResponse represents a delivery note
type DeliveryNoteResponse struct {
	ID             uuid.UUID                  `json:"id"`
	SaleID         uuid.UUID                  `json:"sale_id"`
	Date           time.Time                  `json:"date"`
	Status         string                     `json:"status"`
	TrackingNumber string                     `json:"tracking_number,omitempty"`
	Notes          string                     `json:"notes,omitempty"`
	Items          []DeliveryNoteItemResponse `json:"items"`
}

// ToDeliveryNoteResponse converts a delivery note to its response
func ToDeliveryNoteResponse(n *trade.DeliveryNote) DeliveryNoteResponse {
	resp := DeliveryNoteResponse{
		ID:             n.ID,
		SaleID:         n.SaleID,
		Date:           n.Date,
		Status:         string(n.Status),
		TrackingNumber: n.TrackingNumber,
		Notes:          n.Notes,
		Items:          make([]DeliveryNoteItemResponse, 0, len(n.Items)),
	}
	for _, item := range n.Items {
		resp.Items = append(resp.Items, DeliveryNoteItemResponse{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	return resp
}

// DeliveryProgressResponse reports sold, delivered and remaining units of
// one product of a sale
type DeliveryProgressResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Sold      int64     `json:"sold"`
	Delivered int64     `json:"delivered"`
	Remaining int64     `json:"remaining"`
}

// ==================== Purchase Order DTOs ====================

// PurchaseItemInput is one raw material line of a purchase order
type PurchaseItemInput struct {
	RawMaterialID      uuid.UUID       `json:"raw_material_id" binding:"required"`
	Quantity           decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DestinationLocalID *uuid.UUID      `json:"destination_local_id"`
}

// CreatePurchaseOrderRequest creates a pending purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID           uuid.UUID           `json:"supplier_id" binding:"required"`
	Items                []PurchaseItemInput `json:"items" binding:"required,min=1,dive"`
	ExpectedDeliveryDate *time.Time          `json:"expected_delivery_date"`
	UserID               *uuid.UUID          `json:"-"`
}

// ReceivePurchaseOrderRequest records the arrival of a purchase order
type ReceivePurchaseOrderRequest struct {
	BatchNumber string `json:"batch_number" binding:"max=100"`
}

// PurchaseOrderItemResponse represents a purchase order line
type PurchaseOrderItemResponse struct {
	ID                 uuid.UUID       `json:"id"`
	RawMaterialID      uuid.UUID       `json:"raw_material_id"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	DestinationLocalID *uuid.UUID      `json:"destination_local_id,omitempty"`
}

// PurchaseOrderResponse represents a purchase order
type PurchaseOrderResponse struct {
	ID                   uuid.UUID                   `json:"id"`
	Number               int64                       `json:"number"`
	SupplierID           uuid.UUID                   `json:"supplier_id"`
	OrderDate            time.Time                   `json:"order_date"`
	ExpectedDeliveryDate *time.Time                  `json:"expected_delivery_date,omitempty"`
	ReceivedAt           *time.Time                  `json:"received_at,omitempty"`
	Status               string                      `json:"status"`
	TotalAmount          decimal.Decimal             `json:"total_amount"`
	PaidAmount           decimal.Decimal             `json:"paid_amount"`
	Items                []PurchaseOrderItemResponse `json:"items"`
}

// ToPurchaseOrderResponse converts a purchase order to its response
func ToPurchaseOrderResponse(po *trade.PurchaseOrder) PurchaseOrderResponse {
	resp := PurchaseOrderResponse{
		ID:                   po.ID,
		Number:               po.Number,
		SupplierID:           po.SupplierID,
		OrderDate:            po.OrderDate,
		ExpectedDeliveryDate: po.ExpectedDeliveryDate,
		ReceivedAt:           po.ReceivedAt,
		Status:               string(po.Status),
		TotalAmount:          po.TotalAmount,
		PaidAmount:           po.PaidAmount,
		Items:                make([]PurchaseOrderItemResponse, 0, len(po.Items)),
	}
	for _, item := range po.Items {
		resp.Items = append(resp.Items, PurchaseOrderItemResponse{
			ID:                 item.ID,
			RawMaterialID:      item.RawMaterialID,
			Quantity:           item.Quantity,
			UnitPrice:          item.UnitPrice,
			DestinationLocalID: item.DestinationLocalID,
		})
	}
	return resp
}

// PurchaseReceiptResponse reports a received purchase order and the lots
// opened for it
type PurchaseReceiptResponse struct {
	Order PurchaseOrderResponse `json:"order"`
	Lots  []uuid.UUID           `json:"lot_ids"`
}
