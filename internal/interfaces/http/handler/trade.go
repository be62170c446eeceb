package handler

import (
	tradeapp "github.com/ejarriada/Fanaticos/internal/application/trade"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/middleware"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// TradeHandler handles quotations, sales, delivery notes and purchase
// orders
type TradeHandler struct {
	BaseHandler
	quotationService *tradeapp.QuotationService
	saleService      *tradeapp.SaleService
	deliveryService  *tradeapp.DeliveryService
	purchaseService  *tradeapp.PurchaseService
}

// NewTradeHandler creates a new TradeHandler
func NewTradeHandler(
	quotationService *tradeapp.QuotationService,
	saleService *tradeapp.SaleService,
	deliveryService *tradeapp.DeliveryService,
	purchaseService *tradeapp.PurchaseService,
) *TradeHandler {
	return &TradeHandler{
		quotationService: quotationService,
		saleService:      saleService,
		deliveryService:  deliveryService,
		purchaseService:  purchaseService,
	}
}

// Routes returns the trade route groups
func (h *TradeHandler) Routes() *router.DomainGroup {
	trade := router.NewDomainGroup("")

	trade.Group("/quotations").
		POST("", h.CreateQuotation).
		GET("", h.ListQuotations).
		GET("/:id", h.GetQuotation).
		POST("/:id/send", h.SendQuotation).
		POST("/:id/reject", h.RejectQuotation).
		POST("/:id/convert", h.ConvertQuotation)

	trade.Group("/sales").
		POST("", h.CreateSale).
		GET("", h.ListSales).
		GET("/:id", h.GetSale).
		POST("/:id/deliveries", h.CreateDelivery).
		GET("/:id/deliveries", h.ListDeliveries).
		GET("/:id/delivery-progress", h.DeliveryProgress)

	trade.Group("/delivery-notes").
		GET("/:id", h.GetDelivery)

	trade.Group("/purchase-orders").
		POST("", h.CreatePurchaseOrder).
		GET("", h.ListPurchaseOrders).
		GET("/:id", h.GetPurchaseOrder).
		POST("/:id/receive", h.ReceivePurchaseOrder).
		POST("/:id/cancel", h.CancelPurchaseOrder)

	return trade
}

// ==================== Quotations ====================

// CreateQuotation creates a quotation
func (h *TradeHandler) CreateQuotation(c *gin.Context) {
	var req tradeapp.CreateQuotationRequest
	req.UserID = middleware.GetUserID(c)
	create(h, c, &req, h.quotationService.Create)
}

// ListQuotations lists quotations
func (h *TradeHandler) ListQuotations(c *gin.Context) {
	list(h, c, h.quotationService.List)
}

// GetQuotation returns a quotation
func (h *TradeHandler) GetQuotation(c *gin.Context) {
	withID(h, c, "id", h.quotationService.Get)
}

// SendQuotation marks a quotation as sent to the client
func (h *TradeHandler) SendQuotation(c *gin.Context) {
	withID(h, c, "id", h.quotationService.Send)
}

// RejectQuotation marks a quotation as rejected
func (h *TradeHandler) RejectQuotation(c *gin.Context) {
	withID(h, c, "id", h.quotationService.Reject)
}

// ConvertQuotation converts a quotation into a sale
func (h *TradeHandler) ConvertQuotation(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	quotationID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	sale, err := h.quotationService.ConvertToSale(c.Request.Context(), tenantID, quotationID, middleware.GetUserID(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// ==================== Sales ====================

// CreateSale registers a direct sale
func (h *TradeHandler) CreateSale(c *gin.Context) {
	var req tradeapp.CreateSaleRequest
	req.UserID = middleware.GetUserID(c)
	create(h, c, &req, h.saleService.Create)
}

// ListSales lists sales
func (h *TradeHandler) ListSales(c *gin.Context) {
	list(h, c, h.saleService.List)
}

// GetSale returns a sale
func (h *TradeHandler) GetSale(c *gin.Context) {
	withID(h, c, "id", h.saleService.Get)
}

// ==================== Delivery notes ====================

// CreateDelivery issues a delivery note against a sale
func (h *TradeHandler) CreateDelivery(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	saleID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req tradeapp.CreateDeliveryNoteRequest
	if !h.bindJSON(c, &req) {
		return
	}
	req.UserID = middleware.GetUserID(c)
	note, err := h.deliveryService.Create(c.Request.Context(), tenantID, saleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, note)
}

// ListDeliveries lists the delivery notes of a sale
func (h *TradeHandler) ListDeliveries(c *gin.Context) {
	withID(h, c, "id", h.deliveryService.ListBySale)
}

// DeliveryProgress reports delivered and remaining quantities per product
func (h *TradeHandler) DeliveryProgress(c *gin.Context) {
	withID(h, c, "id", h.deliveryService.Progress)
}

// GetDelivery returns a delivery note
func (h *TradeHandler) GetDelivery(c *gin.Context) {
	withID(h, c, "id", h.deliveryService.Get)
}

// ==================== Purchase orders ====================

// CreatePurchaseOrder creates a purchase order
func (h *TradeHandler) CreatePurchaseOrder(c *gin.Context) {
	var req tradeapp.CreatePurchaseOrderRequest
	req.UserID = middleware.GetUserID(c)
	create(h, c, &req, h.purchaseService.Create)
}

// ListPurchaseOrders lists purchase orders
func (h *TradeHandler) ListPurchaseOrders(c *gin.Context) {
	list(h, c, h.purchaseService.List)
}

// GetPurchaseOrder returns a purchase order
func (h *TradeHandler) GetPurchaseOrder(c *gin.Context) {
	withID(h, c, "id", h.purchaseService.Get)
}

// ReceivePurchaseOrder records the arrival of a purchase order and books
// its lines as raw material lots
func (h *TradeHandler) ReceivePurchaseOrder(c *gin.Context) {
	var req tradeapp.ReceivePurchaseOrderRequest
	update(h, c, "id", &req, h.purchaseService.Receive)
}

// CancelPurchaseOrder cancels a purchase order
func (h *TradeHandler) CancelPurchaseOrder(c *gin.Context) {
	withID(h, c, "id", h.purchaseService.Cancel)
}
