package handler

import (
	invapp "github.com/ejarriada/Fanaticos/internal/application/inventory"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/middleware"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// InventoryHandler handles stock levels, raw material lots, locals and
// internal deliveries
type InventoryHandler struct {
	BaseHandler
	stockService    *invapp.StockService
	deliveryService *invapp.InternalDeliveryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(stockService *invapp.StockService, deliveryService *invapp.InternalDeliveryService) *InventoryHandler {
	return &InventoryHandler{
		stockService:    stockService,
		deliveryService: deliveryService,
	}
}

// Routes returns the inventory route groups
func (h *InventoryHandler) Routes() *router.DomainGroup {
	inventory := router.NewDomainGroup("")

	inventory.Group("/locals").
		POST("", h.CreateLocal).
		GET("", h.ListLocals).
		GET("/factory", h.FactoryLocal).
		GET("/:id/stock", h.StockByLocal)

	inventory.Group("/stock").
		POST("/adjust", h.Adjust).
		POST("/transfer", h.Transfer).
		GET("/products/:id", h.StockByProduct)

	inventory.Group("/stock-adjustments").
		POST("", h.CreateAdjustment).
		GET("", h.ListAdjustments)

	inventory.Group("/lots").
		POST("", h.CreateLot).
		GET("", h.ListLots).
		POST("/deduct", h.DeductRawMaterial).
		POST("/:id/adjust", h.AdjustLot).
		GET("/total", h.TotalRawMaterialStock)

	inventory.Group("/internal-deliveries").
		POST("", h.CreateInternalDelivery).
		GET("/:id", h.GetInternalDelivery).
		POST("/:id/dispatch", h.DispatchInternalDelivery).
		POST("/:id/receive", h.ReceiveInternalDelivery).
		POST("/:id/cancel", h.CancelInternalDelivery)

	return inventory
}

// ==================== Locals ====================

// CreateLocal creates a store or the factory
func (h *InventoryHandler) CreateLocal(c *gin.Context) {
	var req invapp.CreateLocalRequest
	create(h, c, &req, h.stockService.CreateLocal)
}

// ListLocals lists locals
func (h *InventoryHandler) ListLocals(c *gin.Context) {
	list(h, c, h.stockService.ListLocals)
}

// FactoryLocal returns the tenant's factory local
func (h *InventoryHandler) FactoryLocal(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	local, err := h.stockService.FactoryLocal(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, local)
}

// StockByLocal lists the stock rows of a local
func (h *InventoryHandler) StockByLocal(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	localID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	req, ok := h.listFilter(c)
	if !ok {
		return
	}
	rows, err := h.stockService.StockByLocal(c.Request.Context(), tenantID, localID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, rows, len(rows), req)
}

// ==================== Stock ====================

// Adjust applies a signed delta to a product's stock at a local
func (h *InventoryHandler) Adjust(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req invapp.AdjustStockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	level, err := h.stockService.Adjust(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, level)
}

// Transfer moves stock between two locals
func (h *InventoryHandler) Transfer(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req invapp.TransferStockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	result, err := h.stockService.Transfer(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// StockByProduct lists a product's stock at every local
func (h *InventoryHandler) StockByProduct(c *gin.Context) {
	withID(h, c, "id", h.stockService.StockByProduct)
}

// CreateAdjustment records a stock adjustment document
func (h *InventoryHandler) CreateAdjustment(c *gin.Context) {
	var req invapp.CreateStockAdjustmentRequest
	req.UserID = middleware.GetUserID(c)
	create(h, c, &req, h.stockService.CreateAdjustment)
}

// ListAdjustments lists stock adjustment documents
func (h *InventoryHandler) ListAdjustments(c *gin.Context) {
	list(h, c, h.stockService.ListAdjustments)
}

// ==================== Lots ====================

// CreateLot registers a raw material lot
func (h *InventoryHandler) CreateLot(c *gin.Context) {
	var req invapp.CreateMaterialLotRequest
	create(h, c, &req, h.stockService.CreateLot)
}

// ListLots lists the lots of the raw material named by ?raw_material_id
func (h *InventoryHandler) ListLots(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	rawMaterialID, ok := h.queryUUID(c, "raw_material_id")
	if !ok {
		return
	}
	lots, err := h.stockService.ListLots(c.Request.Context(), tenantID, rawMaterialID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lots)
}

// TotalRawMaterialStock sums the stock of every lot of a raw material
func (h *InventoryHandler) TotalRawMaterialStock(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	rawMaterialID, ok := h.queryUUID(c, "raw_material_id")
	if !ok {
		return
	}
	total, err := h.stockService.TotalRawMaterialStock(c.Request.Context(), tenantID, rawMaterialID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"raw_material_id": rawMaterialID, "total_stock": total})
}

// AdjustLot applies a signed delta to a lot
func (h *InventoryHandler) AdjustLot(c *gin.Context) {
	var req invapp.AdjustLotRequest
	update(h, c, "id", &req, h.stockService.AdjustLot)
}

// DeductRawMaterial consumes raw material from the cheapest sufficient lot
func (h *InventoryHandler) DeductRawMaterial(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req invapp.DeductRawMaterialRequest
	if !h.bindJSON(c, &req) {
		return
	}
	lot, err := h.stockService.DeductRawMaterial(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, lot)
}

// ==================== Internal deliveries ====================

// CreateInternalDelivery drafts a factory to store delivery
func (h *InventoryHandler) CreateInternalDelivery(c *gin.Context) {
	var req invapp.CreateInternalDeliveryRequest
	req.UserID = middleware.GetUserID(c)
	create(h, c, &req, h.deliveryService.Create)
}

// GetInternalDelivery returns an internal delivery note
func (h *InventoryHandler) GetInternalDelivery(c *gin.Context) {
	withID(h, c, "id", h.deliveryService.Get)
}

// DispatchInternalDelivery moves the note's stock out of the origin local
func (h *InventoryHandler) DispatchInternalDelivery(c *gin.Context) {
	withID(h, c, "id", h.deliveryService.Dispatch)
}

// ReceiveInternalDelivery marks a dispatched note as received
func (h *InventoryHandler) ReceiveInternalDelivery(c *gin.Context) {
	withID(h, c, "id", h.deliveryService.Receive)
}

// CancelInternalDelivery cancels a note
func (h *InventoryHandler) CancelInternalDelivery(c *gin.Context) {
	withID(h, c, "id", h.deliveryService.Cancel)
}
