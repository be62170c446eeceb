package handler

import (
	prodapp "github.com/ejarriada/Fanaticos/internal/application/production"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/middleware"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// ProductionHandler handles order notes, production orders and process
// completion
type ProductionHandler struct {
	BaseHandler
	productionService *prodapp.ProductionService
}

// NewProductionHandler creates a new ProductionHandler
func NewProductionHandler(productionService *prodapp.ProductionService) *ProductionHandler {
	return &ProductionHandler{productionService: productionService}
}

// Routes returns the production route groups
func (h *ProductionHandler) Routes() *router.DomainGroup {
	production := router.NewDomainGroup("")

	production.Group("/order-notes").
		POST("", h.CreateOrderNote).
		GET("/:id", h.GetOrderNote).
		GET("/:id/orders", h.ListOrdersByNote)

	production.Group("/production-orders").
		POST("", h.CreateOrder).
		GET("", h.ListOrders).
		GET("/:id", h.GetOrder).
		POST("/:id/start", h.StartOrder).
		POST("/:id/cancel", h.CancelOrder).
		POST("/:id/complete-process", h.CompleteProcess).
		GET("/:id/logs", h.ProcessLogs)

	return production
}

// CreateOrderNote creates an order note
func (h *ProductionHandler) CreateOrderNote(c *gin.Context) {
	var req prodapp.CreateOrderNoteRequest
	req.UserID = middleware.GetUserID(c)
	create(h, c, &req, h.productionService.CreateOrderNote)
}

// GetOrderNote returns an order note
func (h *ProductionHandler) GetOrderNote(c *gin.Context) {
	withID(h, c, "id", h.productionService.GetOrderNote)
}

// ListOrdersByNote lists the production orders of an order note
func (h *ProductionHandler) ListOrdersByNote(c *gin.Context) {
	withID(h, c, "id", h.productionService.ListOrdersByNote)
}

// CreateOrder creates a production order
func (h *ProductionHandler) CreateOrder(c *gin.Context) {
	var req prodapp.CreateProductionOrderRequest
	req.UserID = middleware.GetUserID(c)
	create(h, c, &req, h.productionService.CreateOrder)
}

// ListOrders lists production orders
func (h *ProductionHandler) ListOrders(c *gin.Context) {
	list(h, c, h.productionService.ListOrders)
}

// GetOrder returns a production order
func (h *ProductionHandler) GetOrder(c *gin.Context) {
	withID(h, c, "id", h.productionService.GetOrder)
}

// StartOrder moves a pending order into production
func (h *ProductionHandler) StartOrder(c *gin.Context) {
	withID(h, c, "id", h.productionService.StartOrder)
}

// CancelOrder cancels an order
func (h *ProductionHandler) CancelOrder(c *gin.Context) {
	withID(h, c, "id", h.productionService.CancelOrder)
}

// CompleteProcess records a finished process. Completing the last process
// credits the produced items to the factory.
func (h *ProductionHandler) CompleteProcess(c *gin.Context) {
	var req prodapp.CompleteProcessRequest
	req.UserID = middleware.GetUserID(c)
	update(h, c, "id", &req, h.productionService.CompleteProcess)
}

// ProcessLogs lists the completed processes of an order
func (h *ProductionHandler) ProcessLogs(c *gin.Context) {
	withID(h, c, "id", h.productionService.ProcessLogs)
}
