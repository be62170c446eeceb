package handler

import (
	partnerapp "github.com/ejarriada/Fanaticos/internal/application/partner"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// PartnerHandler handles clients and suppliers
type PartnerHandler struct {
	BaseHandler
	clientService   *partnerapp.ClientService
	supplierService *partnerapp.SupplierService
}

// NewPartnerHandler creates a new PartnerHandler
func NewPartnerHandler(clientService *partnerapp.ClientService, supplierService *partnerapp.SupplierService) *PartnerHandler {
	return &PartnerHandler{
		clientService:   clientService,
		supplierService: supplierService,
	}
}

// Routes returns the partner route groups
func (h *PartnerHandler) Routes() *router.DomainGroup {
	partner := router.NewDomainGroup("")

	partner.Group("/clients").
		POST("", h.CreateClient).
		GET("", h.ListClients).
		GET("/:id", h.GetClient).
		PUT("/:id", h.UpdateClient)

	partner.Group("/suppliers").
		POST("", h.CreateSupplier).
		GET("", h.ListSuppliers).
		GET("/:id", h.GetSupplier).
		PUT("/:id", h.UpdateSupplier)

	return partner
}

// CreateClient creates a client
func (h *PartnerHandler) CreateClient(c *gin.Context) {
	var req partnerapp.ClientRequest
	create(h, c, &req, h.clientService.Create)
}

// ListClients lists clients
func (h *PartnerHandler) ListClients(c *gin.Context) {
	list(h, c, h.clientService.List)
}

// GetClient returns a client
func (h *PartnerHandler) GetClient(c *gin.Context) {
	withID(h, c, "id", h.clientService.Get)
}

// UpdateClient replaces a client's details
func (h *PartnerHandler) UpdateClient(c *gin.Context) {
	var req partnerapp.ClientRequest
	update(h, c, "id", &req, h.clientService.Update)
}

// CreateSupplier creates a supplier
func (h *PartnerHandler) CreateSupplier(c *gin.Context) {
	var req partnerapp.SupplierRequest
	create(h, c, &req, h.supplierService.Create)
}

// ListSuppliers lists suppliers
func (h *PartnerHandler) ListSuppliers(c *gin.Context) {
	list(h, c, h.supplierService.List)
}

// GetSupplier returns a supplier
func (h *PartnerHandler) GetSupplier(c *gin.Context) {
	withID(h, c, "id", h.supplierService.Get)
}

// UpdateSupplier replaces a supplier's details
func (h *PartnerHandler) UpdateSupplier(c *gin.Context) {
	var req partnerapp.SupplierRequest
	update(h, c, "id", &req, h.supplierService.Update)
}
