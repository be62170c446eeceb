package handler

import (
	"github.com/ejarriada/Fanaticos/internal/application/identity"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
)

// TenantHandler handles tenant administration. Its routes are not tenant
// scoped.
type TenantHandler struct {
	BaseHandler
	tenantService *identity.TenantService
}

// NewTenantHandler creates a new TenantHandler
func NewTenantHandler(tenantService *identity.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// Routes returns the tenant route group
func (h *TenantHandler) Routes() *router.DomainGroup {
	return router.NewDomainGroup("/tenants").
		POST("", h.Create).
		GET("", h.List).
		GET("/:id", h.Get).
		PUT("/:id", h.Rename)
}

// Create creates a tenant
func (h *TenantHandler) Create(c *gin.Context) {
	var req identity.CreateTenantRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tenant, err := h.tenantService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, tenant)
}

// Get returns a tenant
func (h *TenantHandler) Get(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	tenant, err := h.tenantService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}

// List lists tenants
func (h *TenantHandler) List(c *gin.Context) {
	req, ok := h.listFilter(c)
	if !ok {
		return
	}
	tenants, err := h.tenantService.List(c.Request.Context(), req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, tenants, len(tenants), req)
}

// Rename renames a tenant
func (h *TenantHandler) Rename(c *gin.Context) {
	id, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	var req identity.RenameTenantRequest
	if !h.bindJSON(c, &req) {
		return
	}
	tenant, err := h.tenantService.Rename(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tenant)
}
