package handler

import (
	catalogapp "github.com/ejarriada/Fanaticos/internal/application/catalog"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/middleware"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CatalogHandler handles designs, products and the reference data they
// are built from
type CatalogHandler struct {
	BaseHandler
	designService    *catalogapp.DesignService
	productService   *catalogapp.ProductService
	referenceService *catalogapp.ReferenceService
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(
	designService *catalogapp.DesignService,
	productService *catalogapp.ProductService,
	referenceService *catalogapp.ReferenceService,
) *CatalogHandler {
	return &CatalogHandler{
		designService:    designService,
		productService:   productService,
		referenceService: referenceService,
	}
}

// Routes returns the catalog route groups
func (h *CatalogHandler) Routes() *router.DomainGroup {
	catalog := router.NewDomainGroup("")

	catalog.Group("/categories").
		POST("", h.CreateCategory).
		GET("", h.ListCategories)
	catalog.Group("/sizes").
		POST("", h.CreateSize).
		GET("", h.ListSizes)
	catalog.Group("/colors").
		POST("", h.CreateColor).
		GET("", h.ListColors)
	catalog.Group("/processes").
		POST("", h.CreateProcess).
		GET("", h.ListProcesses)
	catalog.Group("/raw-materials").
		POST("", h.CreateRawMaterial).
		GET("", h.ListRawMaterials)

	catalog.Group("/designs").
		POST("", h.CreateDesign).
		GET("", h.ListDesigns).
		GET("/:id", h.GetDesign).
		PUT("/:id", h.UpdateDesign).
		POST("/:id/cost", h.RecomputeDesignCost).
		POST("/:id/materials", h.AddDesignMaterial).
		PUT("/:id/materials/:line", h.UpdateDesignMaterial).
		DELETE("/:id/materials/:line", h.RemoveDesignMaterial).
		POST("/:id/processes", h.AddDesignProcess).
		PUT("/:id/processes/:line", h.UpdateDesignProcess).
		DELETE("/:id/processes/:line", h.RemoveDesignProcess)

	catalog.Group("/products").
		POST("", h.CreateProduct).
		GET("", h.ListProducts).
		GET("/:id", h.GetProduct)

	return catalog
}

// ==================== Reference data ====================

// CreateCategory creates a product category
func (h *CatalogHandler) CreateCategory(c *gin.Context) {
	var req catalogapp.CreateCategoryRequest
	create(h, c, &req, h.referenceService.CreateCategory)
}

// ListCategories lists product categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	list(h, c, h.referenceService.ListCategories)
}

// CreateSize creates a size
func (h *CatalogHandler) CreateSize(c *gin.Context) {
	var req catalogapp.CreateSizeRequest
	create(h, c, &req, h.referenceService.CreateSize)
}

// ListSizes lists sizes
func (h *CatalogHandler) ListSizes(c *gin.Context) {
	list(h, c, h.referenceService.ListSizes)
}

// CreateColor creates a color
func (h *CatalogHandler) CreateColor(c *gin.Context) {
	var req catalogapp.CreateColorRequest
	create(h, c, &req, h.referenceService.CreateColor)
}

// ListColors lists colors
func (h *CatalogHandler) ListColors(c *gin.Context) {
	list(h, c, h.referenceService.ListColors)
}

// CreateProcess creates a production process
func (h *CatalogHandler) CreateProcess(c *gin.Context) {
	var req catalogapp.CreateProcessRequest
	create(h, c, &req, h.referenceService.CreateProcess)
}

// ListProcesses lists production processes
func (h *CatalogHandler) ListProcesses(c *gin.Context) {
	list(h, c, h.referenceService.ListProcesses)
}

// CreateRawMaterial creates a raw material
func (h *CatalogHandler) CreateRawMaterial(c *gin.Context) {
	var req catalogapp.CreateRawMaterialRequest
	create(h, c, &req, h.referenceService.CreateRawMaterial)
}

// ListRawMaterials lists raw materials
func (h *CatalogHandler) ListRawMaterials(c *gin.Context) {
	list(h, c, h.referenceService.ListRawMaterials)
}

// ==================== Designs ====================

// CreateDesign creates a design and computes its cost
func (h *CatalogHandler) CreateDesign(c *gin.Context) {
	var req catalogapp.CreateDesignRequest
	create(h, c, &req, h.designService.Create)
}

// ListDesigns lists designs
func (h *CatalogHandler) ListDesigns(c *gin.Context) {
	list(h, c, h.designService.List)
}

// GetDesign returns a design with its recipe
func (h *CatalogHandler) GetDesign(c *gin.Context) {
	withID(h, c, "id", h.designService.GetByID)
}

// UpdateDesign updates a design's header fields
func (h *CatalogHandler) UpdateDesign(c *gin.Context) {
	var req catalogapp.UpdateDesignRequest
	update(h, c, "id", &req, h.designService.Update)
}

// RecomputeDesignCost recomputes a design's cost from its recipe
func (h *CatalogHandler) RecomputeDesignCost(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	designID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	cost, err := h.designService.RecomputeCost(c.Request.Context(), tenantID, designID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"design_id": designID, "calculated_cost": cost})
}

// AddDesignMaterial adds a raw material line to a design's recipe
func (h *CatalogHandler) AddDesignMaterial(c *gin.Context) {
	var req catalogapp.AddDesignMaterialRequest
	update(h, c, "id", &req, h.designService.AddMaterial)
}

// UpdateDesignMaterial changes a material line's quantity
func (h *CatalogHandler) UpdateDesignMaterial(c *gin.Context) {
	var req catalogapp.UpdateDesignMaterialRequest
	h.withLine(c, func(tenantID, designID, lineID uuid.UUID) (any, error) {
		if !h.bindJSON(c, &req) {
			return nil, errBound
		}
		return h.designService.UpdateMaterial(c.Request.Context(), tenantID, designID, lineID, req)
	})
}

// RemoveDesignMaterial removes a material line from a design's recipe
func (h *CatalogHandler) RemoveDesignMaterial(c *gin.Context) {
	h.withLine(c, func(tenantID, designID, lineID uuid.UUID) (any, error) {
		return h.designService.RemoveMaterial(c.Request.Context(), tenantID, designID, lineID)
	})
}

// AddDesignProcess adds a process line to a design's recipe
func (h *CatalogHandler) AddDesignProcess(c *gin.Context) {
	var req catalogapp.AddDesignProcessRequest
	update(h, c, "id", &req, h.designService.AddProcess)
}

// UpdateDesignProcess changes a process line's cost or order
func (h *CatalogHandler) UpdateDesignProcess(c *gin.Context) {
	var req catalogapp.UpdateDesignProcessRequest
	h.withLine(c, func(tenantID, designID, lineID uuid.UUID) (any, error) {
		if !h.bindJSON(c, &req) {
			return nil, errBound
		}
		return h.designService.UpdateProcess(c.Request.Context(), tenantID, designID, lineID, req)
	})
}

// RemoveDesignProcess removes a process line from a design's recipe
func (h *CatalogHandler) RemoveDesignProcess(c *gin.Context) {
	h.withLine(c, func(tenantID, designID, lineID uuid.UUID) (any, error) {
		return h.designService.RemoveProcess(c.Request.Context(), tenantID, designID, lineID)
	})
}

// withLine resolves the tenant, design and recipe line of a line route
func (h *CatalogHandler) withLine(c *gin.Context, fn func(tenantID, designID, lineID uuid.UUID) (any, error)) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	designID, ok := h.pathUUID(c, "id")
	if !ok {
		return
	}
	lineID, ok := h.pathUUID(c, "line")
	if !ok {
		return
	}
	resp, err := fn(tenantID, designID, lineID)
	if err == errBound {
		return
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ==================== Products ====================

// CreateProduct creates a product and derives its SKU
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	var req catalogapp.CreateProductRequest
	req.CreatedBy = middleware.GetUserID(c)
	create(h, c, &req, h.productService.Create)
}

// ListProducts lists products
func (h *CatalogHandler) ListProducts(c *gin.Context) {
	list(h, c, h.productService.List)
}

// GetProduct returns a product
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	withID(h, c, "id", h.productService.GetByID)
}
