// Package handler exposes the application services over HTTP. Handlers bind
// and validate requests, read the tenant resolved by the middleware chain
// and translate domain errors into the response envelope.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/dto"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// errBound reports that a helper already wrote the response
var errBound = errors.New("response already written")

// BaseHandler provides common handler utilities
type BaseHandler struct{}

type baseHolder interface {
	base() *BaseHandler
}

func (h *BaseHandler) base() *BaseHandler { return h }

// tenantID returns the tenant resolved by the tenant middleware. Routes
// mounted outside the tenant group never call it.
func (h *BaseHandler) tenantID(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.GetTenantID(c)
	if !ok {
		h.Error(c, http.StatusBadRequest, dto.ErrCodeTenantRequired, "Tenant is required")
		return uuid.Nil, false
	}
	return id, true
}

// pathUUID parses a UUID path parameter
func (h *BaseHandler) pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// queryUUID parses a required UUID query parameter
func (h *BaseHandler) queryUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		h.BadRequest(c, name+" is required")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON binds and validates the request body
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			h.ValidationError(c, details)
			return false
		}
		h.BadRequest(c, "Malformed request body")
		return false
	}
	return true
}

// listFilter reads pagination and search parameters from the query string
func (h *BaseHandler) listFilter(c *gin.Context) (dto.ListRequest, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if details := middleware.ValidationDetails(err); details != nil {
			h.ValidationError(c, details)
			return req, false
		}
		h.BadRequest(c, "Invalid query parameters")
		return req, false
	}
	return req, true
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessList sends one page of a list with its metadata
func (h *BaseHandler) SuccessList(c *gin.Context, data any, count int, req dto.ListRequest) {
	filter := req.ToFilter()
	c.JSON(http.StatusOK, dto.NewListResponse(data, count, filter.Page, filter.PageSize))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, middleware.GetRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		middleware.GetRequestID(c),
		details,
	))
}

// HandleError converts domain errors to HTTP responses. Anything that is
// not a domain error is logged and reported as an internal error.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	if domainErr, ok := shared.AsDomainError(err); ok {
		code := dto.NormalizeErrorCode(domainErr.Code)
		resp := dto.NewErrorResponse(code, domainErr.Message, middleware.GetRequestID(c))
		if len(domainErr.Details) > 0 {
			resp.Error.Details = domainErr.Details
		}
		c.JSON(dto.GetHTTPStatus(code), resp)
		return
	}

	logger.FromContext(c.Request.Context()).Error("request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err),
	)
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// create binds a request and passes it to a tenant-scoped create operation
func create[Req, Resp any](hb baseHolder, c *gin.Context, req *Req, fn func(context.Context, uuid.UUID, Req) (Resp, error)) {
	h := hb.base()
	tenantID, ok := h.tenantID(c)
	if !ok || !h.bindJSON(c, req) {
		return
	}
	resp, err := fn(c.Request.Context(), tenantID, *req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// list runs a tenant-scoped list operation with the query's filter
func list[Resp any](hb baseHolder, c *gin.Context, fn func(context.Context, uuid.UUID, shared.Filter) ([]Resp, error)) {
	h := hb.base()
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	req, ok := h.listFilter(c)
	if !ok {
		return
	}
	items, err := fn(c.Request.Context(), tenantID, req.ToFilter())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessList(c, items, len(items), req)
}

// withID runs a tenant-scoped operation on the entity named by a path
// parameter
func withID[Resp any](hb baseHolder, c *gin.Context, param string, fn func(context.Context, uuid.UUID, uuid.UUID) (Resp, error)) {
	h := hb.base()
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, param)
	if !ok {
		return
	}
	resp, err := fn(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// update binds a request and applies it to the entity named by a path
// parameter
func update[Req, Resp any](hb baseHolder, c *gin.Context, param string, req *Req, fn func(context.Context, uuid.UUID, uuid.UUID, Req) (Resp, error)) {
	h := hb.base()
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.pathUUID(c, param)
	if !ok || !h.bindJSON(c, req) {
		return
	}
	resp, err := fn(c.Request.Context(), tenantID, id, *req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
