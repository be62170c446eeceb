package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// TenantIDKey is the gin context key of the resolved tenant
	TenantIDKey = "tenant_id"
	// TenantHeader is the header naming the tenant
	TenantHeader = "X-Tenant-ID"
	// tenantBodyField is the JSON body field read on POST requests
	tenantBodyField = "tenant"
	// maxTenantBodyPeek bounds how much of a body is buffered to find the tenant
	maxTenantBodyPeek = 1 << 20
)

// TenantResolver validates a raw tenant value
type TenantResolver interface {
	Resolve(ctx context.Context, raw string) (uuid.UUID, error)
}

type tenantContextKey struct{}

// Tenant resolves the tenant of every request and stores it in the gin
// context and the request context. A verified bearer token's tenant claim is
// authoritative and an X-Tenant-ID header naming another tenant is rejected.
// Without a claim the value is taken from the header, then the "tenant"
// field of a JSON POST body.
func Tenant(resolver TenantResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, source := tenantFromRequest(c)
		if source == sourceMismatch {
			logger.FromContext(c.Request.Context()).Warn("tenant header does not match token",
				zap.String("header", c.GetHeader(TenantHeader)), zap.String("token", raw))
			abortWithError(c, http.StatusForbidden, dto.ErrCodeTenantMismatch, "Tenant does not match the authenticated token")
			return
		}
		tenantID, err := resolver.Resolve(c.Request.Context(), raw)
		if err != nil {
			respondTenantError(c, err)
			return
		}

		c.Set(TenantIDKey, tenantID)
		ctx := context.WithValue(c.Request.Context(), tenantContextKey{}, tenantID)
		ctx, log := logger.WithTenantID(ctx, logger.FromContext(ctx), tenantID.String())
		c.Request = c.Request.WithContext(ctx)
		log.Debug("tenant resolved", zap.String("source", source))
		c.Next()
	}
}

const sourceMismatch = "mismatch"

func tenantFromRequest(c *gin.Context) (string, string) {
	header := strings.TrimSpace(c.GetHeader(TenantHeader))
	if claim := c.GetString(JWTTenantIDKey); claim != "" {
		if header != "" && !strings.EqualFold(header, claim) {
			return claim, sourceMismatch
		}
		return claim, "token"
	}
	if header != "" {
		return header, "header"
	}
	if c.Request.Method == http.MethodPost {
		if v := tenantFromBody(c); v != "" {
			return v, "body"
		}
	}
	return "", ""
}

// tenantFromBody reads the "tenant" field of a JSON body and restores the
// body for the handler
func tenantFromBody(c *gin.Context) string {
	if c.Request.Body == nil || !strings.HasPrefix(c.ContentType(), "application/json") {
		return ""
	}
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxTenantBodyPeek))
	if err != nil {
		return ""
	}
	c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(raw), c.Request.Body))

	var body map[string]json.RawMessage
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	var tenant string
	if err := json.Unmarshal(body[tenantBodyField], &tenant); err != nil {
		return ""
	}
	return tenant
}

func respondTenantError(c *gin.Context, err error) {
	if domainErr, ok := shared.AsDomainError(err); ok {
		code := dto.NormalizeErrorCode(domainErr.Code)
		abortWithError(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}
	logger.FromContext(c.Request.Context()).Error("tenant resolution failed", zap.Error(err))
	abortWithError(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
}

// GetTenantID returns the tenant resolved by Tenant
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get(TenantIDKey)
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// TenantFromContext returns the tenant stored in a request context
func TenantFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(tenantContextKey{}).(uuid.UUID)
	return id, ok
}
