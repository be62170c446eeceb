package middleware

import (
	"errors"
	"net/http"

	"github.com/ejarriada/Fanaticos/internal/infrastructure/auth"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Gin context keys set by BearerAuth
const (
	JWTUserIDKey   = "jwt_user_id"
	JWTTenantIDKey = "jwt_tenant_id"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	Enabled() bool
	Verify(token string) (*auth.Claims, error)
}

// BearerAuth reads an optional bearer token. A request without one passes
// through anonymously; a present but invalid token is rejected. When no
// verifier is configured the header is ignored.
func BearerAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if verifier == nil || !verifier.Enabled() {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}
		token, ok := auth.BearerToken(header)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Malformed Authorization header")
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			code := dto.ErrCodeUnauthorized
			if errors.Is(err, auth.ErrExpiredToken) {
				code = dto.ErrCodeTokenExpired
			}
			logger.FromContext(c.Request.Context()).Debug("bearer token rejected")
			abortWithError(c, http.StatusUnauthorized, code, err.Error())
			return
		}

		c.Set(JWTUserIDKey, claims.UserID)
		if claims.TenantID != "" {
			c.Set(JWTTenantIDKey, claims.TenantID)
		}
		ctx, _ := logger.WithUserID(c.Request.Context(), logger.FromContext(c.Request.Context()), claims.UserID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetUserID returns the acting user from the bearer token, if any
func GetUserID(c *gin.Context) *uuid.UUID {
	raw := c.GetString(JWTUserIDKey)
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
