package middleware

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/auth"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/config"
	"github.com/ejarriada/Fanaticos/tests/testutil"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubResolver accepts exactly one tenant
type stubResolver struct {
	known uuid.UUID
	err   error
}

func (r stubResolver) Resolve(_ context.Context, raw string) (uuid.UUID, error) {
	if r.err != nil {
		return uuid.Nil, r.err
	}
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, shared.ErrTenantRequired
	}
	id, err := uuid.Parse(raw)
	if err != nil || id != r.known {
		return uuid.Nil, shared.ErrTenantNotFound
	}
	return id, nil
}

func tenantEngine(resolver TenantResolver, verifier TokenVerifier) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), BearerAuth(verifier), Tenant(resolver))
	echo := func(c *gin.Context) {
		id, _ := GetTenantID(c)
		fromCtx, _ := TenantFromContext(c.Request.Context())
		body, _ := io.ReadAll(c.Request.Body)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{
			"tenant":  id.String(),
			"context": fromCtx.String(),
			"body":    string(body),
		}})
	}
	r.GET("/echo", echo)
	r.POST("/echo", echo)
	return r
}

func TestTenant_Sources(t *testing.T) {
	tenantID := uuid.New()
	r := tenantEngine(stubResolver{known: tenantID}, nil)

	t.Run("header", func(t *testing.T) {
		w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", nil, map[string]string{TenantHeader: tenantID.String()})
		require.Equal(t, http.StatusOK, w.Code)
		echo := testutil.DecodeData[map[string]string](t, w)
		assert.Equal(t, tenantID.String(), echo["tenant"])
		assert.Equal(t, tenantID.String(), echo["context"])
	})

	t.Run("json body on POST, body still readable", func(t *testing.T) {
		body := map[string]any{"tenant": tenantID.String(), "name": "Camiseta"}
		w := testutil.PerformRequest(t, r, http.MethodPost, "/echo", body, nil)
		require.Equal(t, http.StatusOK, w.Code)
		echo := testutil.DecodeData[map[string]string](t, w)
		assert.Equal(t, tenantID.String(), echo["tenant"])
		assert.Contains(t, echo["body"], `"name":"Camiseta"`)
	})

	t.Run("header wins over body", func(t *testing.T) {
		body := map[string]any{"tenant": uuid.NewString()}
		w := testutil.PerformRequest(t, r, http.MethodPost, "/echo", body, map[string]string{TenantHeader: tenantID.String()})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing tenant", func(t *testing.T) {
		w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", nil, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := testutil.DecodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_TENANT_REQUIRED", resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
	})

	t.Run("unknown tenant", func(t *testing.T) {
		w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", nil, map[string]string{TenantHeader: uuid.NewString()})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "ERR_TENANT_NOT_FOUND", testutil.DecodeResponse(t, w).Error.Code)
	})

	t.Run("malformed tenant", func(t *testing.T) {
		w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", nil, map[string]string{TenantHeader: "acme"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("body is ignored on GET", func(t *testing.T) {
		w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", map[string]any{"tenant": tenantID.String()}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestTenant_ResolverFailure(t *testing.T) {
	r := tenantEngine(stubResolver{err: errors.New("db down")}, nil)
	w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", nil, map[string]string{TenantHeader: uuid.NewString()})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "ERR_INTERNAL", testutil.DecodeResponse(t, w).Error.Code)
}

func TestBearerAuth(t *testing.T) {
	const secret = "test-secret-key-at-least-32-chars"
	tenantID := uuid.New()
	userID := uuid.New()
	verifier := auth.NewVerifier(config.JWTConfig{Secret: secret})
	r := tenantEngine(stubResolver{known: tenantID}, verifier)

	sign := func(expires time.Time) string {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)},
			TenantID:         tenantID.String(),
			UserID:           userID.String(),
		}).SignedString([]byte(secret))
		require.NoError(t, err)
		return token
	}

	t.Run("tenant claim without header", func(t *testing.T) {
		w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", nil,
			map[string]string{"Authorization": "Bearer " + sign(time.Now().Add(time.Hour))})
		require.Equal(t, http.StatusOK, w.Code)
		echo := testutil.DecodeData[map[string]string](t, w)
		assert.Equal(t, tenantID.String(), echo["tenant"])
	})

	t.Run("expired token", func(t *testing.T) {
		w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", nil,
			map[string]string{"Authorization": "Bearer " + sign(time.Now().Add(-time.Hour))})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "ERR_TOKEN_EXPIRED", testutil.DecodeResponse(t, w).Error.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", nil,
			map[string]string{"Authorization": "Token abc"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("anonymous request passes", func(t *testing.T) {
		w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", nil,
			map[string]string{TenantHeader: tenantID.String()})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

// anyResolver accepts every well-formed tenant id
type anyResolver struct{}

func (anyResolver) Resolve(_ context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.ErrTenantNotFound
	}
	return id, nil
}

func TestTenant_TokenClaimIsAuthoritative(t *testing.T) {
	const secret = "test-secret-key-at-least-32-chars"
	tokenTenant := uuid.New()
	otherTenant := uuid.New()
	r := tenantEngine(anyResolver{}, auth.NewVerifier(config.JWTConfig{Secret: secret}))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		TenantID:         tokenTenant.String(),
		UserID:           uuid.NewString(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)
	bearer := "Bearer " + token

	t.Run("header naming another tenant is forbidden", func(t *testing.T) {
		w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", nil, map[string]string{
			"Authorization": bearer,
			TenantHeader:    otherTenant.String(),
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		resp := testutil.DecodeResponse(t, w)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ERR_TENANT_MISMATCH", resp.Error.Code)
	})

	t.Run("matching header is accepted", func(t *testing.T) {
		w := testutil.PerformRequest(t, r, http.MethodGet, "/echo", nil, map[string]string{
			"Authorization": bearer,
			TenantHeader:    strings.ToUpper(tokenTenant.String()),
		})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tokenTenant.String(), testutil.DecodeData[map[string]string](t, w)["tenant"])
	})

	t.Run("body cannot redirect the token tenant", func(t *testing.T) {
		body := map[string]any{"tenant": otherTenant.String()}
		w := testutil.PerformRequest(t, r, http.MethodPost, "/echo", body, map[string]string{"Authorization": bearer})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, tokenTenant.String(), testutil.DecodeData[map[string]string](t, w)["tenant"])
	})
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	w := testutil.PerformRequest(t, r, http.MethodGet, "/", nil, map[string]string{RequestIDHeader: "req-42"})
	assert.Equal(t, "req-42", w.Body.String())
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))

	w = testutil.PerformRequest(t, r, http.MethodGet, "/", nil, nil)
	generated := w.Body.String()
	assert.Len(t, generated, 36)
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.Equal(t, generated, w.Header().Get(RequestIDHeader))
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), BodyLimit(16))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := testutil.PerformRequest(t, r, http.MethodPost, "/", map[string]string{"name": "a very long product name"}, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Equal(t, "ERR_REQUEST_TOO_LARGE", testutil.DecodeResponse(t, w).Error.Code)

	w = testutil.PerformRequest(t, r, http.MethodPost, "/", map[string]string{"a": "b"}, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCORS(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://fanaticos.example"}
	r := gin.New()
	r.Use(CORSWithConfig(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := testutil.PerformRequest(t, r, http.MethodOptions, "/", nil, map[string]string{"Origin": "https://fanaticos.example"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://fanaticos.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	w = testutil.PerformRequest(t, r, http.MethodGet, "/", nil, map[string]string{"Origin": "https://evil.example"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestValidator_CUIT(t *testing.T) {
	SetupValidator()
	type partnerBody struct {
		CUIT string `json:"cuit" binding:"omitempty,cuit"`
	}
	r := gin.New()
	r.POST("/partners", func(c *gin.Context) {
		var body partnerBody
		if err := c.ShouldBindJSON(&body); err != nil {
			details := ValidationDetails(err)
			require.Len(t, details, 1)
			c.JSON(http.StatusBadRequest, gin.H{"field": details[0].Field, "message": details[0].Message})
			return
		}
		c.Status(http.StatusNoContent)
	})

	for _, valid := range []string{"", "30-12345678-9", "20123456789"} {
		w := testutil.PerformRequest(t, r, http.MethodPost, "/partners", map[string]string{"cuit": valid}, nil)
		assert.Equal(t, http.StatusNoContent, w.Code, "cuit %q", valid)
	}
	for _, invalid := range []string{"30-1234-9", "ABCDEFGHIJK", "301234567890"} {
		w := testutil.PerformRequest(t, r, http.MethodPost, "/partners", map[string]string{"cuit": invalid}, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, "cuit %q", invalid)
		assert.Contains(t, w.Body.String(), `"field":"cuit"`)
	}
}
