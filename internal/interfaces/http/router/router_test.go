package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ejarriada/Fanaticos/internal/domain/shared"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fixedResolver struct {
	tenant uuid.UUID
}

func (r fixedResolver) Resolve(_ context.Context, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, shared.ErrTenantRequired
	}
	if raw != r.tenant.String() {
		return uuid.Nil, shared.ErrTenantNotFound
	}
	return r.tenant, nil
}

func ok(c *gin.Context) { c.String(http.StatusOK, "ok") }

func newTestEngine(t *testing.T, tenant uuid.UUID) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	engine := NewEngine(EngineConfig{ServiceName: "fanaticos-test"})

	tenants := NewDomainGroup("/tenants").GET("", ok)
	stock := NewDomainGroup("")
	stock.Group("/stock").GET("", ok).POST("/transfer", ok)

	NewRouter(engine, WithTenantResolver(fixedResolver{tenant: tenant})).
		Register(tenants).
		RegisterScoped(stock).
		Setup()
	return engine
}

func serve(engine *gin.Engine, method, path, tenant string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if tenant != "" {
		req.Header.Set("X-Tenant-ID", tenant)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRouter_PublicRoutesSkipTenantResolution(t *testing.T) {
	engine := newTestEngine(t, uuid.New())
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/tenants", "").Code)
}

func TestRouter_ScopedRoutesRequireTenant(t *testing.T) {
	tenant := uuid.New()
	engine := newTestEngine(t, tenant)

	assert.Equal(t, http.StatusBadRequest, serve(engine, http.MethodGet, "/api/v1/stock", "").Code)
	assert.Equal(t, http.StatusNotFound, serve(engine, http.MethodGet, "/api/v1/stock", uuid.NewString()).Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodGet, "/api/v1/stock", tenant.String()).Code)
	assert.Equal(t, http.StatusOK, serve(engine, http.MethodPost, "/api/v1/stock/transfer", tenant.String()).Code)
}

func TestEngine_UnknownRoute(t *testing.T) {
	engine := newTestEngine(t, uuid.New())
	w := serve(engine, http.MethodGet, "/api/v1/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"success":false`)
}
