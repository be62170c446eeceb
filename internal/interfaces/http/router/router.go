// Package router assembles the gin engine: the global middleware chain, the
// versioned API group and the tenant-scoped subgroup.
package router

import (
	"net/http"

	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/dto"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouteRegistrar mounts its routes on a gin group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// EngineConfig configures the middleware every request passes through.
type EngineConfig struct {
	Logger         *zap.Logger
	ServiceName    string
	TracingEnabled bool
	CORS           middleware.CORSConfig
	MaxBodySize    int64
	TrustedProxies []string
	Metrics        *middleware.HTTPMetrics
	Verifier       middleware.TokenVerifier
}

// NewEngine creates a gin engine with the global middleware chain. Tenant
// resolution is not global; it is applied by Router to scoped routes only.
func NewEngine(cfg EngineConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
			log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
			_ = engine.SetTrustedProxies(nil)
		}
	} else {
		_ = engine.SetTrustedProxies(nil)
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.Tracing(cfg.ServiceName, cfg.TracingEnabled),
		middleware.Secure(),
		middleware.CORSWithConfig(cfg.CORS),
		middleware.BodyLimit(cfg.MaxBodySize),
		cfg.Metrics.Middleware(),
		middleware.BearerAuth(cfg.Verifier),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(dto.ErrCodeNotFound, "Route not found", middleware.GetRequestID(c)))
	})
	return engine
}

// Router mounts registrars under /api/v1. Public registrars see every
// request; scoped ones only run once a tenant has been resolved.
type Router struct {
	engine  *gin.Engine
	scopeMW []gin.HandlerFunc
	public  []RouteRegistrar
	scoped  []RouteRegistrar
}

const apiPrefix = "/api/v1"

type RouterOption func(*Router)

// WithTenantResolver puts tenant resolution, and the span attributes that
// depend on it, in front of every scoped route.
func WithTenantResolver(resolver middleware.TenantResolver) RouterOption {
	return func(r *Router) {
		r.scopeMW = append(r.scopeMW, middleware.Tenant(resolver), middleware.SpanEnricher())
	}
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds routes that do not belong to a tenant, such as tenant
// management itself.
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.public = append(r.public, registrar)
	return r
}

func (r *Router) RegisterScoped(registrar RouteRegistrar) *Router {
	r.scoped = append(r.scoped, registrar)
	return r
}

// Setup mounts everything registered so far. Call it once.
func (r *Router) Setup() {
	api := r.engine.Group(apiPrefix)
	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	scoped := api.Group("", r.scopeMW...)
	for _, registrar := range r.scoped {
		registrar.RegisterRoutes(scoped)
	}
}

// DomainGroup collects the routes of one business area so a handler can
// declare them before the engine exists.
type DomainGroup struct {
	prefix    string
	routes    []route
	subgroups []*DomainGroup
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewDomainGroup(prefix string) *DomainGroup {
	return &DomainGroup{prefix: prefix}
}

func (dg *DomainGroup) add(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: path, handlers: handlers})
	return dg
}

func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodGet, path, handlers)
}

func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPost, path, handlers)
}

func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPut, path, handlers)
}

func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodDelete, path, handlers)
}

// Group returns a child group mounted below this one.
func (dg *DomainGroup) Group(prefix string) *DomainGroup {
	child := NewDomainGroup(prefix)
	dg.subgroups = append(dg.subgroups, child)
	return child
}

func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix)
	for _, rt := range dg.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
	for _, child := range dg.subgroups {
		child.RegisterRoutes(group)
	}
}
