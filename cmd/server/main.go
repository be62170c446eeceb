package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/ejarriada/Fanaticos/internal/application/catalog"
	financeapp "github.com/ejarriada/Fanaticos/internal/application/finance"
	identityapp "github.com/ejarriada/Fanaticos/internal/application/identity"
	invapp "github.com/ejarriada/Fanaticos/internal/application/inventory"
	partnerapp "github.com/ejarriada/Fanaticos/internal/application/partner"
	prodapp "github.com/ejarriada/Fanaticos/internal/application/production"
	tradeapp "github.com/ejarriada/Fanaticos/internal/application/trade"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/auth"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/cache"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/config"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/logger"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/persistence"
	"github.com/ejarriada/Fanaticos/internal/infrastructure/telemetry"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/handler"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/middleware"
	"github.com/ejarriada/Fanaticos/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	serviceName := cfg.Telemetry.ServiceName
	if serviceName == "" {
		serviceName = cfg.App.Name
	}

	// Telemetry
	tracerProvider, err := telemetry.NewTracerProvider(ctx, telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	meterProvider, err := telemetry.NewMeterProvider(ctx, telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.MetricsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ExportInterval:    cfg.Telemetry.MetricsInterval,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	logProvider, err := telemetry.NewLoggerProvider(ctx, telemetry.LogsConfig{
		Enabled:           cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       serviceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize log provider", zap.Error(err))
	}
	if logProvider.IsEnabled() {
		core, err := logger.NewCore(logCfg)
		if err != nil {
			log.Fatal("Failed to build log core", zap.Error(err))
		}
		log = logProvider.Bridge(core, logger.ParseLevel(cfg.Log.Level), zap.AddCaller())
	}
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeAddress,
		ApplicationName: serviceName,
	}, log)
	if err != nil {
		log.Warn("Profiler disabled", zap.Error(err))
	} else if profiler.IsEnabled() && tracerProvider.IsEnabled() {
		tracerProvider.EnableSpanProfiles()
	}

	log.Info("Starting Fanaticos backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Database
	db, err := persistence.NewDatabase(ctx, cfg.Database, cfg.Telemetry.DBSlowQueryThresh, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:         cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:      cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh: cfg.Telemetry.DBSlowQueryThresh,
		DBName:          cfg.Database.DBName,
	}, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	log.Info("Database connected successfully")

	tenantCache, closeCache := cache.NewTenantCache(ctx, cfg.Redis, cfg.Business.TenantCacheTTL, log)

	// Services
	txScope := persistence.NewGormTransactionScope(db.DB)
	ledger := invapp.NewStockLedger(cfg.Business.FactoryLocalName)

	businessMetrics, err := telemetry.NewBusinessMetrics(meterProvider.Meter("fanaticos/business"))
	if err != nil {
		log.Warn("Business metrics disabled", zap.Error(err))
	}

	stockService := invapp.NewStockService(txScope, ledger)
	internalDeliveryService := invapp.NewInternalDeliveryService(txScope, ledger)
	productionService := prodapp.NewProductionService(txScope, ledger)
	paymentService := financeapp.NewPaymentService(txScope)
	quotationService := tradeapp.NewQuotationService(txScope)
	saleService := tradeapp.NewSaleService(txScope)
	deliveryService := tradeapp.NewDeliveryService(txScope, ledger)
	purchaseService := tradeapp.NewPurchaseService(txScope)

	stockService.SetBusinessMetrics(businessMetrics)
	internalDeliveryService.SetBusinessMetrics(businessMetrics)
	productionService.SetBusinessMetrics(businessMetrics)
	paymentService.SetBusinessMetrics(businessMetrics)
	quotationService.SetBusinessMetrics(businessMetrics)
	saleService.SetBusinessMetrics(businessMetrics)
	deliveryService.SetBusinessMetrics(businessMetrics)
	purchaseService.SetBusinessMetrics(businessMetrics)

	// HTTP
	httpMetrics, err := middleware.NewHTTPMetrics(meterProvider.Meter("fanaticos/http"))
	if err != nil {
		log.Warn("HTTP metrics disabled", zap.Error(err))
	}
	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine := router.NewEngine(router.EngineConfig{
		Logger:         log,
		ServiceName:    serviceName,
		TracingEnabled: tracerProvider.IsEnabled(),
		CORS:           corsCfg,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		TrustedProxies: cfg.HTTP.TrustedProxies,
		Metrics:        httpMetrics,
		Verifier:       auth.NewVerifier(cfg.JWT),
	})

	handler.NewSystemHandler(cfg.App.Name, version).
		AddCheck("database", db.Ping).
		RegisterRoutes(&engine.RouterGroup)

	r := router.NewRouter(engine, router.WithTenantResolver(identityapp.NewTenantResolver(txScope, tenantCache)))
	r.Register(handler.NewTenantHandler(identityapp.NewTenantService(txScope, tenantCache, log)).Routes())
	r.RegisterScoped(handler.NewCatalogHandler(
		catalogapp.NewDesignService(txScope),
		catalogapp.NewProductService(txScope),
		catalogapp.NewReferenceService(txScope),
	).Routes())
	r.RegisterScoped(handler.NewPartnerHandler(
		partnerapp.NewClientService(txScope),
		partnerapp.NewSupplierService(txScope),
	).Routes())
	r.RegisterScoped(handler.NewInventoryHandler(stockService, internalDeliveryService).Routes())
	r.RegisterScoped(handler.NewProductionHandler(productionService).Routes())
	r.RegisterScoped(handler.NewTradeHandler(quotationService, saleService, deliveryService, purchaseService).Routes())
	r.RegisterScoped(handler.NewFinanceHandler(financeapp.NewAccountService(txScope), paymentService).Routes())
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownTimeout := cfg.HTTP.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := closeCache(); err != nil {
		log.Warn("Error closing tenant cache", zap.Error(err))
	}
	if err := db.Close(); err != nil {
		log.Error("Error closing database", zap.Error(err))
	}
	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.Warn("Error stopping profiler", zap.Error(err))
		}
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tracerProvider.Shutdown,
		"meter":  meterProvider.Shutdown,
		"logs":   logProvider.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("Error shutting down telemetry", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}
