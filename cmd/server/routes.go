package main

import (
	"net/http"

	_ "github.com/b3erp/backend/docs"
	"github.com/b3erp/backend/internal/infrastructure/cache"
	"github.com/b3erp/backend/internal/infrastructure/config"
	"github.com/b3erp/backend/internal/infrastructure/logger"
	"github.com/b3erp/backend/internal/infrastructure/persistence"
	"github.com/b3erp/backend/internal/infrastructure/telemetry"
	"github.com/b3erp/backend/internal/interfaces/http/handler"
	"github.com/b3erp/backend/internal/interfaces/http/middleware"
	"github.com/b3erp/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// newEngine builds the HTTP engine. The returned func releases background
// resources owned by the middleware.
func newEngine(
	cfg *config.Config,
	svc *services,
	db *persistence.Database,
	redisClient redis.UniversalClient,
	providers *telemetry.Providers,
	log *zap.Logger,
) (*gin.Engine, func(), error) {
	if cfg.App.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Warn("Invalid trusted proxies, trusting none", zap.Error(err))
		_ = engine.SetTrustedProxies(nil)
	}

	cors := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		cors.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		cors.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	var meter metric.Meter
	if providers.MetricsEnabled() {
		meter = providers.Meter("http.server")
	}
	httpMetrics, err := middleware.HTTPMetrics(meter)
	if err != nil {
		return nil, nil, err
	}

	engine.Use(
		middleware.Tracing(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     providers.TracesEnabled(),
		}),
		middleware.SpanErrorMarker(),
		httpMetrics,
		middleware.RequestID(),
		logger.Recovery(log),
		logger.GinMiddleware(log, "/health"),
		middleware.Secure(),
		middleware.CORSWithConfig(cors),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	cleanup := func() {}
	if cfg.HTTP.RateLimitEnabled {
		counter := cache.NewRateCounter(redisClient, log)
		engine.Use(middleware.RateLimit(middleware.RateLimitConfig{
			Counter: counter,
			Limit:   cfg.HTTP.RateLimitRequests,
			Window:  cfg.HTTP.RateLimitWindow,
			Logger:  log,
		}))
		cleanup = func() { _ = counter.Close() }
	}

	checks := map[string]handler.Pinger{"database": db}
	if redisClient != nil {
		checks["redis"] = redisPinger{client: redisClient}
	}
	engine.GET("/health", handler.NewHealthHandler(checks).Check)
	engine.GET("/swagger/*any",
		middleware.SwaggerProtection(middleware.SwaggerConfig{
			Enabled:    cfg.HTTP.SwaggerEnabled,
			AllowedIPs: cfg.HTTP.SwaggerAllowedIPs,
		}),
		ginSwagger.WrapHandler(swaggerFiles.Handler),
	)

	r := router.NewRouter(engine)
	if cfg.Auth.Enabled {
		r.Use(
			middleware.Authenticate(middleware.AuthConfig{
				Tokens: svc.jwt,
				Public: []string{"/api/ping", "/api/system/info", "/api/auth/login"},
				Logger: log,
			}),
			middleware.RequireWriteRole(middleware.WriteAccessConfig{
				PermissionConfig: middleware.PermissionConfig{Logger: log},
				Public:           []middleware.RouteRule{{Method: http.MethodPost, Path: "/api/auth/login"}},
				// employees file their own leave requests and manage their password
				Exempt: []middleware.RouteRule{
					{Method: http.MethodPost, Path: "/api/hr/leave-requests"},
					{Method: http.MethodPost, Path: "/api/auth/password"},
				},
			}),
		)
	} else {
		log.Warn("Authentication is disabled; every API route is open")
	}
	r.Use(middleware.TracingAttributes())
	r.Use(middleware.Idempotency(middleware.IdempotencyConfig{
		Store:  cache.NewIdempotencyStore(redisClient, log),
		TTL:    cfg.HTTP.IdempotencyTTL,
		Logger: log,
	}))

	r.Register(
		handler.NewSystemHandler(cfg.App.Name, version, cfg.App.Env).WithDatabase(db).WithJobs(svc.jobs),
		handler.NewAuthHandler(svc.auth),
		handler.NewNumberSeriesHandler(svc.series),
		handler.NewDefectCodeHandler(svc.defectCodes),
		handler.NewInspectionHandler(svc.inspections),
		handler.NewBankAccountHandler(svc.banks),
		handler.NewInvoiceHandler(svc.invoices).WithDocuments(svc.docs),
		handler.NewEmployeeHandler(svc.employees),
		handler.NewLeaveHandler(svc.leaves),
		handler.NewPayrollHandler(svc.payroll),
		handler.NewAssetHandler(svc.assets),
		handler.NewProjectHandler(svc.projects),
		handler.NewAuditLogHandler(svc.audit),
	)
	r.Setup()

	log.Info("Routes mounted", zap.Int("endpoints", len(r.Endpoints())))
	return engine, cleanup, nil
}
