package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	accountsapp "github.com/b3erp/backend/internal/application/accounts"
	assetapp "github.com/b3erp/backend/internal/application/asset"
	auditapp "github.com/b3erp/backend/internal/application/audit"
	financeapp "github.com/b3erp/backend/internal/application/finance"
	hrapp "github.com/b3erp/backend/internal/application/hr"
	identityapp "github.com/b3erp/backend/internal/application/identity"
	projectapp "github.com/b3erp/backend/internal/application/project"
	qualityapp "github.com/b3erp/backend/internal/application/quality"
	settingsapp "github.com/b3erp/backend/internal/application/settings"
	"github.com/b3erp/backend/internal/domain/hr"
	"github.com/b3erp/backend/internal/infrastructure/auth"
	"github.com/b3erp/backend/internal/infrastructure/cache"
	"github.com/b3erp/backend/internal/infrastructure/config"
	"github.com/b3erp/backend/internal/infrastructure/event"
	"github.com/b3erp/backend/internal/infrastructure/lock"
	"github.com/b3erp/backend/internal/infrastructure/logger"
	"github.com/b3erp/backend/internal/infrastructure/persistence"
	"github.com/b3erp/backend/internal/infrastructure/printing"
	"github.com/b3erp/backend/internal/infrastructure/scheduler"
	"github.com/b3erp/backend/internal/infrastructure/seed"
	"github.com/b3erp/backend/internal/infrastructure/storage"
	"github.com/b3erp/backend/internal/infrastructure/telemetry"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

//	@title			B3 ERP Backend API
//	@version		1.0
//	@description	Manufacturing ERP: quality, finance, HR, assets and projects

//	@host		localhost:8080
//	@BasePath	/api

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Fields:     map[string]string{"service": cfg.App.Name, "env": cfg.App.Env},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Server exited with error", zap.Error(err))
		logger.Sync(log)
		os.Exit(1)
	}
	log.Info("Server exited gracefully")
}

// services holds the application layer wired over the infrastructure
type services struct {
	jwt         *auth.JWTService
	auth        *identityapp.AuthService
	series      *settingsapp.NumberSeriesService
	defectCodes *qualityapp.DefectCodeService
	inspections *qualityapp.InspectionService
	banks       *accountsapp.BankAccountService
	invoices    *financeapp.InvoiceService
	employees   *hrapp.EmployeeService
	leaves      *hrapp.LeaveService
	payroll     *hrapp.PayrollService
	assets      *assetapp.AssetService
	projects    *projectapp.ProjectService
	audit       *auditapp.LogService
	docs        *printing.Documents
	jobs        *scheduler.Scheduler
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	log.Info("Starting B3 ERP backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		TracesEnabled:     cfg.Telemetry.Enabled,
		MetricsEnabled:    cfg.Telemetry.MetricsEnabled,
		LogsEnabled:       cfg.Telemetry.LogsEnabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		Insecure:          cfg.Telemetry.Insecure,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		ServiceVersion:    version,
		Environment:       cfg.App.Env,
		MetricsInterval:   cfg.Telemetry.MetricsInterval,
	}, log)
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	log = providers.BridgeLogger(log, zapcore.InfoLevel)

	profiler, err := telemetry.StartProfiler(telemetry.ProfilerConfig{
		Enabled:         cfg.Telemetry.ProfilingEnabled,
		ServerAddress:   cfg.Telemetry.PyroscopeServer,
		ApplicationName: cfg.Telemetry.ServiceName,
		Environment:     cfg.App.Env,
		SpanProfiles:    providers.TracesEnabled(),
	}, providers, log)
	if err != nil {
		return fmt.Errorf("start profiler: %w", err)
	}

	db, err := persistence.NewDatabase(&cfg.Database, persistence.Options{
		Logger:        log,
		LogLevel:      cfg.Log.DBLevel,
		SlowThreshold: cfg.Log.SlowQueryThreshold,
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled:    cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL: cfg.Telemetry.DBLogFullSQL,
		DBName:     "postgresql",
	}, log); err != nil {
		return fmt.Errorf("register db tracing: %w", err)
	}
	if providers.MetricsEnabled() {
		dbMetrics, err := telemetry.RegisterDBMetrics(db.DB, providers.Meter("gorm"))
		if err != nil {
			return fmt.Errorf("register db metrics: %w", err)
		}
		defer dbMetrics.Stop()
	}

	// redisClient stays a nil interface when Redis is off so the factories
	// below pick their in-process fallbacks
	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		redisClient = client
		log.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))
	}

	bus := event.NewInMemoryEventBus(log)
	auditRepo := persistence.NewGormAuditLogRepository(db.DB)
	bus.Subscribe(event.NewAuditLogHandler(auditRepo))
	if providers.MetricsEnabled() {
		eventMetrics, err := telemetry.NewEventMetrics(providers.Meter("events"))
		if err != nil {
			return err
		}
		bus.Subscribe(eventMetrics)
	}
	if cfg.Kafka.Enabled {
		forwarder := event.NewKafkaForwarder(cfg.Kafka, log)
		defer func() {
			if err := forwarder.Close(); err != nil {
				log.Warn("Error closing Kafka writer", zap.Error(err))
			}
		}()
		bus.Subscribe(forwarder)
		log.Info("Forwarding domain events to Kafka", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	if err := bus.Start(ctx); err != nil {
		return err
	}

	catalog, err := seed.Load(cfg.Seed.CatalogFile)
	if err != nil {
		return fmt.Errorf("load seed catalog: %w", err)
	}
	defectSeeds, err := catalog.DefectCodeSeeds()
	if err != nil {
		return fmt.Errorf("load seed catalog: %w", err)
	}
	objectStore, err := storage.New(ctx, &cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}
	locker := lock.New(redisClient, cfg.Seed.LockTTL, log)

	svc := newServices(cfg, db, bus, auditRepo, defectSeeds, objectStore, locker, log)
	if cfg.Printing.Enabled {
		var renderer printing.PDFRenderer
		if cfg.Printing.PDFEnabled {
			renderer = printing.NewChromedpRenderer(printing.ChromedpConfig{
				RemoteURL:      cfg.Printing.ChromeURL,
				NoSandbox:      cfg.Printing.NoSandbox,
				DefaultTimeout: cfg.Printing.Timeout,
				Logger:         log.Named("printing"),
			})
		}
		docs, err := printing.NewDocuments(cfg.Printing.CompanyName, printing.PaperSize(strings.ToUpper(cfg.Printing.PaperSize)), renderer)
		if err != nil {
			return err
		}
		defer docs.Close()
		svc.docs = docs
	}

	if err := seed.NewRunner(cfg.Seed, catalog, svc.defectCodes, svc.series, log).Run(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	if cfg.Auth.AdminPassword != "" {
		if _, err := svc.auth.BootstrapAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			return fmt.Errorf("bootstrap admin: %w", err)
		}
	}

	sched := scheduler.New(scheduler.Config{JobTimeout: cfg.Scheduler.JobTimeout}, locker, log)
	if providers.MetricsEnabled() {
		jobMetrics, err := telemetry.NewJobMetrics(providers.Meter("scheduler"))
		if err != nil {
			return err
		}
		sched.WithObserver(jobMetrics)
	}
	svc.jobs = sched
	if cfg.Scheduler.Enabled {
		if err := sched.Register(scheduler.JobInvoiceOverdueSweep, cfg.Scheduler.OverdueSweepInterval,
			scheduler.OverdueSweepJob(svc.invoices, log)); err != nil {
			return err
		}
	}

	engine, cleanup, err := newEngine(cfg, svc, db, redisClient, providers, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	if cfg.Scheduler.Enabled {
		g.Go(func() error {
			return sched.Start(gctx)
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()

		var errs []error
		if err := srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("server shutdown: %w", err))
		}
		if err := sched.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("scheduler stop: %w", err))
		}
		if err := bus.Stop(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("event bus stop: %w", err))
		}
		if err := profiler.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("profiler stop: %w", err))
		}
		if err := providers.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("telemetry shutdown: %w", err))
		}
		return errors.Join(errs...)
	})
	return g.Wait()
}

func newServices(
	cfg *config.Config,
	db *persistence.Database,
	bus *event.InMemoryEventBus,
	auditRepo *persistence.GormAuditLogRepository,
	defectSeeds []qualityapp.DefectCodeSeed,
	objectStore qualityapp.ObjectStorage,
	locker lock.RunLocker,
	log *zap.Logger,
) *services {
	seriesRepo := persistence.NewGormNumberSeriesRepository(db.DB)
	defectRepo := persistence.NewGormDefectCodeRepository(db.DB)
	employeeRepo := persistence.NewGormEmployeeRepository(db.DB)
	leaveRepo := persistence.NewGormLeaveRequestRepository(db.DB)

	series := settingsapp.NewNumberSeriesService(seriesRepo, bus)
	jwtService := auth.NewJWTService(cfg.JWT)

	return &services{
		jwt: jwtService,
		auth: identityapp.NewAuthService(persistence.NewGormUserRepository(db.DB), jwtService, identityapp.AuthServiceConfig{
			MaxLoginAttempts: cfg.Auth.MaxLoginAttempts,
			LockDuration:     cfg.Auth.LockoutDuration,
		}, log),
		series:      series,
		defectCodes: qualityapp.NewDefectCodeService(defectRepo, defectSeeds, locker, log),
		inspections: qualityapp.NewInspectionService(qualityapp.InspectionServiceDeps{
			Repo:        persistence.NewGormInspectionRepository(db.DB),
			DefectCodes: defectRepo,
			Numbers:     series,
			Storage:     objectStore,
			Events:      bus,
			MaxFileSize: cfg.Storage.MaxFileSize,
			Logger:      log,
		}),
		banks: accountsapp.NewBankAccountService(
			persistence.NewGormBankAccountRepository(db.DB),
			persistence.NewGormBankTransactionRepository(db.DB),
			bus,
		),
		invoices:  financeapp.NewInvoiceService(persistence.NewGormInvoiceRepository(db.DB), series, bus, log),
		employees: hrapp.NewEmployeeService(employeeRepo, leaveRepo, series, bus, log).WithPhoneRegion(cfg.App.PhoneRegion),
		leaves:    hrapp.NewLeaveService(leaveRepo, employeeRepo, series, bus, log),
		payroll: hrapp.NewPayrollService(hrapp.PayrollServiceDeps{
			Runs:      persistence.NewGormPayrollRunRepository(db.DB),
			Employees: employeeRepo,
			Numbers:   series,
			Events:    bus,
			Policy:    deductionPolicy(cfg.Payroll),
			Logger:    log,
		}),
		assets:   assetapp.NewAssetService(persistence.NewGormAssetRepository(db.DB), series, bus, log),
		projects: projectapp.NewProjectService(persistence.NewGormProjectRepository(db.DB), series, bus, log),
		audit:    auditapp.NewLogService(auditRepo, log),
	}
}

// deductionPolicy converts the configured rates; unset values keep the
// statutory defaults
func deductionPolicy(cfg config.PayrollConfig) hr.DeductionPolicy {
	policy := hr.DefaultDeductionPolicy()
	set := func(dst *decimal.Decimal, v float64) {
		if v > 0 {
			*dst = decimal.NewFromFloat(v)
		}
	}
	set(&policy.ProvidentFundRate, cfg.ProvidentFundRate)
	set(&policy.ProfessionalTax, cfg.ProfessionalTax)
	set(&policy.IncomeTaxRate, cfg.IncomeTaxRate)
	set(&policy.ESIRate, cfg.ESIRate)
	set(&policy.ESIWageCeiling, cfg.ESIWageCeiling)
	return policy
}

// redisPinger adapts a Redis client to the health check
type redisPinger struct {
	client redis.UniversalClient
}

func (p redisPinger) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
