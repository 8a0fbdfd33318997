package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	catalogapp "github.com/erp/pdv/internal/application/catalog"
	financeapp "github.com/erp/pdv/internal/application/finance"
	identityapp "github.com/erp/pdv/internal/application/identity"
	inventoryapp "github.com/erp/pdv/internal/application/inventory"
	partnerapp "github.com/erp/pdv/internal/application/partner"
	tradeapp "github.com/erp/pdv/internal/application/trade"
	"github.com/erp/pdv/internal/domain/shared"
	"github.com/erp/pdv/internal/infrastructure/auth"
	"github.com/erp/pdv/internal/infrastructure/cache"
	"github.com/erp/pdv/internal/infrastructure/config"
	"github.com/erp/pdv/internal/infrastructure/event"
	"github.com/erp/pdv/internal/infrastructure/logger"
	"github.com/erp/pdv/internal/infrastructure/migration"
	"github.com/erp/pdv/internal/infrastructure/persistence"
	"github.com/erp/pdv/internal/infrastructure/printing"
	"github.com/erp/pdv/internal/infrastructure/storage"
	"github.com/erp/pdv/internal/infrastructure/telemetry"
	"github.com/erp/pdv/internal/infrastructure/webhook"
	"github.com/erp/pdv/internal/interfaces/http/handler"
	"github.com/erp/pdv/internal/interfaces/http/middleware"
	"github.com/erp/pdv/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/erp/pdv/docs"
)

const version = "1.0.0"

//	@title			PDV API
//	@version		1.0
//	@description	Point-of-sale backend: catalog, stock ledger, checkout, returns, carnê credit and expenses.

//	@contact.name	PDV Support
//	@contact.url	https://github.com/erp/pdv

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logCfg := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	}
	log, err := logger.New(logCfg)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx := context.Background()

	// Telemetry comes up before anything that traces or counts
	tp, err := telemetry.NewTracerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	mp, err := telemetry.NewMeterProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	lp, err := telemetry.NewLoggerProvider(ctx, cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize log exporter", zap.Error(err))
	}
	if lp.IsEnabled() {
		core := telemetry.NewZapOTELCore(cfg.Telemetry.ServiceName, lp, logger.ParseLevel(cfg.Log.Level))
		if log, err = logger.New(logCfg, core); err != nil {
			panic("Failed to initialize logger: " + err.Error())
		}
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	profiler, err := telemetry.NewProfiler(cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to start profiler", zap.Error(err))
	}
	if profiler.IsEnabled() {
		tp.EnableSpanProfiles()
	}

	log.Info("Starting PDV",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if err := prepareSchema(db, log); err != nil {
		log.Fatal("Failed to prepare schema", zap.Error(err))
	}
	if err := telemetry.RegisterDBTracing(db.DB, cfg.Telemetry.DBTraceEnabled, cfg.Database.Driver, log); err != nil {
		log.Warn("Database tracing disabled", zap.Error(err))
	}
	log.Info("Database connected successfully")

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	saleRepo := persistence.NewGormSaleRepository(db.DB)
	returnRepo := persistence.NewGormReturnRepository(db.DB)
	exchangeRepo := persistence.NewGormExchangeRepository(db.DB)
	creditorRepo := persistence.NewGormCreditorRepository(db.DB)
	installmentRepo := persistence.NewGormInstallmentRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	creditSaleRepo := persistence.NewGormCreditSaleRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	ledgerMetrics, err := telemetry.NewLedgerMetrics(mp.Meter("pdv/ledger"))
	if err != nil {
		log.Fatal("Failed to register ledger metrics", zap.Error(err))
	}

	eventBus := event.NewInMemoryEventBus(log)
	for _, h := range []shared.EventHandler{
		event.NewLowStockAlertHandler(log, ledgerMetrics),
		event.NewCreditorAuditHandler(log),
	} {
		eventBus.Subscribe(h, h.EventTypes()...)
	}

	idempotency := cache.NewIdempotencyStore(ctx, cfg.Redis, log)
	defer func() {
		if err := idempotency.Close(); err != nil {
			log.Warn("Failed to close idempotency store", zap.Error(err))
		}
	}()

	// Services
	productService := catalogapp.NewProductService(productRepo, movementRepo, log)
	productService.SetEventPublisher(eventBus)

	ledgerService := inventoryapp.NewLedgerService(productRepo, movementRepo, cfg.Ledger.StockRetries, log)
	ledgerService.SetEventPublisher(eventBus)
	ledgerService.SetMetrics(ledgerMetrics)

	creditService := financeapp.NewCreditService(financeapp.CreditRepositories{
		Creditors:    creditorRepo,
		Installments: installmentRepo,
		Payments:     paymentRepo,
		CreditSales:  creditSaleRepo,
		Customers:    customerRepo,
		Sales:        saleRepo,
	}, log)
	creditService.SetEventPublisher(eventBus)
	creditService.SetMetrics(ledgerMetrics)
	creditService.SetCreditTerm(time.Duration(cfg.Ledger.CreditTermDays) * 24 * time.Hour)
	creditService.SetScheduleConcurrency(cfg.Ledger.ScheduleConcurrency)

	closeRenderer := setupPrinting(ctx, cfg, creditService, log)
	defer closeRenderer()
	if cfg.Webhook.CarneURL != "" {
		creditService.SetCarneNotifier(webhook.NewCarneNotifier(cfg.Webhook, log))
	}

	saleService := tradeapp.NewSaleService(productRepo, saleRepo, customerRepo, ledgerService, creditService, log)
	saleService.SetIdempotencyStore(idempotency, cfg.Ledger.IdempotencyTTL)
	saleService.SetMetrics(ledgerMetrics)
	saleService.SetStockConcurrency(cfg.Ledger.StockConcurrency)

	returnService := tradeapp.NewReturnService(saleRepo, returnRepo, exchangeRepo, ledgerService, saleService, log)
	returnService.SetMetrics(ledgerMetrics)

	customerService := partnerapp.NewCustomerService(customerRepo)
	expenseService := financeapp.NewExpenseService(expenseRepo, log)

	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, log)

	created, err := userService.EnsureAdmin(ctx, cfg.App.AdminUsername, cfg.App.AdminPassword)
	if err != nil {
		log.Fatal("Failed to bootstrap admin account", zap.Error(err))
	}
	if created {
		log.Info("Bootstrap admin account created", zap.String("username", cfg.App.AdminUsername))
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	cors := middleware.DefaultCORSConfig()
	cors.AllowOrigins = cfg.HTTP.CORSAllowOrigins

	engine := router.New(router.Options{
		Logger:         log,
		Sessions:       jwtService,
		ServiceName:    cfg.Telemetry.ServiceName,
		TracingEnabled: tp.IsEnabled(),
		Meters:         mp,
		CORS:           cors,
		MaxBodySize:    cfg.HTTP.MaxBodySize,
		Swagger:        cfg.HTTP.SwaggerEnabled,
	}, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserHandler(userService),
		Products:  handler.NewProductHandler(productService),
		Inventory: handler.NewInventoryHandler(ledgerService),
		Customers: handler.NewCustomerHandler(customerService),
		Sales:     handler.NewSaleHandler(saleService),
		Returns:   handler.NewReturnHandler(returnService),
		Creditors: handler.NewCreditorHandler(creditService),
		Expenses:  handler.NewExpenseHandler(expenseService),
		Health:    handler.NewHealthHandler(db, version),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	timeout := cfg.HTTP.ShutdownTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := profiler.Stop(); err != nil {
		log.Warn("Profiler stop failed", zap.Error(err))
	}
	for name, shutdown := range map[string]func(context.Context) error{
		"tracer": tp.Shutdown,
		"meter":  mp.Shutdown,
		"logs":   lp.Shutdown,
	} {
		if err := shutdown(shutdownCtx); err != nil {
			log.Warn("Telemetry shutdown failed", zap.String("provider", name), zap.Error(err))
		}
	}

	log.Info("Server exited gracefully")
}

// prepareSchema creates the tables. PostgreSQL follows the versioned
// migrations; SQLite is a single-terminal store and is auto-migrated.
func prepareSchema(db *persistence.Database, log *zap.Logger) error {
	if db.Driver == "sqlite" {
		return db.AutoMigrate()
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	m, err := migration.New(sqlDB, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warn("Failed to release migrator", zap.Error(err))
		}
	}()
	return m.Up()
}

// setupPrinting attaches the carnê/report printer when printing is enabled.
// The returned func releases the browser.
func setupPrinting(ctx context.Context, cfg *config.Config, credit *financeapp.CreditService, log *zap.Logger) func() {
	noop := func() {}
	if !cfg.Printing.Enabled {
		log.Info("Document printing disabled")
		return noop
	}

	renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
		DefaultTimeout: cfg.Printing.Timeout,
		ExecPath:       cfg.Printing.ChromePath,
		NoSandbox:      true,
		Logger:         log,
	})
	if err != nil {
		log.Warn("Chrome unavailable, document printing disabled", zap.Error(err))
		return noop
	}
	release := func() {
		if err := renderer.Close(); err != nil {
			log.Warn("Failed to close renderer", zap.Error(err))
		}
	}

	docs, err := storage.NewDocumentStorage(ctx, &cfg.Storage, log)
	if err != nil {
		log.Warn("Document storage unavailable, document printing disabled", zap.Error(err))
		return release
	}
	printer, err := printing.NewDocumentPrinter(renderer, docs, cfg.Printing.StoreName, log)
	if err != nil {
		log.Warn("Failed to create document printer", zap.Error(err))
		return release
	}
	credit.SetDocumentPrinter(printer)
	return release
}
