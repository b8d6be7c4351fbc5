package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	allocationapp "github.com/vintrade/backend/internal/application/allocation"
	cellarapp "github.com/vintrade/backend/internal/application/cellar"
	eventapp "github.com/vintrade/backend/internal/application/event"
	fulfillmentapp "github.com/vintrade/backend/internal/application/fulfillment"
	tradingapp "github.com/vintrade/backend/internal/application/trading"
	"github.com/vintrade/backend/internal/domain/fulfillment"
	"github.com/vintrade/backend/internal/infrastructure/cache"
	"github.com/vintrade/backend/internal/infrastructure/config"
	"github.com/vintrade/backend/internal/infrastructure/event"
	"github.com/vintrade/backend/internal/infrastructure/logger"
	"github.com/vintrade/backend/internal/infrastructure/persistence"
	"github.com/vintrade/backend/internal/infrastructure/telemetry"
	"github.com/vintrade/backend/internal/interfaces/http/handler"
	"github.com/vintrade/backend/internal/interfaces/http/middleware"
	"github.com/vintrade/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

//	@title			VinTrade Backend API
//	@version		1.0
//	@description	Wine trading back office: allocation ledger, voucher registry, cellar tracking and fulfilment binding.
//	@termsOfService	http://swagger.io/terms/

//	@contact.name	API Support
//	@contact.url	https://github.com/vintrade/backend

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@description	Identity is terminated at the upstream gateway, which injects X-User-ID.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting VinTrade Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Telemetry: traces and metrics are exported over OTLP when enabled,
	// otherwise the providers are no-ops.
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	meterProvider, err := telemetry.NewMeterProvider(context.Background(), telemetry.MetricsConfig{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize meter provider", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := meterProvider.Shutdown(ctx); err != nil {
			log.Error("Error shutting down meter provider", zap.Error(err))
		}
	}()

	// Continuous profiling (pyroscope)
	profiler, err := telemetry.NewProfiler(telemetry.ProfilerConfig{
		Enabled:             cfg.Telemetry.ProfilingEnabled,
		ServerAddress:       cfg.Telemetry.ProfilingServer,
		ApplicationName:     cfg.Telemetry.ServiceName,
		ProfileCPU:          true,
		ProfileAllocObjects: true,
		ProfileAllocSpace:   true,
		ProfileInuseObjects: true,
		ProfileInuseSpace:   true,
		ProfileGoroutines:   true,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer func() {
		if err := profiler.Stop(); err != nil {
			log.Error("Error stopping profiler", zap.Error(err))
		}
	}()

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Database query tracing (otelgorm + slow query detection)
	dbTracing := telemetry.NewDBTracingPlugin(telemetry.DBTracingConfig{
		Enabled:          cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		LogFullSQL:       cfg.Telemetry.DBLogFullSQL,
		SlowQueryThresh:  cfg.Telemetry.DBSlowQueryThresh,
		DBSystem:         "postgresql",
		WithoutVariables: !cfg.Telemetry.DBLogFullSQL,
	}, log)
	if err := dbTracing.RegisterOtelGorm(db.DB); err != nil {
		log.Fatal("Failed to register database tracing", zap.Error(err))
	}

	// Initialize repositories
	allocationRepo := persistence.NewGormAllocationRepository(db.DB)
	voucherRepo := persistence.NewGormVoucherRepository(db.DB)
	transferRepo := persistence.NewGormTransferRepository(db.DB)
	caseRepo := persistence.NewGormCaseEntitlementRepository(db.DB)
	batchRepo := persistence.NewGormInboundBatchRepository(db.DB)
	bottleRepo := persistence.NewGormBottleRepository(db.DB)
	movementRepo := persistence.NewGormMovementRepository(db.DB)
	cellarExceptionRepo := persistence.NewGormInventoryExceptionRepository(db.DB)
	shippingOrderRepo := persistence.NewGormShippingOrderRepository(db.DB)
	shippingLineRepo := persistence.NewGormShippingLineRepository(db.DB)
	orderExceptionRepo := persistence.NewGormOrderExceptionRepository(db.DB)
	outboxRepo := event.NewGormOutboxRepository(db.DB)

	// Transaction scopes
	tradingScope := persistence.NewGormTradingTransactionScope(db.DB)
	cellarScope := persistence.NewGormCellarTransactionScope(db.DB)
	fulfillmentScope := persistence.NewGormFulfillmentTransactionScope(db.DB)

	// WMS event deduplication store (redis, with in-memory fallback
	// outside production)
	storeFactory := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
		cache.WithInMemoryFallback(cfg.App.Env != "production"),
	)
	idempotencyStore, err := storeFactory.CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}

	// Initialize event serializer and register all event types with
	// their wire schema versions
	eventSerializer := event.NewEventSerializer(log)
	if err := event.RegisterAllEvents(eventSerializer); err != nil {
		log.Fatal("Failed to register event types", zap.Error(err))
	}

	// Outbound signals (exhaustion, case broken, attention flags,
	// exceptions) go through the transactional outbox.
	outboxPublisher := event.NewOutboxEventPublisher(db.DB, eventSerializer)

	// Initialize application services
	allocationService := allocationapp.NewAllocationService(allocationRepo)
	voucherService := tradingapp.NewVoucherService(tradingScope, allocationRepo, voucherRepo, transferRepo, caseRepo, log)
	voucherService.SetTransferTTL(cfg.Transfer.DefaultExpiration)
	transferExpiration := tradingapp.NewTransferExpirationService(transferRepo, log)
	inboundService := cellarapp.NewInboundService(cellarScope, allocationRepo, batchRepo, bottleRepo, log)
	manifestService := cellarapp.NewManifestImportService(inboundService, log)
	movementService := cellarapp.NewMovementService(cellarScope, movementRepo, idempotencyStore, log)
	movementService.SetWMSEventTTL(cfg.WMS.EventDedupTTL)
	exceptionService := cellarapp.NewExceptionService(cellarExceptionRepo, log)
	lineBinder := fulfillment.NewLineBinder(persistence.NewPermissiveConstraintChecker())
	shippingService := fulfillmentapp.NewShippingService(
		fulfillmentScope, shippingOrderRepo, shippingLineRepo, orderExceptionRepo, voucherRepo, lineBinder, log,
	)
	outboxService := eventapp.NewOutboxService(outboxRepo, log)

	allocationService.SetEventPublisher(outboxPublisher)
	voucherService.SetEventPublisher(outboxPublisher)
	voucherService.SetAuditLog(persistence.NewGormAuditLog(db.DB))
	inboundService.SetEventPublisher(outboxPublisher)
	movementService.SetEventPublisher(outboxPublisher)
	exceptionService.SetEventPublisher(outboxPublisher)
	shippingService.SetEventPublisher(outboxPublisher)

	// Initialize event bus: in-process consumers subscribe here, fed by
	// the outbox processor
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Operational signals feed alerting. The outbox delivers
	// at-least-once, so the subscriber is wrapped with event-ID dedup.
	signalHandler := event.NewIdempotentHandler(
		eventapp.NewOperationalSignalHandler(log), idempotencyStore, log,
	)
	eventBus.Subscribe(signalHandler, signalHandler.EventTypes()...)

	if cfg.Event.ProcessorEnabled {
		outboxProcessorConfig := event.DefaultOutboxProcessorConfig()
		outboxProcessorConfig.BatchSize = cfg.Event.BatchSize
		outboxProcessorConfig.PollInterval = cfg.Event.PollInterval
		outboxProcessorConfig.CleanupEnabled = cfg.Event.CleanupEnabled
		outboxProcessorConfig.CleanupRetention = cfg.Event.CleanupRetention
		outboxProcessor := event.NewOutboxProcessor(outboxRepo, eventBus, eventSerializer, outboxProcessorConfig, log)
		if err := outboxProcessor.Start(context.Background()); err != nil {
			log.Fatal("Failed to start outbox processor", zap.Error(err))
		}
		defer func() {
			if err := outboxProcessor.Stop(context.Background()); err != nil {
				log.Error("Error stopping outbox processor", zap.Error(err))
			}
		}()
		log.Info("Outbox processor started",
			zap.Int("batch_size", outboxProcessorConfig.BatchSize),
			zap.Duration("poll_interval", outboxProcessorConfig.PollInterval),
		)
	}

	// Business metrics: voucher issuance, transfer outcomes and cellar
	// stock gauges collected periodically from the database.
	businessMetrics, err := telemetry.NewBusinessMetrics(telemetry.BusinessMetricsConfig{
		Meter:          meterProvider.Meter("vintrade-backend/business"),
		Logger:         log,
		CellarProvider: telemetry.NewGormCellarMetricsProvider(db.DB),
	})
	if err != nil {
		log.Fatal("Failed to initialize business metrics", zap.Error(err))
	}
	if meterProvider.IsEnabled() {
		businessMetrics.StartPeriodicCollection(context.Background(), 5*time.Minute)
		defer businessMetrics.Stop()
	}

	// Transfer expiration sweep: pending transfers past their deadline
	// are expired in the background; accept also checks lazily.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Transfer.SweepEnabled {
		go runTransferSweep(sweepCtx, transferExpiration, cfg.Transfer.CheckInterval, log)
		log.Info("Transfer expiration sweep started",
			zap.Duration("check_interval", cfg.Transfer.CheckInterval),
		)
	}

	// Initialize HTTP handlers
	allocationHandler := handler.NewAllocationHandler(allocationService)
	voucherHandler := handler.NewVoucherHandler(voucherService)
	inboundHandler := handler.NewInboundHandler(inboundService, manifestService)
	movementHandler := handler.NewMovementHandler(movementService)
	exceptionHandler := handler.NewExceptionHandler(exceptionService)
	shippingHandler := handler.NewShippingHandler(shippingService)
	outboxHandler := handler.NewOutboxHandler(outboxService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup validation
	middleware.SetupValidator()

	// Initialize router with custom middleware
	engine := gin.New()

	// Configure trusted proxies
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Apply middleware stack in order:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	// 7. RateLimit - Apply rate limiting (if enabled)
	// 8. Tracing/Metrics/Profiling - Telemetry per request
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Rate limiting (if enabled)
	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: meterProvider,
		ServiceName:   cfg.Telemetry.ServiceName,
		Enabled:       meterProvider.IsEnabled(),
	}))
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:   cfg.Telemetry.ProfilingEnabled,
		SkipPaths: []string{"/health", "/ready"},
	}))

	// Health and readiness endpoints (outside API versioning)
	engine.GET("/health", healthHandler(db, log))
	engine.GET("/ready", readyHandler(db))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Allocation ledger
	allocationRoutes := router.NewDomainGroup("allocation", "/allocations")
	allocationRoutes.POST("", allocationHandler.Create)
	allocationRoutes.GET("", allocationHandler.List)
	allocationRoutes.GET("/:id", allocationHandler.GetByID)
	allocationRoutes.POST("/:id/activate", allocationHandler.Activate)
	allocationRoutes.POST("/:id/close", allocationHandler.Close)
	allocationRoutes.GET("/:id/vouchers", voucherHandler.ListByAllocation)

	// Voucher registry, transfers and case entitlements
	tradingRoutes := router.NewDomainGroup("trading", "")
	tradingRoutes.POST("/vouchers", voucherHandler.Issue)
	tradingRoutes.GET("/vouchers/:id", voucherHandler.GetByID)
	tradingRoutes.GET("/vouchers/:id/history", voucherHandler.History)
	tradingRoutes.POST("/vouchers/:id/redeem", voucherHandler.Redeem)
	tradingRoutes.POST("/vouchers/:id/cancel", voucherHandler.Cancel)
	tradingRoutes.POST("/vouchers/:id/transfer", voucherHandler.Transfer)
	tradingRoutes.GET("/vouchers/:id/transfer", voucherHandler.GetPendingTransfer)
	tradingRoutes.POST("/vouchers/:id/flag", voucherHandler.Flag)
	tradingRoutes.DELETE("/vouchers/:id/flag", voucherHandler.ClearFlag)
	tradingRoutes.GET("/customers/:customer_id/vouchers", voucherHandler.ListByCustomer)
	tradingRoutes.GET("/transfers/:id", voucherHandler.GetTransfer)
	tradingRoutes.POST("/transfers/:id/accept", voucherHandler.AcceptTransfer)
	tradingRoutes.POST("/transfers/:id/cancel", voucherHandler.CancelTransfer)
	tradingRoutes.GET("/case-entitlements/:id", voucherHandler.GetCase)
	tradingRoutes.POST("/case-entitlements/:id/break", voucherHandler.BreakCase)

	// Cellar: inbound batches, serialization, movements, exceptions
	cellarRoutes := router.NewDomainGroup("cellar", "/cellar")
	cellarRoutes.POST("/batches", inboundHandler.RegisterBatch)
	cellarRoutes.POST("/batches/import", inboundHandler.ImportBatchManifest)
	cellarRoutes.GET("/batches/:id", inboundHandler.GetBatch)
	cellarRoutes.POST("/batches/:id/serialize", inboundHandler.SerializeBatch)
	cellarRoutes.POST("/batches/:id/serialize-manifest", inboundHandler.ImportSerialManifest)
	cellarRoutes.POST("/bottles/:id/correct-serial", inboundHandler.CorrectSerialization)
	cellarRoutes.POST("/movements", movementHandler.Record)
	cellarRoutes.GET("/movements", movementHandler.List)
	cellarRoutes.POST("/exceptions", exceptionHandler.Raise)
	cellarRoutes.GET("/exceptions", exceptionHandler.ListOpen)
	cellarRoutes.GET("/exceptions/:id", exceptionHandler.GetByID)
	cellarRoutes.POST("/exceptions/:id/resolve", exceptionHandler.Resolve)

	// Fulfilment: shipping orders, line binding, shipping exceptions
	fulfillmentRoutes := router.NewDomainGroup("fulfillment", "")
	fulfillmentRoutes.POST("/shipping-orders", shippingHandler.CreateOrder)
	fulfillmentRoutes.GET("/shipping-orders/:id", shippingHandler.GetOrder)
	fulfillmentRoutes.GET("/customers/:customer_id/shipping-orders", shippingHandler.ListOrders)
	fulfillmentRoutes.POST("/shipping-lines/:id/validate", shippingHandler.ValidateLine)
	fulfillmentRoutes.POST("/shipping-lines/:id/early-bind", shippingHandler.EarlyBind)
	fulfillmentRoutes.POST("/shipping-lines/:id/bind", shippingHandler.LateBind)
	fulfillmentRoutes.POST("/shipping-lines/:id/confirm-pick", shippingHandler.ConfirmPick)
	fulfillmentRoutes.POST("/shipping-lines/:id/ship", shippingHandler.ShipLine)
	fulfillmentRoutes.POST("/shipping-lines/:id/cancel", shippingHandler.CancelLine)
	fulfillmentRoutes.GET("/shipping-exceptions", shippingHandler.ListOpenExceptions)
	fulfillmentRoutes.POST("/shipping-exceptions/:id/resolve", shippingHandler.ResolveException)

	// System: info, ping and outbox inspection
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)
	systemRoutes.GET("/outbox/stats", outboxHandler.GetStats)
	systemRoutes.GET("/outbox/dead", outboxHandler.GetDeadLetterEntries)
	systemRoutes.POST("/outbox/dead/retry-all", outboxHandler.RetryAllDeadEntries)
	systemRoutes.GET("/outbox/:id", outboxHandler.GetEntry)
	systemRoutes.POST("/outbox/:id/retry", outboxHandler.RetryDeadEntry)

	r.Register(allocationRoutes).
		Register(tradingRoutes).
		Register(cellarRoutes).
		Register(fulfillmentRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Also keep a simple ping at root API level for basic health checks
	engine.GET("/api/v1/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// runTransferSweep periodically expires overdue pending transfers until
// the context is cancelled.
func runTransferSweep(ctx context.Context, svc *tradingapp.TransferExpirationService, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats, err := svc.ExpireOverdueTransfers(ctx)
			if err != nil {
				log.Error("Transfer expiration sweep failed", zap.Error(err))
				continue
			}
			if stats.TotalExpired > 0 {
				log.Info("Expired overdue transfers", zap.Int("count", stats.TotalExpired))
			}
		}
	}
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

// readyHandler reports whether the service can accept traffic.
func readyHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"ready": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ready": true})
	}
}
