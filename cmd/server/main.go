package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backupapp "github.com/mls/backend/internal/application/backup"
	ledgerapp "github.com/mls/backend/internal/application/ledger"
	propertyapp "github.com/mls/backend/internal/application/property"
	tenancyapp "github.com/mls/backend/internal/application/tenancy"
	"github.com/mls/backend/internal/infrastructure/config"
	"github.com/mls/backend/internal/infrastructure/logger"
	"github.com/mls/backend/internal/infrastructure/persistence"
	"github.com/mls/backend/internal/infrastructure/storage"
	"github.com/mls/backend/internal/interfaces/http/handler"
	"github.com/mls/backend/internal/interfaces/http/middleware"
	"github.com/mls/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// version is overridden at build time via -ldflags
var version = "dev"

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

	log.Info("Starting MLS Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

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

	if err := persistence.AutoMigrate(db.DB); err != nil {
		log.Fatal("Failed to run schema migration", zap.Error(err))
	}

	// Initialize repositories
	landlordRepo := persistence.NewGormLandlordRepository(db.DB)
	managerRepo := persistence.NewGormManagerRepository(db.DB)
	flatRepo := persistence.NewGormFlatRepository(db.DB)
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	commRepo := persistence.NewGormCommunicationRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	adjustmentRepo := persistence.NewGormAdjustmentRepository(db.DB)
	chargeRepo := persistence.NewGormExtraChargeRepository(db.DB)
	expenseRepo := persistence.NewGormExpenseRepository(db.DB)
	backupLogRepo := persistence.NewGormBackupLogRepository(db.DB)

	// Initialize application services
	landlordService := propertyapp.NewLandlordService(landlordRepo, flatRepo)
	managerService := propertyapp.NewManagerService(managerRepo)
	flatService := propertyapp.NewFlatService(flatRepo, landlordRepo, managerRepo, tenantRepo)
	tenantService := tenancyapp.NewTenantService(db, tenantRepo, flatRepo, log)
	communicationService := tenancyapp.NewCommunicationService(commRepo, tenantRepo, tenancyapp.NewLogMailer(log), log)
	paymentService := ledgerapp.NewPaymentService(paymentRepo, tenantRepo, flatRepo)
	adjustmentService := ledgerapp.NewAdjustmentService(adjustmentRepo, paymentRepo, tenantRepo, flatRepo)
	chargeService := ledgerapp.NewExtraChargeService(chargeRepo, tenantRepo, flatRepo)
	expenseService := ledgerapp.NewExpenseService(expenseRepo, flatRepo)
	historyService := ledgerapp.NewHistoryService(
		paymentRepo, adjustmentRepo, chargeRepo,
		tenantRepo, flatRepo, landlordRepo, managerRepo, commRepo,
	)

	// Snapshot store for database backups. Falls back to an in-memory
	// store when object storage is not configured so the backup endpoints
	// stay usable in development.
	var snapshotStore backupapp.SnapshotStore
	if cfg.Backup.Enabled && cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3SnapshotStore(&cfg.Storage, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize snapshot store", zap.Error(err))
		}
		snapshotStore = s3Store
		log.Info("Snapshot store configured",
			zap.String("bucket", cfg.Storage.Bucket),
			zap.String("prefix", cfg.Storage.Prefix),
		)
	} else {
		snapshotStore = storage.NewMemorySnapshotStore()
		log.Warn("Object storage not configured, using in-memory snapshot store")
	}
	backupService := backupapp.NewService(db.FilePath, snapshotStore, backupLogRepo, cfg.Backup.RetainCount, log)

	// Configure gin
	switch cfg.App.Env {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Failed to set trusted proxies", zap.Error(err))
		}
	}

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}

	engine.Use(
		middleware.RequestID(),
		logger.AccessLog(log),
		logger.PanicRecovery(log),
		middleware.Secure(),
		middleware.CORSWithConfig(corsConfig),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	// Register routes
	router.NewRouter(engine).
		Register(handler.NewLandlordHandler(landlordService)).
		Register(handler.NewManagerHandler(managerService)).
		Register(handler.NewFlatHandler(flatService, paymentService, historyService)).
		Register(handler.NewTenantHandler(tenantService, historyService)).
		Register(handler.NewPaymentHandler(paymentService)).
		Register(handler.NewCommunicationHandler(communicationService)).
		Register(handler.NewAdjustmentHandler(adjustmentService, historyService)).
		Register(handler.NewExtraChargeHandler(chargeService)).
		Register(handler.NewExpenseHandler(expenseService)).
		Register(handler.NewSystemHandler(backupService, version)).
		Setup()

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
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exited")
}
