package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jkorir-dev/duka-pos/internal/application/service"
	"github.com/jkorir-dev/duka-pos/internal/config"
	"github.com/jkorir-dev/duka-pos/internal/infrastructure/database"
	"github.com/jkorir-dev/duka-pos/internal/infrastructure/repository"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/handler"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/routes"
	"github.com/jkorir-dev/duka-pos/pkg/logger"
	"github.com/jkorir-dev/duka-pos/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zlog := logger.Must(logger.New(cfg.App.Env))
	defer zlog.Sync()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Open the register database
	db, err := database.NewSQLiteDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize persistence gateways
	catalogRepo := repository.NewCatalogRepository(db)
	userRepo := repository.NewUserRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)

	// Initialize services
	catalogService := service.NewCatalogService(catalogRepo, zlog)
	authService := service.NewAuthService(userRepo, jwtManager, zlog)
	ledgerService := service.NewLedgerService(receiptRepo, zlog)
	billingService := service.NewBillingService(catalogService, ledgerService, zlog)

	// Load persisted aggregates; each falls back to defaults when absent
	ctx := context.Background()
	if err := catalogService.Reload(ctx); err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	if err := authService.Load(ctx); err != nil {
		log.Fatalf("Failed to load user directory: %v", err)
	}
	if err := ledgerService.Reload(ctx); err != nil {
		log.Fatalf("Failed to load bill history: %v", err)
	}

	created, err := authService.BootstrapIfEmpty(ctx)
	if err != nil {
		zlog.Warn("bootstrap admin created but directory save failed", zap.Error(err))
	}
	if created {
		zlog.Info("no users found, default admin account created; change the password after login",
			zap.String("username", service.DefaultAdminUsername),
			zap.String("password", service.DefaultAdminPassword),
		)
	}

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Catalog: handler.NewCatalogHandler(catalogService),
		Billing: handler.NewBillingHandler(billingService),
		Ledger:  handler.NewLedgerHandler(ledgerService),
		User:    handler.NewUserHandler(authService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Log:        zlog,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	zlog.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env),
	)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
