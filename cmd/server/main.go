package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/florashop/flora-backend/config"
	"github.com/florashop/flora-backend/internal/app/controller"
	"github.com/florashop/flora-backend/internal/app/repository"
	"github.com/florashop/flora-backend/internal/app/service"
	"github.com/florashop/flora-backend/internal/db"
	"github.com/florashop/flora-backend/internal/middleware"
	"github.com/florashop/flora-backend/internal/router"
	"github.com/florashop/flora-backend/internal/scheduler"
	"github.com/florashop/flora-backend/internal/storage"
	"github.com/florashop/flora-backend/pkg/logger"
	"github.com/florashop/flora-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      "console", // Use "json" for production
		EnableColor: true,
	})

	logger.Info("Starting Flora Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	// Run migrations
	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	// Bootstrap the back-office account when configured
	if err := db.SeedAdminUser(&cfg.Admin); err != nil {
		logger.Warn("Failed to seed admin user", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Token blacklist store (optional)
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Failed to connect to redis, token blacklist inactive", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()

	// Media host for uploaded product images
	mediaStorage := storage.NewMediaStorage(
		cfg.Media.Region,
		cfg.Media.Bucket,
		cfg.Media.AccessKeyID,
		cfg.Media.SecretAccessKey,
		cfg.Media.BaseURL,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	imageRepo := repository.NewProductImageRepository(db.GetDB())
	discountRepo := repository.NewDiscountRepository(db.GetDB())
	voucherRepo := repository.NewVoucherRepository(db.GetDB())
	cartRepo := repository.NewCartRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	contactRepo := repository.NewContactRepository(db.GetDB())
	analyticsRepo := repository.NewAnalyticsRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, cfg.Media.BaseURL)
	cartService := service.NewCartService(cartRepo, productRepo, cfg.Media.BaseURL)
	orderService := service.NewOrderService(orderRepo, productRepo)
	contactService := service.NewContactService(contactRepo)
	adminService := service.NewAdminService(
		productRepo,
		categoryRepo,
		imageRepo,
		discountRepo,
		voucherRepo,
		cartRepo,
		orderRepo,
		contactRepo,
		cfg.Media.BaseURL,
	)
	analyticsService := service.NewAnalyticsService(orderRepo, userRepo, analyticsRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	catalogController := controller.NewCatalogController(catalogService)
	cartController := controller.NewCartController(cartService)
	orderController := controller.NewOrderController(orderService, catalogService)
	contactController := controller.NewContactController(contactService)
	adminController := controller.NewAdminController(adminService, analyticsService, mediaStorage)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Setup router
	r := router.NewRouter(
		authController,
		catalogController,
		cartController,
		orderController,
		contactController,
		adminController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

	// Hourly analytics snapshot refresh
	analyticsScheduler := scheduler.NewAnalyticsScheduler(analyticsService)
	if err := analyticsScheduler.Start(); err != nil {
		logger.Warn("Failed to start analytics scheduler", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer analyticsScheduler.Stop()

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server started successfully", map[string]interface{}{
			"address": addr,
			"pid":     os.Getpid(),
		})
		if err := engine.Run(addr); err != nil {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")
	logger.Info("Server stopped successfully")
}
