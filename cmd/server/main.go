package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/adiprakosa/kasirpos/config"
	"github.com/adiprakosa/kasirpos/internal/app/controller"
	"github.com/adiprakosa/kasirpos/internal/app/repository"
	"github.com/adiprakosa/kasirpos/internal/app/service"
	"github.com/adiprakosa/kasirpos/internal/db"
	"github.com/adiprakosa/kasirpos/internal/middleware"
	"github.com/adiprakosa/kasirpos/internal/router"
	"github.com/adiprakosa/kasirpos/internal/scheduler"
	"github.com/adiprakosa/kasirpos/internal/storage"
	"github.com/adiprakosa/kasirpos/internal/websocket"
	"github.com/adiprakosa/kasirpos/pkg/logger"
	"github.com/adiprakosa/kasirpos/pkg/redis"
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

	logger.Info("Starting KasirPOS API Server", map[string]interface{}{
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

	// Token revocation needs Redis; logout degrades without it
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, logout revocation disabled", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	// Order feed hub
	hub := websocket.NewHub()
	go hub.Run()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	orderRepo := repository.NewOrderRepository(db.GetDB())
	paymentMethodRepo := repository.NewPaymentMethodRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(
		userRepo,
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)
	productService := service.NewProductService(productRepo, categoryRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	orderService := service.NewOrderService(db.GetDB(), orderRepo, productRepo, paymentMethodRepo, hub)
	paymentMethodService := service.NewPaymentMethodService(paymentMethodRepo)
	reportService := service.NewReportService(orderRepo)

	// Product image storage
	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	// Initialize controllers
	authController := controller.NewAuthController(authService, cfg.JWT.AccessTokenExpiry)
	productController := controller.NewProductController(productService)
	categoryController := controller.NewCategoryController(categoryService)
	orderController := controller.NewOrderController(orderService)
	paymentMethodController := controller.NewPaymentMethodController(paymentMethodService)
	reportController := controller.NewReportController(reportService)
	uploadController := controller.NewUploadController(s3Storage)
	orderFeedController := controller.NewOrderFeedController(hub)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)

	// Nightly sales summary
	reportScheduler := scheduler.NewSalesReportScheduler(reportService)
	if err := reportScheduler.Start(); err != nil {
		logger.Fatal("Failed to start sales report scheduler", err)
	}
	defer reportScheduler.Stop()

	// Setup router
	r := router.NewRouter(
		authController,
		productController,
		categoryController,
		orderController,
		paymentMethodController,
		reportController,
		uploadController,
		orderFeedController,
		authMiddleware,
		cfg,
	)
	engine := r.Setup()

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
