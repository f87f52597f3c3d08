package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/grandeclip/pickdrop-admin-backend/config"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/controller"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/repository"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/service"
	"github.com/grandeclip/pickdrop-admin-backend/internal/db"
	"github.com/grandeclip/pickdrop-admin-backend/internal/middleware"
	"github.com/grandeclip/pickdrop-admin-backend/internal/router"
	"github.com/grandeclip/pickdrop-admin-backend/internal/storage"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/github"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/logger"
	"github.com/grandeclip/pickdrop-admin-backend/pkg/redis"
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

	logger.Info("Starting PICKDROP Admin Backend", map[string]interface{}{
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

	// Seed base data (platforms)
	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis: 캐시 무효화 이력 저장소. 없어도 서비스는 뜬다.
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Warn("Redis unavailable, cache history disabled", map[string]interface{}{
			"error": err.Error(),
		})
	} else {
		defer redis.Close()
	}

	// Initialize repositories
	brandRepo := repository.NewBrandRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())
	productSetRepo := repository.NewProductSetRepository(db.GetDB())
	priceHistoryRepo := repository.NewPriceHistoryRepository(db.GetDB())
	homeRepo := repository.NewHomeCategoryOrderRepository(db.GetDB())

	// External clients
	imageStorage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)
	dispatcher, err := github.NewClient(github.Config{
		Token:    cfg.GitHub.Token,
		Owner:    cfg.GitHub.Owner,
		Repo:     cfg.GitHub.Repo,
		Workflow: cfg.GitHub.Workflow,
		Ref:      cfg.GitHub.Ref,
	})
	if err != nil {
		logger.Fatal("Failed to create github client", err)
	}

	// Initialize services
	authService := service.NewAuthService(cfg.Auth)
	categoryService := service.NewCategoryService(categoryRepo)
	homeService := service.NewHomeCategoryService(homeRepo, categoryRepo)
	brandService := service.NewBrandService(brandRepo)
	productService := service.NewProductService(
		productRepo,
		productSetRepo,
		priceHistoryRepo,
		categoryService,
		imageStorage,
	)
	productSetService := service.NewProductSetService(
		productSetRepo,
		productRepo,
		priceHistoryRepo,
		dispatcher,
		cfg.Catalog.DefaultPlatformID,
	)
	cacheService := service.NewCacheService(cfg.CacheProxy.TargetURL, redis.GetClient(), categoryRepo)

	// Initialize controllers
	authController := controller.NewAuthController(authService)
	categoryController := controller.NewCategoryController(categoryService)
	homeController := controller.NewHomeController(homeService)
	productController := controller.NewProductController(productService)
	brandController := controller.NewBrandController(brandService)
	productSetController := controller.NewProductSetController(productSetService, dispatcher)
	cacheController := controller.NewCacheController(cacheService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.Auth.JWTSecret)

	// Setup router
	r := router.NewRouter(
		authController,
		categoryController,
		homeController,
		productController,
		brandController,
		productSetController,
		cacheController,
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
