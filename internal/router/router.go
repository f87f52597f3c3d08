package router

import (
	"github.com/gin-gonic/gin"
	"github.com/grandeclip/pickdrop-admin-backend/config"
	"github.com/grandeclip/pickdrop-admin-backend/internal/app/controller"
	"github.com/grandeclip/pickdrop-admin-backend/internal/middleware"
)

type Router struct {
	authController       *controller.AuthController
	categoryController   *controller.CategoryController
	homeController       *controller.HomeController
	productController    *controller.ProductController
	brandController      *controller.BrandController
	productSetController *controller.ProductSetController
	cacheController      *controller.CacheController
	authMiddleware       *middleware.AuthMiddleware
	config               *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	categoryController *controller.CategoryController,
	homeController *controller.HomeController,
	productController *controller.ProductController,
	brandController *controller.BrandController,
	productSetController *controller.ProductSetController,
	cacheController *controller.CacheController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:       authController,
		categoryController:   categoryController,
		homeController:       homeController,
		productController:    productController,
		brandController:      brandController,
		productSetController: productSetController,
		cacheController:      cacheController,
		authMiddleware:       authMiddleware,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "PICKDROP ADMIN API is running",
		})
	})

	// 캐시 무효화 프록시. 사용법 안내는 열려 있고 실행은 인증 필요.
	cache := router.Group("/api/cache")
	{
		cache.GET("", r.cacheController.Usage)
		cache.POST("", r.authMiddleware.Authenticate(), r.cacheController.Invalidate)
		cache.GET("/history", r.authMiddleware.Authenticate(), r.cacheController.History)
	}

	// 크롤링 수동 실행
	router.POST("/api/trigger", r.authMiddleware.Authenticate(), r.productSetController.TriggerCrawl)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/google", r.authController.GoogleLogin)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
		}

		categories := v1.Group("/categories")
		categories.Use(r.authMiddleware.Authenticate())
		{
			categories.GET("", r.categoryController.ListCategories)
			categories.GET("/:id/hierarchy", r.categoryController.GetHierarchy)
			categories.POST("", r.categoryController.CreateCategory)
			categories.PUT("/:id", r.categoryController.UpdateCategory)
			categories.DELETE("/:id", r.categoryController.DeleteCategory)
		}

		home := v1.Group("/home-categories")
		home.Use(r.authMiddleware.Authenticate())
		{
			home.GET("", r.homeController.GetCurrent)
			home.GET("/versions", r.homeController.ListVersions)
			home.POST("", r.homeController.SaveVersion)
			home.POST("/versions/:version_id/rollback", r.homeController.Rollback)
		}

		products := v1.Group("/products")
		products.Use(r.authMiddleware.Authenticate())
		{
			products.GET("", r.productController.ListProducts)
			products.GET("/search", r.productController.SearchProducts)
			products.GET("/:id", r.productController.GetProduct)
			products.POST("", r.productController.CreateProduct)
			products.PUT("/bulk-category", r.productController.BulkAssignCategory)
			products.PUT("/:id", r.productController.UpdateProduct)
			products.DELETE("/:id", r.productController.DeleteProduct)

			products.POST("/:id/product-sets", r.productSetController.RegisterLinks)
		}

		brands := v1.Group("/brands")
		brands.Use(r.authMiddleware.Authenticate())
		{
			brands.GET("", r.brandController.ListBrands)
			brands.POST("", r.brandController.CreateBrand)
			brands.PUT("/:id", r.brandController.UpdateBrand)
			brands.DELETE("/:id", r.brandController.DeleteBrand)
		}

		productSets := v1.Group("/product-sets")
		productSets.Use(r.authMiddleware.Authenticate())
		{
			productSets.GET("/md-pick", r.productSetController.SearchMDPick)
			productSets.PUT("/:id/md-pick", r.productSetController.SetMDPick)
			productSets.POST("/:id/prices", r.productSetController.RecordPrice)
			productSets.DELETE("/:id", r.productSetController.DeleteProductSet)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
