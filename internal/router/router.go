package router

import (
	"github.com/adiprakosa/kasirpos/config"
	"github.com/adiprakosa/kasirpos/internal/app/controller"
	"github.com/adiprakosa/kasirpos/internal/app/model"
	"github.com/adiprakosa/kasirpos/internal/middleware"
	"github.com/gin-gonic/gin"
)

type Router struct {
	authController          *controller.AuthController
	productController       *controller.ProductController
	categoryController      *controller.CategoryController
	orderController         *controller.OrderController
	paymentMethodController *controller.PaymentMethodController
	reportController        *controller.ReportController
	uploadController        *controller.UploadController
	orderFeedController     *controller.OrderFeedController
	authMiddleware          *middleware.AuthMiddleware
	config                  *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	productController *controller.ProductController,
	categoryController *controller.CategoryController,
	orderController *controller.OrderController,
	paymentMethodController *controller.PaymentMethodController,
	reportController *controller.ReportController,
	uploadController *controller.UploadController,
	orderFeedController *controller.OrderFeedController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:          authController,
		productController:       productController,
		categoryController:      categoryController,
		orderController:         orderController,
		paymentMethodController: paymentMethodController,
		reportController:        reportController,
		uploadController:        uploadController,
		orderFeedController:     orderFeedController,
		authMiddleware:          authMiddleware,
		config:                  cfg,
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
			"message": "KasirPOS API is running",
		})
	})

	admin := string(model.RoleAdmin)
	cashier := string(model.RoleCashier)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.authController.Login)
			auth.POST("/logout", r.authMiddleware.Authenticate(), r.authController.Logout)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)
			auth.PUT("/me", r.authMiddleware.Authenticate(), r.authController.UpdateProfile)
		}

		products := v1.Group("/products")
		{
			products.GET("", r.productController.List)
			products.GET("/:id", r.productController.Get)

			products.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.productController.Create,
			)
			products.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.productController.Update,
			)
			products.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.productController.Delete,
			)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", r.categoryController.List)
			categories.GET("/:id", r.categoryController.Get)

			categories.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.categoryController.Create,
			)
			categories.PUT("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.categoryController.Update,
			)
			categories.DELETE("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.categoryController.Delete,
			)
		}

		orders := v1.Group("/orders")
		orders.Use(r.authMiddleware.Authenticate())
		{
			orders.POST("", r.orderController.Checkout)
			orders.GET("/mine", r.orderController.MyOrders)
			orders.GET("/:id", r.orderController.Get)
			orders.GET("",
				r.authMiddleware.RequireRole(admin, cashier),
				r.orderController.List,
			)
		}

		paymentMethods := v1.Group("/payment-methods")
		{
			paymentMethods.GET("", r.paymentMethodController.List)
			paymentMethods.POST("",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.paymentMethodController.Create,
			)
			paymentMethods.PATCH("/:id",
				r.authMiddleware.Authenticate(),
				r.authMiddleware.RequireRole(admin),
				r.paymentMethodController.SetEnabled,
			)
		}

		reports := v1.Group("/reports")
		reports.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(admin))
		{
			reports.GET("/sales/daily", r.reportController.DailySales)
			reports.GET("/sales/daily/export", r.reportController.ExportDailySales)
		}

		upload := v1.Group("/upload")
		upload.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(admin))
		{
			upload.POST("/image", r.uploadController.UploadImage)
		}

		ws := v1.Group("/ws")
		ws.Use(r.authMiddleware.Authenticate(), r.authMiddleware.RequireRole(admin, cashier))
		{
			ws.GET("/orders", r.orderFeedController.Connect)
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
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
