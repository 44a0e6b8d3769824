package router

import (
	"github.com/gin-gonic/gin"

	"github.com/florashop/flora-backend/config"
	"github.com/florashop/flora-backend/internal/app/controller"
	"github.com/florashop/flora-backend/internal/middleware"
)

type Router struct {
	authController    *controller.AuthController
	catalogController *controller.CatalogController
	cartController    *controller.CartController
	orderController   *controller.OrderController
	contactController *controller.ContactController
	adminController   *controller.AdminController
	authMiddleware    *middleware.AuthMiddleware
	config            *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	catalogController *controller.CatalogController,
	cartController *controller.CartController,
	orderController *controller.OrderController,
	contactController *controller.ContactController,
	adminController *controller.AdminController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:    authController,
		catalogController: catalogController,
		cartController:    cartController,
		orderController:   orderController,
		contactController: contactController,
		adminController:   adminController,
		authMiddleware:    authMiddleware,
		config:            cfg,
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
			"message": "Flora API is running",
		})
	})

	// Storefront
	router.GET("/", r.catalogController.Home)
	router.GET("/product_detail/:slug/", r.catalogController.ProductDetail)
	router.GET("/search-suggestions/", r.catalogController.SearchSuggestions)
	router.GET("/categories/", r.catalogController.ListCategories)
	router.GET("/about/", r.catalogController.About)
	router.GET("/contact/", r.contactController.Form)
	router.POST("/contact/", r.contactController.Submit)

	// Accounts
	router.POST("/signup/", r.authController.Signup)
	router.POST("/login/", r.authController.Login)
	router.POST("/logout/", r.authController.Logout)
	router.GET("/me", r.authMiddleware.Authenticate(), r.authController.Me)

	// Cart and orders require a session
	cart := router.Group("/cart")
	cart.Use(r.authMiddleware.Authenticate())
	{
		cart.GET("/", r.cartController.ViewCart)
		// Accepts GET and POST; the handler rejects everything else with 405.
		cart.Any("/add/", r.cartController.AddToCart)
		cart.DELETE("/:id", r.cartController.RemoveFromCart)
	}

	order := router.Group("/order")
	order.Use(r.authMiddleware.Authenticate())
	{
		order.GET("/:slug", r.orderController.OrderForm)
		order.POST("/:slug", r.orderController.PlaceOrder)
	}
	router.GET("/orders/", r.authMiddleware.Authenticate(), r.orderController.MyOrders)

	// Back-office
	admin := router.Group("/admin")
	admin.Use(r.authMiddleware.Authenticate())
	admin.Use(r.authMiddleware.RequireRole("admin"))
	{
		admin.GET("/products", r.adminController.ListProducts)
		admin.POST("/products", r.adminController.CreateProduct)
		admin.GET("/products/:id", r.adminController.GetProduct)
		admin.PUT("/products/:id", r.adminController.UpdateProduct)
		admin.DELETE("/products/:id", r.adminController.DeleteProduct)
		admin.GET("/products/:id/images", r.adminController.ListProductImages)

		admin.GET("/categories", r.adminController.ListCategories)
		admin.POST("/categories", r.adminController.CreateCategory)
		admin.PUT("/categories/:id", r.adminController.UpdateCategory)
		admin.DELETE("/categories/:id", r.adminController.DeleteCategory)

		admin.POST("/product-images", r.adminController.AddProductImage)
		admin.PUT("/product-images/:id", r.adminController.UpdateProductImage)
		admin.DELETE("/product-images/:id", r.adminController.DeleteProductImage)

		admin.GET("/discounts", r.adminController.ListDiscounts)
		admin.POST("/discounts", r.adminController.CreateDiscount)
		admin.PUT("/discounts/:id", r.adminController.UpdateDiscount)
		admin.DELETE("/discounts/:id", r.adminController.DeleteDiscount)

		admin.GET("/vouchers", r.adminController.ListVouchers)
		admin.POST("/vouchers", r.adminController.CreateVoucher)
		admin.PUT("/vouchers/:id", r.adminController.UpdateVoucher)
		admin.DELETE("/vouchers/:id", r.adminController.DeleteVoucher)

		admin.GET("/carts", r.adminController.ListCarts)
		admin.GET("/contacts", r.adminController.ListContacts)

		admin.GET("/orders", r.adminController.ListOrders)
		admin.PATCH("/orders/:id/status", r.adminController.UpdateOrderStatus)
		admin.GET("/orders/export", r.adminController.ExportOrders)

		admin.POST("/uploads/product-image", r.adminController.PresignProductImageUpload)

		admin.GET("/analytics/dashboard", r.adminController.AnalyticsDashboard)
		admin.POST("/analytics/refresh", r.adminController.RefreshAnalytics)
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
