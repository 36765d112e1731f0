// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"shopadmin/internal/cache"
	"shopadmin/internal/config"
	"shopadmin/internal/database"
	"shopadmin/internal/handlers"
	"shopadmin/internal/middleware"
	"shopadmin/internal/repository"
	"shopadmin/internal/services"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Put the product catalog behind Redis when configured; everything keeps
	// working against the database when Redis is down or disabled.
	var products repository.ProductRepository = productRepo
	if cfg.Redis.Enabled {
		if rdb, err := cache.Connect(cfg.Redis); err != nil {
			logrus.WithError(err).Warn("Redis unavailable, product cache disabled")
		} else {
			products = cache.NewCachedProductRepository(productRepo, rdb)
		}
	}

	// Initialize services
	productService := services.NewProductService(products, categoryRepo)
	cartService := services.NewCartService(products, cartRepo)
	orderService := services.NewOrderService(orderRepo, products, userRepo)
	statisticsService := services.NewStatisticsService(orderRepo, products, userRepo, categoryRepo, reviewRepo)
	warehouseService := services.NewWarehouseService(products)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)

	// Initialize handlers
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	statisticsHandler := handlers.NewStatisticsHandler(statisticsService)
	warehouseHandler := handlers.NewWarehouseHandler(warehouseService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		dbStatus := "up"
		if err := database.HealthCheck(db); err != nil {
			status = http.StatusServiceUnavailable
			dbStatus = "down"
		}
		c.JSON(status, gin.H{
			"status":   "healthy",
			"database": dbStatus,
		})
	})

	// API routes
	api := r.Group("/api")
	{
		products := api.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.GET("/:id", categoryHandler.GetCategory)
			categories.POST("", categoryHandler.CreateCategory)
			categories.PUT("/:id", categoryHandler.UpdateCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", orderHandler.GetOrders)
			orders.GET("/top-products", orderHandler.GetTopProducts)
			orders.GET("/top-customers", orderHandler.GetTopCustomers)
			orders.GET("/user/:userId", orderHandler.GetUserOrders)
			orders.GET("/:id", orderHandler.GetOrder)
			orders.POST("", orderHandler.CreateOrder)
			orders.PUT("/:id", orderHandler.UpdateOrder)
			orders.DELETE("/:id", orderHandler.DeleteOrder)
		}

		users := api.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/:id", userHandler.GetUser)
			users.POST("", userHandler.CreateUser)
			users.PUT("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
		}

		cart := api.Group("/cart")
		{
			cart.GET("/:userId", cartHandler.GetCart)
			cart.POST("/:userId/items", cartHandler.AddItem)
			cart.PUT("/:userId/items/:productId", cartHandler.UpdateItem)
			cart.DELETE("/:userId/items/:productId", cartHandler.RemoveItem)
			cart.DELETE("/:userId", cartHandler.ClearCart)
		}

		statistics := api.Group("/statistics")
		{
			statistics.GET("/overview", statisticsHandler.GetOverview)
			statistics.GET("/orders", statisticsHandler.GetStatusBreakdown)
			statistics.GET("/revenue", statisticsHandler.GetRevenue)
			statistics.GET("/top-selling", statisticsHandler.GetTopSelling)
			statistics.GET("/top-rated", statisticsHandler.GetTopRated)
			statistics.GET("/categories", statisticsHandler.GetCategoryStats)
		}

		warehouse := api.Group("/warehouse")
		{
			warehouse.GET("/overview", warehouseHandler.GetOverview)
			warehouse.GET("/products", warehouseHandler.GetStockLevels)
			warehouse.GET("/low-stock", warehouseHandler.GetLowStock)
			warehouse.GET("/out-of-stock", warehouseHandler.GetOutOfStock)
			warehouse.PUT("/products/:id/stock", warehouseHandler.UpdateStock)
		}

		notifications := api.Group("/notifications")
		{
			notifications.POST("", notificationHandler.CreateNotification)
			notifications.GET("/user/:userId", notificationHandler.GetUserNotifications)
			notifications.GET("/user/:userId/unread-count", notificationHandler.GetUnreadCount)
			notifications.PUT("/user/:userId/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
			notifications.DELETE("/:id", notificationHandler.DeleteNotification)
		}
	}

	return r
}
