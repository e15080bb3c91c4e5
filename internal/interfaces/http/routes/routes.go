// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/config"
	domainsync "github.com/your-org/pos-backend/internal/domain/sync"
	"github.com/your-org/pos-backend/internal/interfaces/http/handlers"
	"github.com/your-org/pos-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every endpoint group under the API root
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, notifier *domainsync.Notifier, queue *domainsync.Queue) {
	SetupAuthRoutes(rg, db, cfg)
	SetupCatalogRoutes(rg, db, cfg)
	SetupCustomerRoutes(rg, db, cfg)
	SetupCartRoutes(rg, db, redisClient, cfg)
	SetupSaleRoutes(rg, db, redisClient, cfg, notifier)
	SetupSyncRoutes(rg, db, cfg, notifier, queue)
	SetupSettingsRoutes(rg, db, cfg)
	SetupAdminRoutes(rg, db, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
		}
	}
}

// SetupCatalogRoutes sets up product catalog routes. Everything behind the
// shift token: the terminal has no anonymous callers.
func SetupCatalogRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)

	products := rg.Group("/products")
	products.Use(middleware.AuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/low-stock", productHandler.GetLowStock)
		products.GET("/near-expiry", productHandler.GetNearExpiry)
		products.GET("/barcode/:barcode", productHandler.GetProductByBarcode)
		products.GET("/:id", productHandler.GetProduct)
	}
}

// SetupCustomerRoutes sets up customer ledger routes
func SetupCustomerRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	customerHandler := handlers.NewCustomerHandler(db, cfg)

	customers := rg.Group("/customers")
	customers.Use(middleware.AuthMiddleware(cfg))
	{
		customers.GET("", customerHandler.ListCustomers)
		customers.POST("", customerHandler.CreateCustomer)
		customers.GET("/:id", customerHandler.GetCustomer)
	}
}

// SetupCartRoutes sets up ticket-in-progress routes
func SetupCartRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config) {
	cartHandler := handlers.NewCartHandler(db, redisClient, cfg)

	cart := rg.Group("/cart")
	cart.Use(middleware.AuthMiddleware(cfg))
	{
		cart.GET("", cartHandler.GetCart)
		cart.POST("/items", cartHandler.AddItem)
		cart.PUT("/items/:id", cartHandler.SetQuantity)
		cart.DELETE("/items/:id", cartHandler.RemoveItem)
		cart.DELETE("", cartHandler.ClearCart)
	}
}

// SetupSaleRoutes sets up finalized ticket routes
func SetupSaleRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, notifier *domainsync.Notifier) {
	saleHandler := handlers.NewSaleHandler(db, redisClient, cfg, notifier)

	sales := rg.Group("/sales")
	sales.Use(middleware.AuthMiddleware(cfg))
	{
		sales.POST("", saleHandler.Finalize)
		sales.GET("", saleHandler.ListSales)
		sales.GET("/export", saleHandler.ExportSales)
		sales.GET("/last-receipt", saleHandler.GetLastReceipt)
		sales.GET("/:id", saleHandler.GetSale)
		sales.GET("/:id/receipt", saleHandler.GetReceipt)
	}
}

// SetupSyncRoutes sets up connectivity and reconciliation routes
func SetupSyncRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config, notifier *domainsync.Notifier, queue *domainsync.Queue) {
	syncHandler := handlers.NewSyncHandler(db, notifier, queue, cfg)

	sync := rg.Group("/sync")
	sync.Use(middleware.AuthMiddleware(cfg))
	{
		sync.GET("/status", syncHandler.GetStatus)
		sync.PUT("/connectivity", syncHandler.SetConnectivity)
		sync.POST("", syncHandler.TriggerSync)
	}
}

// SetupSettingsRoutes sets up read access to store settings
func SetupSettingsRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	settingsHandler := handlers.NewSettingsHandler(db, cfg)

	settings := rg.Group("/settings")
	settings.Use(middleware.AuthMiddleware(cfg))
	{
		settings.GET("", settingsHandler.GetSettings)
	}
}

// SetupAdminRoutes sets up admin related routes
func SetupAdminRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(db, cfg)
	settingsHandler := handlers.NewSettingsHandler(db, cfg)

	admin := rg.Group("/admin")
	admin.Use(middleware.AuthMiddleware(cfg))
	admin.Use(middleware.AdminMiddleware())
	{
		// Catalog management
		products := admin.Group("/products")
		{
			products.POST("", productHandler.CreateProduct)
			products.PUT("/:id", productHandler.UpdateProduct)
			products.POST("/:id/stock", productHandler.AdjustStock)
			products.DELETE("/:id", productHandler.DeleteProduct)
		}

		// Account management
		users := admin.Group("/users")
		{
			users.GET("", authHandler.ListUsers)
			users.POST("", authHandler.CreateUser)
			users.DELETE("/:id", authHandler.DeactivateUser)
		}

		// Store settings
		admin.PUT("/settings", settingsHandler.UpdateSettings)
	}
}
