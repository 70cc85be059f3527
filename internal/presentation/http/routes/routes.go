package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jkorir-dev/duka-pos/internal/config"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/handler"
	"github.com/jkorir-dev/duka-pos/internal/presentation/http/middleware"
	"github.com/jkorir-dev/duka-pos/pkg/utils"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth    *handler.AuthHandler
	Catalog *handler.CatalogHandler
	Billing *handler.BillingHandler
	Ledger  *handler.LedgerHandler
	User    *handler.UserHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager *utils.JWTManager
	Cfg        *config.Config
	Log        *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Log))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// The login endpoint is the only public route
		v1.POST("/auth/login", h.Auth.Login)

		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: float64(deps.Cfg.RateLimit.Requests) / float64(deps.Cfg.RateLimit.Duration),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers) {
	// Active bill session
	bill := protected.Group("/bill")
	{
		bill.GET("", h.Billing.Get)
		bill.POST("/lines", h.Billing.AddLine)
		bill.POST("/scan", h.Billing.Scan)
		bill.DELETE("/lines/:index", h.Billing.RemoveLine)
		bill.POST("/checkout", h.Billing.Checkout)
		bill.POST("/new", h.Billing.NewBill)
	}

	// Catalog: reads for any operator, stock edits for admin only
	catalog := protected.Group("/catalog")
	{
		catalog.GET("", h.Catalog.List)
		catalog.GET("/barcode/:code", h.Catalog.GetByBarcode)
		catalog.GET("/:name", h.Catalog.Get)

		admin := catalog.Group("")
		admin.Use(middleware.RequireAdmin())
		{
			admin.PUT("", h.Catalog.Upsert)
			admin.POST("/save", h.Catalog.Save)
			admin.POST("/reload", h.Catalog.Reload)
		}
	}

	// Bill history
	bills := protected.Group("/bills")
	{
		bills.GET("", h.Ledger.List)
		bills.GET("/total", h.Ledger.Total)
		bills.POST("/save", h.Ledger.Save)
		bills.POST("/reload", h.Ledger.Reload)
	}

	// User management (admin only)
	users := protected.Group("/users")
	users.Use(middleware.RequireAdmin())
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.DELETE("/:username", h.User.Delete)
		users.PUT("/:username/password", h.User.ChangePassword)
	}
}
