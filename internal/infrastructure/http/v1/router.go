// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"shopinvoice/internal/domain/invoice"
	"shopinvoice/internal/infrastructure/http/v1/handlers"
	"shopinvoice/internal/infrastructure/http/v1/middleware"
	"shopinvoice/internal/infrastructure/storage/postgres"
	"shopinvoice/pkg/logger"
)

// RouterConfig holds router configuration.
type RouterConfig struct {
	// Pool is the database connection pool (for health checks).
	Pool *postgres.Pool

	// Logger for request logging.
	Logger *logger.Logger

	// InvoiceManager drives the invoice lifecycle.
	InvoiceManager *invoice.Manager
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())

	// Health endpoints
	healthHandler := handlers.NewHealthHandler(cfg.Pool)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}
	router.GET("/healthz", healthHandler.Live)

	base := handlers.NewBaseHandler()
	invoiceHandler := handlers.NewInvoiceHandler(base, cfg.InvoiceManager)

	// API v1
	v1 := router.Group("/api/v1")
	{
		invoices := v1.Group("/invoices")
		{
			invoices.POST("", invoiceHandler.Create)
			invoices.POST("/lookup", invoiceHandler.Lookup)
			invoices.GET("/:id", invoiceHandler.GetByID)
			invoices.GET("/:id/document", invoiceHandler.Document)
			invoices.PUT("/:id/paid", invoiceHandler.SetPaid)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("/:orderId/invoices", invoiceHandler.ListByOrder)
			orders.GET("/:orderId/invoices/latest", invoiceHandler.LatestByOrder)
		}
	}

	return router
}
