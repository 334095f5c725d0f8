package router

import (
	"net/http"

	"github.com/firf18/red-salud-sub010/internal/infrastructure/logger"
	"github.com/firf18/red-salud-sub010/internal/infrastructure/metrics"
	"github.com/firf18/red-salud-sub010/internal/interfaces/http/handler"
	"github.com/firf18/red-salud-sub010/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers the router wires up
type Handlers struct {
	Inventory  *handler.InventoryHandler
	Receiving  *handler.ReceivingHandler
	Purchasing *handler.PurchasingHandler
	Report     *handler.ReportHandler
}

// New builds the gin engine with all middleware and routes registered
func New(log *zap.Logger, m *metrics.Metrics, h Handlers, environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(
		logger.Recovery(log),
		logger.GinMiddleware(log),
		middleware.Metrics(m),
	)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := engine.Group("/api/v1")

	inv := v1.Group("/inventory")
	{
		inv.POST("/purchases", h.Inventory.RecordPurchase)
		inv.POST("/sales", h.Inventory.RecordSale)
		inv.POST("/layers/:id/approve", h.Inventory.ApproveLayer)
		inv.GET("/products/:productId/pricing", h.Inventory.GetPricing)
		inv.GET("/products/:productId/statistics", h.Inventory.GetStatistics)
		inv.GET("/products/:productId/layers", h.Inventory.ListLayers)
		inv.GET("/consumptions", h.Inventory.ListConsumptions)
	}

	rcv := v1.Group("/receiving")
	{
		rcv.POST("/sessions", h.Receiving.StartSession)
		rcv.GET("/sessions", h.Receiving.ListActiveSessions)
		rcv.GET("/sessions/:id", h.Receiving.GetSession)
		rcv.POST("/sessions/:id/counts", h.Receiving.CountItem)
		rcv.POST("/sessions/:id/complete", h.Receiving.CompleteSession)
	}

	pur := v1.Group("/purchasing")
	{
		pur.POST("/comparisons", h.Purchasing.ComparePrices)
		pur.POST("/recommendations", h.Purchasing.Recommendations)
	}

	rep := v1.Group("/reports")
	{
		rep.GET("/sales-book", h.Report.SalesBook)
		rep.GET("/sales-book/export", h.Report.ExportSalesBook)
		rep.GET("/purchase-book", h.Report.PurchaseBook)
		rep.GET("/purchase-book/export", h.Report.ExportPurchaseBook)
	}

	return engine
}
