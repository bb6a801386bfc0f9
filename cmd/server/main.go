// cmd/server/main.go
package main

import (
	"log"
	"strconv"

	"github.com/redjkee/transport-analytics/internal/api/handlers"
	"github.com/redjkee/transport-analytics/internal/api/middleware"
	"github.com/redjkee/transport-analytics/internal/api/responses"
	"github.com/redjkee/transport-analytics/internal/config"
	"github.com/redjkee/transport-analytics/internal/core/invoice"
	"github.com/redjkee/transport-analytics/internal/logger"
	"github.com/redjkee/transport-analytics/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Не удалось загрузить конфигурацию: ", err)
	}

	zl, err := logger.New(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		log.Fatal("Не удалось запустить логгер: ", err)
	}
	defer zl.Sync()
	responses.InitLogger(zl)

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		zl.Fatal("failed to register metrics", zap.Error(err))
	}

	invoiceService := invoice.NewService(zl, invoice.Options{
		Workers:      cfg.Workers,
		MaxEmptyRows: cfg.MaxEmptyRows,
		MaxScanRows:  cfg.MaxScanRows,
		Observer:     collector,
	})
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService, zl, cfg.Server.MaxUploadBytes())

	router := gin.Default()
	router.Use(middleware.RequestID())

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/process-invoices", invoiceHandler.HandleProcessInvoices)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "UP", "service": "invoice-service"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	port := strconv.Itoa(cfg.Server.Port)
	zl.Info("invoice service listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		zl.Fatal("failed to start invoice service", zap.Error(err))
	}
}
