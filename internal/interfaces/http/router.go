// Package http assembles the gin router and HTTP server for the intake API.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/richlegrande-dot/care2connect-intake/internal/config"
	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/logging"
	"github.com/richlegrande-dot/care2connect-intake/internal/infrastructure/monitoring/prometheus"
	"github.com/richlegrande-dot/care2connect-intake/internal/intelligence/extraction"
	"github.com/richlegrande-dot/care2connect-intake/internal/interfaces/http/handlers"
	"github.com/richlegrande-dot/care2connect-intake/internal/interfaces/http/middleware"
)

// RouterDeps carries everything the router needs.
type RouterDeps struct {
	Engine    *extraction.Engine
	Logger    logging.Logger
	Metrics   *prometheus.ExtractionMetrics
	Collector prometheus.MetricsCollector
	Version   string
}

// NewRouter builds the full route table.
func NewRouter(cfg config.ServerConfig, deps RouterDeps) *gin.Engine {
	gin.SetMode(ginMode(cfg.Mode))

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.Logging(deps.Logger))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	health := handlers.NewHealthHandler(deps.Engine, deps.Version)
	r.GET("/healthz", health.Live)
	r.GET("/readyz", health.Ready)
	if deps.Collector != nil {
		r.GET("/metrics", gin.WrapH(deps.Collector.Handler()))
	}

	extractionHandler := handlers.NewExtractionHandler(deps.Engine, deps.Logger)
	v1 := r.Group("/api/v1")
	{
		v1.POST("/extractions", extractionHandler.Extract)
	}
	return r
}

func ginMode(mode string) string {
	switch mode {
	case "debug":
		return gin.DebugMode
	case "test":
		return gin.TestMode
	default:
		return gin.ReleaseMode
	}
}
