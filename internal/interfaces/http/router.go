// Package http serves the analysis API with gin.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/Jyotish-Intelligence/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/Jyotish-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/Jyotish-Intelligence/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and middleware dependencies of the
// route tree.  Nil handlers leave their routes unmounted.
type RouterConfig struct {
	AnalysisHandler *handlers.AnalysisHandler
	HealthHandler   *handlers.HealthHandler

	Logger           logging.Logger
	Metrics          *prometheus.AppMetrics
	MetricsCollector prometheus.MetricsCollector
	MetricsPath      string

	CORS        *middleware.CORSConfig
	Logging     middleware.LoggingConfig
	MaxBodySize int64
}

// NewRouter builds the gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = logging.NewNopLogger()
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	if cfg.CORS != nil {
		r.Use(middleware.CORS(*cfg.CORS))
	}
	r.Use(middleware.RequestLogging(cfg.Logger.Named("http"), cfg.Logging))
	r.Use(middleware.Metrics(cfg.Metrics))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, handlers.ErrorResponse{
			Code:      "NOT_FOUND",
			Message:   "route not found",
			RequestID: middleware.GetRequestID(c),
		})
	})

	if h := cfg.HealthHandler; h != nil {
		r.GET("/healthz", h.Liveness)
		r.GET("/readyz", h.Readiness)
	}
	if cfg.MetricsCollector != nil {
		r.GET(cfg.MetricsPath, gin.WrapH(cfg.MetricsCollector.Handler()))
	}

	api := r.Group("/api/v1")
	api.Use(middleware.BodyLimit(cfg.MaxBodySize))
	registerAnalysisRoutes(api, cfg.AnalysisHandler)

	return r
}

func registerAnalysisRoutes(r *gin.RouterGroup, h *handlers.AnalysisHandler) {
	if h == nil {
		return
	}
	r.POST("/analysis", h.Analyze)
	r.POST("/houses", h.Houses)
	r.GET("/houses/:sign", h.HouseOf)
	r.POST("/dasha/active", h.ActiveDasha)
}

//Personal.AI order the ending
