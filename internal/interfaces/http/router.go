// Package http assembles the gin route tree and the HTTP server lifecycle.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/infrastructure/monitoring/logging"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/interfaces/http/handlers"
	"github.com/Trinity-SYT-SECURITY/NASA-2025-ALL/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handler and middleware dependencies for the
// route tree.  Nil handlers simply leave their route unregistered.
type RouterConfig struct {
	Predict    *handlers.PredictHandler
	Health     *handlers.HealthHandler
	Stats      *handlers.StatsHandler
	Exoplanets *handlers.ExoplanetsHandler

	AllowedOrigins []string
	MetricsEnabled bool
	MetricsPath    string

	Logger logging.Logger
}

// NewRouter constructs the complete route tree with global middleware.
func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger))
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	if cfg.Predict != nil {
		r.POST("/predict", cfg.Predict.Handle)
	}
	if cfg.Health != nil {
		r.GET("/health", cfg.Health.Handle)
	}
	if cfg.Stats != nil {
		r.GET("/stats", cfg.Stats.Handle)
	}
	if cfg.Exoplanets != nil {
		r.GET("/exoplanets", cfg.Exoplanets.Handle)
	}
	if cfg.MetricsEnabled {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.GET(path, gin.WrapH(promhttp.Handler()))
	}
	return r
}
