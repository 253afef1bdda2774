// Package server assembles the gin router: middleware chain, CORS, and the
// decision engine's route table.
package server

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/shemankubana/IncludEd/internal/config"
	"github.com/shemankubana/IncludEd/internal/handlers"
	"github.com/shemankubana/IncludEd/internal/middleware"
	"github.com/shemankubana/IncludEd/internal/platform/logger"
)

type RouterConfig struct {
	Log             *logger.Logger
	DecisionHandler *handlers.DecisionHandler
	HTTP            config.HTTPConfig
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	router.Use(middleware.Recover(cfg.Log))
	router.Use(middleware.RequestID())
	router.Use(middleware.AccessLog(cfg.Log))
	router.Use(middleware.MaxBytes(cfg.HTTP.MaxRequestBytes))
	router.Use(otelgin.Middleware("included-decision-engine"))

	allowOrigins := cfg.HTTP.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"*"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	h := cfg.DecisionHandler

	router.GET("/", h.Root)
	router.GET("/health", h.HealthCheck)
	router.GET("/model/info", h.ModelInfo)
	router.GET("/actions", h.ListActions)

	router.POST("/predict", h.Predict)
	router.POST("/predict/batch", h.PredictBatch)
	router.POST("/detect/struggle", h.DetectStruggle)
	router.POST("/reward", h.RecordReward)

	return router
}
