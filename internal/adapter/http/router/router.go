package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/newsverdict/verdict/internal/adapter/http/handler"
	"github.com/newsverdict/verdict/internal/adapter/http/middleware"
	"github.com/newsverdict/verdict/internal/adapter/view"
	"github.com/newsverdict/verdict/internal/usecase"
)

// Dependencies groups what the router wires into its handlers.
// DB is nil when history is disabled.
type Dependencies struct {
	Verdict            usecase.VerdictUsecase
	DB                 *gorm.DB
	ClassifierEndpoint string
	Gatherer           prometheus.Gatherer
	Logger             *zap.Logger
}

// Setup creates and configures the Gin router
func Setup(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.SetHTMLTemplate(view.Templates())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(deps.Logger))
	router.Use(middleware.Recovery(deps.Logger))
	router.Use(middleware.CORS())

	// Health endpoints
	healthHandler := handler.NewHealthHandler(deps.DB, deps.ClassifierEndpoint)
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Prometheus metrics
	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	verdictHandler := handler.NewVerdictHandler(deps.Verdict)

	// Analyzer page
	router.GET("/", verdictHandler.Index)
	router.POST("/analyze", verdictHandler.AnalyzeForm)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.POST("/analyze", verdictHandler.Analyze)
		v1.GET("/analyses", verdictHandler.ListAnalyses)
	}

	return router
}
