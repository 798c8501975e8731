// router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhiraj070/RuleMind/controller"
	"github.com/abhiraj070/RuleMind/metrics"
	"github.com/abhiraj070/RuleMind/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	collector *metrics.MetricsCollector,
	limiter middleware.Limiter,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.ContextWithFallback = true
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(collector))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(collector.GetHandler()))

	api := router.Group("/api/v1")
	api.Use(middleware.RateLimiter(limiter, rateLimitRequests, rateLimitDuration))

	controllers.Rule.RegisterRoutes(api)
	controllers.Evaluation.RegisterRoutes(api)
	controllers.Audit.RegisterRoutes(api)
	controllers.Dashboard.RegisterRoutes(api)

	return router
}
