package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jengzang/evjourney-backend-go/internal/config"
	"github.com/jengzang/evjourney-backend-go/internal/handler"
	"github.com/jengzang/evjourney-backend-go/internal/metrics"
	"github.com/jengzang/evjourney-backend-go/internal/middleware"
	"github.com/jengzang/evjourney-backend-go/internal/service"
)

// Dependencies are the collaborators wired into the router
type Dependencies struct {
	Config      *config.Config
	Journeys    *service.JourneyService
	Annotations *service.AnnotationService
	Metrics     *metrics.Metrics
	RateLimiter *middleware.RateLimiter // nil disables rate limiting
}

// SetupRouter 设置路由
func SetupRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())

	// CORS 中间件
	corsConfig := cors.Config{
		AllowOrigins:  deps.Config.CORSAllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "EV Journey Backend API is running",
		})
	})
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	journeyHandler := handler.NewJourneyHandler(deps.Journeys, deps.Config.MaxUploadBytes())
	exportHandler := handler.NewExportHandler(deps.Journeys)
	annotationHandler := handler.NewAnnotationHandler(deps.Annotations)

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(deps.RateLimiter))
	{
		api.POST("/journeys/import", journeyHandler.Import)

		// 行程数据接口，需要会话令牌
		journeys := api.Group("/journeys", handler.RequireSession(deps.Journeys))
		{
			journeys.GET("/trips", journeyHandler.GetTrips)
			journeys.GET("/statistics", journeyHandler.GetStatistics)
			journeys.GET("/charts/:chart", journeyHandler.GetChart)
			journeys.GET("/bounds", journeyHandler.GetBounds)
			journeys.GET("/map", journeyHandler.GetMap)
			journeys.GET("/cost", journeyHandler.GetCost)
			journeys.GET("/export.csv", exportHandler.ExportCSV)
			journeys.GET("/export.pdf", exportHandler.ExportPDF)
		}

		// 行程备注与标签接口
		annotations := api.Group("/annotations")
		{
			annotations.GET("/tags", annotationHandler.GetTags)
			annotations.GET("/:fingerprint", annotationHandler.GetAnnotation)
			annotations.PUT("/:fingerprint", annotationHandler.PutAnnotation)
		}
	}

	return r
}
