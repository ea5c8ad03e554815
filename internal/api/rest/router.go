package rest

import (
	"net/http"
	"strconv"

	"ai-accountant/internal/logger"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupCommonEndpoints добавляет общие endpoints (health, events, stats) к роутеру
func SetupCommonEndpoints(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/api/v1/events", func(c *gin.Context) {
		limit := 100
		if limitStr := c.Query("limit"); limitStr != "" {
			if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
				limit = parsed
			}
		}
		events := logger.GetEvents(limit)
		c.JSON(http.StatusOK, gin.H{"events": events})
	})

	router.GET("/api/v1/stats", func(c *gin.Context) {
		stats := logger.GetStats()
		c.JSON(http.StatusOK, stats)
	})
}

// RegisterRoutes регистрирует маршруты API в группе /api/v1
func RegisterRoutes(router *gin.Engine, handlers *Handlers) {
	api := router.Group("/api/v1")
	{
		api.POST("/files", handlers.UploadFile)
		api.GET("/files", handlers.ListFiles)
		api.GET("/files/generate", handlers.GenerateBatch)
		api.GET("/files/:id", handlers.GetFile)
		api.GET("/files/:id/summary", handlers.GetFileSummary)
		api.GET("/anomalies/stats", handlers.GetAnomalyStats)
		api.GET("/accounts", handlers.GetAccounts)
		api.GET("/liveness", handlers.GetLiveness)
	}
}

// SetupRouter настраивает маршруты REST API
func SetupRouter(handlers *Handlers) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())

	// CORS middleware
	router.Use(CORSMiddleware())

	// Каждый запрос продлевает сессию в трекере активности
	router.Use(SessionMiddleware(handlers.tracker))
	router.Use(RequestLoggerMiddleware())

	// Swagger UI
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	RegisterRoutes(router, handlers)

	// Общие endpoints (health, events, stats)
	SetupCommonEndpoints(router)

	return router
}
