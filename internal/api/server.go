package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"nutriplan/internal/logger"
)

// NewRouter builds the gin engine with middleware and all routes registered.
func NewRouter(jwtSecret string, handler *MealPlanHandler, log *logger.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(cors.Default())
	router.Use(requestLog(log))

	router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	v1 := router.Group("/api/v1")
	v1.Use(RequireAuth(jwtSecret))
	{
		v1.POST("/mealplan/generate", handler.Generate)
		v1.GET("/mealplan", handler.GetWeekPlan)
		v1.PUT("/mealplan/meal", handler.ChangeMeal)
		v1.GET("/usage", handler.Usage)
	}

	return router
}

func requestLog(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"requestId", c.GetString("requestID"),
		)
	}
}
