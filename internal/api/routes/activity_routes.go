package routes

import (
	"github.com/Scalium-Tech/aligned/internal/api/handlers"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type ActivityRoutes struct {
	handler   *handlers.ActivityHandler
	jwtSecret string
}

func NewActivityRoutes(handler *handlers.ActivityHandler, jwtSecret string) *ActivityRoutes {
	return &ActivityRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all activity ledger routes
func (r *ActivityRoutes) RegisterRoutes(router *gin.Engine) {
	activity := router.Group("/api/activity")
	activity.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	activity.GET("", r.handler.GetState)
	activity.GET("/score", r.handler.GetScore)

	activity.POST("/focus", r.handler.LogFocus)
	activity.POST("/task", r.handler.LogTask)
	activity.POST("/habit", r.handler.LogHabit)
	activity.POST("/mood", r.handler.LogMood)

	activity.POST("/migrate", r.handler.Migrate)
}
