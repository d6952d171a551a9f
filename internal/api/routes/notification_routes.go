package routes

import (
	"github.com/Scalium-Tech/aligned/internal/api/handlers"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type NotificationRoutes struct {
	handler   *handlers.NotificationHandler
	jwtSecret string
}

func NewNotificationRoutes(handler *handlers.NotificationHandler, jwtSecret string) *NotificationRoutes {
	return &NotificationRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers reminder schedule routes
func (r *NotificationRoutes) RegisterRoutes(router *gin.Engine) {
	reminders := router.Group("/api/reminders")
	reminders.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	reminders.GET("", r.handler.GetSchedule)
	reminders.PUT("", r.handler.SetSchedule)
}
