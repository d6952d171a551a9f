package routes

import (
	"github.com/Scalium-Tech/aligned/internal/api/handlers"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type DashboardRoutes struct {
	handler   *handlers.DashboardHandler
	jwtSecret string
}

func NewDashboardRoutes(handler *handlers.DashboardHandler, jwtSecret string) *DashboardRoutes {
	return &DashboardRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers the dashboard snapshot and insight routes
func (r *DashboardRoutes) RegisterRoutes(router *gin.Engine) {
	dashboard := router.Group("/api/dashboard")
	dashboard.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	dashboard.GET("", r.handler.GetDashboard)
	dashboard.GET("/insight", r.handler.GetInsight)
}
