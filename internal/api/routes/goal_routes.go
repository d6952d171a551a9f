package routes

import (
	"github.com/Scalium-Tech/aligned/internal/api/handlers"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type GoalRoutes struct {
	handler   *handlers.GoalHandler
	jwtSecret string
}

func NewGoalRoutes(handler *handlers.GoalHandler, jwtSecret string) *GoalRoutes {
	return &GoalRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all goal-related routes
func (r *GoalRoutes) RegisterRoutes(router *gin.Engine) {
	goals := router.Group("/api/goals")
	goals.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	goals.GET("", r.handler.ListGoals)
	goals.POST("", r.handler.CreateGoal)
	goals.GET("/:id", r.handler.GetGoal)
	goals.PUT("/:id", r.handler.UpdateGoal)
	goals.PUT("/:id/progress", r.handler.UpdateProgress)
	goals.DELETE("/:id", r.handler.DeleteGoal)
}
