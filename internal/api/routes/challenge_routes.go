package routes

import (
	"github.com/Scalium-Tech/aligned/internal/api/handlers"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type ChallengeRoutes struct {
	handler   *handlers.ChallengeHandler
	jwtSecret string
}

func NewChallengeRoutes(handler *handlers.ChallengeHandler, jwtSecret string) *ChallengeRoutes {
	return &ChallengeRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers challenge and badge routes
func (r *ChallengeRoutes) RegisterRoutes(router *gin.Engine) {
	challenges := router.Group("/api/challenges")
	challenges.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	challenges.GET("", r.handler.ListChallenges)
	challenges.POST("", r.handler.CreateChallenge)
	challenges.GET("/:id", r.handler.GetChallenge)
	challenges.POST("/:id/checkin", r.handler.CheckIn)

	badges := router.Group("/api/badges")
	badges.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	badges.GET("", r.handler.ListBadges)
	badges.POST("/check", r.handler.CheckBadges)
}
