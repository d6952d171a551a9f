package routes

import (
	"github.com/Scalium-Tech/aligned/internal/api/handlers"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type AuthRoutes struct {
	handler   *handlers.AuthHandler
	jwtSecret string
}

func NewAuthRoutes(handler *handlers.AuthHandler, jwtSecret string) *AuthRoutes {
	return &AuthRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers registration, login, and profile routes
func (r *AuthRoutes) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")
	auth.POST("/register", r.handler.Register)
	auth.POST("/login", r.handler.Login)

	me := router.Group("/api/me")
	me.Use(middleware.NewAuthMiddleware(r.jwtSecret))
	me.GET("", r.handler.Me)
	me.POST("/onboarding/complete", r.handler.CompleteOnboarding)
}
