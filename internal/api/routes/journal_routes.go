package routes

import (
	"github.com/Scalium-Tech/aligned/internal/api/handlers"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/gin-gonic/gin"
)

type JournalRoutes struct {
	handler   *handlers.JournalHandler
	jwtSecret string
}

func NewJournalRoutes(handler *handlers.JournalHandler, jwtSecret string) *JournalRoutes {
	return &JournalRoutes{
		handler:   handler,
		jwtSecret: jwtSecret,
	}
}

// RegisterRoutes registers all journal-related routes
func (r *JournalRoutes) RegisterRoutes(router *gin.Engine) {
	journal := router.Group("/api/journal")
	journal.Use(middleware.NewAuthMiddleware(r.jwtSecret))

	journal.GET("", r.handler.ListEntries)
	journal.POST("", r.handler.CreateEntry)
	journal.GET("/:id", r.handler.GetEntry)
	journal.DELETE("/:id", r.handler.DeleteEntry)
}
