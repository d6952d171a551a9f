package handlers

import (
	"net/http"

	"github.com/Scalium-Tech/aligned/internal/api/dto"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/Scalium-Tech/aligned/internal/domain/notification"
	"github.com/gin-gonic/gin"
)

// NotificationHandler handles daily reminder schedule endpoints
type NotificationHandler struct {
	service notification.Service
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(service notification.Service) *NotificationHandler {
	return &NotificationHandler{service: service}
}

// GetSchedule returns the user's reminder schedule
func (h *NotificationHandler) GetSchedule(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	s := h.service.GetSchedule(userID.String())
	c.JSON(http.StatusOK, gin.H{"data": dto.ScheduleResponse{
		Enabled: s.Enabled,
		Hour:    s.Hour,
		Minute:  s.Minute,
		Message: s.Message,
	}})
}

// SetSchedule replaces the user's reminder schedule
func (h *NotificationHandler) SetSchedule(c *gin.Context) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	h.service.SetSchedule(userID.String(), notification.Schedule{
		Enabled: req.Enabled,
		Hour:    req.Hour,
		Minute:  req.Minute,
		Message: req.Message,
	})

	c.JSON(http.StatusOK, gin.H{"message": "reminder schedule updated"})
}
