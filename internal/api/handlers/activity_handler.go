package handlers

import (
	"net/http"

	"github.com/Scalium-Tech/aligned/internal/api/dto"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/Scalium-Tech/aligned/internal/domain/activity"
	"github.com/Scalium-Tech/aligned/internal/infrastructure/localstore"
	"github.com/gin-gonic/gin"
)

// ActivityHandler handles the daily activity ledger endpoints
type ActivityHandler struct {
	service  activity.Service
	migrator *localstore.Migrator
}

// NewActivityHandler creates a new ActivityHandler instance
func NewActivityHandler(service activity.Service, migrator *localstore.Migrator) *ActivityHandler {
	return &ActivityHandler{service: service, migrator: migrator}
}

// GetState returns the full activity ledger for the authenticated user
func (h *ActivityHandler) GetState(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": h.service.GetState(userID.String())})
}

// LogFocus records a finished focus session
func (h *ActivityHandler) LogFocus(c *gin.Context) {
	var req dto.LogFocusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	state := h.service.LogFocusSession(userID.String(), req.Minutes)
	c.JSON(http.StatusOK, gin.H{"data": state})
}

// LogTask records a completed task
func (h *ActivityHandler) LogTask(c *gin.Context) {
	var req dto.LogTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	state := h.service.LogTaskComplete(userID.String(), req.TotalTasksToday)
	c.JSON(http.StatusOK, gin.H{"data": state})
}

// LogHabit records a completed habit
func (h *ActivityHandler) LogHabit(c *gin.Context) {
	var req dto.LogHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	state := h.service.LogHabitComplete(userID.String(), req.TotalHabitsToday)
	c.JSON(http.StatusOK, gin.H{"data": state})
}

// LogMood records the day's mood check-in
func (h *ActivityHandler) LogMood(c *gin.Context) {
	var req dto.MoodCheckinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	mood := activity.Mood(req.Mood)
	switch mood {
	case activity.MoodGreat, activity.MoodOkay, activity.MoodLow:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid mood value"})
		return
	}

	var energy *activity.Energy
	if req.Energy != nil {
		e := activity.Energy(*req.Energy)
		switch e {
		case activity.EnergyHigh, activity.EnergyMedium, activity.EnergyLow:
			energy = &e
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid energy value"})
			return
		}
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	state := h.service.LogMoodCheckin(userID.String(), mood, energy)
	c.JSON(http.StatusOK, gin.H{"data": state})
}

// GetScore returns the identity score for today
func (h *ActivityHandler) GetScore(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": dto.ScoreResponse{
		IdentityScore: h.service.IdentityScore(userID.String()),
	}})
}

// Migrate copies the user's legacy storage keys into their namespaced form
func (h *ActivityHandler) Migrate(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	report := h.migrator.Migrate(userID.String())
	c.JSON(http.StatusOK, gin.H{"data": dto.MigrationResponse{
		Migrated:  report.Migrated,
		TotalKeys: report.TotalKeys,
	}})
}
