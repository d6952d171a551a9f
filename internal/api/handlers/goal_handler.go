package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Scalium-Tech/aligned/internal/api/dto"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/Scalium-Tech/aligned/internal/domain/goal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GoalHandler handles HTTP requests for goal operations
type GoalHandler struct {
	service goal.Service
}

// NewGoalHandler creates a new GoalHandler instance
func NewGoalHandler(service goal.Service) *GoalHandler {
	return &GoalHandler{service: service}
}

// CreateGoal creates a new goal for the authenticated user
func (h *GoalHandler) CreateGoal(c *gin.Context) {
	var req dto.CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	created, err := h.service.CreateGoal(c.Request.Context(), goal.CreateGoalInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TargetDate:  req.TargetDate,
		Milestones:  MilestonesToDomain(req.Milestones),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": GoalToResponse(created)})
}

// GetGoal returns a single goal by ID
func (h *GoalHandler) GetGoal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal ID"})
		return
	}

	g, err := h.service.GetGoal(c.Request.Context(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, goal.ErrGoalNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": GoalToResponse(g)})
}

// ListGoals returns a paginated list of the user's goals
func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	filter := goal.GoalFilter{
		UserID:     &userID,
		ActiveOnly: c.Query("active") == "true",
		Page:       page,
		PageSize:   pageSize,
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}

	goals, total, err := h.service.ListGoals(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := dto.GoalListResponse{
		Goals:      make([]dto.GoalResponse, 0, len(goals)),
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}
	for i := range goals {
		resp.Goals = append(resp.Goals, GoalToResponse(&goals[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// UpdateGoal applies a partial update to a goal
func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal ID"})
		return
	}

	var req dto.UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateGoal(c.Request.Context(), id, goal.UpdateGoalInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		TargetDate:  req.TargetDate,
		Milestones:  MilestonesToDomain(req.Milestones),
	})
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, goal.ErrGoalNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": GoalToResponse(updated)})
}

// UpdateProgress sets a goal's progress percentage
func (h *GoalHandler) UpdateProgress(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal ID"})
		return
	}

	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.UpdateProgress(c.Request.Context(), id, req.Progress)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, goal.ErrGoalNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": GoalToResponse(updated)})
}

// DeleteGoal removes a goal
func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid goal ID"})
		return
	}

	if err := h.service.DeleteGoal(c.Request.Context(), id); err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, goal.ErrGoalNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "goal deleted successfully"})
}
