package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Scalium-Tech/aligned/internal/api/dto"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/Scalium-Tech/aligned/internal/domain/activity"
	"github.com/Scalium-Tech/aligned/internal/domain/challenge"
	"github.com/Scalium-Tech/aligned/internal/domain/journal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ChallengeHandler handles challenge and badge endpoints
type ChallengeHandler struct {
	service challenge.Service
	ledger  activity.Service
	journal journal.Service
}

// NewChallengeHandler creates a new ChallengeHandler instance
func NewChallengeHandler(service challenge.Service, ledger activity.Service, journalSvc journal.Service) *ChallengeHandler {
	return &ChallengeHandler{service: service, ledger: ledger, journal: journalSvc}
}

// CreateChallenge starts a new challenge
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	var req dto.CreateChallengeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	input := challenge.CreateChallengeInput{
		Title:       req.Title,
		Description: req.Description,
		TotalDays:   req.TotalDays,
	}
	if req.StartDate != nil {
		input.StartDate = *req.StartDate
	}

	created, err := h.service.CreateChallenge(userID.String(), input)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, challenge.ErrInvalidInput) {
			statusCode = http.StatusBadRequest
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": ChallengeToResponse(created)})
}

// ListChallenges returns every challenge for the authenticated user
func (h *ChallengeHandler) ListChallenges(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	challenges := h.service.ListChallenges(userID.String())
	resp := dto.ChallengeListResponse{
		Challenges: make([]dto.ChallengeResponse, 0, len(challenges)),
		TotalCount: len(challenges),
	}
	for i := range challenges {
		resp.Challenges = append(resp.Challenges, ChallengeToResponse(&challenges[i]))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// GetChallenge returns a single challenge by ID
func (h *ChallengeHandler) GetChallenge(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid challenge ID"})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ch, err := h.service.GetChallenge(userID.String(), id)
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, challenge.ErrChallengeNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ChallengeToResponse(ch)})
}

// CheckIn records today's check-in on a challenge
func (h *ChallengeHandler) CheckIn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid challenge ID"})
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	ch, err := h.service.CheckIn(userID.String(), id, time.Now())
	if err != nil {
		statusCode := http.StatusInternalServerError
		if errors.Is(err, challenge.ErrChallengeNotFound) {
			statusCode = http.StatusNotFound
		}
		c.JSON(statusCode, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": ChallengeToResponse(ch)})
}

// ListBadges returns the badge catalog with earned state
func (h *ChallengeHandler) ListBadges(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	badges := h.service.ListBadges(userID.String())
	resp := dto.BadgeListResponse{Badges: make([]dto.BadgeResponse, 0, len(badges))}
	for _, b := range badges {
		resp.Badges = append(resp.Badges, BadgeToResponse(b))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// CheckBadges evaluates every badge against the user's current stats and
// returns the newly earned ones
func (h *ChallengeHandler) CheckBadges(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	newlyEarned := h.service.CheckAllBadges(userID.String(), h.collectStats(c, userID.String()))
	resp := dto.BadgeListResponse{Badges: make([]dto.BadgeResponse, 0, len(newlyEarned))}
	for _, b := range newlyEarned {
		resp.Badges = append(resp.Badges, BadgeToResponse(b))
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// collectStats assembles the cumulative stats badge requirements read.
func (h *ChallengeHandler) collectStats(c *gin.Context, userID string) challenge.Stats {
	state := h.ledger.GetState(userID)
	uid, _ := uuid.Parse(userID)
	return challenge.Stats{
		CurrentStreak:       state.CurrentStreak,
		TotalFocusMinutes:   state.TotalFocusMinutes,
		TotalTasksCompleted: state.TotalTasksCompleted,
		JournalEntries:      h.journal.CountEntries(c.Request.Context(), uid),
		ChallengesCompleted: h.service.CompletedCount(userID),
	}
}
