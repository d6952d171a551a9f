package handlers

import (
	"net/http"
	"time"

	"github.com/Scalium-Tech/aligned/internal/ai"
	"github.com/Scalium-Tech/aligned/internal/api/dto"
	"github.com/Scalium-Tech/aligned/internal/api/middleware"
	"github.com/Scalium-Tech/aligned/internal/domain/activity"
	"github.com/Scalium-Tech/aligned/internal/domain/challenge"
	"github.com/Scalium-Tech/aligned/internal/domain/user"
	"github.com/Scalium-Tech/aligned/internal/infrastructure/cache"
	"github.com/gin-gonic/gin"
)

// Overridable for tests.
var timeNow = time.Now

// Cached snapshots use a colon-separated key ending in the user ID so
// InvalidateUserCache can clear them without touching the ledger keys.
const dashboardCacheTTL = 5 * time.Minute

// DashboardHandler aggregates ledger, challenge, and coaching state for the
// home screen
type DashboardHandler struct {
	ledger     activity.Service
	challenges challenge.Service
	users      user.Service
	coach      *ai.Coach
	cache      *cache.RedisClient
}

// NewDashboardHandler creates a new DashboardHandler instance. The cache
// client is optional; without it every request rebuilds the snapshot.
func NewDashboardHandler(ledger activity.Service, challenges challenge.Service, users user.Service, coach *ai.Coach, cacheClient *cache.RedisClient) *DashboardHandler {
	return &DashboardHandler{
		ledger:     ledger,
		challenges: challenges,
		users:      users,
		coach:      coach,
		cache:      cacheClient,
	}
}

func (h *DashboardHandler) buildSnapshot(uid string) dto.DashboardResponse {
	state := h.ledger.GetState(uid)

	active := 0
	for _, ch := range h.challenges.ListChallenges(uid) {
		if ch.IsActive() {
			active++
		}
	}

	earned := make([]dto.BadgeResponse, 0)
	for _, b := range h.challenges.ListBadges(uid) {
		if b.EarnedAt != nil {
			earned = append(earned, BadgeToResponse(b))
		}
	}

	return dto.DashboardResponse{
		CurrentStreak:      state.CurrentStreak,
		LongestStreak:      state.LongestStreak,
		IdentityScore:      h.ledger.IdentityScore(uid),
		TotalFocusMinutes:  state.TotalFocusMinutes,
		TotalFocusSessions: state.TotalFocusSessions,
		TotalTasks:         state.TotalTasksCompleted,
		ActiveChallenges:   active,
		EarnedBadges:       earned,
	}
}

// GetDashboard returns the aggregated snapshot for the authenticated user
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	uid := userID.String()
	if h.cache != nil {
		result, err := h.cache.CacheResponse(c.Request.Context(), "dashboard:"+uid, dashboardCacheTTL, func() (interface{}, error) {
			return h.buildSnapshot(uid), nil
		})
		if err == nil {
			c.JSON(http.StatusOK, gin.H{"data": result})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"data": h.buildSnapshot(uid)})
}

// GetInsight returns the daily coaching message. The response always
// carries text; a generation failure degrades to the local fallback.
func (h *DashboardHandler) GetInsight(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	uid := userID.String()
	state := h.ledger.GetState(uid)

	input := ai.InsightInput{
		CurrentStreak:     state.CurrentStreak,
		IdentityScore:     h.ledger.IdentityScore(uid),
		TotalFocusMinutes: state.TotalFocusMinutes,
	}

	if u, err := h.users.GetUser(c.Request.Context(), userID); err == nil {
		input.DisplayName = u.DisplayName
	}
	if today, ok := state.DailyActivities[activity.DateKey(timeNow())]; ok && today.MoodCheckin != nil {
		input.Mood = string(*today.MoodCheckin)
	}

	result := h.coach.DailyInsight(c.Request.Context(), input)
	c.JSON(http.StatusOK, gin.H{"data": dto.InsightResponse{
		Text:   result.Text,
		Source: string(result.Source),
	}})
}
