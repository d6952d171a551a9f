package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Scalium-Tech/aligned/internal/domain/goal"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGoalService struct {
	goal.Service
	lastFilter goal.GoalFilter
}

func (s *stubGoalService) ListGoals(_ context.Context, filter goal.GoalFilter) ([]goal.Goal, int64, error) {
	s.lastFilter = filter
	return nil, 0, nil
}

func listGoalsContext(t *testing.T, target string, userID uuid.UUID) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Set("user_id", userID)
	return c, w
}

func TestListGoalsScopesFilterToAuthenticatedUser(t *testing.T) {
	svc := &stubGoalService{}
	handler := NewGoalHandler(svc)
	userID := uuid.New()

	c, w := listGoalsContext(t, "/api/goals?category=health&active=true", userID)
	handler.ListGoals(c)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastFilter.UserID)
	assert.Equal(t, userID, *svc.lastFilter.UserID)
	require.NotNil(t, svc.lastFilter.Category)
	assert.Equal(t, "health", *svc.lastFilter.Category)
	assert.True(t, svc.lastFilter.ActiveOnly)
}

func TestListGoalsOmitsCategoryWhenUnset(t *testing.T) {
	svc := &stubGoalService{}
	handler := NewGoalHandler(svc)

	c, w := listGoalsContext(t, "/api/goals?page=2&page_size=25", uuid.New())
	handler.ListGoals(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.lastFilter.Category)
	assert.False(t, svc.lastFilter.ActiveOnly)
	assert.Equal(t, 2, svc.lastFilter.Page)
	assert.Equal(t, 25, svc.lastFilter.PageSize)
}
