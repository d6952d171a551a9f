package ai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Scalium-Tech/aligned/pkg/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, apiKey string) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(config.CoachConfig{
		Endpoint:  server.URL,
		APIKey:    apiKey,
		Model:     "coach-v1",
		MaxTokens: 128,
		Timeout:   2 * time.Second,
	}, logrus.New())
}

func TestGenerateReturnsText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		w.Write([]byte(`{"text":"Nice streak."}`))
	}, "key")

	text, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "Nice streak.", text)
}

func TestGenerateFailsWithoutAPIKey(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made without an api key")
	}, "")

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestGenerateFailsOnNon200(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}, "key")

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrBadStatus)
}

func TestGenerateFailsOnMalformedJSON(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":`))
	}, "key")

	_, err := client.Generate(context.Background(), "prompt")
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestDailyInsightUsesGeneratedText(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"Generated advice."}`))
	}, "key")
	coach := NewCoach(client, logrus.New())

	result := coach.DailyInsight(context.Background(), InsightInput{CurrentStreak: 3})
	assert.Equal(t, SourceGenerated, result.Source)
	assert.Equal(t, "Generated advice.", result.Text)
}

func TestDailyInsightFallsBackOnEveryFailure(t *testing.T) {
	failures := map[string]http.HandlerFunc{
		"non-200":    func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
		"bad json":   func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("not json")) },
		"empty text": func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"other":"field"}`)) },
	}

	input := InsightInput{CurrentStreak: 10, IdentityScore: 80}

	for name, handler := range failures {
		t.Run(name, func(t *testing.T) {
			coach := NewCoach(newTestClient(t, handler, "key"), logrus.New())

			result := coach.DailyInsight(context.Background(), input)
			assert.Equal(t, SourceFallback, result.Source)
			assert.NotEmpty(t, result.Text)

			// Deterministic: the same stats fall back to the same text.
			again := coach.DailyInsight(context.Background(), input)
			assert.Equal(t, result.Text, again.Text)
		})
	}
}

func TestFallbackInsightIsDeterministic(t *testing.T) {
	input := InsightInput{CurrentStreak: 5}
	assert.Equal(t, fallbackInsight(input), fallbackInsight(input))

	// Distinct stat bands produce distinct guidance.
	assert.NotEqual(t,
		fallbackInsight(InsightInput{CurrentStreak: 14}),
		fallbackInsight(InsightInput{}))
}
