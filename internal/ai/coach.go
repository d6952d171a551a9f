package ai

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Source tags where an insight's text came from, so callers (and tests)
// can tell a generated result from a templated fallback.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
)

// InsightResult is the outcome of an insight request. There is no failure
// variant: every failure path resolves to fallback text.
type InsightResult struct {
	Text   string `json:"text"`
	Source Source `json:"source"`
}

// InsightInput is the snapshot of ledger stats an insight is written from.
type InsightInput struct {
	DisplayName       string
	CurrentStreak     int
	IdentityScore     int
	TotalFocusMinutes int
	Mood              string
}

type generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Coach produces daily coaching insights with graceful degradation: an
// endpoint failure of any kind yields a deterministic local template,
// never a user-facing error.
type Coach struct {
	client generator
	logger *logrus.Logger
}

func NewCoach(client *Client, logger *logrus.Logger) *Coach {
	return &Coach{client: client, logger: logger}
}

// DailyInsight returns coaching text for the given stats. The returned
// Source reports whether the endpoint produced it or a local template did.
func (c *Coach) DailyInsight(ctx context.Context, input InsightInput) InsightResult {
	text, err := c.client.Generate(ctx, buildPrompt(input))
	if err != nil {
		c.logger.WithError(err).Debug("falling back to templated insight")
		return InsightResult{Text: fallbackInsight(input), Source: SourceFallback}
	}
	return InsightResult{Text: text, Source: SourceGenerated}
}

func buildPrompt(input InsightInput) string {
	return fmt.Sprintf(
		"You are a supportive productivity coach. The user %s has a %d-day streak, "+
			"today's completion score is %d%%, total deep-work minutes are %d, and their mood is %q. "+
			"Write two short encouraging sentences with one concrete suggestion for tomorrow.",
		input.DisplayName, input.CurrentStreak, input.IdentityScore, input.TotalFocusMinutes, input.Mood,
	)
}

// fallbackInsight picks a template from the input alone, so repeated calls
// with the same stats produce the same text.
func fallbackInsight(input InsightInput) string {
	switch {
	case input.CurrentStreak >= 7:
		return fmt.Sprintf("A %d-day streak is real momentum. Protect it: pick tomorrow's first action tonight.", input.CurrentStreak)
	case input.CurrentStreak >= 2:
		return fmt.Sprintf("You're %d days in. Consistency beats intensity, so keep tomorrow's session small and certain.", input.CurrentStreak)
	case input.IdentityScore >= 70:
		return fmt.Sprintf("Today's %d%% completion shows you followed through. Carry one unfinished item to the top of tomorrow.", input.IdentityScore)
	case input.TotalFocusMinutes > 0:
		return "Every logged minute counts. Schedule one focus block for tomorrow morning before anything else."
	default:
		return "Start small today: one task, one check-in. The streak begins with a single active day."
	}
}
