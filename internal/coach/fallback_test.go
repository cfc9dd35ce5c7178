package coach

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeterministicCoach_MatchesHungerTopic(t *testing.T) {
	answer := DeterministicCoach("I'm so hungry, what do I do?", UserContext{})

	assert.Equal(t, "deterministic", answer.Source)
	assert.Equal(t, "hunger", answer.Focus)
	assert.Contains(t, answer.Answer, "waves")
	assert.NotEmpty(t, answer.Tips)
}

func TestDeterministicCoach_MatchesRefeedingTopic(t *testing.T) {
	answer := DeterministicCoach("how should I break my fast?", UserContext{})

	assert.Equal(t, "refeeding", answer.Focus)
}

func TestDeterministicCoach_DizzinessWarnsAboutStopping(t *testing.T) {
	answer := DeterministicCoach("feeling dizzy and weak", UserContext{})

	assert.Equal(t, "electrolytes", answer.Focus)
	assert.Contains(t, answer.Answer, "medical")
}

func TestDeterministicCoach_DefaultUsesSessionContext(t *testing.T) {
	uctx := UserContext{
		SessionStatus: "active",
		SessionType:   "water",
		Elapsed:       8 * time.Hour,
		Progress:      0.5,
	}

	answer := DeterministicCoach("tell me something motivating", uctx)

	assert.Equal(t, "mindset", answer.Focus)
	assert.Contains(t, answer.Answer, "50%")
	assert.Contains(t, answer.Answer, "water")
}

func TestDeterministicCoach_DefaultMentionsStreak(t *testing.T) {
	answer := DeterministicCoach("anything else?", UserContext{CurrentStreak: 6})

	assert.Contains(t, answer.Answer, "6-day streak")
}

func TestDeterministicSummary(t *testing.T) {
	uctx := UserContext{
		TotalSessions:  5,
		CompletionRate: 0.8,
		AverageFast:    15*time.Hour + 30*time.Minute,
		CurrentStreak:  3,
		LongestStreak:  7,
	}

	answer := DeterministicSummary(uctx)

	require.Equal(t, "deterministic", answer.Source)
	assert.Contains(t, answer.Answer, "5 fasts")
	assert.Contains(t, answer.Answer, "80%")
	assert.Contains(t, answer.Answer, "15.5 hours")
	assert.Contains(t, answer.Answer, "3 days")
	assert.Contains(t, answer.Answer, "best: 7")
}

func TestDeterministicSummary_Empty(t *testing.T) {
	answer := DeterministicSummary(UserContext{})

	assert.Contains(t, answer.Answer, "No fasts logged yet")
}
