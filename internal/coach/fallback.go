package coach

import (
	"fmt"
	"strings"
)

// coachTopic is a deterministic answer for a recognizable question theme.
type coachTopic struct {
	keywords []string
	focus    string
	answer   string
	tips     []string
}

var coachTopics = []coachTopic{
	{
		keywords: []string{"hungry", "hunger", "craving", "cravings", "appetite"},
		focus:    "hunger",
		answer: "Hunger arrives in waves and usually passes within 20 minutes. " +
			"It peaks around your usual meal times, then fades.",
		tips: []string{
			"Drink a large glass of water when a wave hits.",
			"Go for a short walk to let the wave pass.",
			"Sparkling water or plain tea can blunt cravings.",
		},
	},
	{
		keywords: []string{"headache", "dizzy", "dizziness", "lightheaded", "faint", "weak"},
		focus:    "electrolytes",
		answer: "Headaches and lightheadedness during a fast are most often an " +
			"electrolyte or hydration gap, not a lack of food. If symptoms are " +
			"severe or persist, end the fast and seek medical advice.",
		tips: []string{
			"Add a pinch of salt to a glass of water.",
			"Stand up slowly to avoid head rushes.",
			"End the fast if symptoms get worse.",
		},
	},
	{
		keywords: []string{"water", "drink", "hydrate", "hydration", "thirsty"},
		focus:    "hydration",
		answer: "Aim for two to three liters of water across the day. Plain water, " +
			"black coffee, and unsweetened tea do not break a fast.",
		tips: []string{
			"Keep a filled bottle within reach.",
			"Front-load water in the morning.",
		},
	},
	{
		keywords: []string{"break", "breaking", "end", "ending", "eat", "refeed", "meal"},
		focus:    "refeeding",
		answer: "Break a fast gently. Start with something small and easy to digest, " +
			"wait half an hour, then have a normal-sized meal. The longer the fast, " +
			"the gentler the first food should be.",
		tips: []string{
			"Start with broth, yogurt, or a handful of nuts.",
			"Avoid a large heavy meal as the first food.",
			"Prioritize protein in the first full meal.",
		},
	},
	{
		keywords: []string{"sleep", "tired", "insomnia", "fatigue", "energy"},
		focus:    "rest",
		answer: "Energy commonly dips in the first third of a fast and rebounds later. " +
			"Sleep can be lighter during longer fasts, which is normal.",
		tips: []string{
			"Keep the bedroom cool; fasting can raise alertness at night.",
			"Schedule demanding work outside your usual slump hours.",
		},
	},
	{
		keywords: []string{"exercise", "workout", "training", "gym", "run", "lift"},
		focus:    "training",
		answer: "Light and moderate exercise is fine while fasting and many people " +
			"train fasted by preference. Keep intensity lower on longer fasts and " +
			"stop if you feel faint.",
		tips: []string{
			"Favor walking, mobility, or light cardio on fast days.",
			"Keep heavy lifting sessions near your eating window.",
		},
	},
	{
		keywords: []string{"coffee", "tea", "caffeine"},
		focus:    "caffeine",
		answer: "Black coffee and unsweetened tea are fine during a fast. Skip milk, " +
			"sugar, and sweetened drinks, which end the fast.",
		tips: []string{
			"Cut caffeine after mid-afternoon to protect sleep.",
		},
	},
}

// DeterministicCoach produces a coaching answer without the LLM by matching
// the question against known fasting topics. Unmatched questions get an
// encouraging status-aware default.
func DeterministicCoach(question string, uctx UserContext) *CoachAnswer {
	terms := strings.Fields(strings.ToLower(question))

	best := -1
	bestHits := 0
	for i, topic := range coachTopics {
		hits := 0
		for _, kw := range topic.keywords {
			for _, term := range terms {
				// Short terms like "me" or "so" match too many keywords.
				if strings.Contains(term, kw) || (len(term) >= 4 && strings.Contains(kw, term)) {
					hits++
					break
				}
			}
		}
		if hits > bestHits {
			best, bestHits = i, hits
		}
	}

	if best >= 0 {
		topic := coachTopics[best]
		return &CoachAnswer{
			Answer:     topic.answer,
			Tips:       topic.tips,
			Focus:      topic.focus,
			Confidence: 1.0,
			Source:     "deterministic",
		}
	}

	return defaultCoachAnswer(uctx)
}

func defaultCoachAnswer(uctx UserContext) *CoachAnswer {
	var answer string
	switch {
	case uctx.HasSession():
		answer = fmt.Sprintf(
			"You're %.0f%% of the way through your %s fast. Stay hydrated and keep busy; the next milestone is closer than it feels.",
			uctx.Progress*100, uctx.SessionType)
	case uctx.CurrentStreak > 0:
		answer = fmt.Sprintf(
			"You're on a %d-day streak. Starting today's fast keeps it alive.",
			uctx.CurrentStreak)
	default:
		answer = "No fast is running. Starting a short one today is the easiest way to build momentum."
	}

	return &CoachAnswer{
		Answer: answer,
		Tips: []string{
			"Drink water regularly through the day.",
			"Plan what you'll eat when the fast ends.",
		},
		Focus:      "mindset",
		Confidence: 1.0,
		Source:     "deterministic",
	}
}

// DeterministicSummary builds a recap from the state block alone.
func DeterministicSummary(uctx UserContext) *CoachAnswer {
	var b strings.Builder

	if uctx.TotalSessions > 0 {
		fmt.Fprintf(&b, "You logged %d fasts with a %.0f%% completion rate, averaging %.1f hours per fast.",
			uctx.TotalSessions, uctx.CompletionRate*100, uctx.AverageFast.Hours())
	} else {
		b.WriteString("No fasts logged yet.")
	}
	if uctx.CurrentStreak > 0 {
		fmt.Fprintf(&b, " Your streak stands at %d days", uctx.CurrentStreak)
		if uctx.LongestStreak > uctx.CurrentStreak {
			fmt.Fprintf(&b, " (best: %d)", uctx.LongestStreak)
		}
		b.WriteString(".")
	}

	return &CoachAnswer{
		Answer:     b.String(),
		Tips:       []string{"Pick a target for next week and schedule the start times now."},
		Focus:      "consistency",
		Confidence: 1.0,
		Source:     "deterministic",
	}
}
