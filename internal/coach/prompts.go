package coach

import (
	"fmt"
	"strings"
	"time"
)

func buildCoachSystemPrompt() string {
	return `You are a supportive, evidence-minded fasting coach inside a command-line
fasting tracker. Answer the user's question concisely and practically.

Rules:
- Ground your answer in the user state block when one is provided.
- Never give medical diagnoses. For anything that sounds like a medical
  emergency, tell the user to end the fast and seek medical care.
- Keep the answer under 120 words. Tips are short imperative sentences.

Respond with ONLY a JSON object in this exact format:
{
  "answer": "direct answer to the question",
  "tips": ["short actionable tip", "..."],
  "focus": "one-word theme such as hydration, refeeding, mindset",
  "confidence": 0.0
}`
}

func buildCoachUserPrompt(conv *Conversation, question string, uctx UserContext) string {
	var b strings.Builder

	if conv != nil && len(conv.Turns) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, turn := range conv.Turns {
			b.WriteString(turn.Role)
			b.WriteString(": ")
			b.WriteString(turn.Content)
			b.WriteString("\n\n")
		}
	}

	b.WriteString("## User State\n")
	b.WriteString(renderUserContext(uctx))
	b.WriteString("\n## Question\n")
	b.WriteString(question)

	return b.String()
}

func buildSummarySystemPrompt() string {
	return `You are a supportive fasting coach writing a short progress recap for a
command-line fasting tracker. Write an encouraging, factual summary of the
user's recent fasting based only on the state block. Under 100 words.

Respond with ONLY a JSON object in this exact format:
{
  "answer": "the recap paragraph",
  "tips": ["one suggestion for next week"],
  "focus": "one-word theme",
  "confidence": 0.0
}`
}

func buildSummaryUserPrompt(uctx UserContext) string {
	return "## User State\n" + renderUserContext(uctx) + "\nWrite the recap."
}

// renderUserContext serializes the fasting state into a compact block the
// model can quote from without hallucinating numbers.
func renderUserContext(uctx UserContext) string {
	var b strings.Builder

	if uctx.HasSession() {
		fmt.Fprintf(&b, "current_fast: %s (%s), elapsed %s, remaining %s, %.0f%% done\n",
			uctx.SessionType, uctx.SessionStatus,
			formatHours(uctx.Elapsed), formatHours(uctx.Remaining), uctx.Progress*100)
	} else {
		b.WriteString("current_fast: none\n")
	}

	fmt.Fprintf(&b, "streak: %d days (best %d)\n", uctx.CurrentStreak, uctx.LongestStreak)
	if uctx.TotalSessions > 0 {
		fmt.Fprintf(&b, "history: %d fasts, %.0f%% completed, average %s\n",
			uctx.TotalSessions, uctx.CompletionRate*100, formatHours(uctx.AverageFast))
	}

	return b.String()
}

func formatHours(d time.Duration) string {
	return fmt.Sprintf("%.1fh", d.Hours())
}
