package coach

import "time"

// ConversationTurn is one exchange in a coaching chat.
type ConversationTurn struct {
	Role    string
	Content string
}

// Conversation holds multi-turn coaching chat state. The user context is
// captured once at the start of the chat and reused for every turn.
type Conversation struct {
	Turns   []ConversationTurn
	Context UserContext
}

// CoachAnswer is the structured response from the coaching agent.
type CoachAnswer struct {
	Answer     string   `json:"answer"`
	Tips       []string `json:"tips"`
	Focus      string   `json:"focus"`
	Confidence float64  `json:"confidence"`
	Source     string   `json:"source"` // "llm" or "deterministic"
}

// UserContext summarizes the user's fasting state so answers can be
// grounded in what is actually happening. The CLI layer assembles it
// from the session, streak, and stats services.
type UserContext struct {
	SessionStatus  string
	SessionType    string
	Elapsed        time.Duration
	Remaining      time.Duration
	Progress       float64
	CurrentStreak  int
	LongestStreak  int
	TotalSessions  int
	CompletionRate float64
	AverageFast    time.Duration
}

// HasSession reports whether the context describes an open fast.
func (c UserContext) HasSession() bool {
	return c.SessionStatus != ""
}
