package coach

import (
	"context"
	"fmt"

	"github.com/avendel/fastrack/internal/llm"
)

// CoachService answers fasting questions and produces progress summaries.
type CoachService interface {
	// Ask handles a one-shot coaching question.
	Ask(ctx context.Context, question string, uctx UserContext) (*CoachAnswer, error)

	// StartChat begins an interactive coaching conversation.
	StartChat(ctx context.Context, question string, uctx UserContext) (*Conversation, *CoachAnswer, error)

	// NextTurn continues an interactive coaching conversation.
	NextTurn(ctx context.Context, conv *Conversation, question string) (*CoachAnswer, error)

	// WeeklySummary produces a short narrative recap of recent progress.
	WeeklySummary(ctx context.Context, uctx UserContext) (*CoachAnswer, error)
}

type coachService struct {
	client llm.LLMClient
}

// NewCoachService creates a CoachService backed by an LLM client.
// Every operation degrades to a deterministic answer when the LLM
// is unreachable or produces unusable output.
func NewCoachService(client llm.LLMClient) CoachService {
	return &coachService{client: client}
}

// coachLLMResponse is the JSON structure expected from the LLM.
type coachLLMResponse struct {
	Answer     string   `json:"answer"`
	Tips       []string `json:"tips"`
	Focus      string   `json:"focus"`
	Confidence float64  `json:"confidence"`
}

func (s *coachService) Ask(ctx context.Context, question string, uctx UserContext) (*CoachAnswer, error) {
	return s.resolveWithFallback(ctx, nil, question, uctx), nil
}

func (s *coachService) StartChat(ctx context.Context, question string, uctx UserContext) (*Conversation, *CoachAnswer, error) {
	conv := &Conversation{Context: uctx}

	answer := s.resolveWithFallback(ctx, conv, question, uctx)

	conv.Turns = append(conv.Turns,
		ConversationTurn{Role: "User", Content: question},
		ConversationTurn{Role: "Assistant", Content: answer.Answer},
	)

	return conv, answer, nil
}

func (s *coachService) NextTurn(ctx context.Context, conv *Conversation, question string) (*CoachAnswer, error) {
	if conv == nil {
		return nil, fmt.Errorf("conversation is nil")
	}
	answer := s.resolveWithFallback(ctx, conv, question, conv.Context)

	conv.Turns = append(conv.Turns,
		ConversationTurn{Role: "User", Content: question},
		ConversationTurn{Role: "Assistant", Content: answer.Answer},
	)

	return answer, nil
}

func (s *coachService) WeeklySummary(ctx context.Context, uctx UserContext) (*CoachAnswer, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskSummary,
		SystemPrompt: buildSummarySystemPrompt(),
		UserPrompt:   buildSummaryUserPrompt(uctx),
	})
	if err != nil {
		return DeterministicSummary(uctx), nil
	}

	parsed, err := llm.ExtractJSON[coachLLMResponse](resp.Text, validateCoachResponse)
	if err != nil {
		return DeterministicSummary(uctx), nil
	}

	return answerFromResponse(parsed), nil
}

func (s *coachService) resolveWithFallback(ctx context.Context, conv *Conversation, question string, uctx UserContext) *CoachAnswer {
	answer, err := s.generate(ctx, conv, question, uctx)
	if err != nil {
		return DeterministicCoach(question, uctx)
	}
	return answer
}

func (s *coachService) generate(ctx context.Context, conv *Conversation, question string, uctx UserContext) (*CoachAnswer, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskCoach,
		SystemPrompt: buildCoachSystemPrompt(),
		UserPrompt:   buildCoachUserPrompt(conv, question, uctx),
	})
	if err != nil {
		return nil, fmt.Errorf("llm coach generation failed: %w", err)
	}

	parsed, err := llm.ExtractJSON[coachLLMResponse](resp.Text, validateCoachResponse)
	if err != nil {
		return nil, fmt.Errorf("failed to extract coach response: %w", err)
	}

	return answerFromResponse(parsed), nil
}

func answerFromResponse(parsed coachLLMResponse) *CoachAnswer {
	tips := parsed.Tips
	if len(tips) > 5 {
		tips = tips[:5]
	}
	return &CoachAnswer{
		Answer:     parsed.Answer,
		Tips:       tips,
		Focus:      parsed.Focus,
		Confidence: parsed.Confidence,
		Source:     "llm",
	}
}

func validateCoachResponse(resp coachLLMResponse) error {
	if resp.Answer == "" {
		return fmt.Errorf("answer field is required")
	}
	if resp.Confidence < 0 || resp.Confidence > 1 {
		return fmt.Errorf("confidence must be between 0 and 1, got %f", resp.Confidence)
	}
	return nil
}
