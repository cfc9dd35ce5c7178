package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/avendel/fastrack/internal/cli/formatter"
	"github.com/avendel/fastrack/internal/coach"
	"github.com/avendel/fastrack/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newCoachCmd(app *App) *cobra.Command {
	var chat bool

	cmd := &cobra.Command{
		Use:   "coach [question...]",
		Short: "Ask the fasting coach",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Coach == nil {
				return fmt.Errorf("coach is disabled; set FASTRACK_LLM_ENABLED=true to turn it on")
			}

			ctx := context.Background()
			uctx := buildUserContext(ctx, app)

			if chat {
				if !app.interactive() {
					return fmt.Errorf("--chat needs an interactive terminal")
				}
				return runCoachChat(ctx, app, uctx, strings.Join(args, " "))
			}

			question := strings.Join(args, " ")
			if question == "" {
				return fmt.Errorf("ask a question, e.g. 'fastrack coach how do I handle hunger?'")
			}

			answer, err := app.Coach.Ask(ctx, question, uctx)
			if err != nil {
				return err
			}
			fmt.Print(renderCoachAnswer(answer))
			return nil
		},
	}

	cmd.AddCommand(newCoachSummaryCmd(app))
	cmd.Flags().BoolVar(&chat, "chat", false, "Interactive back-and-forth with the coach")

	return cmd
}

func newCoachSummaryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Get a short recap of your recent fasting",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Coach == nil {
				return fmt.Errorf("coach is disabled; set FASTRACK_LLM_ENABLED=true to turn it on")
			}

			ctx := context.Background()
			answer, err := app.Coach.WeeklySummary(ctx, buildUserContext(ctx, app))
			if err != nil {
				return err
			}
			fmt.Print(renderCoachAnswer(answer))
			return nil
		},
	}
}

func runCoachChat(ctx context.Context, app *App, uctx coach.UserContext, first string) error {
	question := first
	if question == "" {
		if err := promptQuestion(&question); err != nil {
			return err
		}
	}

	conv, answer, err := app.Coach.StartChat(ctx, question, uctx)
	if err != nil {
		return err
	}
	fmt.Print(renderCoachAnswer(answer))

	for {
		question = ""
		if err := promptQuestion(&question); err != nil {
			return err
		}
		if strings.TrimSpace(question) == "" {
			return nil
		}

		answer, err := app.Coach.NextTurn(ctx, conv, question)
		if err != nil {
			return err
		}
		fmt.Print(renderCoachAnswer(answer))
	}
}

func promptQuestion(value *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Ask the coach (blank to exit)").
				Value(value),
		),
	).WithTheme(fastrackHuhTheme()).WithShowHelp(false)
	return form.Run()
}

func renderCoachAnswer(answer *coach.CoachAnswer) string {
	var b strings.Builder

	b.WriteString(answer.Answer)
	if len(answer.Tips) > 0 {
		b.WriteString("\n")
		for _, tip := range answer.Tips {
			b.WriteString("\n  • " + tip)
		}
	}

	footer := answer.Focus
	if answer.Source == "deterministic" {
		footer += " · offline answer"
	}
	b.WriteString("\n\n" + formatter.Dim(footer))

	return formatter.RenderBox("Coach", b.String()) + "\n"
}

// buildUserContext assembles the coaching context from whatever state is
// available. Lookups that fail just leave their fields zero.
func buildUserContext(ctx context.Context, app *App) coach.UserContext {
	var uctx coach.UserContext
	now := time.Now().UTC()

	if s, err := app.Sessions.Current(ctx); err == nil {
		uctx.SessionStatus = string(s.Status)
		uctx.SessionType = string(s.Type)
		uctx.Elapsed = s.Elapsed(now)
		uctx.Remaining = s.Remaining(now)
		uctx.Progress = s.Progress(now)
	}

	if st, err := app.Streaks.Get(ctx, domain.StreakFasting); err == nil {
		uctx.CurrentStreak = st.CurrentStreak
		uctx.LongestStreak = st.LongestStreak
	}

	if stats, err := app.Stats.Summary(ctx, 0); err == nil {
		uctx.TotalSessions = stats.TotalSessions
		uctx.CompletionRate = stats.CompletionRate
		uctx.AverageFast = stats.AverageFast
	}

	return uctx
}
