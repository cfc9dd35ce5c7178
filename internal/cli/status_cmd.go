package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avendel/fastrack/internal/cli/formatter"
	"github.com/avendel/fastrack/internal/domain"
	"github.com/avendel/fastrack/internal/repository"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *App) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current fast",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			s, err := app.Sessions.Current(ctx)
			if errors.Is(err, repository.ErrNotFound) {
				fmt.Println("No fast in progress. Start one with 'fastrack start'.")
				return nil
			}
			if err != nil {
				return err
			}

			if watch {
				if !app.interactive() {
					return fmt.Errorf("--watch needs an interactive terminal")
				}
				return runTimer(app, s)
			}

			fmt.Print(formatter.RenderBox("Current Fast", renderSessionStatus(s, time.Now().UTC())))
			return nil
		},
	}

	cmd.Flags().BoolVar(&watch, "watch", false, "Live timer view (keys: p pause, r resume, c complete, s stop, q quit)")

	return cmd
}

func renderSessionStatus(s *domain.FastingSession, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n\n",
		formatter.SessionTypeBadge(s.Type),
		formatter.SessionStatusPill(s.Status))

	fmt.Fprintf(&b, "Elapsed    %s\n", formatter.Bold(formatter.FormatDuration(s.Elapsed(now))))
	fmt.Fprintf(&b, "Remaining  %s\n", formatter.FormatDuration(s.Remaining(now)))
	fmt.Fprintf(&b, "Goal       %s\n\n", formatter.FormatDuration(s.Planned))
	b.WriteString(formatter.RenderProgress(s.Progress(now), 24))

	if s.Status == domain.SessionPaused && s.PausedAt != nil {
		fmt.Fprintf(&b, "\n\n%s", formatter.Dim("Paused "+formatter.HumanTimestamp(*s.PausedAt)))
	}
	if s.Note != "" {
		fmt.Fprintf(&b, "\n\n%s", formatter.Dim(s.Note))
	}

	return b.String()
}

func runTimer(app *App, s *domain.FastingSession) error {
	model := newTimerModel(app, s)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
