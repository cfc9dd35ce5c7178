package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/avendel/fastrack/internal/cli/formatter"
	"github.com/avendel/fastrack/internal/domain"
	"github.com/avendel/fastrack/internal/repository"
	"github.com/spf13/cobra"
)

func newPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the running fast",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Sessions.Pause(context.Background())
			if err != nil {
				return friendlyLifecycleErr(err)
			}
			fmt.Printf("Paused at %s elapsed. The clock stops until you resume.\n",
				formatter.FormatDuration(s.Elapsed(s.UpdatedAt)))
			return nil
		},
	}
}

func newResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Resume a paused fast",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Sessions.Resume(context.Background())
			if err != nil {
				return friendlyLifecycleErr(err)
			}
			fmt.Printf("Resumed. %s elapsed, %s to go.\n",
				formatter.FormatDuration(s.Elapsed(s.UpdatedAt)),
				formatter.FormatDuration(s.Remaining(s.UpdatedAt)))
			return nil
		},
	}
}

func newCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete",
		Short: "Finish the fast and record the streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Sessions.Complete(ctx)
			if err != nil {
				return friendlyLifecycleErr(err)
			}

			fmt.Printf("Completed %s fast: %s fasted", s.Type, formatter.FormatDuration(s.Actual))
			if s.Actual >= s.Planned {
				fmt.Print(" — goal reached!")
			}
			fmt.Println()

			if streak, err := app.Streaks.Get(ctx, domain.StreakFasting); err == nil {
				fmt.Printf("Streak: %s\n", formatter.StreakFlame(streak.CurrentStreak))
			}
			return nil
		},
	}
}

func newStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "End the fast early without completing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Sessions.Stop(context.Background())
			if err != nil {
				return friendlyLifecycleErr(err)
			}
			fmt.Printf("Stopped after %s of a %s goal. Logged, streak unchanged.\n",
				formatter.FormatDuration(s.Actual),
				formatter.FormatDuration(s.Planned))
			return nil
		},
	}
}

func friendlyLifecycleErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("no fast is in progress; start one with 'fastrack start'")
	}
	return err
}
