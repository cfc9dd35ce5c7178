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

func newStreakCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak",
		Short: "Show and manage streaks",
		RunE: func(cmd *cobra.Command, args []string) error {
			streaks, err := app.Streaks.List(context.Background())
			if err != nil {
				return err
			}

			if len(streaks) == 0 {
				fmt.Println("No streaks yet. Completing a fast starts one.")
				return nil
			}

			headers := []string{"TYPE", "CURRENT", "BEST", "TOTAL", "LAST ACTIVITY"}
			rows := make([][]string, 0, len(streaks))
			for _, st := range streaks {
				last := "--"
				if st.LastActivityDate != nil {
					last = formatter.HumanDate(*st.LastActivityDate)
				}
				rows = append(rows, []string{
					string(st.Type),
					formatter.StreakFlame(st.CurrentStreak),
					fmt.Sprintf("%d", st.LongestStreak),
					fmt.Sprintf("%d", st.TotalActivities),
					last,
				})
			}

			fmt.Print(formatter.RenderBox("Streaks", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.AddCommand(
		newStreakRecordCmd(app),
		newStreakResetCmd(app),
	)

	return cmd
}

func newStreakRecordCmd(app *App) *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record today's activity for a streak",
		RunE: func(cmd *cobra.Command, args []string) error {
			streakType, err := parseStreakType(typeFlag)
			if err != nil {
				return err
			}

			st, err := app.Streaks.Record(context.Background(), streakType)
			if err != nil {
				return err
			}
			fmt.Printf("%s streak: %s (best %d)\n",
				st.Type, formatter.StreakFlame(st.CurrentStreak), st.LongestStreak)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", string(domain.StreakFasting), "Streak type (fasting, dieting, calorie_goal, water_intake)")

	return cmd
}

func newStreakResetCmd(app *App) *cobra.Command {
	var typeFlag string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset a streak counter to zero",
		RunE: func(cmd *cobra.Command, args []string) error {
			streakType, err := parseStreakType(typeFlag)
			if err != nil {
				return err
			}

			st, err := app.Streaks.Reset(context.Background(), streakType)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("no %s streak exists yet", streakType)
				}
				return err
			}
			fmt.Printf("%s streak reset. Best run of %d stays on record.\n", st.Type, st.LongestStreak)
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", string(domain.StreakFasting), "Streak type (fasting, dieting, calorie_goal, water_intake)")

	return cmd
}

func parseStreakType(s string) (domain.StreakType, error) {
	if !domain.ValidStreakTypes[s] {
		return "", fmt.Errorf("unknown streak type %q", s)
	}
	return domain.StreakType(s), nil
}
