package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/avendel/fastrack/internal/cli/formatter"
	"github.com/avendel/fastrack/internal/repository"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past fasts",
		RunE: func(cmd *cobra.Command, args []string) error {
			sessions, err := app.Sessions.ListRecent(context.Background(), days)
			if err != nil {
				return err
			}

			if len(sessions) == 0 {
				fmt.Println("No fasts recorded yet.")
				return nil
			}

			headers := []string{"ID", "TYPE", "STATUS", "STARTED", "FASTED", "GOAL", "NOTE"}
			rows := make([][]string, 0, len(sessions))
			for _, s := range sessions {
				note := s.Note
				if len(note) > 32 {
					note = note[:29] + "..."
				}
				fasted := s.Actual
				if fasted == 0 && s.EndTime == nil {
					fasted = s.Elapsed(s.UpdatedAt)
				}
				rows = append(rows, []string{
					formatter.TruncID(s.ID),
					formatter.SessionTypeBadge(s.Type),
					formatter.SessionStatusPill(s.Status),
					formatter.HumanTimestamp(s.StartTime),
					formatter.FormatDuration(fasted),
					formatter.FormatDuration(s.Planned),
					formatter.Dim(note),
				})
			}

			fmt.Print(formatter.RenderBox("History", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.AddCommand(newHistoryRemoveCmd(app))
	cmd.Flags().IntVar(&days, "days", 30, "Number of recent days to show")

	return cmd
}

func newHistoryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Delete a recorded fast",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.Delete(context.Background(), args[0]); err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return fmt.Errorf("no fast with ID %s", args[0])
				}
				return err
			}
			fmt.Printf("Removed fast %s\n", args[0])
			return nil
		},
	}
}
