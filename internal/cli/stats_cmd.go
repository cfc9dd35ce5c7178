package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/avendel/fastrack/internal/cli/formatter"
	"github.com/avendel/fastrack/internal/domain"
	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show fasting statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			stats, err := app.Stats.Summary(context.Background(), days)
			if err != nil {
				return err
			}

			if stats.TotalSessions == 0 {
				fmt.Println("No fasts in this window.")
				return nil
			}

			var b strings.Builder
			fmt.Fprintf(&b, "Fasts        %s  (%d completed, %d stopped",
				formatter.Bold(fmt.Sprintf("%d", stats.TotalSessions)),
				stats.Completed, stats.Stopped)
			if stats.InProgress > 0 {
				fmt.Fprintf(&b, ", %d in progress", stats.InProgress)
			}
			b.WriteString(")\n")

			fmt.Fprintf(&b, "Completion   %s\n", formatter.RenderProgress(stats.CompletionRate, 16))
			fmt.Fprintf(&b, "Total time   %s\n", formatter.FormatDuration(stats.TotalFasted))
			fmt.Fprintf(&b, "Average      %s\n", formatter.FormatDuration(stats.AverageFast))
			fmt.Fprintf(&b, "Longest      %s\n", formatter.Bold(formatter.FormatDuration(stats.LongestFast)))

			if len(stats.ByType) > 0 {
				b.WriteString("\n" + formatter.Header("By type") + "\n")
				for _, line := range byTypeLines(stats.ByType) {
					b.WriteString(line + "\n")
				}
			}

			fmt.Print(formatter.RenderBox("Stats", strings.TrimRight(b.String(), "\n")))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Window in days (0 = all history)")

	return cmd
}

// byTypeLines renders the per-type counts sorted by count descending,
// then name, so the output is stable.
func byTypeLines(byType map[domain.SessionType]int) []string {
	type entry struct {
		t domain.SessionType
		n int
	}
	entries := make([]entry, 0, len(byType))
	for t, n := range byType {
		entries = append(entries, entry{t, n})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].n != entries[j].n {
			return entries[i].n > entries[j].n
		}
		return entries[i].t < entries[j].t
	})

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s  %d", formatter.SessionTypeBadge(e.t), e.n))
	}
	return lines
}
