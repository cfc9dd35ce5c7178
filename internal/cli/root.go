package cli

import (
	"github.com/avendel/fastrack/internal/coach"
	"github.com/avendel/fastrack/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Sessions service.SessionService
	Streaks  service.StreakService
	Stats    service.StatsService
	Settings service.SettingsService

	// Coach is nil unless the LLM subsystem is enabled.
	Coach coach.CoachService

	// IsInteractive reports whether stdin is a terminal. Interactive-only
	// surfaces (forms, the live timer) are skipped when it returns false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "fastrack" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "fastrack",
		Short: "Fasting tracker with streaks and an optional AI coach",
	}

	root.AddCommand(
		newStartCmd(app),
		newPauseCmd(app),
		newResumeCmd(app),
		newCompleteCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newHistoryCmd(app),
		newStreakCmd(app),
		newStatsCmd(app),
		newConfigCmd(app),
		newCoachCmd(app),
	)

	return root
}
