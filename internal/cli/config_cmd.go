package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/avendel/fastrack/internal/cli/formatter"
	"github.com/avendel/fastrack/internal/domain"
	"github.com/spf13/cobra"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change defaults for new fasts",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := app.Settings.Get(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("Default type  %s\nDefault goal  %s\n",
				formatter.SessionTypeBadge(settings.DefaultType),
				formatter.FormatDuration(settings.DefaultPlanned))
			return nil
		},
	}

	cmd.AddCommand(newConfigSetCmd(app))

	return cmd
}

func newConfigSetCmd(app *App) *cobra.Command {
	var typeFlag string
	var hours float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change the default fast type or goal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if typeFlag == "" && hours == 0 {
				return fmt.Errorf("nothing to change; pass --type and/or --hours")
			}

			ctx := context.Background()
			settings, err := app.Settings.Get(ctx)
			if err != nil {
				return err
			}

			if typeFlag != "" {
				if !domain.ValidSessionTypes[typeFlag] {
					return fmt.Errorf("unknown fast type %q", typeFlag)
				}
				settings.DefaultType = domain.SessionType(typeFlag)
			}
			if hours > 0 {
				settings.DefaultPlanned = time.Duration(hours * float64(time.Hour))
			}

			if err := app.Settings.Update(ctx, settings); err != nil {
				return err
			}

			fmt.Printf("Defaults updated: %s, %s.\n",
				settings.DefaultType, formatter.FormatDuration(settings.DefaultPlanned))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "Default fast type")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Default goal in hours")

	return cmd
}
