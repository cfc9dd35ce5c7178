package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/avendel/fastrack/internal/cli/formatter"
	"github.com/avendel/fastrack/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var typeFlag, note string
	var hours float64

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new fast",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			sessionType, planned, err := resolveStartDefaults(ctx, app, typeFlag, hours)
			if err != nil {
				return err
			}

			// With no flags on a terminal, collect the parameters in a form.
			if app.interactive() && !cmd.Flags().Changed("type") && !cmd.Flags().Changed("hours") {
				sessionType, planned, note, err = runStartForm(sessionType, planned)
				if err != nil {
					return err
				}
			}

			s, err := app.Sessions.Start(ctx, sessionType, planned, note)
			if err != nil {
				return err
			}

			fmt.Printf("Started %s fast %s, goal %s. Ends %s.\n",
				s.Type,
				formatter.TruncID(s.ID),
				formatter.FormatDuration(s.Planned),
				s.StartTime.Add(s.Planned).Local().Format("Mon 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&typeFlag, "type", "", "Fast type (twenty_four_hour, custom, intermittent, juice, water, dry)")
	cmd.Flags().Float64Var(&hours, "hours", 0, "Planned fast length in hours")
	cmd.Flags().StringVar(&note, "note", "", "Note to attach to the fast")

	return cmd
}

// resolveStartDefaults merges flag values with the stored defaults.
func resolveStartDefaults(ctx context.Context, app *App, typeFlag string, hours float64) (domain.SessionType, time.Duration, error) {
	settings, err := app.Settings.Get(ctx)
	if err != nil {
		return "", 0, fmt.Errorf("loading settings: %w", err)
	}

	sessionType := settings.DefaultType
	if typeFlag != "" {
		if !domain.ValidSessionTypes[typeFlag] {
			return "", 0, fmt.Errorf("unknown fast type %q", typeFlag)
		}
		sessionType = domain.SessionType(typeFlag)
	}

	planned := settings.DefaultPlanned
	if hours > 0 {
		planned = time.Duration(hours * float64(time.Hour))
	}
	if sessionType == domain.SessionTwentyFourHour {
		planned = 24 * time.Hour
	}

	return sessionType, planned, nil
}

func runStartForm(sessionType domain.SessionType, planned time.Duration) (domain.SessionType, time.Duration, string, error) {
	typeValue := string(sessionType)
	hoursValue := strconv.FormatFloat(planned.Hours(), 'f', -1, 64)
	noteValue := ""

	options := make([]huh.Option[string], 0, len(domain.ValidSessionTypes))
	for _, t := range []domain.SessionType{
		domain.SessionIntermittent,
		domain.SessionTwentyFourHour,
		domain.SessionWater,
		domain.SessionJuice,
		domain.SessionDry,
		domain.SessionCustom,
	} {
		options = append(options, huh.NewOption(string(t), string(t)))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Fast Type").
				Options(options...).
				Value(&typeValue),
			huh.NewInput().
				Title("Goal (hours)").
				Placeholder("16").
				Value(&hoursValue).
				Validate(validatePositiveNumber),
			huh.NewInput().
				Title("Note (optional)").
				Value(&noteValue),
		),
	).WithTheme(fastrackHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", 0, "", err
	}

	hours, err := strconv.ParseFloat(hoursValue, 64)
	if err != nil {
		return "", 0, "", fmt.Errorf("invalid hours %q", hoursValue)
	}

	return domain.SessionType(typeValue), time.Duration(hours * float64(time.Hour)), noteValue, nil
}

func validatePositiveNumber(s string) error {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
