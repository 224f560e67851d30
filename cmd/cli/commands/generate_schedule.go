package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/tox-oncall/internal/config"
	"github.com/jakechorley/tox-oncall/pkg/core/services"
	"github.com/jakechorley/tox-oncall/pkg/export"
)

// GenerateCmd creates the generate command
func GenerateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the on-call schedule for a month",
		Long: `Generate the on-call schedule for a month from the roster and blackouts.

Year and month default to the config file values, then to the current month.
The clinic date defaults to the config file value, then to the first Thursday of the month.
Pass --seed to reproduce an earlier run; the seed used is always printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			month, _ := cmd.Flags().GetInt("month")
			clinicDate, _ := cmd.Flags().GetString("clinic-date")
			seedFlag, _ := cmd.Flags().GetString("seed")
			csvPath, _ := cmd.Flags().GetString("csv")
			source, _ := cmd.Flags().GetString("source")

			params, err := resolveGenerateParams(app.Cfg, time.Now(), year, month, clinicDate, seedFlag)
			if err != nil {
				return err
			}

			reader, err := app.RosterSource(source)
			if err != nil {
				return err
			}

			result, err := services.GenerateSchedule(app.Ctx, reader, app.Logger, params)
			if err != nil {
				return err
			}

			renderSchedule(cmd.OutOrStdout(), result)

			if csvPath != "" {
				if err := export.WriteCSVFile(csvPath, result.Outcome.Schedule); err != nil {
					return err
				}
				app.Logger.Info("Schedule written to CSV", zap.String("path", csvPath))
				successStyle.Fprintf(cmd.OutOrStdout(), "✓ Schedule saved to %s\n\n", csvPath)
			}

			return nil
		},
	}

	cmd.Flags().Int("year", 0, "Year to schedule (default: config year, then current year)")
	cmd.Flags().Int("month", 0, "Month to schedule, 1-12 (default: config month, then current month)")
	cmd.Flags().String("clinic-date", "", "Toxicology clinic date, YYYY-MM-DD (default: first Thursday)")
	cmd.Flags().String("seed", "", "Seed for random decisions")
	cmd.Flags().String("csv", "", "Write the schedule as CSV to this path")
	cmd.Flags().Lookup("csv").NoOptDefVal = export.DefaultCSVFileName
	cmd.Flags().String("source", "", "Roster source: config or postgres (default: postgres when configured)")

	return cmd
}

// resolveGenerateParams applies flag, then config, then calendar defaults
func resolveGenerateParams(cfg *config.Config, now time.Time, year, month int, clinicDate, seed string) (services.GenerateScheduleParams, error) {
	params := services.GenerateScheduleParams{
		Year:       now.Year(),
		Month:      now.Month(),
		ClinicDate: clinicDate,
	}

	if cfg != nil {
		if cfg.Year != 0 {
			params.Year = cfg.Year
		}
		if cfg.Month != 0 {
			params.Month = time.Month(cfg.Month)
		}
		if params.ClinicDate == "" {
			params.ClinicDate = cfg.ClinicDate
		}
	}

	if year != 0 {
		params.Year = year
	}
	if month != 0 {
		if month < 1 || month > 12 {
			return params, fmt.Errorf("month must be between 1 and 12, got %d", month)
		}
		params.Month = time.Month(month)
	}

	if seed != "" {
		s, err := strconv.ParseUint(seed, 10, 64)
		if err != nil {
			return params, fmt.Errorf("seed must be a non-negative integer: %w", err)
		}
		params.Seed = &s
	}

	return params, nil
}
