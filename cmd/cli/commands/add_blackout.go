package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jakechorley/tox-oncall/pkg/core/services"
	"github.com/jakechorley/tox-oncall/pkg/db"
)

// AddOffDaysCmd creates the addOffDays command
func AddOffDaysCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "addOffDays <fellow> <start> [end]",
		Short: "Record requested days off for a fellow (dates YYYY-MM-DD, inclusive)",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			record := db.Blackout{
				Fellow: args[0],
				Kind:   db.BlackoutKindOffDay,
				Start:  args[1],
			}
			if len(args) > 2 {
				record.End = args[2]
			}

			return addBlackout(app, cmd.OutOrStdout(), record)
		},
	}
}

// AddDutyShiftCmd creates the addDutyShift command
func AddDutyShiftCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addDutyShift <fellow> <start> [end]",
		Short: "Record an external duty shift for a fellow (dates YYYY-MM-DD, inclusive)",
		Long: `Record an external duty shift (e.g. an EM shift) for a fellow.

A shift starting at or after 23:00 does not block on-call. Shifts without
--start-time are treated as starting at 07:00. Pass --rrule to repeat the
shift, e.g. --rrule "FREQ=WEEKLY;BYDAY=TU".`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			startTime, _ := cmd.Flags().GetString("start-time")
			rule, _ := cmd.Flags().GetString("rrule")

			record := db.Blackout{
				Fellow:    args[0],
				Kind:      db.BlackoutKindDuty,
				Start:     args[1],
				StartTime: startTime,
				RRule:     rule,
			}
			if len(args) > 2 {
				record.End = args[2]
			}

			return addBlackout(app, cmd.OutOrStdout(), record)
		},
	}

	cmd.Flags().String("start-time", "", "Shift start time, HH:MM (default 07:00)")
	cmd.Flags().String("rrule", "", "RFC 5545 recurrence rule for repeating shifts")

	return cmd
}

func addBlackout(app *AppContext, w io.Writer, record db.Blackout) error {
	store, err := app.Store()
	if err != nil {
		return err
	}

	stored, err := services.AddBlackout(app.Ctx, store, app.Logger, record)
	if err != nil {
		return err
	}

	span := stored.Start
	if stored.End != "" {
		span = fmt.Sprintf("%s to %s", stored.Start, stored.End)
	}
	successStyle.Fprintf(w, "\n✓ Recorded %s for %s: %s\n", stored.Kind, stored.Fellow, span)
	if stored.RRule != "" {
		fmt.Fprintf(w, "  Repeats: %s\n", stored.RRule)
	}
	fmt.Fprintf(w, "  ID: %s\n\n", stored.ID)
	return nil
}
