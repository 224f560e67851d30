package commands

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/fatih/color"

	"github.com/jakechorley/tox-oncall/pkg/core/blackout"
	"github.com/jakechorley/tox-oncall/pkg/core/model"
	"github.com/jakechorley/tox-oncall/pkg/core/scheduler"
	"github.com/jakechorley/tox-oncall/pkg/core/services"
)

const clinicDateLayout = "Monday, January 02, 2006"

var (
	successStyle = color.New(color.FgGreen)
	warningStyle = color.New(color.FgYellow)
	headerStyle  = color.New(color.Bold)
	weekendStyle = color.New(color.FgCyan)
)

// clinicMessage describes who covers the clinic day
func clinicMessage(coverage scheduler.ClinicCoverage) string {
	if !coverage.Assigned {
		return "No fellow is assigned for the clinic day you selected."
	}
	return fmt.Sprintf("%s is on call for the clinic day: %s", coverage.Fellow, coverage.Date.Format(clinicDateLayout))
}

func renderSchedule(w io.Writer, result *services.GenerateScheduleResult) {
	outcome := result.Outcome

	successStyle.Fprintf(w, "\n✓ Schedule generated for %s %d\n\n", result.MonthStart.Month(), result.MonthStart.Year())
	fmt.Fprintf(w, "Run ID: %s\n", result.RunID)
	fmt.Fprintf(w, "Seed:   %d\n\n", result.Seed)

	headerStyle.Fprintf(w, "%-12s %-10s %s\n", "Date", "Day", "Fellow")
	for _, entry := range outcome.Schedule {
		line := fmt.Sprintf("%-12s %-10s %s", entry.Date.Format(model.DateLayout), entry.Weekday, entry.Fellow)
		if entry.IsWeekend() {
			weekendStyle.Fprintln(w, line)
			continue
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)

	headerStyle.Fprintln(w, "Clinic Day Coverage")
	if outcome.ClinicCoverage.Assigned {
		successStyle.Fprintf(w, "  %s\n\n", clinicMessage(outcome.ClinicCoverage))
	} else {
		warningStyle.Fprintf(w, "  %s\n\n", clinicMessage(outcome.ClinicCoverage))
	}

	renderSummary(w, outcome.Summary)
	renderGaps(w, result.GapReports)
}

func renderSummary(w io.Writer, summary []scheduler.SummaryRow) {
	headerStyle.Fprintln(w, "Shift Summary per Fellow")
	headerStyle.Fprintf(w, "  %-20s %12s %14s\n", "Fellow", "Total Shifts", "Weekend Shifts")
	for _, row := range summary {
		fmt.Fprintf(w, "  %-20s %12d %14d\n", row.Fellow, row.TotalShifts, row.WeekendShifts)
	}
	fmt.Fprintln(w)
}

func renderGaps(w io.Writer, gaps []services.GapReport) {
	if len(gaps) == 0 {
		return
	}

	warningStyle.Fprintf(w, "⚠️  %d date(s) could not be covered:\n", len(gaps))
	for _, gap := range gaps {
		fmt.Fprintf(w, "  %s (%s)\n", gap.Date.Format(model.DateLayout), gap.Date.Weekday())
		if len(gap.Unavailable) > 0 {
			fmt.Fprintf(w, "    unavailable: %s\n", describeUnavailable(gap.Unavailable))
		}
		if len(gap.AtQuota) > 0 {
			fmt.Fprintf(w, "    at quota:    %s\n", strings.Join(gap.AtQuota, ", "))
		}
	}
	fmt.Fprintln(w)
}

// describeUnavailable renders "Name (duty, off_day)" pairs sorted by name
func describeUnavailable(unavailable map[string][]blackout.Reason) string {
	names := make([]string, 0, len(unavailable))
	for name := range unavailable {
		names = append(names, name)
	}
	slices.Sort(names)

	parts := make([]string, len(names))
	for i, name := range names {
		reasons := make([]string, len(unavailable[name]))
		for j, r := range unavailable[name] {
			reasons[j] = string(r)
		}
		parts[i] = fmt.Sprintf("%s (%s)", name, strings.Join(reasons, ", "))
	}
	return strings.Join(parts, "; ")
}

func renderRoster(w io.Writer, entries []services.RosterEntry) {
	fmt.Fprintf(w, "\nFound %d fellows:\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(w, "- %s (%s) - %s - %d duty shift(s), %d off-day request(s)\n",
			e.Fellow.Name,
			e.Fellow.ID,
			e.Fellow.Tier,
			e.DutyShifts,
			e.OffDayRequests,
		)
	}
}
