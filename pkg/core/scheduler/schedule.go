package scheduler

import (
	"slices"
	"time"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
)

// AssembleSchedule merges the weekday and weekend pool results into a single schedule
// sorted ascending by date, labelling each entry with its weekday name
func AssembleSchedule(weekday, weekend []Assignment) []ScheduleEntry {
	schedule := make([]ScheduleEntry, 0, len(weekday)+len(weekend))

	for _, assignments := range [][]Assignment{weekday, weekend} {
		for _, a := range assignments {
			schedule = append(schedule, ScheduleEntry{
				Date:    a.Date,
				Weekday: a.Date.Weekday().String(),
				Fellow:  a.Fellow,
			})
		}
	}

	slices.SortStableFunc(schedule, func(a, b ScheduleEntry) int {
		return a.Date.Compare(b.Date)
	})

	return schedule
}

// Summarise counts total and weekend shifts per fellow.
// Every rostered fellow gets a row, including fellows with no shifts, in roster order.
func Summarise(schedule []ScheduleEntry, roster model.Roster) []SummaryRow {
	fellows := roster.All()

	rows := make([]SummaryRow, len(fellows))
	index := make(map[string]int, len(fellows))
	for i, f := range fellows {
		rows[i] = SummaryRow{Fellow: f}
		index[f] = i
	}

	for _, entry := range schedule {
		i, ok := index[entry.Fellow]
		if !ok {
			// Not on the roster; still reported so totals add up
			i = len(rows)
			index[entry.Fellow] = i
			rows = append(rows, SummaryRow{Fellow: entry.Fellow})
		}

		rows[i].TotalShifts++
		if entry.IsWeekend() {
			rows[i].WeekendShifts++
		}
	}

	return rows
}

// FindClinicCoverage looks up the fellow on call for the clinic date
func FindClinicCoverage(schedule []ScheduleEntry, clinicDate time.Time) ClinicCoverage {
	date := model.Date(clinicDate)
	coverage := ClinicCoverage{Date: date}

	for _, entry := range schedule {
		if entry.Date.Equal(date) {
			coverage.Fellow = entry.Fellow
			coverage.Assigned = true
			break
		}
	}

	return coverage
}

// FindGaps returns the pool dates that have no schedule entry
func FindGaps(pool *DatePool, schedule []ScheduleEntry) []time.Time {
	filled := make(model.DateSet, len(schedule))
	for _, entry := range schedule {
		filled.Add(entry.Date)
	}

	gaps := make([]time.Time, 0)
	for _, d := range pool.All {
		if !filled.Contains(d) {
			gaps = append(gaps, d)
		}
	}
	return gaps
}
