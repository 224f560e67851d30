package scheduler

import (
	"errors"
	"time"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
)

var (
	// ErrEmptyRoster is returned when quotas are requested for a roster with no fellows
	ErrEmptyRoster = errors.New("cannot compute quotas for an empty roster")

	// ErrInvalidRoster is returned when either seniority tier has no fellows
	ErrInvalidRoster = errors.New("both first-year and second-year fellows are required")

	// ErrInvalidDateRange is returned when the month end precedes the month start
	ErrInvalidDateRange = errors.New("date range end is before start")

	// ErrInvariantViolation is returned when a generated schedule breaks a scheduling invariant
	ErrInvariantViolation = errors.New("generated schedule violates scheduling invariants")
)

// DatePool is the ordered set of dates in the target month, split into weekday and weekend pools
type DatePool struct {
	// All dates in ascending order
	All []time.Time

	// Weekdays holds Monday to Friday dates in ascending order
	Weekdays []time.Time

	// Weekends holds Saturday and Sunday dates in ascending order
	Weekends []time.Time
}

// QuotaTable maps a fellow to the maximum number of dates they may receive within one pool
type QuotaTable map[string]int

// Total returns the sum of all quotas in the table
func (q QuotaTable) Total() int {
	total := 0
	for _, n := range q {
		total += n
	}
	return total
}

// Assignment is a single (date, fellow) pair produced by the assigner
type Assignment struct {
	Date   time.Time
	Fellow string
}

// ScheduleEntry is an assignment labelled with its weekday name
type ScheduleEntry struct {
	Date    time.Time
	Weekday string
	Fellow  string
}

// IsWeekend reports whether the entry falls on a weekend date
func (e ScheduleEntry) IsWeekend() bool {
	return model.IsWeekend(e.Date)
}

// SummaryRow holds per-fellow shift counts for a generated schedule
type SummaryRow struct {
	Fellow        string
	TotalShifts   int
	WeekendShifts int
}

// ClinicCoverage reports who is on call for the clinic date, if anyone
type ClinicCoverage struct {
	Date     time.Time
	Fellow   string
	Assigned bool
}

// Input contains everything the engine needs for one run.
// The engine never mutates any of it.
type Input struct {
	Roster     model.Roster
	MonthStart time.Time
	MonthEnd   time.Time
	Blackouts  model.Blackouts
	ClinicDate time.Time
}

// Outcome represents the result of one schedule generation
type Outcome struct {
	// Schedule is sorted ascending by date, one entry per filled date
	Schedule []ScheduleEntry

	// Summary has one row per rostered fellow, first-year fellows first
	Summary []SummaryRow

	ClinicCoverage ClinicCoverage

	Pool          *DatePool
	WeekdayQuotas QuotaTable
	WeekendQuotas QuotaTable

	// Gaps lists pool dates that received no fellow, in ascending order
	Gaps []time.Time
}
