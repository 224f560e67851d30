package scheduler

import (
	"fmt"
	"time"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
)

// ValidationError describes one broken invariant in a generated pool assignment
type ValidationError struct {
	Rule        string
	Date        time.Time
	Fellow      string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s, %s)", e.Rule, e.Description, e.Date.Format(model.DateLayout), e.Fellow)
}

const (
	RuleDateInPool    = "date_in_pool"
	RuleNoBlackout    = "no_blackout"
	RuleWithinQuota   = "within_quota"
	RuleUniqueDate    = "unique_date"
	RuleUnknownFellow = "unknown_fellow"
)

// ValidateAssignments checks one pool's assignments against the pool, blackouts and quotas.
// An empty slice means every invariant holds.
func ValidateAssignments(pool []time.Time, assignments []Assignment, quota QuotaTable, blackouts model.Blackouts) []ValidationError {
	var errs []ValidationError

	poolSet := make(model.DateSet, len(pool))
	for _, d := range pool {
		poolSet.Add(d)
	}

	seen := make(model.DateSet, len(assignments))
	counts := make(map[string]int)

	for _, a := range assignments {
		if !poolSet.Contains(a.Date) {
			errs = append(errs, ValidationError{
				Rule: RuleDateInPool, Date: a.Date, Fellow: a.Fellow,
				Description: "date is not part of the pool",
			})
		}

		if seen.Contains(a.Date) {
			errs = append(errs, ValidationError{
				Rule: RuleUniqueDate, Date: a.Date, Fellow: a.Fellow,
				Description: "date assigned more than once",
			})
		}
		seen.Add(a.Date)

		if blackouts.IsBlackedOut(a.Fellow, a.Date) {
			errs = append(errs, ValidationError{
				Rule: RuleNoBlackout, Date: a.Date, Fellow: a.Fellow,
				Description: "fellow is blacked out on this date",
			})
		}

		limit, ok := quota[a.Fellow]
		if !ok {
			errs = append(errs, ValidationError{
				Rule: RuleUnknownFellow, Date: a.Date, Fellow: a.Fellow,
				Description: "fellow has no quota in this pool",
			})
			continue
		}

		counts[a.Fellow]++
		if counts[a.Fellow] == limit+1 {
			errs = append(errs, ValidationError{
				Rule: RuleWithinQuota, Date: a.Date, Fellow: a.Fellow,
				Description: fmt.Sprintf("fellow exceeds pool quota of %d", limit),
			})
		}
	}

	return errs
}

// ValidateSchedule checks that no date appears twice across the merged schedule
func ValidateSchedule(schedule []ScheduleEntry) []ValidationError {
	var errs []ValidationError

	seen := make(model.DateSet, len(schedule))
	for _, entry := range schedule {
		if seen.Contains(entry.Date) {
			errs = append(errs, ValidationError{
				Rule: RuleUniqueDate, Date: entry.Date, Fellow: entry.Fellow,
				Description: "date appears more than once in the schedule",
			})
		}
		seen.Add(entry.Date)
	}

	return errs
}
