package scheduler

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// Generate runs the full assignment pipeline for one month.
//
// The roster guard runs before any random draw, so an invalid roster consumes no
// randomness and produces no partial schedule. Random draws happen in a fixed order
// (weekday assignment, weekend quota sample, weekend assignment), so two runs with
// identically seeded sources and identical input produce identical outcomes.
func Generate(input Input, rng *rand.Rand) (*Outcome, error) {
	if len(input.Roster.FirstYear) == 0 || len(input.Roster.SecondYear) == 0 {
		return nil, ErrInvalidRoster
	}

	pool, err := BuildDatePool(input.MonthStart, input.MonthEnd)
	if err != nil {
		return nil, err
	}

	fellows := input.Roster.All()

	weekdayQuotas, err := WeekdayQuotas(len(pool.Weekdays), input.Roster)
	if err != nil {
		return nil, fmt.Errorf("failed to compute weekday quotas: %w", err)
	}
	weekdayAssignments := Assign(pool.Weekdays, fellows, weekdayQuotas, input.Blackouts, rng)

	weekendQuotas, err := WeekendQuotas(len(pool.Weekends), fellows, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to compute weekend quotas: %w", err)
	}
	weekendAssignments := Assign(pool.Weekends, fellows, weekendQuotas, input.Blackouts, rng)

	// Anything the validator finds here is a bug, not a scheduling outcome
	var violations []ValidationError
	violations = append(violations, ValidateAssignments(pool.Weekdays, weekdayAssignments, weekdayQuotas, input.Blackouts)...)
	violations = append(violations, ValidateAssignments(pool.Weekends, weekendAssignments, weekendQuotas, input.Blackouts)...)

	schedule := AssembleSchedule(weekdayAssignments, weekendAssignments)
	violations = append(violations, ValidateSchedule(schedule)...)

	if len(violations) > 0 {
		errs := make([]error, 0, len(violations)+1)
		errs = append(errs, ErrInvariantViolation)
		for _, v := range violations {
			errs = append(errs, v)
		}
		return nil, errors.Join(errs...)
	}

	return &Outcome{
		Schedule:       schedule,
		Summary:        Summarise(schedule, input.Roster),
		ClinicCoverage: FindClinicCoverage(schedule, input.ClinicDate),
		Pool:           pool,
		WeekdayQuotas:  weekdayQuotas,
		WeekendQuotas:  weekendQuotas,
		Gaps:           FindGaps(pool, schedule),
	}, nil
}

// NewRand returns a random source seeded from a single value
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
