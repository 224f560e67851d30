package scheduler

import (
	"fmt"
	"time"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
)

// MonthBounds returns the first and last calendar day of the given month
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of the following month normalises to the last day of this one
	end := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC)
	return start, end
}

// BuildDatePool enumerates every date from start to end inclusive and partitions
// them into weekday (Mon-Fri) and weekend (Sat-Sun) pools
func BuildDatePool(start, end time.Time) (*DatePool, error) {
	start = model.Date(start)
	end = model.Date(end)

	if end.Before(start) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidDateRange,
			start.Format(model.DateLayout), end.Format(model.DateLayout))
	}

	pool := &DatePool{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		pool.All = append(pool.All, d)
		if model.IsWeekend(d) {
			pool.Weekends = append(pool.Weekends, d)
		} else {
			pool.Weekdays = append(pool.Weekdays, d)
		}
	}

	return pool, nil
}

// Contains reports whether the date is part of the pool
func (p *DatePool) Contains(t time.Time) bool {
	d := model.Date(t)
	for _, candidate := range p.All {
		if candidate.Equal(d) {
			return true
		}
	}
	return false
}
