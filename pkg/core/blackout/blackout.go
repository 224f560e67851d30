package blackout

import (
	"fmt"
	"slices"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
)

// Reason records why a fellow is unavailable on a date
type Reason string

const (
	ReasonDuty   Reason = "duty"
	ReasonOffDay Reason = "off_day"
)

// LateStartCutoff is the time of day from which a duty shift no longer blocks its start day.
// A duty shift starting at or after 23:00 leaves the fellow free for on-call that day.
const LateStartCutoff = 23 * time.Hour

// DefaultDutyStartTime is used when a duty shift has no explicit start time
const DefaultDutyStartTime = 7 * time.Hour

// DutyShift is an external-duty commitment (e.g. an emergency medicine shift) spanning
// Start to End inclusive. If Recurrence is set, the span repeats at every occurrence of
// the RFC 5545 rule, with the first occurrence on Start.
type DutyShift struct {
	Fellow     string
	Start      time.Time
	End        time.Time // Zero means a single day
	StartTime  time.Duration
	Recurrence string
}

// OffDays is a requested day-off range, Start to End inclusive
type OffDays struct {
	Fellow string
	Start  time.Time
	End    time.Time // Zero means a single day
}

// Builder accumulates duty shifts and off-day requests into per-fellow blackout sets.
// The window bounds the expansion of recurring duty shifts only.
type Builder struct {
	windowStart time.Time
	windowEnd   time.Time
	reasons     map[string]map[time.Time][]Reason
}

// NewBuilder creates a builder for the given date window (normally the scheduled month)
func NewBuilder(windowStart, windowEnd time.Time) *Builder {
	return &Builder{
		windowStart: model.Date(windowStart),
		windowEnd:   model.Date(windowEnd),
		reasons:     make(map[string]map[time.Time][]Reason),
	}
}

// ParseStartTime parses an HH:MM clock time into an offset from midnight
func ParseStartTime(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("invalid start time %q: %w", s, err)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

// AddDutyShift blacks out every day covered by the duty shift, unless it starts at or after 23:00
func (b *Builder) AddDutyShift(shift DutyShift) error {
	start, end, err := normaliseRange(shift.Start, shift.End)
	if err != nil {
		return fmt.Errorf("duty shift for %s: %w", shift.Fellow, err)
	}

	var rule *rrule.RRule
	if shift.Recurrence != "" {
		rule, err = rrule.StrToRRule(shift.Recurrence)
		if err != nil {
			return fmt.Errorf("duty shift for %s: invalid rrule: %w", shift.Fellow, err)
		}
	}

	if shift.StartTime >= LateStartCutoff {
		return nil
	}

	if rule == nil {
		b.addRange(shift.Fellow, start, end, ReasonDuty)
		return nil
	}

	span := int(end.Sub(start).Hours() / 24)
	rule.DTStart(start)
	// Occurrences starting up to span days before the window still reach into it
	for _, occurrence := range rule.Between(b.windowStart.AddDate(0, 0, -span), b.windowEnd, true) {
		first := model.Date(occurrence)
		b.addRange(shift.Fellow, first, first.AddDate(0, 0, span), ReasonDuty)
	}

	return nil
}

// AddOffDays blacks out every day in the requested range
func (b *Builder) AddOffDays(off OffDays) error {
	start, end, err := normaliseRange(off.Start, off.End)
	if err != nil {
		return fmt.Errorf("off days for %s: %w", off.Fellow, err)
	}

	b.addRange(off.Fellow, start, end, ReasonOffDay)
	return nil
}

// Blackouts returns the merged blackout set per fellow, without reasons.
// The returned map is a fresh copy; later additions to the builder do not affect it.
func (b *Builder) Blackouts() model.Blackouts {
	blackouts := make(model.Blackouts, len(b.reasons))
	for fellow, dates := range b.reasons {
		set := make(model.DateSet, len(dates))
		for d := range dates {
			set.Add(d)
		}
		blackouts[fellow] = set
	}
	return blackouts
}

// Explain returns every reason the fellow is blacked out on the date, or nil if available
func (b *Builder) Explain(fellow string, date time.Time) []Reason {
	return slices.Clone(b.reasons[fellow][model.Date(date)])
}

func (b *Builder) addRange(fellow string, start, end time.Time, reason Reason) {
	dates, ok := b.reasons[fellow]
	if !ok {
		dates = make(map[time.Time][]Reason)
		b.reasons[fellow] = dates
	}

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !slices.Contains(dates[d], reason) {
			dates[d] = append(dates[d], reason)
		}
	}
}

func normaliseRange(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("start date is required")
	}

	start = model.Date(start)
	if end.IsZero() {
		return start, start, nil
	}

	end = model.Date(end)
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s is before start date %s",
			end.Format(model.DateLayout), start.Format(model.DateLayout))
	}

	return start, end, nil
}
