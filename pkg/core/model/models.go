package model

import (
	"fmt"
	"time"
)

// DateLayout is the layout used for every calendar date crossing a package boundary
const DateLayout = "2006-01-02"

type Tier string

const (
	TierFirstYear  Tier = "first-year"
	TierSecondYear Tier = "second-year"
)

func (t Tier) IsValid() bool {
	return t == TierFirstYear || t == TierSecondYear
}

// Fellow represents a roster member eligible for on-call assignment
type Fellow struct {
	Name string
	Tier Tier
}

// Roster holds the fellows partitioned by seniority tier, in caller order
type Roster struct {
	FirstYear  []string
	SecondYear []string
}

// All returns first-year fellows followed by second-year fellows in a new slice
func (r Roster) All() []string {
	all := make([]string, 0, len(r.FirstYear)+len(r.SecondYear))
	all = append(all, r.FirstYear...)
	all = append(all, r.SecondYear...)
	return all
}

// Size returns the combined number of fellows across both tiers
func (r Roster) Size() int {
	return len(r.FirstYear) + len(r.SecondYear)
}

// TierOf returns the tier of the named fellow and whether the fellow is rostered
func (r Roster) TierOf(name string) (Tier, bool) {
	for _, f := range r.FirstYear {
		if f == name {
			return TierFirstYear, true
		}
	}
	for _, f := range r.SecondYear {
		if f == name {
			return TierSecondYear, true
		}
	}
	return "", false
}

// Duplicates returns names that appear more than once across the whole roster
func (r Roster) Duplicates() []string {
	seen := make(map[string]int)
	var dups []string
	for _, name := range r.All() {
		seen[name]++
		if seen[name] == 2 {
			dups = append(dups, name)
		}
	}
	return dups
}

// NewRoster builds a roster from fellows, preserving their order within each tier
func NewRoster(fellows []Fellow) (Roster, error) {
	var roster Roster
	for _, f := range fellows {
		switch f.Tier {
		case TierFirstYear:
			roster.FirstYear = append(roster.FirstYear, f.Name)
		case TierSecondYear:
			roster.SecondYear = append(roster.SecondYear, f.Name)
		default:
			return Roster{}, fmt.Errorf("fellow %q has invalid tier %q", f.Name, f.Tier)
		}
	}
	return roster, nil
}

// Date truncates t to a calendar date at midnight UTC.
// Every date stored in a DateSet or schedule goes through Date so that equal
// calendar days compare equal regardless of their original location or clock.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date(d), nil
}

// IsWeekend reports whether the date falls on a Saturday or Sunday
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// DateSet is a set of calendar dates
type DateSet map[time.Time]struct{}

func (s DateSet) Add(t time.Time) {
	s[Date(t)] = struct{}{}
}

func (s DateSet) Contains(t time.Time) bool {
	_, ok := s[Date(t)]
	return ok
}

// Blackouts maps a fellow name to the merged set of dates on which that fellow is unavailable.
// A missing entry means the fellow has no blackout dates.
type Blackouts map[string]DateSet

// IsBlackedOut reports whether the fellow is unavailable on the given date
func (b Blackouts) IsBlackedOut(fellow string, t time.Time) bool {
	set, ok := b[fellow]
	if !ok {
		return false
	}
	return set.Contains(t)
}
