package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
)

func date(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func datesBetween(start, end string) []time.Time {
	var dates []time.Time
	for d := date(start); !d.After(date(end)); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates
}

func blackoutOf(dates ...time.Time) model.DateSet {
	set := make(model.DateSet)
	for _, d := range dates {
		set.Add(d)
	}
	return set
}

func TestAssign_FillsEveryDateWhenCapacityAllows(t *testing.T) {
	dates := datesBetween("2026-02-02", "2026-02-06")
	fellows := []string{"Shin", "Burke"}
	quota := QuotaTable{"Shin": 3, "Burke": 3}

	assignments := Assign(dates, fellows, quota, model.Blackouts{}, NewRand(1))

	require.Len(t, assignments, len(dates))
	errs := ValidateAssignments(dates, assignments, quota, model.Blackouts{})
	assert.Empty(t, errs)
}

func TestAssign_RespectsBlackouts(t *testing.T) {
	dates := datesBetween("2026-02-02", "2026-02-06")
	fellows := []string{"Shin", "Burke"}
	quota := QuotaTable{"Shin": 5, "Burke": 5}
	blackouts := model.Blackouts{
		"Shin": blackoutOf(date("2026-02-02"), date("2026-02-03")),
	}

	for seed := uint64(0); seed < 50; seed++ {
		assignments := Assign(dates, fellows, quota, blackouts, NewRand(seed))

		require.Len(t, assignments, len(dates))
		for _, a := range assignments {
			if a.Date.Equal(date("2026-02-02")) || a.Date.Equal(date("2026-02-03")) {
				assert.Equal(t, "Burke", a.Fellow, "seed %d", seed)
			}
		}
	}
}

func TestAssign_NeverExceedsQuota(t *testing.T) {
	dates := datesBetween("2026-02-02", "2026-02-13")
	fellows := []string{"Shin", "Mahony", "Burke"}
	quota := QuotaTable{"Shin": 1, "Mahony": 2, "Burke": 3}

	for seed := uint64(0); seed < 50; seed++ {
		assignments := Assign(dates, fellows, quota, model.Blackouts{}, NewRand(seed))

		// Capacity is 6 for 12 dates, so exactly 6 are filled
		assert.Len(t, assignments, 6)

		counts := make(map[string]int)
		for _, a := range assignments {
			counts[a.Fellow]++
		}
		assert.Equal(t, map[string]int{"Shin": 1, "Mahony": 2, "Burke": 3}, counts)
	}
}

func TestAssign_DropsDatesWithNoEligibleFellow(t *testing.T) {
	dates := datesBetween("2026-02-02", "2026-02-04")
	fellows := []string{"Shin", "Burke"}
	quota := QuotaTable{"Shin": 3, "Burke": 3}
	blocked := date("2026-02-03")
	blackouts := model.Blackouts{
		"Shin":  blackoutOf(blocked),
		"Burke": blackoutOf(blocked),
	}

	assignments := Assign(dates, fellows, quota, blackouts, NewRand(5))

	assert.Len(t, assignments, 2)
	for _, a := range assignments {
		assert.False(t, a.Date.Equal(blocked), "blocked date should be dropped")
	}
}

func TestAssign_ZeroQuotaFellowNeverAssigned(t *testing.T) {
	dates := datesBetween("2026-02-02", "2026-02-06")
	fellows := []string{"Shin", "Burke"}
	quota := QuotaTable{"Shin": 0, "Burke": 5}

	assignments := Assign(dates, fellows, quota, model.Blackouts{}, NewRand(11))

	require.Len(t, assignments, 5)
	for _, a := range assignments {
		assert.Equal(t, "Burke", a.Fellow)
	}
}

func TestAssign_DoesNotMutateInputs(t *testing.T) {
	dates := datesBetween("2026-02-01", "2026-02-28")
	fellows := []string{"Shin", "Mahony", "Burke", "Johnson"}
	originalDates := append([]time.Time(nil), dates...)
	originalFellows := append([]string(nil), fellows...)
	quota := QuotaTable{"Shin": 7, "Mahony": 7, "Burke": 7, "Johnson": 7}

	Assign(dates, fellows, quota, model.Blackouts{}, NewRand(21))

	assert.Equal(t, originalDates, dates)
	assert.Equal(t, originalFellows, fellows)
}

func TestAssign_SameSeedSameResult(t *testing.T) {
	dates := datesBetween("2026-02-01", "2026-02-28")
	fellows := []string{"Shin", "Mahony", "Burke", "Johnson"}
	quota := QuotaTable{"Shin": 7, "Mahony": 7, "Burke": 7, "Johnson": 7}

	first := Assign(dates, fellows, quota, model.Blackouts{}, NewRand(1234))
	second := Assign(dates, fellows, quota, model.Blackouts{}, NewRand(1234))

	assert.Equal(t, first, second)
}

func TestAssign_EmptyPool(t *testing.T) {
	assignments := Assign(nil, []string{"Shin"}, QuotaTable{"Shin": 1}, model.Blackouts{}, NewRand(1))
	assert.Empty(t, assignments)
}
