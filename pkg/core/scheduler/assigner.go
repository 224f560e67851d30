package scheduler

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
)

// Assign runs one randomized greedy pass over a pool of dates.
//
// Dates are visited in a random order. For each date the fellows are reshuffled and the
// first fellow who is not blacked out and is still under quota takes the date. A date with
// no eligible fellow is dropped and produces no assignment.
//
// The dates and fellows slices are copied before shuffling.
func Assign(dates []time.Time, fellows []string, quota QuotaTable, blackouts model.Blackouts, rng *rand.Rand) []Assignment {
	datePool := slices.Clone(dates)
	rng.Shuffle(len(datePool), func(i, j int) {
		datePool[i], datePool[j] = datePool[j], datePool[i]
	})

	order := slices.Clone(fellows)
	assignedCount := make(map[string]int, len(order))
	assignments := make([]Assignment, 0, len(datePool))

	for _, date := range datePool {
		rng.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})

		for _, fellow := range order {
			if blackouts.IsBlackedOut(fellow, date) {
				continue
			}
			if assignedCount[fellow] >= quota[fellow] {
				continue
			}

			assignments = append(assignments, Assignment{Date: model.Date(date), Fellow: fellow})
			assignedCount[fellow]++
			break
		}
	}

	return assignments
}
