package scheduler

import (
	"math/rand/v2"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
)

// WeekdayQuotas computes per-fellow targets for the weekday pool.
//
// base = poolSize / N (floor), where N counts both tiers. Second-year fellows get base,
// first-year fellows get base+1. The quotas are not reconciled against poolSize, so their
// sum may be above or below it.
func WeekdayQuotas(poolSize int, roster model.Roster) (QuotaTable, error) {
	n := roster.Size()
	if n == 0 {
		return nil, ErrEmptyRoster
	}

	base := poolSize / n

	quotas := make(QuotaTable, n)
	for _, f := range roster.FirstYear {
		quotas[f] = base + 1
	}
	for _, f := range roster.SecondYear {
		quotas[f] = base
	}

	return quotas, nil
}

// WeekendQuotas computes per-fellow targets for the weekend pool, ignoring tiers.
//
// Every fellow gets poolSize / N, then poolSize mod N distinct fellows drawn uniformly
// at random get one more. The quotas always sum to poolSize.
func WeekendQuotas(poolSize int, fellows []string, rng *rand.Rand) (QuotaTable, error) {
	n := len(fellows)
	if n == 0 {
		return nil, ErrEmptyRoster
	}

	base := poolSize / n
	remainder := poolSize % n

	quotas := make(QuotaTable, n)
	for _, f := range fellows {
		quotas[f] = base
	}

	// First `remainder` indices of a random permutation form a sample without repeats
	for _, idx := range rng.Perm(n)[:remainder] {
		quotas[fellows[idx]]++
	}

	return quotas, nil
}
