package scheduler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
)

func TestWeekdayQuotas_ExampleRoster(t *testing.T) {
	roster := model.Roster{
		FirstYear:  []string{"Shin", "Mahony"},
		SecondYear: []string{"Burke", "Johnson"},
	}

	quotas, err := WeekdayQuotas(20, roster)
	require.NoError(t, err)

	assert.Equal(t, QuotaTable{"Shin": 6, "Mahony": 6, "Burke": 5, "Johnson": 5}, quotas)
}

func TestWeekdayQuotas_FirstYearAlwaysOneMore(t *testing.T) {
	tests := []struct {
		name          string
		poolSize      int
		firstYear     int
		secondYear    int
		expectedTotal int
	}{
		{"sum matches pool", 21, 3, 3, 21},
		{"sum exceeds pool", 21, 2, 5, 23},
		{"sum below pool", 22, 1, 5, 19},
		{"pool smaller than roster", 3, 2, 2, 2},
		{"empty pool", 0, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			roster := model.Roster{}
			for i := 0; i < tt.firstYear; i++ {
				roster.FirstYear = append(roster.FirstYear, fmt.Sprintf("first-%d", i))
			}
			for i := 0; i < tt.secondYear; i++ {
				roster.SecondYear = append(roster.SecondYear, fmt.Sprintf("second-%d", i))
			}

			quotas, err := WeekdayQuotas(tt.poolSize, roster)
			require.NoError(t, err)

			base := tt.poolSize / roster.Size()
			for _, f := range roster.FirstYear {
				assert.Equal(t, base+1, quotas[f], "first-year quota for %s", f)
			}
			for _, f := range roster.SecondYear {
				assert.Equal(t, base, quotas[f], "second-year quota for %s", f)
			}
			assert.Equal(t, tt.expectedTotal, quotas.Total())
		})
	}
}

func TestWeekdayQuotas_EmptyRoster(t *testing.T) {
	_, err := WeekdayQuotas(20, model.Roster{})
	assert.ErrorIs(t, err, ErrEmptyRoster)
}

func TestWeekendQuotas_SumEqualsPoolSize(t *testing.T) {
	rng := NewRand(7)

	for fellowCount := 1; fellowCount <= 7; fellowCount++ {
		fellows := make([]string, fellowCount)
		for i := range fellows {
			fellows[i] = fmt.Sprintf("fellow-%d", i)
		}

		for poolSize := 0; poolSize <= 20; poolSize++ {
			quotas, err := WeekendQuotas(poolSize, fellows, rng)
			require.NoError(t, err)

			assert.Equal(t, poolSize, quotas.Total(), "fellows=%d pool=%d", fellowCount, poolSize)
			assert.Len(t, quotas, fellowCount)

			base := poolSize / fellowCount
			bumped := 0
			for _, f := range fellows {
				q := quotas[f]
				assert.True(t, q == base || q == base+1, "quota %d outside [%d, %d]", q, base, base+1)
				if q == base+1 {
					bumped++
				}
			}
			assert.Equal(t, poolSize%fellowCount, bumped)
		}
	}
}

func TestWeekendQuotas_RemainderIsRandomised(t *testing.T) {
	fellows := []string{"Shin", "Mahony", "Burke", "Johnson"}
	rng := NewRand(99)

	// 9 dates over 4 fellows leaves one extra shift; across many draws every fellow should get it
	winners := make(map[string]int)
	for i := 0; i < 200; i++ {
		quotas, err := WeekendQuotas(9, fellows, rng)
		require.NoError(t, err)
		for f, q := range quotas {
			if q == 3 {
				winners[f]++
			}
		}
	}

	assert.Len(t, winners, len(fellows))
}

func TestWeekendQuotas_EmptyRoster(t *testing.T) {
	_, err := WeekendQuotas(8, nil, NewRand(1))
	assert.ErrorIs(t, err, ErrEmptyRoster)
}

func TestWeekendQuotas_DoesNotMutateFellows(t *testing.T) {
	fellows := []string{"Shin", "Mahony", "Burke", "Johnson"}
	original := append([]string(nil), fellows...)

	_, err := WeekendQuotas(10, fellows, NewRand(3))
	require.NoError(t, err)

	assert.Equal(t, original, fellows)
}
