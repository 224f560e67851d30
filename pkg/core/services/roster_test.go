package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jakechorley/tox-oncall/pkg/core/model"
	"github.com/jakechorley/tox-oncall/pkg/db"
)

func TestAddFellow_Success(t *testing.T) {
	store := &mockRosterStore{fellows: exampleFellows()}

	fellow, err := AddFellow(context.Background(), store, zap.NewNop(), "  Ortiz ", model.TierFirstYear)
	require.NoError(t, err)

	assert.NotEmpty(t, fellow.ID)
	assert.Equal(t, "Ortiz", fellow.Name)
	assert.Equal(t, "first-year", fellow.Tier)
	require.Len(t, store.insertedFellows, 1)
	assert.Equal(t, *fellow, store.insertedFellows[0])
}

func TestAddFellow_Errors(t *testing.T) {
	tests := []struct {
		name     string
		store    *mockRosterStore
		fellow   string
		tier     model.Tier
		contains string
	}{
		{
			name:     "empty name",
			store:    &mockRosterStore{},
			fellow:   "   ",
			tier:     model.TierFirstYear,
			contains: "must not be empty",
		},
		{
			name:     "invalid tier",
			store:    &mockRosterStore{},
			fellow:   "Ortiz",
			tier:     "attending",
			contains: "invalid tier",
		},
		{
			name:     "already exists",
			store:    &mockRosterStore{fellows: exampleFellows()},
			fellow:   "Burke",
			tier:     model.TierSecondYear,
			contains: "already exists",
		},
		{
			name:     "fetch fails",
			store:    &mockRosterStore{getFellowsErr: errors.New("timeout")},
			fellow:   "Ortiz",
			tier:     model.TierFirstYear,
			contains: "failed to fetch fellows",
		},
		{
			name:     "insert fails",
			store:    &mockRosterStore{insertErr: errors.New("unique violation")},
			fellow:   "Ortiz",
			tier:     model.TierFirstYear,
			contains: "failed to insert fellow",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fellow, err := AddFellow(context.Background(), tt.store, zap.NewNop(), tt.fellow, tt.tier)
			require.Error(t, err)
			assert.Nil(t, fellow)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Empty(t, tt.store.insertedFellows)
		})
	}
}

func TestAddBlackout_Success(t *testing.T) {
	tests := []struct {
		name   string
		record db.Blackout
	}{
		{
			name:   "single off day",
			record: db.Blackout{Fellow: "Shin", Kind: db.BlackoutKindOffDay, Start: "2026-02-03"},
		},
		{
			name:   "off-day range",
			record: db.Blackout{Fellow: "Shin", Kind: db.BlackoutKindOffDay, Start: "2026-02-03", End: "2026-02-06"},
		},
		{
			name:   "duty shift with start time",
			record: db.Blackout{Fellow: "Burke", Kind: db.BlackoutKindDuty, Start: "2026-02-10", StartTime: "19:00"},
		},
		{
			name:   "recurring duty shift",
			record: db.Blackout{Fellow: "Johnson", Kind: db.BlackoutKindDuty, Start: "2026-02-02", RRule: "FREQ=WEEKLY;BYDAY=MO"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockRosterStore{fellows: exampleFellows()}
			tt.record.ID = "caller-supplied"

			stored, err := AddBlackout(context.Background(), store, zap.NewNop(), tt.record)
			require.NoError(t, err)

			assert.NotEqual(t, "caller-supplied", stored.ID)
			assert.NotEmpty(t, stored.ID)
			require.Len(t, store.insertedBlackouts, 1)
			assert.Equal(t, *stored, store.insertedBlackouts[0])
			assert.Equal(t, tt.record.Start, stored.Start)
		})
	}
}

func TestAddBlackout_Errors(t *testing.T) {
	tests := []struct {
		name     string
		store    *mockRosterStore
		record   db.Blackout
		contains string
	}{
		{
			name:     "empty fellow",
			store:    &mockRosterStore{fellows: exampleFellows()},
			record:   db.Blackout{Kind: db.BlackoutKindOffDay, Start: "2026-02-03"},
			contains: "fellow must not be empty",
		},
		{
			name:     "unknown kind",
			store:    &mockRosterStore{fellows: exampleFellows()},
			record:   db.Blackout{Fellow: "Shin", Kind: "holiday", Start: "2026-02-03"},
			contains: "unknown blackout kind",
		},
		{
			name:     "missing start",
			store:    &mockRosterStore{fellows: exampleFellows()},
			record:   db.Blackout{Fellow: "Shin", Kind: db.BlackoutKindOffDay},
			contains: "invalid date",
		},
		{
			name:     "end before start",
			store:    &mockRosterStore{fellows: exampleFellows()},
			record:   db.Blackout{Fellow: "Shin", Kind: db.BlackoutKindOffDay, Start: "2026-02-10", End: "2026-02-03"},
			contains: "before start date",
		},
		{
			name:     "off day with start time",
			store:    &mockRosterStore{fellows: exampleFellows()},
			record:   db.Blackout{Fellow: "Shin", Kind: db.BlackoutKindOffDay, Start: "2026-02-10", StartTime: "07:00"},
			contains: "do not take a start time",
		},
		{
			name:     "bad start time",
			store:    &mockRosterStore{fellows: exampleFellows()},
			record:   db.Blackout{Fellow: "Shin", Kind: db.BlackoutKindDuty, Start: "2026-02-10", StartTime: "25:00"},
			contains: "invalid start time",
		},
		{
			name:     "bad rrule",
			store:    &mockRosterStore{fellows: exampleFellows()},
			record:   db.Blackout{Fellow: "Shin", Kind: db.BlackoutKindDuty, Start: "2026-02-10", RRule: "EVERY TUESDAY"},
			contains: "invalid rrule",
		},
		{
			name:     "unknown fellow",
			store:    &mockRosterStore{fellows: exampleFellows()},
			record:   db.Blackout{Fellow: "Nobody", Kind: db.BlackoutKindOffDay, Start: "2026-02-10"},
			contains: "unknown fellow",
		},
		{
			name:     "insert fails",
			store:    &mockRosterStore{fellows: exampleFellows(), insertErr: errors.New("disk full")},
			record:   db.Blackout{Fellow: "Shin", Kind: db.BlackoutKindOffDay, Start: "2026-02-10"},
			contains: "failed to insert blackout",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stored, err := AddBlackout(context.Background(), tt.store, zap.NewNop(), tt.record)
			require.Error(t, err)
			assert.Nil(t, stored)
			assert.Contains(t, err.Error(), tt.contains)
			assert.Empty(t, tt.store.insertedBlackouts)
		})
	}
}

func TestListRoster(t *testing.T) {
	store := &mockRosterStore{
		fellows: []db.Fellow{
			{ID: "f-3", Name: "Burke", Tier: "second-year"},
			{ID: "f-1", Name: "Shin", Tier: "first-year"},
			{ID: "f-4", Name: "Johnson", Tier: "second-year"},
			{ID: "f-2", Name: "Mahony", Tier: "first-year"},
		},
		blackouts: []db.Blackout{
			{ID: "b-1", Fellow: "Shin", Kind: db.BlackoutKindDuty},
			{ID: "b-2", Fellow: "Shin", Kind: db.BlackoutKindOffDay},
			{ID: "b-3", Fellow: "Shin", Kind: db.BlackoutKindOffDay},
			{ID: "b-4", Fellow: "Johnson", Kind: db.BlackoutKindDuty},
			{ID: "b-5", Fellow: "Ghost", Kind: db.BlackoutKindDuty},
		},
	}

	entries, err := ListRoster(context.Background(), store, zap.NewNop())
	require.NoError(t, err)
	require.Len(t, entries, 4)

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Fellow.Name
	}
	assert.Equal(t, []string{"Shin", "Mahony", "Burke", "Johnson"}, names)

	assert.Equal(t, 1, entries[0].DutyShifts)
	assert.Equal(t, 2, entries[0].OffDayRequests)
	assert.Zero(t, entries[1].DutyShifts)
	assert.Zero(t, entries[2].OffDayRequests)
	assert.Equal(t, 1, entries[3].DutyShifts)
}

func TestListRoster_FetchErrors(t *testing.T) {
	_, err := ListRoster(context.Background(), &mockRosterStore{getFellowsErr: errors.New("boom")}, zap.NewNop())
	assert.ErrorContains(t, err, "failed to fetch fellows")

	_, err = ListRoster(context.Background(), &mockRosterStore{getBlackoutsErr: errors.New("boom")}, zap.NewNop())
	assert.ErrorContains(t, err, "failed to fetch blackouts")
}
