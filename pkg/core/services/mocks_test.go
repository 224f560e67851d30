package services

import (
	"context"

	"github.com/jakechorley/tox-oncall/pkg/db"
)

// mockRosterStore implements db.RosterStore for testing
type mockRosterStore struct {
	fellows           []db.Fellow
	blackouts         []db.Blackout
	insertedFellows   []db.Fellow
	insertedBlackouts []db.Blackout
	getFellowsErr     error
	getBlackoutsErr   error
	insertErr         error
}

func (m *mockRosterStore) GetFellows(ctx context.Context) ([]db.Fellow, error) {
	if m.getFellowsErr != nil {
		return nil, m.getFellowsErr
	}
	return m.fellows, nil
}

func (m *mockRosterStore) GetBlackouts(ctx context.Context) ([]db.Blackout, error) {
	if m.getBlackoutsErr != nil {
		return nil, m.getBlackoutsErr
	}
	return m.blackouts, nil
}

func (m *mockRosterStore) InsertFellow(ctx context.Context, fellow *db.Fellow) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insertedFellows = append(m.insertedFellows, *fellow)
	return nil
}

func (m *mockRosterStore) InsertBlackout(ctx context.Context, blackout *db.Blackout) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.insertedBlackouts = append(m.insertedBlackouts, *blackout)
	return nil
}

func exampleFellows() []db.Fellow {
	return []db.Fellow{
		{ID: "f-1", Name: "Shin", Tier: "first-year"},
		{ID: "f-2", Name: "Mahony", Tier: "first-year"},
		{ID: "f-3", Name: "Burke", Tier: "second-year"},
		{ID: "f-4", Name: "Johnson", Tier: "second-year"},
	}
}
