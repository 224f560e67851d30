package db

import "context"

// RosterReader defines the read operations needed to build scheduling input
type RosterReader interface {
	GetFellows(ctx context.Context) ([]Fellow, error)
	GetBlackouts(ctx context.Context) ([]Blackout, error)
}

// RosterStore defines the interface for roster and blackout database operations.
// Generated schedules are never stored.
type RosterStore interface {
	RosterReader
	InsertFellow(ctx context.Context, fellow *Fellow) error
	InsertBlackout(ctx context.Context, blackout *Blackout) error
}
