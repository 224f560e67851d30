package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/tox-oncall/pkg/db"
)

// GetBlackouts retrieves all blackout records, ordered by fellow then start date
func (d *DB) GetBlackouts(ctx context.Context) ([]db.Blackout, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text, fellow_name, kind,
		       to_char(start_date, 'YYYY-MM-DD'),
		       to_char(end_date, 'YYYY-MM-DD'),
		       to_char(start_time, 'HH24:MI'),
		       rrule
		FROM blackout
		ORDER BY fellow_name, start_date
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query blackouts: %w", err)
	}
	defer rows.Close()

	var blackouts []db.Blackout
	for rows.Next() {
		var b db.Blackout
		var end, startTime, rrule *string
		if err := rows.Scan(&b.ID, &b.Fellow, &b.Kind, &b.Start, &end, &startTime, &rrule); err != nil {
			return nil, fmt.Errorf("failed to scan blackout: %w", err)
		}
		if end != nil {
			b.End = *end
		}
		if startTime != nil {
			b.StartTime = *startTime
		}
		if rrule != nil {
			b.RRule = *rrule
		}
		blackouts = append(blackouts, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating blackouts: %w", err)
	}

	return blackouts, nil
}

// InsertBlackout inserts a new blackout record
func (d *DB) InsertBlackout(ctx context.Context, blackout *db.Blackout) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO blackout (id, fellow_name, kind, start_date, end_date, start_time, rrule)
		VALUES ($1, $2, $3, $4::date, $5::date, $6::time, $7)
	`,
		blackout.ID,
		blackout.Fellow,
		blackout.Kind,
		blackout.Start,
		nullable(blackout.End),
		nullable(blackout.StartTime),
		nullable(blackout.RRule),
	)
	if err != nil {
		return fmt.Errorf("failed to insert blackout: %w", err)
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
