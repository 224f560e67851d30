package postgres

import (
	"context"
	"fmt"

	"github.com/jakechorley/tox-oncall/pkg/db"
)

// GetFellows retrieves all fellows in insertion order
func (d *DB) GetFellows(ctx context.Context) ([]db.Fellow, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT id::text, name, tier
		FROM fellow
		ORDER BY created_at, name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query fellows: %w", err)
	}
	defer rows.Close()

	var fellows []db.Fellow
	for rows.Next() {
		var f db.Fellow
		if err := rows.Scan(&f.ID, &f.Name, &f.Tier); err != nil {
			return nil, fmt.Errorf("failed to scan fellow: %w", err)
		}
		fellows = append(fellows, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fellows: %w", err)
	}

	return fellows, nil
}

// InsertFellow inserts a new fellow record
func (d *DB) InsertFellow(ctx context.Context, fellow *db.Fellow) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO fellow (id, name, tier)
		VALUES ($1, $2, $3)
	`, fellow.ID, fellow.Name, fellow.Tier)
	if err != nil {
		return fmt.Errorf("failed to insert fellow: %w", err)
	}
	return nil
}
