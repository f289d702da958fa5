package postgres

import (
	"context"
	"time"

	"coachnutri/internal/domain"
)

// CreateWeightEntry inserts a weight entry.
func (d *DB) CreateWeightEntry(ctx context.Context, e *domain.WeightEntry) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO weight_entries(id, user_id, date, weight_kg, note, source, created_at, updated_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7, $8);`,
		e.ID, e.UserID, e.Date.UTC(), e.WeightKg, e.Note, e.Source, e.CreatedAt.UTC(), e.UpdatedAt.UTC())
	return err
}

// ListWeightEntries returns the user's entries within [start, end],
// ascending by date.
func (d *DB) ListWeightEntries(ctx context.Context, userID int64, start, end time.Time) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, date, weight_kg, note, source, created_at, updated_at
		 FROM weight_entries
		 WHERE user_id = $1 AND date >= $2 AND date <= $3
		 ORDER BY date ASC;`,
		userID, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.WeightEntry
	for rows.Next() {
		var e domain.WeightEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Date, &e.WeightKg, &e.Note, &e.Source, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
