package postgres

import (
	"context"
	"database/sql"
	"errors"

	"coachnutri/internal/domain"
)

// GetHydrationState returns the user's state, or nil when absent.
func (d *DB) GetHydrationState(ctx context.Context, userID int64) (*domain.HydrationState, error) {
	row := d.sql.QueryRowContext(ctx,
		`SELECT id, user_id, consumed_ml, daily_goal_ml, last_reset_at, last_intake_at, created_at, updated_at
		 FROM hydration_states WHERE user_id = $1;`, userID)

	var st domain.HydrationState
	err := row.Scan(&st.ID, &st.UserID, &st.ConsumedMl, &st.DailyGoalMl, &st.LastResetAt, &st.LastIntakeAt, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &st, nil
}

// CreateHydrationState inserts a state and fills in its id.
func (d *DB) CreateHydrationState(ctx context.Context, st *domain.HydrationState) error {
	return d.sql.QueryRowContext(ctx,
		`INSERT INTO hydration_states(user_id, consumed_ml, daily_goal_ml, last_reset_at, last_intake_at, created_at, updated_at)
		 VALUES($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id;`,
		st.UserID, st.ConsumedMl, st.DailyGoalMl, st.LastResetAt.UTC(), st.LastIntakeAt, st.CreatedAt.UTC(), st.UpdatedAt.UTC(),
	).Scan(&st.ID)
}

// UpdateHydrationState replaces the user's state.
func (d *DB) UpdateHydrationState(ctx context.Context, st *domain.HydrationState) error {
	_, err := d.sql.ExecContext(ctx,
		`UPDATE hydration_states
		 SET consumed_ml = $2, daily_goal_ml = $3, last_reset_at = $4, last_intake_at = $5, updated_at = $6
		 WHERE user_id = $1;`,
		st.UserID, st.ConsumedMl, st.DailyGoalMl, st.LastResetAt.UTC(), st.LastIntakeAt, st.UpdatedAt.UTC())
	return err
}
