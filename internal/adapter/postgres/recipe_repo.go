package postgres

import (
	"context"
	"encoding/json"

	"coachnutri/internal/domain"
)

// ListRecipes returns the user's recipes, newest first.
func (d *DB) ListRecipes(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, title, description, steps, created_at
		 FROM recipes WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recipes []domain.Recipe
	for rows.Next() {
		var r domain.Recipe
		var steps []byte
		if err := rows.Scan(&r.ID, &r.UserID, &r.Title, &r.Description, &steps, &r.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(steps, &r.Steps); err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	return recipes, rows.Err()
}

// CreateRecipe inserts a recipe and fills in its id.
func (d *DB) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	steps, err := json.Marshal(r.Steps)
	if err != nil {
		return err
	}
	return d.sql.QueryRowContext(ctx,
		`INSERT INTO recipes(user_id, title, description, steps, created_at)
		 VALUES($1, $2, $3, $4, $5)
		 RETURNING id;`,
		r.UserID, r.Title, r.Description, steps, r.CreatedAt.UTC(),
	).Scan(&r.ID)
}
