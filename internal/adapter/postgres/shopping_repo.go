package postgres

import (
	"context"
	"encoding/json"

	"coachnutri/internal/domain"
)

// ListShoppingLists returns the user's lists, newest first.
func (d *DB) ListShoppingLists(ctx context.Context, userID int64) ([]domain.ShoppingList, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT id, user_id, title, items, created_at
		 FROM shopping_lists WHERE user_id = $1
		 ORDER BY created_at DESC, id DESC;`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lists []domain.ShoppingList
	for rows.Next() {
		var l domain.ShoppingList
		var items []byte
		if err := rows.Scan(&l.ID, &l.UserID, &l.Title, &items, &l.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &l.Items); err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

// CreateShoppingList inserts a list and fills in its id.
func (d *DB) CreateShoppingList(ctx context.Context, l *domain.ShoppingList) error {
	items, err := json.Marshal(l.Items)
	if err != nil {
		return err
	}
	return d.sql.QueryRowContext(ctx,
		`INSERT INTO shopping_lists(user_id, title, items, created_at)
		 VALUES($1, $2, $3, $4)
		 RETURNING id;`,
		l.UserID, l.Title, items, l.CreatedAt.UTC(),
	).Scan(&l.ID)
}
