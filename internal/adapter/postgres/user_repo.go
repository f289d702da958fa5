package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"coachnutri/internal/domain"
)

const userColumns = "id, email, name, display_name, avatar_url, password_hash, created_at, updated_at"

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.DisplayName, &u.AvatarURL, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail returns the user with the given email, or nil.
func (d *DB) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = $1;", email)
	return scanUser(row)
}

// GetByID returns the user with the given id, or nil.
func (d *DB) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := d.sql.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = $1;", id)
	return scanUser(row)
}

// CreateUser inserts a user and returns the stored row.
func (d *DB) CreateUser(ctx context.Context, nu domain.NewUser) (*domain.User, error) {
	now := time.Now().UTC()
	row := d.sql.QueryRowContext(ctx,
		`INSERT INTO users(email, name, display_name, avatar_url, password_hash, created_at, updated_at)
		 VALUES($1, $2, $3, $4, $5, $6, $6)
		 RETURNING `+userColumns+";",
		nu.Email, nu.Name, nu.DisplayName, nu.AvatarURL, nu.PasswordHash, now)
	return scanUser(row)
}

// ListUsers returns all users, newest first.
func (d *DB) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY created_at DESC, id DESC;")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Email, &u.Name, &u.DisplayName, &u.AvatarURL, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
