package app

import (
	"context"

	"coachnutri/internal/domain"
)

// UserService exposes account lookups.
type UserService struct {
	repo domain.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(repo domain.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Get returns the user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// List returns all users, newest first.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.ListUsers(ctx)
}
