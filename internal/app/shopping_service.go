package app

import (
	"context"
	"time"

	"coachnutri/internal/domain"
)

// ShoppingListService manages user shopping lists.
type ShoppingListService struct {
	repo domain.ShoppingListRepository
}

// NewShoppingListService creates a new shopping-list service.
func NewShoppingListService(repo domain.ShoppingListRepository) *ShoppingListService {
	return &ShoppingListService{repo: repo}
}

// List returns the user's shopping lists, newest first.
func (s *ShoppingListService) List(ctx context.Context, userID int64) ([]domain.ShoppingList, error) {
	return s.repo.ListShoppingLists(ctx, userID)
}

// Create stores a shopping list. Title is required, items default to empty.
func (s *ShoppingListService) Create(ctx context.Context, userID int64, title string, items []string, now time.Time) (*domain.ShoppingList, error) {
	if title == "" {
		return nil, invalidRequest("title est requis")
	}
	if items == nil {
		items = []string{}
	}

	list := &domain.ShoppingList{
		UserID:    userID,
		Title:     title,
		Items:     items,
		CreatedAt: now,
	}
	if err := s.repo.CreateShoppingList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}
