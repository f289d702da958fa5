package domain

import (
	"context"
	"time"
)

// ShoppingList is a user-authored shopping list.
type ShoppingList struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	Items     []string  `json:"items"`
	CreatedAt time.Time `json:"createdAt"`
}

// ShoppingListRepository is the port for shopping-list persistence.
type ShoppingListRepository interface {
	// ListShoppingLists returns the user's lists, newest first.
	ListShoppingLists(ctx context.Context, userID int64) ([]ShoppingList, error)
	CreateShoppingList(ctx context.Context, l *ShoppingList) error
}
