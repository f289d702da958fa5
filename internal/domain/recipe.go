package domain

import (
	"context"
	"time"
)

// Recipe is a user-authored recipe.
type Recipe struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Steps       []string  `json:"steps"`
	CreatedAt   time.Time `json:"createdAt"`
}

// RecipeRepository is the port for recipe persistence.
type RecipeRepository interface {
	// ListRecipes returns the user's recipes, newest first.
	ListRecipes(ctx context.Context, userID int64) ([]Recipe, error)
	CreateRecipe(ctx context.Context, r *Recipe) error
}
