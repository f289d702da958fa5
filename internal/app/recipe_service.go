package app

import (
	"context"
	"time"

	"coachnutri/internal/domain"
)

// RecipeService manages user recipes.
type RecipeService struct {
	repo domain.RecipeRepository
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(repo domain.RecipeRepository) *RecipeService {
	return &RecipeService{repo: repo}
}

// List returns the user's recipes, newest first.
func (s *RecipeService) List(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	return s.repo.ListRecipes(ctx, userID)
}

// Create stores a recipe. Title is required, steps default to empty.
func (s *RecipeService) Create(ctx context.Context, userID int64, title string, description *string, steps []string, now time.Time) (*domain.Recipe, error) {
	if title == "" {
		return nil, invalidRequest("title est requis")
	}
	if steps == nil {
		steps = []string{}
	}

	recipe := &domain.Recipe{
		UserID:      userID,
		Title:       title,
		Description: description,
		Steps:       steps,
		CreatedAt:   now,
	}
	if err := s.repo.CreateRecipe(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}
