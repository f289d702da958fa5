package app

import (
	"context"
	"testing"
	"time"

	"coachnutri/internal/domain"
)

type mockRecipeRepo struct {
	recipes []domain.Recipe
}

func (m *mockRecipeRepo) ListRecipes(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	return m.recipes, nil
}

func (m *mockRecipeRepo) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	r.ID = int64(len(m.recipes) + 1)
	m.recipes = append(m.recipes, *r)
	return nil
}

type mockShoppingRepo struct {
	lists []domain.ShoppingList
}

func (m *mockShoppingRepo) ListShoppingLists(ctx context.Context, userID int64) ([]domain.ShoppingList, error) {
	return m.lists, nil
}

func (m *mockShoppingRepo) CreateShoppingList(ctx context.Context, l *domain.ShoppingList) error {
	l.ID = int64(len(m.lists) + 1)
	m.lists = append(m.lists, *l)
	return nil
}

func TestCreateRecipe(t *testing.T) {
	repo := &mockRecipeRepo{}
	svc := NewRecipeService(repo)
	now := time.Now()

	recipe, err := svc.Create(context.Background(), 1, "Soupe de légumes", nil, nil, now)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if recipe.ID == 0 {
		t.Error("recipe should get an id")
	}
	if recipe.Steps == nil || len(recipe.Steps) != 0 {
		t.Errorf("steps should default to an empty list, got %v", recipe.Steps)
	}

	listed, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "Soupe de légumes" {
		t.Errorf("unexpected listing %+v", listed)
	}
}

func TestCreateRecipeRequiresTitle(t *testing.T) {
	svc := NewRecipeService(&mockRecipeRepo{})
	if _, err := svc.Create(context.Background(), 1, "", nil, nil, time.Now()); err == nil {
		t.Fatal("missing title should be rejected")
	}
}

func TestCreateShoppingList(t *testing.T) {
	repo := &mockShoppingRepo{}
	svc := NewShoppingListService(repo)

	list, err := svc.Create(context.Background(), 1, "Courses de la semaine", []string{"quinoa", "tofu"}, time.Now())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if list.ID == 0 || len(list.Items) != 2 {
		t.Errorf("unexpected list %+v", list)
	}
}

func TestCreateShoppingListRequiresTitle(t *testing.T) {
	svc := NewShoppingListService(&mockShoppingRepo{})
	if _, err := svc.Create(context.Background(), 1, "", nil, time.Now()); err == nil {
		t.Fatal("missing title should be rejected")
	}
}
