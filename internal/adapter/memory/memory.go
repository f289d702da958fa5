// Package memory provides in-memory repository implementations used in
// tests and local development without a database.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"coachnutri/internal/domain"
)

// Store implements every repository port over in-memory maps.
type Store struct {
	mu sync.RWMutex

	users      map[int64]domain.User
	nextUserID int64

	weights map[string]domain.WeightEntry

	hydration       map[int64]domain.HydrationState
	nextHydrationID int64

	recipes      map[int64]domain.Recipe
	nextRecipeID int64

	lists      map[int64]domain.ShoppingList
	nextListID int64
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		users:     make(map[int64]domain.User),
		weights:   make(map[string]domain.WeightEntry),
		hydration: make(map[int64]domain.HydrationState),
		recipes:   make(map[int64]domain.Recipe),
		lists:     make(map[int64]domain.ShoppingList),
	}
}

// GetByEmail looks a user up by email, case-insensitively.
func (s *Store) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			copied := u
			return &copied, nil
		}
	}
	return nil, nil
}

// GetByID looks a user up by id.
func (s *Store) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	copied := u
	return &copied, nil
}

// CreateUser stores a new user and assigns its id.
func (s *Store) CreateUser(ctx context.Context, nu domain.NewUser) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	now := time.Now()
	user := domain.User{
		ID:           s.nextUserID,
		Email:        nu.Email,
		Name:         nu.Name,
		DisplayName:  nu.DisplayName,
		AvatarURL:    nu.AvatarURL,
		PasswordHash: nu.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[user.ID] = user
	copied := user
	return &copied, nil
}

// ListUsers returns all users, newest first.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].ID > users[j].ID
		}
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return users, nil
}

// CreateWeightEntry stores a weight entry.
func (s *Store) CreateWeightEntry(ctx context.Context, e *domain.WeightEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weights[e.ID] = *e
	return nil
}

// ListWeightEntries returns the user's entries within [start, end],
// ascending by date.
func (s *Store) ListWeightEntries(ctx context.Context, userID int64, start, end time.Time) ([]domain.WeightEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var entries []domain.WeightEntry
	for _, e := range s.weights {
		if e.UserID != userID {
			continue
		}
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date.Before(entries[j].Date)
	})
	return entries, nil
}

// GetHydrationState returns the user's state, or nil when absent.
func (s *Store) GetHydrationState(ctx context.Context, userID int64) (*domain.HydrationState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.hydration[userID]
	if !ok {
		return nil, nil
	}
	copied := st
	return &copied, nil
}

// CreateHydrationState stores a new state and assigns its id.
func (s *Store) CreateHydrationState(ctx context.Context, st *domain.HydrationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextHydrationID++
	st.ID = s.nextHydrationID
	s.hydration[st.UserID] = *st
	return nil
}

// UpdateHydrationState replaces the user's state.
func (s *Store) UpdateHydrationState(ctx context.Context, st *domain.HydrationState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydration[st.UserID] = *st
	return nil
}

// ListRecipes returns the user's recipes, newest first.
func (s *Store) ListRecipes(ctx context.Context, userID int64) ([]domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var recipes []domain.Recipe
	for _, r := range s.recipes {
		if r.UserID == userID {
			recipes = append(recipes, r)
		}
	}
	sort.Slice(recipes, func(i, j int) bool {
		if recipes[i].CreatedAt.Equal(recipes[j].CreatedAt) {
			return recipes[i].ID > recipes[j].ID
		}
		return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
	})
	return recipes, nil
}

// CreateRecipe stores a recipe and assigns its id.
func (s *Store) CreateRecipe(ctx context.Context, r *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextRecipeID++
	r.ID = s.nextRecipeID
	s.recipes[r.ID] = *r
	return nil
}

// ListShoppingLists returns the user's lists, newest first.
func (s *Store) ListShoppingLists(ctx context.Context, userID int64) ([]domain.ShoppingList, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var lists []domain.ShoppingList
	for _, l := range s.lists {
		if l.UserID == userID {
			lists = append(lists, l)
		}
	}
	sort.Slice(lists, func(i, j int) bool {
		if lists[i].CreatedAt.Equal(lists[j].CreatedAt) {
			return lists[i].ID > lists[j].ID
		}
		return lists[i].CreatedAt.After(lists[j].CreatedAt)
	})
	return lists, nil
}

// CreateShoppingList stores a list and assigns its id.
func (s *Store) CreateShoppingList(ctx context.Context, l *domain.ShoppingList) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextListID++
	l.ID = s.nextListID
	s.lists[l.ID] = *l
	return nil
}
