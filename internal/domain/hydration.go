package domain

import (
	"context"
	"time"
)

// HydrationState is the per-user daily water counter.
type HydrationState struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	ConsumedMl   int        `json:"consumedMl"`
	DailyGoalMl  int        `json:"dailyGoalMl"`
	LastResetAt  time.Time  `json:"lastResetAt"`
	LastIntakeAt *time.Time `json:"lastIntakeAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// HydrationRepository is the port for hydration persistence.
type HydrationRepository interface {
	// GetHydrationState returns nil when the user has no state yet.
	GetHydrationState(ctx context.Context, userID int64) (*HydrationState, error)
	CreateHydrationState(ctx context.Context, state *HydrationState) error
	UpdateHydrationState(ctx context.Context, state *HydrationState) error
}
