package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"coachnutri/internal/domain"
)

const (
	hydrationResetInterval = 24 * time.Hour
	hydrationCooldown      = time.Hour
	defaultDailyGoalMl     = 2000

	minIntakeMl = 10
	maxIntakeMl = 5000
	minGoalMl   = 500
	maxGoalMl   = 10000
)

// HydrationSnapshot is the read model returned to clients, with the
// progress and cooldown figures derived from the stored state.
type HydrationSnapshot struct {
	ID                  int64      `json:"id"`
	UserID              int64      `json:"userId"`
	ConsumedMl          int        `json:"consumedMl"`
	DailyGoalMl         int        `json:"dailyGoalMl"`
	LastResetAt         time.Time  `json:"lastResetAt"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
	HydrationPercent    float64    `json:"hydrationPercent"`
	Progress            float64    `json:"progress"`
	LastIntakeAt        *time.Time `json:"lastIntakeAt"`
	NextAvailableAt     *time.Time `json:"nextAvailableAt"`
	CooldownMs          int64      `json:"cooldownMs"`
	CooldownRemainingMs int64      `json:"cooldownRemainingMs"`
}

// IntakeResult reports either the updated state or an active cooldown.
type IntakeResult struct {
	Blocked         bool
	Snapshot        *HydrationSnapshot
	NextAvailableAt time.Time
	RetryAfterMs    int64
	Message         string
}

// HydrationService tracks daily water intake with a rolling 24h reset and a
// one-hour cooldown between intakes.
type HydrationService struct {
	repo domain.HydrationRepository
}

// NewHydrationService creates a new hydration service.
func NewHydrationService(repo domain.HydrationRepository) *HydrationService {
	return &HydrationService{repo: repo}
}

func snapshot(state *domain.HydrationState, now time.Time) *HydrationSnapshot {
	ratio := 0.0
	if state.DailyGoalMl > 0 {
		ratio = float64(state.ConsumedMl) / float64(state.DailyGoalMl)
	}

	snap := &HydrationSnapshot{
		ID:               state.ID,
		UserID:           state.UserID,
		ConsumedMl:       state.ConsumedMl,
		DailyGoalMl:      state.DailyGoalMl,
		LastResetAt:      state.LastResetAt,
		CreatedAt:        state.CreatedAt,
		UpdatedAt:        state.UpdatedAt,
		HydrationPercent: math.Max(0, ratio*100),
		Progress:         math.Min(math.Max(ratio, 0), 1),
		LastIntakeAt:     state.LastIntakeAt,
		CooldownMs:       hydrationCooldown.Milliseconds(),
	}
	if state.LastIntakeAt != nil {
		next := state.LastIntakeAt.Add(hydrationCooldown)
		snap.NextAvailableAt = &next
		if remaining := next.Sub(now); remaining > 0 {
			snap.CooldownRemainingMs = remaining.Milliseconds()
		}
	}
	return snap
}

// ensureState loads the user's state, creating it on first access and
// zeroing the counter once 24h have passed since the last reset.
func (s *HydrationService) ensureState(ctx context.Context, userID int64, now time.Time) (*domain.HydrationState, error) {
	state, err := s.repo.GetHydrationState(ctx, userID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = &domain.HydrationState{
			UserID:      userID,
			ConsumedMl:  0,
			DailyGoalMl: defaultDailyGoalMl,
			LastResetAt: now,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.repo.CreateHydrationState(ctx, state); err != nil {
			return nil, err
		}
		return state, nil
	}

	if now.Sub(state.LastResetAt) >= hydrationResetInterval {
		state.ConsumedMl = 0
		state.LastResetAt = now
		state.LastIntakeAt = nil
		state.UpdatedAt = now
		if err := s.repo.UpdateHydrationState(ctx, state); err != nil {
			return nil, err
		}
	}
	return state, nil
}

// Current returns the user's hydration state, applying the daily reset.
func (s *HydrationService) Current(ctx context.Context, userID int64, now time.Time) (*HydrationSnapshot, error) {
	state, err := s.ensureState(ctx, userID, now)
	if err != nil {
		return nil, err
	}
	return snapshot(state, now), nil
}

// AddIntake records a water intake unless the cooldown is still active.
func (s *HydrationService) AddIntake(ctx context.Context, userID int64, amountMl int, now time.Time) (*IntakeResult, error) {
	if amountMl < minIntakeMl {
		return nil, invalidRequest("La quantité doit être d'au moins 10 ml")
	}
	if amountMl > maxIntakeMl {
		return nil, invalidRequest("La quantité dépasse la limite autorisée (5 L)")
	}

	state, err := s.ensureState(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	if state.LastIntakeAt != nil {
		next := state.LastIntakeAt.Add(hydrationCooldown)
		if next.After(now) {
			remaining := next.Sub(now)
			minutes := int64(math.Ceil(remaining.Minutes()))
			if minutes < 1 {
				minutes = 1
			}
			return &IntakeResult{
				Blocked:         true,
				Snapshot:        snapshot(state, now),
				NextAvailableAt: next,
				RetryAfterMs:    remaining.Milliseconds(),
				Message:         fmt.Sprintf("Patiente encore %d min avant d'ajouter de l'eau.", minutes),
			}, nil
		}
	}

	state.ConsumedMl += amountMl
	state.LastIntakeAt = &now
	state.UpdatedAt = now
	if err := s.repo.UpdateHydrationState(ctx, state); err != nil {
		return nil, err
	}

	return &IntakeResult{
		Snapshot: snapshot(state, now),
		Message:  "Hydratation mise à jour.",
	}, nil
}

// UpdateGoal changes the daily goal, keeping the consumed counter as is.
func (s *HydrationService) UpdateGoal(ctx context.Context, userID int64, dailyGoalMl int, now time.Time) (*HydrationSnapshot, error) {
	if dailyGoalMl < minGoalMl {
		return nil, invalidRequest("L'objectif doit être d'au moins 500 ml")
	}
	if dailyGoalMl > maxGoalMl {
		return nil, invalidRequest("L'objectif ne peut pas dépasser 10 L")
	}

	state, err := s.ensureState(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	state.DailyGoalMl = dailyGoalMl
	state.UpdatedAt = now
	if err := s.repo.UpdateHydrationState(ctx, state); err != nil {
		return nil, err
	}
	return snapshot(state, now), nil
}
