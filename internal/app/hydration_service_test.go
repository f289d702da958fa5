package app

import (
	"context"
	"testing"
	"time"

	"coachnutri/internal/domain"
)

type mockHydrationRepo struct {
	state *domain.HydrationState
}

func (m *mockHydrationRepo) GetHydrationState(ctx context.Context, userID int64) (*domain.HydrationState, error) {
	if m.state == nil || m.state.UserID != userID {
		return nil, nil
	}
	copied := *m.state
	return &copied, nil
}

func (m *mockHydrationRepo) CreateHydrationState(ctx context.Context, s *domain.HydrationState) error {
	s.ID = 1
	copied := *s
	m.state = &copied
	return nil
}

func (m *mockHydrationRepo) UpdateHydrationState(ctx context.Context, s *domain.HydrationState) error {
	copied := *s
	m.state = &copied
	return nil
}

func TestCurrentCreatesDefaultState(t *testing.T) {
	now := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	svc := NewHydrationService(&mockHydrationRepo{})

	snap, err := svc.Current(context.Background(), 1, now)
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if snap.DailyGoalMl != 2000 {
		t.Errorf("default goal = %d, want 2000", snap.DailyGoalMl)
	}
	if snap.ConsumedMl != 0 || snap.HydrationPercent != 0 || snap.Progress != 0 {
		t.Errorf("fresh state should be empty: %+v", snap)
	}
	if snap.LastIntakeAt != nil || snap.NextAvailableAt != nil {
		t.Error("fresh state should have no intake timestamps")
	}
	if snap.CooldownMs != 3_600_000 {
		t.Errorf("cooldown = %d ms, want 3600000", snap.CooldownMs)
	}
}

func TestCurrentResetsAfter24h(t *testing.T) {
	start := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	intakeAt := start.Add(time.Minute)
	repo := &mockHydrationRepo{state: &domain.HydrationState{
		ID: 1, UserID: 1, ConsumedMl: 1500, DailyGoalMl: 2000,
		LastResetAt: start, LastIntakeAt: &intakeAt,
	}}
	svc := NewHydrationService(repo)

	snap, err := svc.Current(context.Background(), 1, start.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if snap.ConsumedMl != 0 {
		t.Errorf("counter should be reset, got %d", snap.ConsumedMl)
	}
	if snap.LastIntakeAt != nil {
		t.Error("reset should clear the last intake")
	}
	if !snap.LastResetAt.Equal(start.Add(24 * time.Hour)) {
		t.Errorf("reset timestamp should move to now, got %v", snap.LastResetAt)
	}
}

func TestCurrentKeepsStateBefore24h(t *testing.T) {
	start := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	repo := &mockHydrationRepo{state: &domain.HydrationState{
		ID: 1, UserID: 1, ConsumedMl: 1500, DailyGoalMl: 2000, LastResetAt: start,
	}}
	svc := NewHydrationService(repo)

	snap, err := svc.Current(context.Background(), 1, start.Add(23*time.Hour))
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if snap.ConsumedMl != 1500 {
		t.Errorf("counter should survive before 24h, got %d", snap.ConsumedMl)
	}
	if snap.Progress != 0.75 || snap.HydrationPercent != 75 {
		t.Errorf("unexpected progress %v / percent %v", snap.Progress, snap.HydrationPercent)
	}
}

func TestAddIntake(t *testing.T) {
	now := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	repo := &mockHydrationRepo{}
	svc := NewHydrationService(repo)

	result, err := svc.AddIntake(context.Background(), 1, 250, now)
	if err != nil {
		t.Fatalf("AddIntake: %v", err)
	}
	if result.Blocked {
		t.Fatal("first intake should not be blocked")
	}
	if result.Snapshot.ConsumedMl != 250 {
		t.Errorf("consumed = %d, want 250", result.Snapshot.ConsumedMl)
	}
	if result.Snapshot.LastIntakeAt == nil || !result.Snapshot.LastIntakeAt.Equal(now) {
		t.Error("last intake should be set to now")
	}
	if result.Message != "Hydratation mise à jour." {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestAddIntakeCooldown(t *testing.T) {
	now := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	repo := &mockHydrationRepo{}
	svc := NewHydrationService(repo)

	if _, err := svc.AddIntake(context.Background(), 1, 250, now); err != nil {
		t.Fatalf("first intake: %v", err)
	}

	result, err := svc.AddIntake(context.Background(), 1, 250, now.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("second intake: %v", err)
	}
	if !result.Blocked {
		t.Fatal("intake within the hour should be blocked")
	}
	if result.Snapshot.ConsumedMl != 250 {
		t.Errorf("blocked intake must not change the counter, got %d", result.Snapshot.ConsumedMl)
	}
	if result.RetryAfterMs != (30 * time.Minute).Milliseconds() {
		t.Errorf("retry after = %d ms, want 1800000", result.RetryAfterMs)
	}
	if !result.NextAvailableAt.Equal(now.Add(time.Hour)) {
		t.Errorf("next available = %v, want %v", result.NextAvailableAt, now.Add(time.Hour))
	}
	if result.Message != "Patiente encore 30 min avant d'ajouter de l'eau." {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestAddIntakeAfterCooldown(t *testing.T) {
	now := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	svc := NewHydrationService(&mockHydrationRepo{})

	svc.AddIntake(context.Background(), 1, 250, now)
	result, err := svc.AddIntake(context.Background(), 1, 300, now.Add(time.Hour))
	if err != nil {
		t.Fatalf("AddIntake: %v", err)
	}
	if result.Blocked {
		t.Fatal("intake after one hour should pass")
	}
	if result.Snapshot.ConsumedMl != 550 {
		t.Errorf("consumed = %d, want 550", result.Snapshot.ConsumedMl)
	}
}

func TestAddIntakeValidation(t *testing.T) {
	svc := NewHydrationService(&mockHydrationRepo{})
	now := time.Now()

	if _, err := svc.AddIntake(context.Background(), 1, 5, now); err == nil {
		t.Error("amounts under 10 ml should be rejected")
	}
	if _, err := svc.AddIntake(context.Background(), 1, 6000, now); err == nil {
		t.Error("amounts over 5000 ml should be rejected")
	}
}

func TestUpdateGoal(t *testing.T) {
	now := time.Date(2025, 9, 20, 10, 0, 0, 0, time.UTC)
	repo := &mockHydrationRepo{state: &domain.HydrationState{
		ID: 1, UserID: 1, ConsumedMl: 500, DailyGoalMl: 2000, LastResetAt: now.Add(-time.Hour),
	}}
	svc := NewHydrationService(repo)

	snap, err := svc.UpdateGoal(context.Background(), 1, 2500, now)
	if err != nil {
		t.Fatalf("UpdateGoal: %v", err)
	}
	if snap.DailyGoalMl != 2500 {
		t.Errorf("goal = %d, want 2500", snap.DailyGoalMl)
	}
	if snap.ConsumedMl != 500 {
		t.Errorf("goal change must keep the counter, got %d", snap.ConsumedMl)
	}
}

func TestUpdateGoalValidation(t *testing.T) {
	svc := NewHydrationService(&mockHydrationRepo{})
	now := time.Now()

	if _, err := svc.UpdateGoal(context.Background(), 1, 400, now); err == nil {
		t.Error("goals under 500 ml should be rejected")
	}
	if _, err := svc.UpdateGoal(context.Background(), 1, 11000, now); err == nil {
		t.Error("goals over 10 L should be rejected")
	}
}
