package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"coachnutri/internal/domain"
	"coachnutri/internal/weight"

	"github.com/google/uuid"
)

const listCacheTTL = 30 * time.Second

// WeightList is the aggregated read model for a user's weight history.
type WeightList struct {
	Range     string         `json:"range"`
	Aggregate string         `json:"aggregate"`
	Entries   []weight.Point `json:"entries"`
	Stats     weight.Stats   `json:"stats"`
	Meta      WeightListMeta `json:"meta"`
}

// WeightListMeta describes the window the list was computed over.
type WeightListMeta struct {
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	TotalRaw      int       `json:"totalRaw"`
	TotalReturned int       `json:"totalReturned"`
}

type cachedList struct {
	at      time.Time
	payload *WeightList
}

// WeightService builds aggregated weight views and records new entries,
// both manual and parsed from free text.
type WeightService struct {
	repo domain.WeightRepository

	mu    sync.Mutex
	cache map[string]cachedList
}

// NewWeightService creates a weight service with an empty list cache.
func NewWeightService(repo domain.WeightRepository) *WeightService {
	return &WeightService{
		repo:  repo,
		cache: make(map[string]cachedList),
	}
}

func cacheKey(userID int64, rng, aggregate string) string {
	return fmt.Sprintf("%d:%s:%s", userID, rng, aggregate)
}

func (s *WeightService) getCached(key string, now time.Time) *WeightList {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.cache[key]
	if !ok {
		return nil
	}
	if now.Sub(item.at) > listCacheTTL {
		delete(s.cache, key)
		return nil
	}
	return item.payload
}

func (s *WeightService) setCached(key string, payload *WeightList, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = cachedList{at: now, payload: payload}
}

func (s *WeightService) invalidateUser(userID int64) {
	prefix := strconv.FormatInt(userID, 10) + ":"
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.cache {
		if strings.HasPrefix(key, prefix) {
			delete(s.cache, key)
		}
	}
}

func toSeriesEntry(e domain.WeightEntry) weight.Entry {
	return weight.Entry{
		ID:        e.ID,
		Date:      e.Date,
		WeightKg:  e.WeightKg,
		Note:      e.Note,
		Source:    e.Source,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// List returns the user's aggregated weight history for the given range and
// aggregation mode. The second return value reports a cache hit.
func (s *WeightService) List(ctx context.Context, userID int64, rangeValue, aggregateValue string, now time.Time) (*WeightList, bool, error) {
	rng := weight.NormalizeRange(rangeValue)
	aggregate := weight.NormalizeAggregate(aggregateValue)
	key := cacheKey(userID, rng, aggregate)

	if cached := s.getCached(key, now); cached != nil {
		return cached, true, nil
	}

	start, end := weight.RangeBounds(rng, now)
	rows, err := s.repo.ListWeightEntries(ctx, userID, start, end)
	if err != nil {
		return nil, false, err
	}

	entries := make([]weight.Entry, len(rows))
	for i, row := range rows {
		entries[i] = toSeriesEntry(row)
	}

	points := weight.Aggregate(entries, aggregate)
	stats := weight.ComputeStats(points)

	payload := &WeightList{
		Range:     rng,
		Aggregate: aggregate,
		Entries:   points,
		Stats:     stats,
		Meta: WeightListMeta{
			Start:         start,
			End:           end,
			TotalRaw:      len(rows),
			TotalReturned: len(points),
		},
	}
	s.setCached(key, payload, now)
	return payload, false, nil
}

func normalizeNote(note *string) *string {
	if note == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*note)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Create records a manual weight entry. The weight and date inputs are
// accepted in the loose forms clients send (strings, numbers, missing date).
func (s *WeightService) Create(ctx context.Context, userID int64, weightInput, dateInput any, note *string, now time.Time) (*domain.WeightEntry, error) {
	weightKg, err := weight.ParseWeightValue(weightInput)
	if err != nil {
		return nil, err
	}
	date, err := weight.ParseDateInput(dateInput, now)
	if err != nil {
		return nil, err
	}

	entry := &domain.WeightEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      date,
		WeightKg:  weightKg,
		Note:      normalizeNote(note),
		Source:    domain.SourceManual,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateWeightEntry(ctx, entry); err != nil {
		return nil, err
	}

	s.invalidateUser(userID)
	return entry, nil
}

// CreateFromText parses a French free-text command, records the entry with
// the AI source and returns a confirmation message for the user.
func (s *WeightService) CreateFromText(ctx context.Context, userID int64, text string, note *string, now time.Time) (*domain.WeightEntry, string, error) {
	parsed, err := weight.ParseWeightCommand(text, now)
	if err != nil {
		return nil, "", err
	}

	entry := &domain.WeightEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Date:      parsed.Date,
		WeightKg:  parsed.WeightKg,
		Note:      normalizeNote(note),
		Source:    domain.SourceAI,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.CreateWeightEntry(ctx, entry); err != nil {
		return nil, "", err
	}

	s.invalidateUser(userID)

	confirmation := fmt.Sprintf("Parfait ! J'ai enregistré %s kg pour le %s.",
		formatWeightFR(entry.WeightKg),
		entry.Date.UTC().Format("02/01/2006"))
	return entry, confirmation, nil
}

func formatWeightFR(weightKg float64) string {
	return strings.ReplaceAll(strconv.FormatFloat(weightKg, 'f', -1, 64), ".", ",")
}
