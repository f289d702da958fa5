package domain

import (
	"context"
	"time"
)

// Origins of a weight entry.
const (
	SourceManual = "MANUAL"
	SourceAI     = "AI"
)

// WeightEntry represents a single recorded weight measurement.
type WeightEntry struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Date      time.Time `json:"date"`
	WeightKg  float64   `json:"weightKg"`
	Note      *string   `json:"note"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	CreateWeightEntry(ctx context.Context, entry *WeightEntry) error
	// ListWeightEntries returns the entries with start <= date <= end,
	// sorted ascending by date.
	ListWeightEntries(ctx context.Context, userID int64, start, end time.Time) ([]WeightEntry, error)
}
