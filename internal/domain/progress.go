package domain

import (
	"context"
	"time"
)

// ProgressEntry is a single weigh-in or measurement logged for a client.
type ProgressEntry struct {
	ID        int64
	ClientID  int64
	Date      time.Time
	Weight    float64 // kilograms
	Notes     string
	CreatedAt time.Time
}

type ProgressRepository interface {
	Create(ctx context.Context, entry *ProgressEntry) error
	// ListByClient returns entries ordered by date ascending.
	ListByClient(ctx context.Context, clientID int64) ([]ProgressEntry, error)
}
