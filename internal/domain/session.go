package domain

import (
	"context"
	"time"
)

// TrainingSession is a scheduled or attended session between a trainer and a client.
type TrainingSession struct {
	ID        int64
	ClientID  int64
	Date      time.Time
	Status    string
	Notes     string
	CreatedAt time.Time
}

const (
	SessionStatusScheduled = "scheduled"
	SessionStatusCompleted = "completed"
	SessionStatusCancelled = "cancelled"
	SessionStatusNoShow    = "no_show"
)

// ValidSessionStatus reports whether status is one of the known session statuses.
func ValidSessionStatus(status string) bool {
	switch status {
	case SessionStatusScheduled, SessionStatusCompleted, SessionStatusCancelled, SessionStatusNoShow:
		return true
	default:
		return false
	}
}

type TrainingSessionRepository interface {
	Create(ctx context.Context, session *TrainingSession) error
	ListByClient(ctx context.Context, clientID int64) ([]TrainingSession, error)
}
