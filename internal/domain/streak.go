package domain

import "time"

type StreakType string

const (
	StreakTypeSessionAttendance StreakType = "session_attendance"
	StreakTypeProgressLogging   StreakType = "progress_logging"
)

// Streak is a derived view over a client's activity history. It is
// recomputed on every read and never persisted.
type Streak struct {
	ID               string
	ClientID         int64
	Type             StreakType
	CurrentCount     int
	BestCount        int
	IsActive         bool
	LastActivityDate *time.Time
	StartDate        *time.Time
	CanRecover       bool
	Recovered        bool // A recovery marker covers the current lapse
}

// EffectivelyActive reports whether the streak should be displayed as active,
// counting a recovered lapse as active.
func (s *Streak) EffectivelyActive() bool {
	return s.IsActive || s.Recovered
}

// Celebration is a milestone that has been reached but not yet dismissed.
type Celebration struct {
	StreakID string
	Count    int
	Tier     string
	Message  string
	XP       int
}
