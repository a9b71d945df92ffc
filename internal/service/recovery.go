package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// CanRecover reports whether an inactive streak lapsed by exactly one
// calendar day and has never been recovered before.
func CanRecover(streak *domain.Streak, alreadyRecovered bool, now time.Time, loc *time.Location) bool {
	if streak == nil || streak.IsActive || alreadyRecovered || streak.LastActivityDate == nil {
		return false
	}
	return daysBetween(civilDay(*streak.LastActivityDate, loc), civilDay(now, loc)) == 1
}

// RecoveryService applies the one-time streak recovery grace.
type RecoveryService struct {
	markers domain.MarkerStore
	loc     *time.Location
	now     func() time.Time
}

// NewRecoveryService creates a new RecoveryService.
func NewRecoveryService(markers domain.MarkerStore, loc *time.Location) *RecoveryService {
	return &RecoveryService{markers: markers, loc: loc, now: time.Now}
}

// WithClock overrides the time source.
func (s *RecoveryService) WithClock(now func() time.Time) *RecoveryService {
	s.now = now
	return s
}

// RecoveredDays returns the bridged day for each of the given streak IDs
// that has been recovered.
func (s *RecoveryService) RecoveredDays(ctx context.Context, streakIDs ...string) (map[string]string, error) {
	days := make(map[string]string, len(streakIDs))
	for _, id := range streakIDs {
		day, ok, err := s.markers.Get(ctx, domain.MarkerRecovered, id)
		if err != nil {
			return nil, fmt.Errorf("get recovery marker: %w", err)
		}
		if ok {
			days[id] = day
		}
	}
	return days, nil
}

// Recover marks the streak as recovered, bridging the missed day. It is a
// no-op returning false when the streak is not recoverable.
func (s *RecoveryService) Recover(ctx context.Context, streak *domain.Streak) (bool, error) {
	if streak == nil || !streak.CanRecover {
		return false, nil
	}
	now := s.now()
	if !CanRecover(streak, false, now, s.loc) {
		return false, nil
	}

	missed := civilDay(*streak.LastActivityDate, s.loc).AddDate(0, 0, 1)
	stored, err := s.markers.PutIfAbsent(ctx, domain.MarkerRecovered, streak.ID, dayKey(missed))
	if err != nil {
		return false, fmt.Errorf("store recovery marker: %w", err)
	}
	if !stored {
		return false, nil
	}

	streak.Recovered = true
	streak.CanRecover = false
	streakRecoveries.Inc()
	slog.Info("streak recovered", "streak", streak.ID, "missed_day", dayKey(missed))
	return true, nil
}
