package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// XPPerStreakDay is the XP awarded per streak day when a milestone is celebrated.
const XPPerStreakDay = 10

// Milestones are the streak lengths that trigger a celebration, ascending.
var Milestones = []int{7, 14, 30, 60, 100}

var milestoneTiers = map[int]struct{ tier, message string }{
	7:   {"Week Warrior", "A full week without missing a beat. Keep showing up!"},
	14:  {"Fortnight Fighter", "Two weeks strong. This is becoming a habit."},
	30:  {"Monthly Master", "A whole month of consistency. Incredible discipline!"},
	60:  {"Unstoppable", "Sixty days in a row. Nothing can slow you down."},
	100: {"Century Legend", "One hundred days. You are a legend!"},
}

// IsMilestone reports whether count is one of the fixed milestone thresholds.
func IsMilestone(count int) bool {
	_, ok := milestoneTiers[count]
	return ok
}

// MilestoneTier returns the tier name and message for the highest milestone
// not exceeding count. ok is false below the first milestone.
func MilestoneTier(count int) (tier, message string, ok bool) {
	for i := len(Milestones) - 1; i >= 0; i-- {
		if count >= Milestones[i] {
			t := milestoneTiers[Milestones[i]]
			return t.tier, t.message, true
		}
	}
	return "", "", false
}

// NewCelebration builds the celebration for a streak at count. The second
// return value is false when count is not a milestone.
func NewCelebration(streakID string, count int) (domain.Celebration, bool) {
	if !IsMilestone(count) {
		return domain.Celebration{}, false
	}
	tier, message, _ := MilestoneTier(count)
	return domain.Celebration{
		StreakID: streakID,
		Count:    count,
		Tier:     tier,
		Message:  message,
		XP:       count * XPPerStreakDay,
	}, true
}

func celebrationKey(streakID string, count int) string {
	return streakID + ":" + strconv.Itoa(count)
}

// Notifier delivers a share message to a client's device.
type Notifier interface {
	Notify(ctx context.Context, deviceToken, title, body string, data map[string]string) error
}

// ErrSharingUnavailable is returned by a Notifier that cannot deliver to the target.
var ErrSharingUnavailable = errors.New("sharing unavailable")

// Share methods reported by CelebrationService.Share.
const (
	ShareMethodPush      = "push"
	ShareMethodClipboard = "clipboard"
)

// ShareResult describes how a celebration was shared.
type ShareResult struct {
	Method string
	Text   string
}

// CelebrationService decides when milestone celebrations are shown and
// remembers which ones have been dismissed.
type CelebrationService struct {
	markers  domain.MarkerStore
	notifier Notifier
}

// NewCelebrationService creates a new CelebrationService. notifier may be nil,
// in which case every share falls back to the clipboard.
func NewCelebrationService(markers domain.MarkerStore, notifier Notifier) *CelebrationService {
	return &CelebrationService{markers: markers, notifier: notifier}
}

// Pending returns the celebration to show for the streak, or nil when the
// streak is inactive, not on a milestone, or already celebrated.
func (s *CelebrationService) Pending(ctx context.Context, streak *domain.Streak) (*domain.Celebration, error) {
	if streak == nil || !streak.EffectivelyActive() {
		return nil, nil
	}
	c, ok := NewCelebration(streak.ID, streak.CurrentCount)
	if !ok {
		return nil, nil
	}
	_, seen, err := s.markers.Get(ctx, domain.MarkerCelebrated, celebrationKey(streak.ID, streak.CurrentCount))
	if err != nil {
		return nil, fmt.Errorf("get celebration marker: %w", err)
	}
	if seen {
		return nil, nil
	}
	celebrationsShown.WithLabelValues("pending_reads").Inc()
	return &c, nil
}

// Dismiss records that the streak's milestone celebration has been seen.
// Only the celebration Pending would present can be dismissed: a streak that
// is inactive or not currently at count is left untouched, so a milestone
// cannot be suppressed before it is reached. Repeated calls are no-ops; the
// return value reports whether this call recorded the marker.
func (s *CelebrationService) Dismiss(ctx context.Context, streak *domain.Streak, count int) (bool, error) {
	if !IsMilestone(count) {
		return false, fmt.Errorf("%w: %d is not a milestone", domain.ErrInvalidInput, count)
	}
	if streak == nil || !streak.EffectivelyActive() || streak.CurrentCount != count {
		return false, nil
	}
	stored, err := s.markers.PutIfAbsent(ctx, domain.MarkerCelebrated, celebrationKey(streak.ID, count), "1")
	if err != nil {
		return false, fmt.Errorf("store celebration marker: %w", err)
	}
	if stored {
		celebrationsShown.WithLabelValues("dismissed").Inc()
	}
	return stored, nil
}

// ShareText returns the human-readable share message for a celebration.
func ShareText(clientName string, c domain.Celebration) string {
	name := clientName
	if name == "" {
		name = "My client"
	}
	return fmt.Sprintf("%s just hit a %d-day streak and earned the %s badge (+%d XP)! %s",
		name, c.Count, c.Tier, c.XP, c.Message)
}

// Share sends the celebration to the client's device. When sharing is not
// possible the text is returned for copying instead; sharing never fails.
func (s *CelebrationService) Share(ctx context.Context, client *domain.Client, c domain.Celebration) ShareResult {
	var name, token string
	if client != nil {
		name, token = client.Name, client.DeviceToken
	}
	text := ShareText(name, c)

	if s.notifier != nil && token != "" {
		err := s.notifier.Notify(ctx, token, c.Tier, text, map[string]string{
			"streak_id": c.StreakID,
			"count":     strconv.Itoa(c.Count),
		})
		if err == nil {
			celebrationsShown.WithLabelValues("shared").Inc()
			return ShareResult{Method: ShareMethodPush, Text: text}
		}
		slog.Warn("share celebration, falling back to clipboard", "streak", c.StreakID, "error", err)
	}

	celebrationsShown.WithLabelValues("clipboard").Inc()
	return ShareResult{Method: ShareMethodClipboard, Text: text}
}
