package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// ClientStats are the aggregate statistics badges are evaluated against.
type ClientStats struct {
	TotalSessions   int
	TotalWeightLoss float64 // kilograms
	LongestStreak   int
	ProgressEntries int
	BadgesEarned    int
}

var catalogue = []domain.BadgeDefinition{
	{ID: "first_session", Name: "First Step", Icon: "👟", Category: domain.BadgeCategorySessions, Requirement: "Complete your first session", Threshold: 1},
	{ID: "ten_sessions", Name: "Regular", Icon: "💪", Category: domain.BadgeCategorySessions, Requirement: "Complete 10 sessions", Threshold: 10},
	{ID: "fifty_sessions", Name: "Dedicated", Icon: "🏋️", Category: domain.BadgeCategorySessions, Requirement: "Complete 50 sessions", Threshold: 50},
	{ID: "hundred_sessions", Name: "Century Club", Icon: "🏆", Category: domain.BadgeCategorySessions, Requirement: "Complete 100 sessions", Threshold: 100},

	{ID: "lose_5kg", Name: "Lighter", Icon: "🪶", Category: domain.BadgeCategoryWeightLoss, Requirement: "Lose 5 kg", Threshold: 5},
	{ID: "lose_10kg", Name: "Transformer", Icon: "🔥", Category: domain.BadgeCategoryWeightLoss, Requirement: "Lose 10 kg", Threshold: 10},
	{ID: "lose_20kg", Name: "New You", Icon: "🌟", Category: domain.BadgeCategoryWeightLoss, Requirement: "Lose 20 kg", Threshold: 20},

	{ID: "week_streak", Name: "Consistent", Icon: "📅", Category: domain.BadgeCategoryConsistency, Requirement: "Reach a 7-day streak", Threshold: 7},
	{ID: "month_streak", Name: "Iron Will", Icon: "⛓️", Category: domain.BadgeCategoryConsistency, Requirement: "Reach a 30-day streak", Threshold: 30},

	{ID: "first_checkin", Name: "Checked In", Icon: "📈", Category: domain.BadgeCategoryProgress, Requirement: "Log your first progress entry", Threshold: 1},
	{ID: "ten_checkins", Name: "Data Driven", Icon: "📊", Category: domain.BadgeCategoryProgress, Requirement: "Log 10 progress entries", Threshold: 10},

	{ID: "collector", Name: "Collector", Icon: "🎖️", Category: domain.BadgeCategoryMilestones, Requirement: "Earn 3 badges", Threshold: 3},
	{ID: "champion", Name: "Champion", Icon: "👑", Category: domain.BadgeCategoryMilestones, Requirement: "Earn 8 badges", Threshold: 8},
}

// Catalogue returns a copy of the fixed badge definitions.
func Catalogue() []domain.BadgeDefinition {
	return append([]domain.BadgeDefinition(nil), catalogue...)
}

// UnlockInstructions returns the hint shown on a locked badge.
func UnlockInstructions(category domain.BadgeCategory) string {
	switch category {
	case domain.BadgeCategorySessions:
		return "Attend and complete training sessions with your trainer."
	case domain.BadgeCategoryWeightLoss:
		return "Log regular weigh-ins and keep working toward your goal weight."
	case domain.BadgeCategoryConsistency:
		return "Train on consecutive days to build your streak."
	case domain.BadgeCategoryProgress:
		return "Record your progress entries after each check-in."
	case domain.BadgeCategoryMilestones:
		return "Unlock other badges to earn this one."
	default:
		return ""
	}
}

func statFor(category domain.BadgeCategory, stats ClientStats) float64 {
	switch category {
	case domain.BadgeCategorySessions:
		return float64(stats.TotalSessions)
	case domain.BadgeCategoryWeightLoss:
		return stats.TotalWeightLoss
	case domain.BadgeCategoryConsistency:
		return float64(stats.LongestStreak)
	case domain.BadgeCategoryProgress:
		return float64(stats.ProgressEntries)
	case domain.BadgeCategoryMilestones:
		return float64(stats.BadgesEarned)
	default:
		return 0
	}
}

// BadgeProgress returns floor(100*value/threshold) clamped to [0, 100].
func BadgeProgress(value, threshold float64) int {
	if threshold <= 0 {
		return 100
	}
	if value <= 0 || math.IsNaN(value) {
		return 0
	}
	return int(math.Min(100, math.Floor(100*value/threshold)))
}

func evaluateBadge(def domain.BadgeDefinition, value float64, unlocked map[string]time.Time, now time.Time) domain.Badge {
	b := domain.Badge{BadgeDefinition: def, UnlockInstructions: UnlockInstructions(def.Category)}
	if at, ok := unlocked[def.ID]; ok {
		b.IsUnlocked = true
		b.AchievedDate = &at
	} else if value >= def.Threshold {
		b.IsUnlocked = true
		b.AchievedDate = &now
	}
	if b.IsUnlocked {
		b.Progress = 100
	} else {
		b.Progress = BadgeProgress(value, def.Threshold)
	}
	return b
}

// EvaluateBadges evaluates the catalogue against stats. Badges present in
// unlocked stay unlocked with their original date regardless of stats;
// newly met badges are dated now. Milestone badges count every other badge
// unlocked in this evaluation plus stats.BadgesEarned, whichever is larger.
func EvaluateBadges(stats ClientStats, unlocked map[string]time.Time, now time.Time) []domain.Badge {
	badges := make([]domain.Badge, 0, len(catalogue))
	earned := 0
	for _, def := range catalogue {
		if def.Category == domain.BadgeCategoryMilestones {
			continue
		}
		b := evaluateBadge(def, statFor(def.Category, stats), unlocked, now)
		if b.IsUnlocked {
			earned++
		}
		badges = append(badges, b)
	}

	meta := stats
	meta.BadgesEarned = max(stats.BadgesEarned, earned)
	for _, def := range catalogue {
		if def.Category != domain.BadgeCategoryMilestones {
			continue
		}
		b := evaluateBadge(def, statFor(def.Category, meta), unlocked, now)
		if b.IsUnlocked {
			meta.BadgesEarned++
		}
		badges = append(badges, b)
	}
	return badges
}

// NextBadge returns the locked badge closest to being unlocked, or nil when
// every badge is unlocked. Ties keep catalogue order.
func NextBadge(badges []domain.Badge) *domain.Badge {
	var next *domain.Badge
	for i := range badges {
		b := &badges[i]
		if b.IsUnlocked {
			continue
		}
		if next == nil || b.Progress > next.Progress {
			next = b
		}
	}
	return next
}

// BadgeService evaluates badges and records unlocks so they are never lost.
type BadgeService struct {
	unlocks domain.BadgeUnlockRepository
	now     func() time.Time
}

// NewBadgeService creates a new BadgeService.
func NewBadgeService(unlocks domain.BadgeUnlockRepository) *BadgeService {
	return &BadgeService{unlocks: unlocks, now: time.Now}
}

// WithClock overrides the time source.
func (s *BadgeService) WithClock(now func() time.Time) *BadgeService {
	s.now = now
	return s
}

// Evaluate computes the client's badges and persists any new unlocks.
func (s *BadgeService) Evaluate(ctx context.Context, clientID int64, stats ClientStats) ([]domain.Badge, error) {
	unlocked, err := s.unlocks.ListByClient(ctx, clientID)
	if err != nil {
		return nil, fmt.Errorf("list badge unlocks: %w", err)
	}

	now := s.now().UTC()
	badges := EvaluateBadges(stats, unlocked, now)
	for _, b := range badges {
		if !b.IsUnlocked {
			continue
		}
		if _, ok := unlocked[b.ID]; ok {
			continue
		}
		stored, err := s.unlocks.Record(ctx, clientID, b.ID, *b.AchievedDate)
		if err != nil {
			return nil, fmt.Errorf("record badge unlock: %w", err)
		}
		if stored {
			badgesUnlocked.WithLabelValues(string(b.Category)).Inc()
			slog.Info("badge unlocked", "client_id", clientID, "badge", b.ID)
		}
	}
	return badges, nil
}
