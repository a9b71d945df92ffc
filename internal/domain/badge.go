package domain

import (
	"context"
	"time"
)

type BadgeCategory string

const (
	BadgeCategorySessions    BadgeCategory = "sessions"
	BadgeCategoryWeightLoss  BadgeCategory = "weight_loss"
	BadgeCategoryConsistency BadgeCategory = "consistency"
	BadgeCategoryProgress    BadgeCategory = "progress"
	BadgeCategoryMilestones  BadgeCategory = "milestones"
)

// BadgeDefinition is an entry in the fixed badge catalogue.
type BadgeDefinition struct {
	ID          string
	Name        string
	Icon        string
	Category    BadgeCategory
	Requirement string  // Human-readable threshold, e.g. "Complete 50 sessions"
	Threshold   float64 // Value the category statistic must reach
}

// Badge is the evaluated state of a BadgeDefinition for one client.
type Badge struct {
	BadgeDefinition
	IsUnlocked         bool
	Progress           int // 0-100, only meaningful while locked
	AchievedDate       *time.Time
	UnlockInstructions string
}

// BadgeUnlockRepository stores unlock facts. Unlocks are append-only: once a
// badge is recorded for a client its unlock time never changes.
type BadgeUnlockRepository interface {
	// ListByClient returns badge ID -> unlock time.
	ListByClient(ctx context.Context, clientID int64) (map[string]time.Time, error)
	// Record stores the unlock if absent and reports whether it was stored.
	Record(ctx context.Context, clientID int64, badgeID string, unlockedAt time.Time) (bool, error)
}
