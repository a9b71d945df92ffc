// Package view renders the HTML fragments patched into the trainer dashboard.
package view

import (
	"fmt"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// Element IDs targeted by datastar patches.
const (
	CelebrationCardID = "celebration-card"
	BadgeGridID       = "badge-grid"
)

// celebrationAction is the datastar expression posting a celebration back.
func celebrationAction(clientID int64, action string, c domain.Celebration) string {
	return fmt.Sprintf("@post('/api/clients/%d/celebrations/%s', {payload: {streakId: '%s', count: %d}})",
		clientID, action, c.StreakID, c.Count)
}

func badgeState(b domain.Badge) string {
	if b.IsUnlocked {
		return "unlocked"
	}
	return "locked"
}
