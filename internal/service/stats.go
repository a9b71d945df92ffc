package service

import (
	"sort"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// AggregateStats summarises a client's records for badge evaluation.
// Missing inputs contribute zero.
func AggregateStats(sessions []domain.TrainingSession, entries []domain.ProgressEntry, streaks []domain.Streak) ClientStats {
	var stats ClientStats
	for _, s := range sessions {
		if s.Status == domain.SessionStatusCompleted {
			stats.TotalSessions++
		}
	}

	weighed := make([]domain.ProgressEntry, 0, len(entries))
	for _, e := range entries {
		stats.ProgressEntries++
		if e.Weight > 0 && !e.Date.IsZero() {
			weighed = append(weighed, e)
		}
	}
	if len(weighed) > 1 {
		sort.SliceStable(weighed, func(i, j int) bool { return weighed[i].Date.Before(weighed[j].Date) })
		if loss := weighed[0].Weight - weighed[len(weighed)-1].Weight; loss > 0 {
			stats.TotalWeightLoss = loss
		}
	}

	for _, s := range streaks {
		stats.LongestStreak = max(stats.LongestStreak, s.BestCount)
	}
	return stats
}
