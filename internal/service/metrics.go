package service

import "github.com/prometheus/client_golang/prometheus"

var (
	celebrationsShown = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streak_celebrations_total",
			Help: "Milestone celebrations by lifecycle event",
		},
		[]string{"event"}, // "pending_reads", "dismissed", "shared", "clipboard"
	)
	streakRecoveries = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "streak_recoveries_total",
			Help: "Total number of one-time streak recoveries applied",
		},
	)
	badgesUnlocked = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "badges_unlocked_total",
			Help: "Badges newly unlocked, by category",
		},
		[]string{"category"},
	)
)

// RegisterMetrics registers the gamification metrics with reg.
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(celebrationsShown, streakRecoveries, badgesUnlocked)
}
