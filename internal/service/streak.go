package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// activeWindow is how long after the last qualifying event a streak stays active.
const activeWindow = 24 * time.Hour

// StreakInput is the raw material for one habit track.
type StreakInput struct {
	ClientID int64
	Type     domain.StreakType
	Activity []time.Time
	// RecoveredDay is the missed day (YYYY-MM-DD) bridged by a recovery,
	// or empty when the streak has never been recovered.
	RecoveredDay string
}

// StreakID returns the stable identifier of a client's habit track.
func StreakID(clientID int64, t domain.StreakType) string {
	return fmt.Sprintf("%d:%s", clientID, t)
}

// DeriveStreak computes the streak view for one habit track. It returns nil
// when the track has no usable activity.
func DeriveStreak(in StreakInput, now time.Time, loc *time.Location) *domain.Streak {
	var last time.Time
	seen := make(map[time.Time]bool, len(in.Activity))
	days := make([]time.Time, 0, len(in.Activity))
	for _, ts := range in.Activity {
		if ts.IsZero() {
			continue
		}
		if ts.After(last) {
			last = ts
		}
		d := civilDay(ts, loc)
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	if len(days) == 0 {
		return nil
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	bridged := func(day time.Time) bool {
		return in.RecoveredDay != "" && dayKey(day) == in.RecoveredDay
	}
	// continues reports whether the older day runs into the newer one.
	continues := func(newer, older time.Time) bool {
		switch daysBetween(older, newer) {
		case 1:
			return true
		case 2:
			return bridged(older.AddDate(0, 0, 1))
		default:
			return false
		}
	}

	// Walk newest to oldest; the first run is the one ending at the most recent day.
	best, run := 0, 1
	latestRun, latestStart := 0, days[0]
	for i := 1; i <= len(days); i++ {
		if i < len(days) && continues(days[i-1], days[i]) {
			run++
			continue
		}
		if latestRun == 0 {
			latestRun = run
			latestStart = days[i-1]
		}
		best = max(best, run)
		run = 1
	}

	today := civilDay(now, loc)
	lastDay := days[0]
	gap := daysBetween(lastDay, today)

	streak := &domain.Streak{
		ID:               StreakID(in.ClientID, in.Type),
		ClientID:         in.ClientID,
		Type:             in.Type,
		BestCount:        best,
		IsActive:         now.Sub(last) < activeWindow && gap <= 1,
		LastActivityDate: &last,
	}

	lapseBridged := bridged(lastDay.AddDate(0, 0, 1))
	effectiveGap := gap
	if gap >= 2 && lapseBridged {
		effectiveGap--
	}
	if effectiveGap <= 1 {
		streak.CurrentCount = latestRun
		start := localMidnight(latestStart, loc)
		streak.StartDate = &start
	}

	streak.Recovered = lapseBridged && gap >= 1 && effectiveGap <= 1
	streak.CanRecover = CanRecover(streak, in.RecoveredDay != "", now, loc)
	return streak
}

// BuildStreaks derives every habit track for a client. Only completed
// sessions count towards attendance. recoveredDays maps streak ID to the
// bridged day recorded by a recovery.
func BuildStreaks(clientID int64, sessions []domain.TrainingSession, entries []domain.ProgressEntry, recoveredDays map[string]string, now time.Time, loc *time.Location) []domain.Streak {
	var attended []time.Time
	for _, s := range sessions {
		if s.Status == domain.SessionStatusCompleted {
			attended = append(attended, s.Date)
		}
	}
	logged := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		logged = append(logged, e.Date)
	}

	inputs := []StreakInput{
		{ClientID: clientID, Type: domain.StreakTypeSessionAttendance, Activity: attended},
		{ClientID: clientID, Type: domain.StreakTypeProgressLogging, Activity: logged},
	}

	var streaks []domain.Streak
	for _, in := range inputs {
		in.RecoveredDay = recoveredDays[StreakID(clientID, in.Type)]
		if s := DeriveStreak(in, now, loc); s != nil {
			streaks = append(streaks, *s)
		}
	}
	return streaks
}

// TopStreak returns the streak with the highest current count. Ties go to
// the lexicographically smallest ID. Returns nil for an empty slice.
func TopStreak(streaks []domain.Streak) *domain.Streak {
	var top *domain.Streak
	for i := range streaks {
		s := &streaks[i]
		if top == nil || s.CurrentCount > top.CurrentCount ||
			(s.CurrentCount == top.CurrentCount && s.ID < top.ID) {
			top = s
		}
	}
	return top
}

// PlaceholderStreak is shown when a client has no activity yet. It is not
// a real streak and must not be celebrated or recovered.
func PlaceholderStreak(clientID int64) domain.Streak {
	return domain.Streak{
		ID:       StreakID(clientID, domain.StreakTypeSessionAttendance),
		ClientID: clientID,
		Type:     domain.StreakTypeSessionAttendance,
	}
}
