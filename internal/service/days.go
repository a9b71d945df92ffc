package service

import "time"

const dayLayout = "2006-01-02"

// civilDay returns the local calendar date of t as midnight UTC, so day
// arithmetic is unaffected by DST transitions in loc.
func civilDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// daysBetween returns the number of calendar days from a to b.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a).Hours() / 24)
}

func dayKey(civil time.Time) string {
	return civil.Format(dayLayout)
}

// localMidnight converts a civil day back to midnight in loc.
func localMidnight(civil time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	y, m, d := civil.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
