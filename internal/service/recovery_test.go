package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/trainer-streaks/internal/domain"
	"github.com/msomdec/trainer-streaks/internal/service"
)

func lapsedStreak() *domain.Streak {
	return derive([]time.Time{at(-1, 10), at(-2, 10), at(-3, 10)}, "")
}

func TestCanRecover(t *testing.T) {
	last := at(-1, 10)
	twoDays := at(-2, 10)

	tests := []struct {
		name      string
		streak    *domain.Streak
		recovered bool
		want      bool
	}{
		{"nil streak", nil, false, false},
		{"no activity", &domain.Streak{}, false, false},
		{"lapsed one day", &domain.Streak{LastActivityDate: &last}, false, true},
		{"already recovered", &domain.Streak{LastActivityDate: &last}, true, false},
		{"still active", &domain.Streak{IsActive: true, LastActivityDate: &last}, false, false},
		{"lapsed two days", &domain.Streak{LastActivityDate: &twoDays}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.CanRecover(tt.streak, tt.recovered, testNow, time.UTC))
		})
	}
}

func TestRecoveryService_RecoverOnce(t *testing.T) {
	ctx := context.Background()
	markers := service.NewMemoryMarkerStore()
	svc := service.NewRecoveryService(markers, time.UTC).WithClock(func() time.Time { return testNow })

	streak := lapsedStreak()
	require.True(t, streak.CanRecover)

	ok, err := svc.Recover(ctx, streak)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, streak.Recovered)
	assert.False(t, streak.CanRecover)

	day, found, err := markers.Get(ctx, domain.MarkerRecovered, streak.ID)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "2024-05-10", day, "the missed day is bridged")

	ok, err = svc.Recover(ctx, lapsedStreak())
	require.NoError(t, err)
	assert.False(t, ok, "a second recovery is a no-op")
}

func TestRecoveryService_NotRecoverableIsNoOp(t *testing.T) {
	ctx := context.Background()
	markers := service.NewMemoryMarkerStore()
	svc := service.NewRecoveryService(markers, time.UTC).WithClock(func() time.Time { return testNow })

	active := derive([]time.Time{at(0, 9), at(-1, 9)}, "")
	ok, err := svc.Recover(ctx, active)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.Recover(ctx, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, found, err := markers.Get(ctx, domain.MarkerRecovered, active.ID)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRecoveryService_RecoveredDays(t *testing.T) {
	ctx := context.Background()
	markers := service.NewMemoryMarkerStore()
	_, err := markers.PutIfAbsent(ctx, domain.MarkerRecovered, "1:session_attendance", "2024-05-01")
	require.NoError(t, err)

	svc := service.NewRecoveryService(markers, time.UTC)
	days, err := svc.RecoveredDays(ctx, "1:session_attendance", "1:progress_logging")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"1:session_attendance": "2024-05-01"}, days)
}
