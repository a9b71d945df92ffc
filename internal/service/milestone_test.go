package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msomdec/trainer-streaks/internal/domain"
	"github.com/msomdec/trainer-streaks/internal/service"
)

type recordingNotifier struct {
	tokens []string
	data   []map[string]string
	err    error
}

func (n *recordingNotifier) Notify(_ context.Context, token, _, _ string, data map[string]string) error {
	if n.err != nil {
		return n.err
	}
	n.tokens = append(n.tokens, token)
	n.data = append(n.data, data)
	return nil
}

func TestMilestoneTier(t *testing.T) {
	tests := []struct {
		count int
		tier  string
		ok    bool
	}{
		{0, "", false},
		{6, "", false},
		{7, "Week Warrior", true},
		{13, "Week Warrior", true},
		{14, "Fortnight Fighter", true},
		{30, "Monthly Master", true},
		{59, "Monthly Master", true},
		{60, "Unstoppable", true},
		{100, "Century Legend", true},
		{365, "Century Legend", true},
	}
	for _, tt := range tests {
		tier, _, ok := service.MilestoneTier(tt.count)
		assert.Equal(t, tt.ok, ok, "count %d", tt.count)
		assert.Equal(t, tt.tier, tier, "count %d", tt.count)
	}
}

func TestIsMilestone(t *testing.T) {
	for _, n := range []int{7, 14, 30, 60, 100} {
		assert.True(t, service.IsMilestone(n), "%d", n)
	}
	for _, n := range []int{0, 1, 8, 15, 99, 101} {
		assert.False(t, service.IsMilestone(n), "%d", n)
	}
}

func TestNewCelebration_WeekWarrior(t *testing.T) {
	c, ok := service.NewCelebration("1:session_attendance", 7)
	require.True(t, ok)

	assert.Equal(t, "Week Warrior", c.Tier)
	assert.Equal(t, 70, c.XP)
	assert.Equal(t, 7, c.Count)
	assert.NotEmpty(t, c.Message)

	_, ok = service.NewCelebration("1:session_attendance", 8)
	assert.False(t, ok)
}

func activeStreak(count int) *domain.Streak {
	return &domain.Streak{ID: "1:session_attendance", CurrentCount: count, BestCount: count, IsActive: true}
}

func TestCelebrationService_PendingThenDismiss(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCelebrationService(service.NewMemoryMarkerStore(), nil)

	c, err := svc.Pending(ctx, activeStreak(7))
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 70, c.XP)

	stored, err := svc.Dismiss(ctx, activeStreak(7), c.Count)
	require.NoError(t, err)
	assert.True(t, stored)

	c, err = svc.Pending(ctx, activeStreak(7))
	require.NoError(t, err)
	assert.Nil(t, c, "a dismissed milestone is never shown again")

	stored, err = svc.Dismiss(ctx, activeStreak(7), 7)
	require.NoError(t, err)
	assert.False(t, stored, "dismiss is idempotent")
}

func TestCelebrationService_DismissBeforeMilestoneIsReached(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCelebrationService(service.NewMemoryMarkerStore(), nil)

	stored, err := svc.Dismiss(ctx, nil, 7)
	require.NoError(t, err)
	assert.False(t, stored, "no streak yet")

	stored, err = svc.Dismiss(ctx, activeStreak(3), 7)
	require.NoError(t, err)
	assert.False(t, stored, "streak has not reached 7")

	stored, err = svc.Dismiss(ctx, activeStreak(7), 100)
	require.NoError(t, err)
	assert.False(t, stored, "streak is on a different milestone")

	lapsed := activeStreak(7)
	lapsed.IsActive = false
	stored, err = svc.Dismiss(ctx, lapsed, 7)
	require.NoError(t, err)
	assert.False(t, stored, "inactive streaks have nothing to dismiss")

	c, err := svc.Pending(ctx, activeStreak(7))
	require.NoError(t, err)
	require.NotNil(t, c, "early dismissals must not suppress the real celebration")
	assert.Equal(t, 7, c.Count)
}

func TestCelebrationService_PendingRules(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCelebrationService(service.NewMemoryMarkerStore(), nil)

	c, err := svc.Pending(ctx, activeStreak(8))
	require.NoError(t, err)
	assert.Nil(t, c, "8 is not a milestone")

	inactive := activeStreak(7)
	inactive.IsActive = false
	c, err = svc.Pending(ctx, inactive)
	require.NoError(t, err)
	assert.Nil(t, c, "inactive streaks are not celebrated")

	inactive.Recovered = true
	c, err = svc.Pending(ctx, inactive)
	require.NoError(t, err)
	assert.NotNil(t, c, "recovered streaks count as active")

	c, err = svc.Pending(ctx, nil)
	require.NoError(t, err)
	assert.Nil(t, c)
}

func TestCelebrationService_EachMilestoneOnce(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCelebrationService(service.NewMemoryMarkerStore(), nil)

	stored, err := svc.Dismiss(ctx, activeStreak(7), 7)
	require.NoError(t, err)
	require.True(t, stored)

	c, err := svc.Pending(ctx, activeStreak(14))
	require.NoError(t, err)
	require.NotNil(t, c, "dismissing 7 does not suppress 14")
	assert.Equal(t, "Fortnight Fighter", c.Tier)
}

func TestCelebrationService_DismissRejectsNonMilestone(t *testing.T) {
	svc := service.NewCelebrationService(service.NewMemoryMarkerStore(), nil)

	_, err := svc.Dismiss(context.Background(), activeStreak(9), 9)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCelebrationService_Share(t *testing.T) {
	ctx := context.Background()
	c, _ := service.NewCelebration("1:session_attendance", 7)

	t.Run("push", func(t *testing.T) {
		n := &recordingNotifier{}
		svc := service.NewCelebrationService(service.NewMemoryMarkerStore(), n)

		res := svc.Share(ctx, &domain.Client{Name: "Sarah", DeviceToken: "tok"}, c)
		assert.Equal(t, service.ShareMethodPush, res.Method)
		assert.True(t, strings.HasPrefix(res.Text, "Sarah just hit a 7-day streak"))
		require.Len(t, n.tokens, 1)
		assert.Equal(t, "7", n.data[0]["count"])
	})

	t.Run("no notifier", func(t *testing.T) {
		svc := service.NewCelebrationService(service.NewMemoryMarkerStore(), nil)
		res := svc.Share(ctx, &domain.Client{Name: "Sarah", DeviceToken: "tok"}, c)
		assert.Equal(t, service.ShareMethodClipboard, res.Method)
		assert.Contains(t, res.Text, "Week Warrior")
	})

	t.Run("no device token", func(t *testing.T) {
		n := &recordingNotifier{}
		svc := service.NewCelebrationService(service.NewMemoryMarkerStore(), n)
		res := svc.Share(ctx, &domain.Client{Name: "Sarah"}, c)
		assert.Equal(t, service.ShareMethodClipboard, res.Method)
		assert.Empty(t, n.tokens)
	})

	t.Run("delivery failure falls back", func(t *testing.T) {
		n := &recordingNotifier{err: errors.New("unregistered")}
		svc := service.NewCelebrationService(service.NewMemoryMarkerStore(), n)
		res := svc.Share(ctx, &domain.Client{Name: "Sarah", DeviceToken: "tok"}, c)
		assert.Equal(t, service.ShareMethodClipboard, res.Method)
		assert.NotEmpty(t, res.Text)
	})

	t.Run("unnamed client", func(t *testing.T) {
		svc := service.NewCelebrationService(service.NewMemoryMarkerStore(), nil)
		res := svc.Share(ctx, nil, c)
		assert.True(t, strings.HasPrefix(res.Text, "My client"))
	})
}
