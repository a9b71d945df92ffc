package view_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
	"github.com/msomdec/trainer-streaks/internal/view"
)

func TestCelebrationCard_RendersEachCelebration(t *testing.T) {
	var buf bytes.Buffer
	err := view.CelebrationCard(7, []domain.Celebration{
		{StreakID: "7:session_attendance", Count: 7, Tier: "Week Warrior", Message: "Nice", XP: 70},
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := buf.String()
	for _, want := range []string{
		`id="celebration-card"`,
		"Week Warrior",
		"+70 XP",
		"/api/clients/7/celebrations/dismiss",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in output:\n%s", want, html)
		}
	}
}

func TestCelebrationCard_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := view.CelebrationCard(1, nil).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buf.String(); got != `<div id="celebration-card"></div>` {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestCelebrationCard_EscapesText(t *testing.T) {
	var buf bytes.Buffer
	err := view.CelebrationCard(1, []domain.Celebration{
		{StreakID: "1:x", Count: 7, Tier: "<script>", Message: "a & b"},
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(buf.String(), "<script>") {
		t.Fatal("tier was not escaped")
	}
}

func TestBadgeGrid(t *testing.T) {
	achieved := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	badges := []domain.Badge{
		{
			BadgeDefinition: domain.BadgeDefinition{ID: "first_session", Name: "First Step", Requirement: "Complete your first session"},
			IsUnlocked:      true,
			AchievedDate:    &achieved,
		},
		{
			BadgeDefinition:    domain.BadgeDefinition{ID: "ten_sessions", Name: "Regular", Requirement: "Complete 10 sessions"},
			Progress:           40,
			UnlockInstructions: "Attend sessions.",
		},
	}

	var buf bytes.Buffer
	if err := view.BadgeGrid(badges).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, `data-state="unlocked" data-badge="first_session"`) {
		t.Errorf("missing unlocked badge:\n%s", html)
	}
	if !strings.Contains(html, `<progress max="100" value="40">`) {
		t.Errorf("missing progress bar:\n%s", html)
	}
	if !strings.Contains(html, "1 May 2024") {
		t.Errorf("missing achieved date:\n%s", html)
	}
}

func TestCelebrationCard_ActionsPostPayload(t *testing.T) {
	var buf bytes.Buffer
	err := view.CelebrationCard(3, []domain.Celebration{
		{StreakID: "3:progress_logging", Count: 14, Tier: "Fortnight Fighter", XP: 140},
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}

	html := buf.String()
	want := `data-on-click="@post(&#39;/api/clients/3/celebrations/share&#39;, {payload: {streakId: &#39;3:progress_logging&#39;, count: 14}})"`
	if !strings.Contains(html, want) {
		t.Errorf("expected share action %q in output:\n%s", want, html)
	}
	if !strings.Contains(html, `data-count="14"`) {
		t.Errorf("missing count attribute:\n%s", html)
	}
}
