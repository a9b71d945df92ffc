package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
	"github.com/msomdec/trainer-streaks/internal/repository/sqlite"
)

func TestTrainingSessionRepository_CreateAndList(t *testing.T) {
	db := newTestDB(t)
	trainer := createTestTrainer(t, db, "coach@example.com")
	client := createTestClient(t, db, trainer.ID, "Sarah")
	repo := sqlite.NewTrainingSessionRepository(db)
	ctx := context.Background()

	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i, status := range []string{domain.SessionStatusCompleted, domain.SessionStatusNoShow, domain.SessionStatusCompleted} {
		s := &domain.TrainingSession{
			ClientID: client.ID,
			Date:     day.AddDate(0, 0, 2-i),
			Status:   status,
		}
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create: %v", err)
		}
		if s.ID == 0 {
			t.Fatal("expected session ID to be set")
		}
	}

	sessions, err := repo.ListByClient(ctx, client.ID)
	if err != nil {
		t.Fatalf("ListByClient: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	for i := 1; i < len(sessions); i++ {
		if sessions[i].Date.Before(sessions[i-1].Date) {
			t.Fatalf("sessions not ordered by date: %v before %v", sessions[i].Date, sessions[i-1].Date)
		}
	}
	if sessions[1].Status != domain.SessionStatusNoShow {
		t.Errorf("middle session status = %q, want %q", sessions[1].Status, domain.SessionStatusNoShow)
	}
}

func TestTrainingSessionRepository_RejectsUnknownStatus(t *testing.T) {
	db := newTestDB(t)
	trainer := createTestTrainer(t, db, "coach@example.com")
	client := createTestClient(t, db, trainer.ID, "Sarah")

	err := sqlite.NewTrainingSessionRepository(db).Create(context.Background(), &domain.TrainingSession{
		ClientID: client.ID,
		Date:     time.Now(),
		Status:   "maybe",
	})
	if err == nil {
		t.Fatal("expected error for unknown status")
	}
}
