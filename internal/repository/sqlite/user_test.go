package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/msomdec/trainer-streaks/internal/domain"
	"github.com/msomdec/trainer-streaks/internal/repository/sqlite"
)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRepository_CreateTrainer(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	trainer := &domain.User{
		Email:        "coach@example.com",
		DisplayName:  "Zoë Müller-Øberg",
		PasswordHash: "$2a$04$hash",
	}
	if err := repo.Create(ctx, trainer); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if trainer.ID == 0 {
		t.Fatal("expected trainer ID to be set after create")
	}
	if trainer.CreatedAt.IsZero() || !trainer.CreatedAt.Equal(trainer.UpdatedAt) {
		t.Fatalf("expected matching timestamps, got %v / %v", trainer.CreatedAt, trainer.UpdatedAt)
	}

	found, err := repo.GetByID(ctx, trainer.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if found.DisplayName != "Zoë Müller-Øberg" {
		t.Fatalf("display name not preserved: %q", found.DisplayName)
	}
	if found.PasswordHash != trainer.PasswordHash {
		t.Fatalf("expected hash %q, got %q", trainer.PasswordHash, found.PasswordHash)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	createTestTrainer(t, db, "coach@example.com")

	err := repo.Create(ctx, &domain.User{Email: "coach@example.com", DisplayName: "Second Coach", PasswordHash: "hash"})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

// Emails are normalised to lower case before they reach the repository, so
// lookups are exact.
func TestUserRepository_GetByEmailIsExact(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	trainer := createTestTrainer(t, db, "coach@example.com")

	found, err := repo.GetByEmail(ctx, "coach@example.com")
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if found.ID != trainer.ID {
		t.Fatalf("expected id %d, got %d", trainer.ID, found.ID)
	}

	if _, err := repo.GetByEmail(ctx, "Coach@Example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for un-normalised email, got %v", err)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	db := newTestDB(t)
	repo := db.Users()
	ctx := context.Background()

	tests := []struct {
		name string
		get  func() (*domain.User, error)
	}{
		{"by id", func() (*domain.User, error) { return repo.GetByID(ctx, 99999) }},
		{"by email", func() (*domain.User, error) { return repo.GetByEmail(ctx, "nobody@example.com") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.get(); !errors.Is(err, domain.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestUserRepository_DeletingTrainerRemovesRoster(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	trainer := createTestTrainer(t, db, "coach@example.com")
	client := createTestClient(t, db, trainer.ID, "Sarah")

	if _, err := db.SqlDB.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, trainer.ID); err != nil {
		t.Fatalf("delete trainer: %v", err)
	}

	if _, err := db.Clients().GetByID(ctx, client.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected client to be removed with its trainer, got %v", err)
	}
}
