package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// ClientService manages a trainer's roster and the records logged against it.
type ClientService struct {
	clients  domain.ClientRepository
	sessions domain.TrainingSessionRepository
	progress domain.ProgressRepository
}

// NewClientService creates a new ClientService.
func NewClientService(clients domain.ClientRepository, sessions domain.TrainingSessionRepository, progress domain.ProgressRepository) *ClientService {
	return &ClientService{clients: clients, sessions: sessions, progress: progress}
}

// Create adds a client to the trainer's roster.
func (s *ClientService) Create(ctx context.Context, trainerID int64, client *domain.Client) error {
	client.Name = strings.TrimSpace(client.Name)
	if client.Name == "" {
		return fmt.Errorf("%w: client name is required", domain.ErrInvalidInput)
	}
	if client.Email != "" {
		if _, err := mail.ParseAddress(client.Email); err != nil {
			return fmt.Errorf("%w: invalid email address", domain.ErrInvalidInput)
		}
	}
	client.TrainerID = trainerID
	if client.DateJoined.IsZero() {
		client.DateJoined = time.Now().UTC()
	}
	if err := s.clients.Create(ctx, client); err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// Get returns a client after verifying it belongs to the trainer.
func (s *ClientService) Get(ctx context.Context, trainerID, clientID int64) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if client.TrainerID != trainerID {
		return nil, domain.ErrUnauthorized
	}
	return client, nil
}

// List returns the trainer's clients.
func (s *ClientService) List(ctx context.Context, trainerID int64) ([]domain.Client, error) {
	return s.clients.ListByTrainer(ctx, trainerID)
}

// RecordSession logs a training session for one of the trainer's clients.
func (s *ClientService) RecordSession(ctx context.Context, trainerID int64, session *domain.TrainingSession) error {
	if _, err := s.Get(ctx, trainerID, session.ClientID); err != nil {
		return err
	}
	if session.Status == "" {
		session.Status = domain.SessionStatusCompleted
	}
	if !domain.ValidSessionStatus(session.Status) {
		return fmt.Errorf("%w: unknown session status %q", domain.ErrInvalidInput, session.Status)
	}
	if session.Date.IsZero() {
		return fmt.Errorf("%w: session date is required", domain.ErrInvalidInput)
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// RecordProgress logs a progress entry for one of the trainer's clients.
func (s *ClientService) RecordProgress(ctx context.Context, trainerID int64, entry *domain.ProgressEntry) error {
	if _, err := s.Get(ctx, trainerID, entry.ClientID); err != nil {
		return err
	}
	if entry.Weight <= 0 {
		return fmt.Errorf("%w: weight must be positive", domain.ErrInvalidInput)
	}
	if entry.Date.IsZero() {
		return fmt.Errorf("%w: entry date is required", domain.ErrInvalidInput)
	}
	if err := s.progress.Create(ctx, entry); err != nil {
		return fmt.Errorf("create progress entry: %w", err)
	}
	return nil
}

// History returns every session and progress entry recorded for a client.
func (s *ClientService) History(ctx context.Context, clientID int64) ([]domain.TrainingSession, []domain.ProgressEntry, error) {
	sessions, err := s.sessions.ListByClient(ctx, clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("list sessions: %w", err)
	}
	entries, err := s.progress.ListByClient(ctx, clientID)
	if err != nil {
		return nil, nil, fmt.Errorf("list progress entries: %w", err)
	}
	return sessions, entries, nil
}
