package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// TrainingSessionRepository implements domain.TrainingSessionRepository using SQLite.
type TrainingSessionRepository struct {
	db *sql.DB
}

// NewTrainingSessionRepository creates a new SQLite-backed TrainingSessionRepository.
func NewTrainingSessionRepository(db *DB) *TrainingSessionRepository {
	return &TrainingSessionRepository{db: db.SqlDB}
}

func (r *TrainingSessionRepository) Create(ctx context.Context, session *domain.TrainingSession) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO training_sessions (client_id, date, status, notes, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		session.ClientID, session.Date.UTC(), session.Status, session.Notes, now,
	)
	if err != nil {
		return fmt.Errorf("insert training session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get training session id: %w", err)
	}

	session.ID = id
	session.CreatedAt = now
	return nil
}

func (r *TrainingSessionRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.TrainingSession, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, client_id, date, status, notes, created_at
		 FROM training_sessions
		 WHERE client_id = ?
		 ORDER BY date, id`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list training sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.TrainingSession
	for rows.Next() {
		var s domain.TrainingSession
		if err := rows.Scan(&s.ID, &s.ClientID, &s.Date, &s.Status, &s.Notes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan training session: %w", err)
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
