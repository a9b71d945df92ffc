package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// ProgressRepository implements domain.ProgressRepository using SQLite.
type ProgressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new SQLite-backed ProgressRepository.
func NewProgressRepository(db *DB) *ProgressRepository {
	return &ProgressRepository{db: db.SqlDB}
}

func (r *ProgressRepository) Create(ctx context.Context, entry *domain.ProgressEntry) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO progress_entries (client_id, date, weight, notes, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.ClientID, entry.Date.UTC(), entry.Weight, entry.Notes, now,
	)
	if err != nil {
		return fmt.Errorf("insert progress entry: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get progress entry id: %w", err)
	}

	entry.ID = id
	entry.CreatedAt = now
	return nil
}

func (r *ProgressRepository) ListByClient(ctx context.Context, clientID int64) ([]domain.ProgressEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, client_id, date, weight, notes, created_at
		 FROM progress_entries
		 WHERE client_id = ?
		 ORDER BY date, id`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list progress entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.ProgressEntry
	for rows.Next() {
		var e domain.ProgressEntry
		if err := rows.Scan(&e.ID, &e.ClientID, &e.Date, &e.Weight, &e.Notes, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan progress entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
