package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// BadgeUnlockRepository implements domain.BadgeUnlockRepository using SQLite.
type BadgeUnlockRepository struct {
	db *sql.DB
}

var _ domain.BadgeUnlockRepository = (*BadgeUnlockRepository)(nil)

// NewBadgeUnlockRepository creates a new SQLite-backed BadgeUnlockRepository.
func NewBadgeUnlockRepository(db *DB) *BadgeUnlockRepository {
	return &BadgeUnlockRepository{db: db.SqlDB}
}

func (r *BadgeUnlockRepository) ListByClient(ctx context.Context, clientID int64) (map[string]time.Time, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT badge_id, unlocked_at FROM badge_unlocks WHERE client_id = ?", clientID)
	if err != nil {
		return nil, fmt.Errorf("list badge unlocks: %w", err)
	}
	defer rows.Close()

	unlocked := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, fmt.Errorf("scan badge unlock: %w", err)
		}
		unlocked[id] = at
	}
	return unlocked, rows.Err()
}

func (r *BadgeUnlockRepository) Record(ctx context.Context, clientID int64, badgeID string, unlockedAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO badge_unlocks (client_id, badge_id, unlocked_at) VALUES (?, ?, ?)
		 ON CONFLICT (client_id, badge_id) DO NOTHING`,
		clientID, badgeID, unlockedAt.UTC(),
	)
	if err != nil {
		return false, fmt.Errorf("insert badge unlock: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows == 1, nil
}
