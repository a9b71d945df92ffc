package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// MarkerStore implements domain.MarkerStore using SQLite.
type MarkerStore struct {
	db *sql.DB
}

var _ domain.MarkerStore = (*MarkerStore)(nil)

// NewMarkerStore creates a new SQLite-backed MarkerStore.
func NewMarkerStore(db *DB) *MarkerStore {
	return &MarkerStore{db: db.SqlDB}
}

func (s *MarkerStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM markers WHERE namespace = ? AND key = ?", namespace, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get marker: %w", err)
	}
	return value, true, nil
}

func (s *MarkerStore) PutIfAbsent(ctx context.Context, namespace, key, value string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO markers (namespace, key, value) VALUES (?, ?, ?)
		 ON CONFLICT (namespace, key) DO NOTHING`,
		namespace, key, value,
	)
	if err != nil {
		return false, fmt.Errorf("put marker: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows == 1, nil
}
