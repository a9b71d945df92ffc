// Package postgres provides a Postgres-backed marker store for deployments
// that share celebration and recovery markers across instances.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

const createMarkersTable = `
CREATE TABLE IF NOT EXISTS markers (
    namespace  TEXT NOT NULL,
    key        TEXT NOT NULL,
    value      TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    PRIMARY KEY (namespace, key)
)`

// MarkerStore implements domain.MarkerStore using a pgx connection pool.
type MarkerStore struct {
	pool *pgxpool.Pool
}

var _ domain.MarkerStore = (*MarkerStore)(nil)

// Open connects to the database at url and ensures the markers table exists.
func Open(ctx context.Context, url string) (*MarkerStore, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse marker database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute
	cfg.HealthCheckPeriod = time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create marker pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping marker database: %w", err)
	}

	s := NewMarkerStore(pool)
	if err := s.Migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

// NewMarkerStore wraps an existing pool.
func NewMarkerStore(pool *pgxpool.Pool) *MarkerStore {
	return &MarkerStore{pool: pool}
}

// Migrate creates the markers table if it does not exist.
func (s *MarkerStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, createMarkersTable); err != nil {
		return fmt.Errorf("create markers table: %w", err)
	}
	return nil
}

func (s *MarkerStore) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	var value string
	err := s.pool.QueryRow(ctx,
		"SELECT value FROM markers WHERE namespace = $1 AND key = $2", namespace, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get marker: %w", err)
	}
	return value, true, nil
}

func (s *MarkerStore) PutIfAbsent(ctx context.Context, namespace, key, value string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`INSERT INTO markers (namespace, key, value) VALUES ($1, $2, $3)
		 ON CONFLICT (namespace, key) DO NOTHING`,
		namespace, key, value,
	)
	if err != nil {
		return false, fmt.Errorf("put marker: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// Close releases the pool.
func (s *MarkerStore) Close() {
	s.pool.Close()
}
