package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/msomdec/trainer-streaks/internal/domain"
)

// ClientRepository implements domain.ClientRepository using SQLite.
type ClientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new SQLite-backed ClientRepository.
func NewClientRepository(db *DB) *ClientRepository {
	return &ClientRepository{db: db.SqlDB}
}

func (r *ClientRepository) Create(ctx context.Context, client *domain.Client) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO clients (trainer_id, name, email, device_token, date_joined, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		client.TrainerID, client.Name, client.Email, client.DeviceToken, client.DateJoined.UTC(), now,
	)
	if err != nil {
		return fmt.Errorf("insert client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get client id: %w", err)
	}

	client.ID = id
	client.CreatedAt = now
	return nil
}

func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	c := &domain.Client{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, trainer_id, name, email, device_token, date_joined, created_at
		 FROM clients WHERE id = ?`, id,
	).Scan(&c.ID, &c.TrainerID, &c.Name, &c.Email, &c.DeviceToken, &c.DateJoined, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (r *ClientRepository) ListByTrainer(ctx context.Context, trainerID int64) ([]domain.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, trainer_id, name, email, device_token, date_joined, created_at
		 FROM clients WHERE trainer_id = ?
		 ORDER BY name COLLATE NOCASE, id`, trainerID)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	var clients []domain.Client
	for rows.Next() {
		var c domain.Client
		if err := rows.Scan(&c.ID, &c.TrainerID, &c.Name, &c.Email, &c.DeviceToken, &c.DateJoined, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}
