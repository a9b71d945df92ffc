package domain

import (
	"context"
	"time"
)

// Client is a member of a trainer's roster.
type Client struct {
	ID          int64
	TrainerID   int64
	Name        string
	Email       string
	DeviceToken string // Push token used for shared celebrations; may be empty
	DateJoined  time.Time
	CreatedAt   time.Time
}

// ClientRepository defines persistence operations for clients.
type ClientRepository interface {
	Create(ctx context.Context, client *Client) error
	GetByID(ctx context.Context, id int64) (*Client, error)
	ListByTrainer(ctx context.Context, trainerID int64) ([]Client, error)
}
