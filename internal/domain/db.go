package domain

import "context"

// Database is the lifecycle of the store holding trainers, rosters and
// their records. The marker namespaces may live in a separate backend
// (see MarkerStore), so Migrate only covers the tables this store owns.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}
