package domain

import "context"

// Marker namespaces.
const (
	MarkerCelebrated = "celebrated"
	MarkerRecovered  = "recovered"
)

// MarkerStore remembers small idempotent event markers keyed by opaque
// strings. A missing key means the event has not happened yet.
type MarkerStore interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	// PutIfAbsent stores value under key unless the key already exists.
	// It reports whether this call stored the value.
	PutIfAbsent(ctx context.Context, namespace, key, value string) (bool, error)
}
