package service

import (
	"context"
	"sync"
)

// MemoryMarkerStore is an in-process domain.MarkerStore. Markers are lost
// when the process exits.
type MemoryMarkerStore struct {
	mu      sync.Mutex
	markers map[string]string
}

// NewMemoryMarkerStore creates an empty MemoryMarkerStore.
func NewMemoryMarkerStore() *MemoryMarkerStore {
	return &MemoryMarkerStore{markers: make(map[string]string)}
}

func (m *MemoryMarkerStore) Get(_ context.Context, namespace, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.markers[namespace+"/"+key]
	return v, ok, nil
}

func (m *MemoryMarkerStore) PutIfAbsent(_ context.Context, namespace, key, value string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := namespace + "/" + key
	if _, ok := m.markers[k]; ok {
		return false, nil
	}
	m.markers[k] = value
	return true, nil
}
