package sqlite_test

import (
	"context"
	"sync"
	"testing"

	"github.com/msomdec/trainer-streaks/internal/domain"
	"github.com/msomdec/trainer-streaks/internal/repository/sqlite"
)

func TestMarkerStore_PutIfAbsent(t *testing.T) {
	db := newTestDB(t)
	store := sqlite.NewMarkerStore(db)
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, domain.MarkerCelebrated, "1:session_attendance:7"); err != nil || ok {
		t.Fatalf("Get before put: ok=%v err=%v", ok, err)
	}

	stored, err := store.PutIfAbsent(ctx, domain.MarkerCelebrated, "1:session_attendance:7", "2024-05-01")
	if err != nil {
		t.Fatalf("PutIfAbsent: %v", err)
	}
	if !stored {
		t.Fatal("expected first put to store")
	}

	stored, err = store.PutIfAbsent(ctx, domain.MarkerCelebrated, "1:session_attendance:7", "2024-05-02")
	if err != nil {
		t.Fatalf("PutIfAbsent again: %v", err)
	}
	if stored {
		t.Fatal("expected second put to be a no-op")
	}

	value, ok, err := store.Get(ctx, domain.MarkerCelebrated, "1:session_attendance:7")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if value != "2024-05-01" {
		t.Errorf("value = %q, want first write to win", value)
	}
}

func TestMarkerStore_NamespacesAreSeparate(t *testing.T) {
	db := newTestDB(t)
	store := sqlite.NewMarkerStore(db)
	ctx := context.Background()

	if _, err := store.PutIfAbsent(ctx, domain.MarkerRecovered, "1:progress_logging", "2024-05-01"); err != nil {
		t.Fatalf("PutIfAbsent: %v", err)
	}
	if _, ok, _ := store.Get(ctx, domain.MarkerCelebrated, "1:progress_logging"); ok {
		t.Fatal("marker leaked across namespaces")
	}
}

func TestMarkerStore_ConcurrentPutStoresOnce(t *testing.T) {
	db := newTestDB(t)
	store := sqlite.NewMarkerStore(db)
	ctx := context.Background()

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		stores int
	)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.PutIfAbsent(ctx, domain.MarkerCelebrated, "k", "v")
			if err != nil {
				t.Errorf("PutIfAbsent: %v", err)
				return
			}
			if ok {
				mu.Lock()
				stores++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if stores != 1 {
		t.Fatalf("expected exactly one store, got %d", stores)
	}
}
