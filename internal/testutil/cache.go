// Package testutil provides shared test setup for the batch cache.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/Veraticus/rollover/internal/model"
	"github.com/Veraticus/rollover/internal/storage"
)

// SetupTestCache creates a migrated in-memory batch cache closed at the end
// of the test.
func SetupTestCache(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	store, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test cache: %v", err)
	}

	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	t.Cleanup(func() {
		_ = store.Close()
	})

	return store
}

// SeedBatch stores records as the latest batch for clientID.
func SeedBatch(t *testing.T, store *storage.SQLiteStorage, clientID string, fetchedAt time.Time, records []model.RawRecord) *model.Batch {
	t.Helper()

	batch := &model.Batch{
		FetchedAt: fetchedAt,
		Start:     fetchedAt.AddDate(0, 0, -30),
		End:       fetchedAt,
		ClientID:  clientID,
		Records:   records,
	}
	if err := store.SaveBatch(context.Background(), batch); err != nil {
		t.Fatalf("failed to seed batch for %s: %v", clientID, err)
	}
	return batch
}
