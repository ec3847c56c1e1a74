package database

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestDB opens a migrated SQLite database in a temporary directory.
func newTestDB(t *testing.T) Database {
	t.Helper()

	db, err := Open(context.Background(), Config{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "portfolio.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// stepClock makes every stored timestamp one second later than the previous
// one so creation order is unambiguous.
func stepClock(t *testing.T) {
	t.Helper()

	var mu sync.Mutex
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	previous := now
	now = func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
	t.Cleanup(func() { now = previous })
}

func ptr[T any](v T) *T {
	return &v
}
