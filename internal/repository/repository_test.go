package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/speedminds/internal/db"
	"github.com/BerylCAtieno/speedminds/internal/models"
)

func newTestRepository(t *testing.T) SessionRepository {
	t.Helper()
	database, err := db.NewSQLiteDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	require.NoError(t, db.RunMigrations(database))
	return NewSessionRepository(database)
}

func newSession(id string, created time.Time, ttl time.Duration) *models.Session {
	return &models.Session{
		ID:           id,
		DocumentName: "notes.txt",
		MIMEType:     "text/plain",
		ContentKind:  "text",
		StorageKey:   "sessions/" + id,
		ContentSize:  31,
		CreatedAt:    created,
		ExpiresAt:    created.Add(ttl),
	}
}

func TestSessionRepositoryCreateGet(t *testing.T) {
	repo := newTestRepository(t)
	ctx := t.Context()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	session := newSession("s1", now, 30*time.Minute)
	require.NoError(t, repo.Create(ctx, session))

	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, session, got)

	missing, err := repo.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSessionRepositoryListExpiredAndDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := t.Context()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, newSession("old", now.Add(-time.Hour), 30*time.Minute)))
	require.NoError(t, repo.Create(ctx, newSession("edge", now.Add(-30*time.Minute), 30*time.Minute)))
	require.NoError(t, repo.Create(ctx, newSession("fresh", now, 30*time.Minute)))

	expired, err := repo.ListExpired(ctx, now, 10)
	require.NoError(t, err)
	require.Len(t, expired, 2)
	assert.Equal(t, "old", expired[0].ID)
	assert.Equal(t, "edge", expired[1].ID)

	limited, err := repo.ListExpired(ctx, now, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	require.NoError(t, repo.Delete(ctx, "old"))
	got, err := repo.GetByID(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, got)
}
