package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/speedminds/internal/config"
)

func TestFilesystemStorageRoundTrip(t *testing.T) {
	root := t.TempDir()
	s, err := NewFilesystemStorage(root)
	require.NoError(t, err)
	ctx := t.Context()

	require.NoError(t, s.Upload(ctx, "sessions/abc", []byte("hello"), "text/plain"))

	data, err := s.Download(ctx, "sessions/abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), data)

	require.NoError(t, s.Upload(ctx, "sessions/abc", []byte("replaced"), "text/plain"))
	data, err = s.Download(ctx, "sessions/abc")
	require.NoError(t, err)
	assert.Equal(t, []byte("replaced"), data)

	require.NoError(t, s.Delete(ctx, "sessions/abc"))
	_, err = s.Download(ctx, "sessions/abc")
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// Deleting twice is fine.
	assert.NoError(t, s.Delete(ctx, "sessions/abc"))

	entries, err := os.ReadDir(filepath.Join(root, "sessions"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFilesystemStorageRejectsEscapingKeys(t *testing.T) {
	s, err := NewFilesystemStorage(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../outside", "/etc/passwd", "a/../../b"} {
		assert.Error(t, s.Upload(t.Context(), key, []byte("x"), ""), key)
	}
}

func TestNewSelectsFilesystem(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "blobs")
	s, err := New(t.Context(), &config.Config{SessionStore: config.SessionStoreFilesystem, SessionStoreDir: dir})
	require.NoError(t, err)
	assert.NotNil(t, s)
	assert.DirExists(t, dir)

	_, err = New(t.Context(), &config.Config{SessionStore: "tape"})
	assert.Error(t, err)
}
