package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_ReopenReadsDocument(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "store.json")

	s, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Put(ctx, KeyFavorites, `[{"id":"M7lc1UVf-VE"}]`))
	require.NoError(t, s.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(DefaultFilePermissions), info.Mode().Perm())

	s2, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)
	v, ok, err := s2.Get(ctx, KeyFavorites)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"id":"M7lc1UVf-VE"}]`, v)
}

func TestFileStore_CorruptDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFileStore(path, zerolog.Nop())
	assert.Error(t, err)
}

func TestFileStore_EmptyDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	s, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)
	_, ok, err := s.Get(context.Background(), KeyHistory)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_Closed(t *testing.T) {
	s, err := NewFileStore(filepath.Join(t.TempDir(), "store.json"), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	assert.ErrorIs(t, s.Put(context.Background(), "k", "v"), ErrClosed)
	assert.ErrorIs(t, s.Delete(context.Background(), "k"), ErrClosed)
}

func TestFileStore_WatchPicksUpExternalWrites(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "store.json")
	s, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	changed := make(chan struct{}, 8)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, func() { changed <- struct{}{} })
	}()

	// A second store on the same file plays the other process.
	other, err := NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)

	// The watcher may not be registered yet; keep writing until it reports.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	n := 0
	for waiting := true; waiting; {
		select {
		case <-changed:
			waiting = false
		case <-tick.C:
			n++
			require.NoError(t, other.Put(ctx, KeySession, "v"+time.Now().Format(time.RFC3339Nano)))
		case <-deadline:
			t.Fatalf("watch did not report a change after %d writes", n)
		}
	}

	v, ok, err := s.Get(ctx, KeySession)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotEmpty(t, v)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}
