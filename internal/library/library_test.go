package library

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/store"
)

var video = model.VideoRef{ID: "M7lc1UVf-VE", Title: "Demo"}

func TestOpenHydratesFromStore(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()

	first := Open(ctx, st, Options{Logger: zerolog.Nop()})
	first.History.RecordPlay(ctx, video)
	_, err := first.Favorites.Add(ctx, video, "Music")
	require.NoError(t, err)
	first.Session.Save(ctx, video, 12, 1.5)

	second := Open(ctx, st, Options{Logger: zerolog.Nop()})
	assert.Equal(t, 1, second.History.Len())
	assert.Equal(t, 1, second.Favorites.Len())
	state, ok := second.Session.LoadForRestorePrompt(ctx)
	require.True(t, ok)
	assert.Equal(t, 12, state.Position)
}

func TestOpenWithClockAndWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	lib := Open(ctx, store.NewMemoryStore(), Options{
		Now:           func() time.Time { return now },
		RestoreWindow: time.Hour,
		Logger:        zerolog.Nop(),
	})

	lib.History.RecordPlay(ctx, video)
	e, ok := lib.History.Get(video.ID)
	require.True(t, ok)
	assert.True(t, e.LastPlayedAt.Equal(now))
	assert.Equal(t, time.Hour, lib.Session.RestoreWindow())
}

func TestTransferSharesFavorites(t *testing.T) {
	ctx := context.Background()
	lib := Open(ctx, store.NewMemoryStore(), Options{Logger: zerolog.Nop()})

	res, err := lib.Transfer.ImportFavorites(ctx, []byte(`[{"title":"Demo","id":"M7lc1UVf-VE","category":"Music"}]`), model.ImportMerge)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Added)
	assert.True(t, lib.Favorites.Contains(video.ID))
}

func TestWatchReloadsFileStore(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	path := filepath.Join(t.TempDir(), "store.json")
	st, err := store.NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)
	lib := Open(ctx, st, Options{Logger: zerolog.Nop()})

	changed := make(chan struct{}, 8)
	go func() { _ = lib.Watch(ctx, func() { changed <- struct{}{} }) }()

	otherStore, err := store.NewFileStore(path, zerolog.Nop())
	require.NoError(t, err)
	other := Open(ctx, otherStore, Options{Logger: zerolog.Nop()})
	_, err = other.Favorites.Add(ctx, video, "Music")
	require.NoError(t, err)

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for n := 0; ; n++ {
		select {
		case <-changed:
			assert.True(t, lib.Favorites.Contains(video.ID))
			return
		case <-tick.C:
			// Every write carries the favorite added above
			other.History.RecordPlay(ctx, video)
		case <-deadline:
			t.Fatalf("no reload after %d writes", n)
		}
	}
}

func TestWatchNonFileStoreBlocksUntilCancel(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	lib := Open(ctx, store.NewMemoryStore(), Options{Logger: zerolog.Nop()})
	assert.NoError(t, lib.Watch(ctx, nil))
}
