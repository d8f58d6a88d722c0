package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/store"
)

var baseTime = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// steppingClock advances one second per call.
func steppingClock() Clock {
	t := baseTime
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func ref(n int) model.VideoRef {
	return model.VideoRef{ID: fmt.Sprintf("vid%08d", n), Title: fmt.Sprintf("Video %d", n)}
}

// failingStore rejects every write.
type failingStore struct{ *store.MemoryStore }

func (failingStore) Put(context.Context, string, string) error { return errors.New("disk full") }

func ids[T any](entries []T, id func(T) string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, id(e))
	}
	return out
}

func historyIDs(entries []model.HistoryEntry) []string {
	return ids(entries, func(e model.HistoryEntry) string { return e.Ref.ID })
}

func favoriteIDs(entries []model.FavoriteEntry) []string {
	return ids(entries, func(e model.FavoriteEntry) string { return e.Ref.ID })
}
