package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/store"
)

func timeEqual(a, b time.Time) bool { return a.Equal(b) }

func newFavorites(t *testing.T) (*Favorites, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	return NewFavorites(s, zerolog.Nop()), s
}

func TestFavorites_AddDuplicate(t *testing.T) {
	ctx := context.Background()
	f, s := newFavorites(t)

	res, err := f.Add(ctx, ref(1), "Music")
	if err != nil || res != model.Added {
		t.Fatalf("first Add = %v, %v", res, err)
	}
	raw, _, _ := s.Get(ctx, store.KeyFavorites)

	res, err = f.Add(ctx, ref(1), "Music")
	if err != nil || res != model.AlreadyExists {
		t.Fatalf("second Add = %v, %v", res, err)
	}
	if f.Len() != 1 {
		t.Errorf("Len() = %d, expected 1", f.Len())
	}
	if after, _, _ := s.Get(ctx, store.KeyFavorites); after != raw {
		t.Error("duplicate add must not persist")
	}
}

func TestFavorites_SameVideoDifferentCategories(t *testing.T) {
	ctx := context.Background()
	f, _ := newFavorites(t)

	for _, c := range []string{"Novel", "Music"} {
		if res, err := f.Add(ctx, ref(1), c); err != nil || res != model.Added {
			t.Errorf("Add(%s) = %v, %v", c, res, err)
		}
	}
	if f.Len() != 2 {
		t.Errorf("Len() = %d, expected 2", f.Len())
	}
}

func TestFavorites_DefaultCategory(t *testing.T) {
	ctx := context.Background()
	f, _ := newFavorites(t)

	_, _ = f.Add(ctx, ref(1), "  ")
	if res, _ := f.Add(ctx, ref(1), model.DefaultCategory); res != model.AlreadyExists {
		t.Errorf("blank category should file under %s", model.DefaultCategory)
	}
	res, err := f.Add(ctx, model.VideoRef{Title: "no id"}, "Music")
	if !errors.Is(err, model.ErrInvalidVideoID) {
		t.Errorf("expected ErrInvalidVideoID, got %v", err)
	}
	if res != model.AddNone {
		t.Errorf("failed Add result = %v, expected %v", res, model.AddNone)
	}
}

func TestFavorites_CategoryLookupsNormalize(t *testing.T) {
	ctx := context.Background()
	f, _ := newFavorites(t)
	_, _ = f.Add(ctx, ref(1), "")
	_, _ = f.Add(ctx, ref(2), "Music")
	_, _ = f.Add(ctx, ref(3), " Music ")

	if got := f.ByCategory(" Music "); len(got) != 2 {
		t.Errorf("ByCategory(\" Music \") returned %d entries, expected 2", len(got))
	}
	if got := f.ByCategory(""); len(got) != 1 || got[0].Ref.ID != ref(1).ID {
		t.Errorf("ByCategory(\"\") = %v, expected the uncategorized entry", got)
	}
	if n := f.RemoveCategory(ctx, ""); n != 1 {
		t.Errorf("RemoveCategory(\"\") removed %d, expected 1", n)
	}
	if n := f.RemoveCategory(ctx, "  Music"); n != 2 {
		t.Errorf("RemoveCategory(\"  Music\") removed %d, expected 2", n)
	}
	if f.Len() != 0 {
		t.Errorf("Len() = %d, expected 0", f.Len())
	}
}

func TestFavorites_RemoveVariants(t *testing.T) {
	ctx := context.Background()
	f, _ := newFavorites(t)
	_, _ = f.Add(ctx, ref(1), "Music")
	_, _ = f.Add(ctx, ref(2), "Music")
	_, _ = f.Add(ctx, ref(3), "Novel")
	_, _ = f.Add(ctx, ref(4), "")

	if err := f.Remove(ctx, ref(1).ID, "Novel"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Remove of wrong category = %v", err)
	}
	if err := f.Remove(ctx, ref(4).ID, ""); err != nil {
		t.Errorf("Remove default category: %v", err)
	}
	if n := f.RemoveCategory(ctx, "Music"); n != 2 {
		t.Errorf("RemoveCategory removed %d, expected 2", n)
	}
	if n := f.RemoveCategory(ctx, "Music"); n != 0 {
		t.Errorf("second RemoveCategory removed %d", n)
	}
	if diff := cmp.Diff([]string{ref(3).ID}, favoriteIDs(f.Entries())); diff != "" {
		t.Errorf("remaining (-want +got):\n%s", diff)
	}
	if err := f.RemoveAt(ctx, 5); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("RemoveAt out of range = %v", err)
	}
	if err := f.RemoveAt(ctx, 0); err != nil {
		t.Errorf("RemoveAt: %v", err)
	}
	f.Clear(ctx)
	if f.Len() != 0 {
		t.Errorf("Len() = %d after Clear", f.Len())
	}
}

func TestFavorites_CategoriesAndOptions(t *testing.T) {
	ctx := context.Background()
	f, _ := newFavorites(t)
	_, _ = f.Add(ctx, ref(1), "Zen")
	_, _ = f.Add(ctx, ref(2), "Music")
	_, _ = f.Add(ctx, ref(3), "Music")

	if diff := cmp.Diff([]string{"Music", "Zen"}, f.Categories()); diff != "" {
		t.Errorf("Categories (-want +got):\n%s", diff)
	}

	want := []string{"Learning", "Music", "Novel", "Others", "Quick Save", "Zen"}
	if diff := cmp.Diff(want, f.CategoryOptions("Quick Save", "")); diff != "" {
		t.Errorf("CategoryOptions (-want +got):\n%s", diff)
	}
}

func TestFavorites_ByCategoryInsertionOrder(t *testing.T) {
	ctx := context.Background()
	f, _ := newFavorites(t)
	for _, n := range []int{5, 1, 3} {
		_, _ = f.Add(ctx, ref(n), "Learning")
		_, _ = f.Add(ctx, ref(n+10), "Other")
	}

	got := favoriteIDs(f.ByCategory("Learning"))
	if diff := cmp.Diff([]string{ref(5).ID, ref(1).ID, ref(3).ID}, got); diff != "" {
		t.Errorf("ByCategory (-want +got):\n%s", diff)
	}
	if !f.Contains(ref(13).ID) || f.Contains(ref(99).ID) {
		t.Error("Contains mismatch")
	}
}

func TestFavorites_ReplaceAndMerge(t *testing.T) {
	ctx := context.Background()
	f, _ := newFavorites(t)
	_, _ = f.Add(ctx, ref(1), "Music")

	added := f.MergeByID(ctx, []model.FavoriteEntry{
		{Ref: ref(1), Category: "Novel"},
		{Ref: ref(2)},
		{Ref: ref(2), Category: "Music"},
	})
	if added != 1 {
		t.Errorf("MergeByID added %d, expected 1", added)
	}
	if diff := cmp.Diff([]string{ref(1).ID, ref(2).ID}, favoriteIDs(f.Entries())); diff != "" {
		t.Errorf("after merge (-want +got):\n%s", diff)
	}
	if got := f.Entries()[1].Category; got != model.DefaultCategory {
		t.Errorf("merged entry category = %q", got)
	}

	n := f.Replace(ctx, []model.FavoriteEntry{{Ref: ref(3)}, {Ref: ref(3)}})
	if n != 2 || f.Len() != 2 {
		t.Errorf("Replace kept %d/%d entries, expected verbatim 2", n, f.Len())
	}
}

func TestFavorites_HydrateRoundTrip(t *testing.T) {
	ctx := context.Background()
	f, s := newFavorites(t)
	_, _ = f.Add(ctx, ref(1), "Music")
	_, _ = f.Add(ctx, ref(1), "Novel")
	_, _ = f.Add(ctx, ref(2), "")

	reloaded := NewFavorites(s, zerolog.Nop())
	reloaded.Hydrate(ctx)
	if diff := cmp.Diff(f.Entries(), reloaded.Entries()); diff != "" {
		t.Errorf("hydrated favorites (-want +got):\n%s", diff)
	}

	_ = s.Put(ctx, store.KeyFavorites, "not json")
	reloaded.Hydrate(ctx)
	if reloaded.Len() != 0 {
		t.Errorf("bad data should hydrate empty, got %d", reloaded.Len())
	}
}

func TestFavorites_HydrateLegacyTitles(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	_ = s.Put(ctx, store.KeyFavorites, `[{"title":"Moonlight Sonata [Music]","id":"aaaaaaaaaaa"},{"title":"Plain","id":"bbbbbbbbbbb"}]`)

	f := NewFavorites(s, zerolog.Nop())
	f.Hydrate(ctx)

	want := []model.FavoriteEntry{
		{Ref: model.VideoRef{ID: "aaaaaaaaaaa", Title: "Moonlight Sonata"}, Category: "Music"},
		{Ref: model.VideoRef{ID: "bbbbbbbbbbb", Title: "Plain"}, Category: model.DefaultCategory},
	}
	if diff := cmp.Diff(want, f.Entries()); diff != "" {
		t.Errorf("legacy hydrate (-want +got):\n%s", diff)
	}
}
