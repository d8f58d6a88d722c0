package catalog

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/ytget/yt-player/internal/codec"
	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/store"
)

// Favorites is the saved-video list grouped by free-text category. A video
// may appear once per category. Entries keep insertion order.
type Favorites struct {
	mu      sync.Mutex
	entries []model.FavoriteEntry
	repo    *store.Repository[[]model.FavoriteEntry]
	logger  zerolog.Logger
}

// NewFavorites creates an empty list persisted under store.KeyFavorites.
func NewFavorites(s store.Store, logger zerolog.Logger) *Favorites {
	return &Favorites{
		repo:   store.NewRepository(s, store.KeyFavorites, codec.EncodeFavorites, codec.DecodeFavorites),
		logger: logger.With().Str("list", "favorites").Logger(),
	}
}

// Hydrate replaces the in-memory list with the persisted one. A missing or
// undecodable value leaves the list empty.
func (f *Favorites) Hydrate(ctx context.Context) {
	entries, ok, err := f.repo.Load(ctx)
	if err != nil {
		f.logger.Warn().Err(err).Msg("discarding unreadable favorites")
	}
	if !ok || err != nil {
		entries = nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = entries
}

// Add files ref under category. Adding the same (id, category) pair twice
// returns model.AlreadyExists and changes nothing.
func (f *Favorites) Add(ctx context.Context, ref model.VideoRef, category string) (model.AddResult, error) {
	if strings.TrimSpace(ref.ID) == "" {
		return model.AddNone, fmt.Errorf("add favorite: %w", model.ErrInvalidVideoID)
	}
	entry := model.FavoriteEntry{Ref: ref, Category: category}.Normalize()

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.indexOf(entry.Ref.ID, entry.Category) >= 0 {
		return model.AlreadyExists, nil
	}
	f.entries = append(f.entries, entry)
	f.persist(ctx)
	return model.Added, nil
}

// Remove deletes the (id, category) entry.
func (f *Favorites) Remove(ctx context.Context, id, category string) error {
	category = normalizeCategory(category)

	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexOf(id, category)
	if i < 0 {
		return fmt.Errorf("favorite %s in %q: %w", id, category, model.ErrNotFound)
	}
	f.entries = slices.Delete(f.entries, i, i+1)
	f.persist(ctx)
	return nil
}

// RemoveAt deletes the entry at index in Entries order.
func (f *Favorites) RemoveAt(ctx context.Context, index int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if index < 0 || index >= len(f.entries) {
		return fmt.Errorf("favorite index %d: %w", index, model.ErrNotFound)
	}
	f.entries = slices.Delete(f.entries, index, index+1)
	f.persist(ctx)
	return nil
}

// RemoveCategory deletes every entry in category and returns how many went.
func (f *Favorites) RemoveCategory(ctx context.Context, category string) int {
	category = normalizeCategory(category)

	f.mu.Lock()
	defer f.mu.Unlock()

	before := len(f.entries)
	f.entries = slices.DeleteFunc(f.entries, func(e model.FavoriteEntry) bool {
		return e.Category == category
	})
	removed := before - len(f.entries)
	if removed > 0 {
		f.persist(ctx)
	}
	return removed
}

// Clear removes every entry.
func (f *Favorites) Clear(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = nil
	f.persist(ctx)
}

// Categories returns the distinct categories in use, sorted ascending.
func (f *Favorites) Categories() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	set := make(map[string]struct{})
	for _, e := range f.entries {
		set[e.Category] = struct{}{}
	}
	return sortedKeys(set)
}

// CategoryOptions returns the categories offered when filing a favorite:
// those in use, the default offerings and any extra ones, sorted.
func (f *Favorites) CategoryOptions(extra ...string) []string {
	set := make(map[string]struct{})
	for _, c := range f.Categories() {
		set[c] = struct{}{}
	}
	for _, c := range model.DefaultCategoryOptions {
		set[c] = struct{}{}
	}
	for _, c := range extra {
		if c = strings.TrimSpace(c); c != "" {
			set[c] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// ByCategory returns the entries of category in insertion order.
func (f *Favorites) ByCategory(category string) []model.FavoriteEntry {
	category = normalizeCategory(category)

	f.mu.Lock()
	defer f.mu.Unlock()

	var out []model.FavoriteEntry
	for _, e := range f.entries {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether id is saved under any category.
func (f *Favorites) Contains(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.ContainsFunc(f.entries, func(e model.FavoriteEntry) bool { return e.Ref.ID == id })
}

// Entries returns a copy of the list.
func (f *Favorites) Entries() []model.FavoriteEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.entries)
}

// Len returns the number of entries.
func (f *Favorites) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// Replace discards the list and appends entries verbatim, duplicates included.
func (f *Favorites) Replace(ctx context.Context, entries []model.FavoriteEntry) int {
	next := make([]model.FavoriteEntry, 0, len(entries))
	for _, e := range entries {
		next = append(next, e.Normalize())
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = next
	f.persist(ctx)
	return len(next)
}

// MergeByID appends each entry whose id is not yet in the list, counting
// entries added earlier in the same call. It returns the number added.
func (f *Favorites) MergeByID(ctx context.Context, entries []model.FavoriteEntry) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	seen := make(map[string]struct{}, len(f.entries)+len(entries))
	for _, e := range f.entries {
		seen[e.Ref.ID] = struct{}{}
	}

	added := 0
	for _, e := range entries {
		if _, dup := seen[e.Ref.ID]; dup {
			continue
		}
		seen[e.Ref.ID] = struct{}{}
		f.entries = append(f.entries, e.Normalize())
		added++
	}
	if added > 0 {
		f.persist(ctx)
	}
	return added
}

func (f *Favorites) indexOf(id, category string) int {
	return slices.IndexFunc(f.entries, func(e model.FavoriteEntry) bool {
		return e.Ref.ID == id && e.Category == category
	})
}

// persist must be called with f.mu held.
func (f *Favorites) persist(ctx context.Context) {
	if err := f.repo.Save(ctx, f.entries); err != nil {
		f.logger.Warn().Err(err).Int("entries", len(f.entries)).Msg("failed to persist favorites")
	}
}

// normalizeCategory applies the same trimming and default as Add.
func normalizeCategory(category string) string {
	return model.FavoriteEntry{Category: category}.Normalize().Category
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
