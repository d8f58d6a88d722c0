package catalog

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/ytget/yt-player/internal/codec"
	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/store"
)

// History is the most-recently-played-first list of watched videos, at most
// one entry per video id and at most model.HistoryLimit entries.
type History struct {
	mu      sync.Mutex
	entries []model.HistoryEntry
	repo    *store.Repository[[]model.HistoryEntry]
	clock   Clock
	logger  zerolog.Logger
}

// NewHistory creates an empty history persisted under store.KeyHistory.
// Call Hydrate to load the saved list.
func NewHistory(s store.Store, clock Clock, logger zerolog.Logger) *History {
	return &History{
		repo:   store.NewRepository(s, store.KeyHistory, codec.EncodeHistory, codec.DecodeHistory),
		clock:  clock,
		logger: logger.With().Str("list", "history").Logger(),
	}
}

// Hydrate replaces the in-memory list with the persisted one. A missing or
// undecodable value leaves the history empty.
func (h *History) Hydrate(ctx context.Context) {
	entries, ok, err := h.repo.Load(ctx)
	if err != nil {
		h.logger.Warn().Err(err).Msg("discarding unreadable history")
	}
	if !ok || err != nil {
		entries = nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = dedupHistory(entries)
	if len(h.entries) > model.HistoryLimit {
		h.entries = h.entries[:model.HistoryLimit]
	}
}

// RecordPlay moves ref to the front, carrying over the last known position.
// An empty title keeps the previously recorded one.
func (h *History) RecordPlay(ctx context.Context, ref model.VideoRef) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry := model.HistoryEntry{Ref: ref, LastPlayedAt: h.clock.now()}
	if i := h.indexOf(ref.ID); i >= 0 {
		prev := h.entries[i]
		entry.LastPosition = prev.LastPosition
		if ref.Title == "" {
			entry.Ref.Title = prev.Ref.Title
		}
		h.entries = slices.Delete(h.entries, i, i+1)
	}

	h.entries = slices.Insert(h.entries, 0, entry)
	if len(h.entries) > model.HistoryLimit {
		evicted := h.entries[model.HistoryLimit:]
		h.logger.Debug().Int("evicted", len(evicted)).Msg("history cap reached")
		h.entries = h.entries[:model.HistoryLimit]
	}
	h.persist(ctx)
}

// UpdateProgress records the playback position of an existing entry. It
// returns model.ErrNotFound when id has never been played.
func (h *History) UpdateProgress(ctx context.Context, id string, position int, title string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.indexOf(id)
	if i < 0 {
		return fmt.Errorf("history entry %s: %w", id, model.ErrNotFound)
	}

	e := &h.entries[i]
	e.LastPosition = max(position, 0)
	e.LastPlayedAt = h.clock.now()
	if title != "" {
		e.Ref.Title = title
	}
	h.persist(ctx)
	return nil
}

// RecentWithProgress returns up to limit entries watched past minSeconds,
// most recent first.
func (h *History) RecentWithProgress(minSeconds, limit int) []model.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	var out []model.HistoryEntry
	seen := make(map[string]struct{})
	for _, e := range h.entries {
		if len(out) >= limit {
			break
		}
		if e.LastPosition <= minSeconds {
			continue
		}
		if _, dup := seen[e.Ref.ID]; dup {
			continue
		}
		seen[e.Ref.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}

// ContinueWatching is RecentWithProgress with the picker defaults.
func (h *History) ContinueWatching() []model.HistoryEntry {
	return h.RecentWithProgress(model.ContinueMinSeconds, model.ContinueLimit)
}

// Get returns the entry for id.
func (h *History) Get(id string) (model.HistoryEntry, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if i := h.indexOf(id); i >= 0 {
		return h.entries[i], true
	}
	return model.HistoryEntry{}, false
}

// RemoveAt deletes the entry at index.
func (h *History) RemoveAt(ctx context.Context, index int) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if index < 0 || index >= len(h.entries) {
		return fmt.Errorf("history index %d: %w", index, model.ErrNotFound)
	}
	h.entries = slices.Delete(h.entries, index, index+1)
	h.persist(ctx)
	return nil
}

// Clear removes every entry.
func (h *History) Clear(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	h.persist(ctx)
}

// Entries returns a copy of the list.
func (h *History) Entries() []model.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.entries)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *History) indexOf(id string) int {
	return slices.IndexFunc(h.entries, func(e model.HistoryEntry) bool { return e.Ref.ID == id })
}

// persist must be called with h.mu held.
func (h *History) persist(ctx context.Context) {
	if err := h.repo.Save(ctx, h.entries); err != nil {
		h.logger.Warn().Err(err).Int("entries", len(h.entries)).Msg("failed to persist history")
	}
}

// dedupHistory keeps the first entry for each id; persisted lists written by
// older builds may contain repeats.
func dedupHistory(entries []model.HistoryEntry) []model.HistoryEntry {
	seen := make(map[string]struct{}, len(entries))
	out := entries[:0:0]
	for _, e := range entries {
		if _, dup := seen[e.Ref.ID]; dup {
			continue
		}
		seen[e.Ref.ID] = struct{}{}
		out = append(out, e)
	}
	return out
}
