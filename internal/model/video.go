package model

import (
	"strings"
	"time"
)

// Video identifier constraints
const (
	VideoIDLength = 11
)

// Catalog limits and defaults
const (
	HistoryLimit       = 100
	DefaultCategory    = "Uncategorized"
	ContinueMinSeconds = 5
	ContinueLimit      = 4
)

// Playback rate bounds
const (
	MinPlaybackRate     = 0.25
	MaxPlaybackRate     = 4.0
	DefaultPlaybackRate = 1.0
)

// DefaultCategoryOptions are offered when the user picks a favorites category.
var DefaultCategoryOptions = []string{"Novel", "Music", "Learning", "Others"}

// VideoRef identifies a video by its external id. Two refs are the same video
// when their ids match, regardless of title.
type VideoRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// SameVideo reports whether r and other point at the same video.
func (r VideoRef) SameVideo(other VideoRef) bool {
	return r.ID == other.ID
}

// DisplayTitle returns the title, falling back to the id
func (r VideoRef) DisplayTitle() string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	return r.ID
}

// HistoryEntry is a single played video with its last known position.
type HistoryEntry struct {
	Ref          VideoRef
	LastPosition int // seconds
	LastPlayedAt time.Time
}

// FavoriteEntry is a saved video filed under a free-text category.
type FavoriteEntry struct {
	Ref      VideoRef
	Category string
}

// Normalize fills the default category and trims whitespace.
func (f FavoriteEntry) Normalize() FavoriteEntry {
	f.Category = strings.TrimSpace(f.Category)
	if f.Category == "" {
		f.Category = DefaultCategory
	}
	return f
}

// Key returns the (id, category) identity used for duplicate detection.
func (f FavoriteEntry) Key() string {
	return f.Ref.ID + "\x00" + f.Category
}

// SessionState is the last playback state, overwritten on every save.
type SessionState struct {
	Ref          VideoRef
	Position     int // seconds
	PlaybackRate float64
	SavedAt      time.Time
}

// Age returns how long ago the state was saved relative to now.
func (s SessionState) Age(now time.Time) time.Duration {
	return now.Sub(s.SavedAt)
}

// ImportMode selects how imported favorites reconcile with existing ones.
type ImportMode int

const (
	ImportMerge ImportMode = iota
	ImportReplace
)

// String returns the CLI name of the mode
func (m ImportMode) String() string {
	switch m {
	case ImportMerge:
		return "merge"
	case ImportReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// ParseImportMode maps a CLI/UI name to an ImportMode.
func ParseImportMode(s string) (ImportMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "merge":
		return ImportMerge, true
	case "replace":
		return ImportReplace, true
	default:
		return ImportMerge, false
	}
}

// ImportResult reports how many entries an import added and the list size after it.
type ImportResult struct {
	Added int
	Total int
}

// AddResult is the outcome of adding a favorite. AddNone accompanies an error.
type AddResult int

const (
	AddNone AddResult = iota
	Added
	AlreadyExists
)

// String returns the string representation of AddResult
func (r AddResult) String() string {
	switch r {
	case Added:
		return "added"
	case AlreadyExists:
		return "already_exists"
	default:
		return "none"
	}
}

// IsValidVideoID checks the 11-character YouTube id alphabet.
func IsValidVideoID(id string) bool {
	if len(id) != VideoIDLength {
		return false
	}
	for _, c := range id {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

// ClampRate bounds a playback rate to [MinPlaybackRate, MaxPlaybackRate].
// Zero or NaN falls back to the default rate.
func ClampRate(rate float64) float64 {
	if rate != rate || rate == 0 {
		return DefaultPlaybackRate
	}
	if rate < MinPlaybackRate {
		return MinPlaybackRate
	}
	if rate > MaxPlaybackRate {
		return MaxPlaybackRate
	}
	return rate
}
