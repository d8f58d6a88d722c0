package codec

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/ytget/yt-player/internal/model"
)

// Shape names used in FormatError
const (
	ShapeFavorites = "favorites"
	ShapeHistory   = "history"
	ShapeSession   = "session"
)

// legacyCategoryTitle matches favorites saved as "Title [Category]" before
// category became its own field.
var legacyCategoryTitle = regexp.MustCompile(`^(.*\S)\s+\[([^\[\]]+)\]$`)

var (
	errEmptyInput = errors.New("empty input")
	errNotList    = errors.New("not a list")
)

type favoriteRecord struct {
	Title    string `json:"title"`
	ID       string `json:"id"`
	Category string `json:"category,omitempty"`
}

type historyRecord struct {
	Title        string `json:"title"`
	ID           string `json:"id"`
	Timestamp    int64  `json:"timestamp"`
	LastPosition int    `json:"lastPosition"`
}

type sessionRecord struct {
	VideoID      string  `json:"videoId"`
	VideoTitle   string  `json:"videoTitle"`
	Position     int     `json:"position"`
	PlaybackRate float64 `json:"playbackRate"`
	Timestamp    int64   `json:"timestamp"`
}

// EncodeFavorites renders favorites as a JSON array.
func EncodeFavorites(entries []model.FavoriteEntry) (string, error) {
	records := make([]favoriteRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, favoriteRecord{
			Title:    e.Ref.Title,
			ID:       e.Ref.ID,
			Category: e.Category,
		})
	}
	return marshal(records)
}

// DecodeFavorites parses a JSON array of {title, id[, category]} records.
// A stored null reads as an empty list.
func DecodeFavorites(data string) ([]model.FavoriteEntry, error) {
	var records []favoriteRecord
	if err := unmarshal(data, &records, ShapeFavorites); err != nil {
		return nil, err
	}
	return favoriteEntries(records)
}

// DecodeFavoritesImport is DecodeFavorites for user-supplied data: anything
// but a JSON array, null included, is a FormatError.
func DecodeFavoritesImport(data string) ([]model.FavoriteEntry, error) {
	var records []favoriteRecord
	if err := unmarshal(data, &records, ShapeFavorites); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, formatErr(ShapeFavorites, errNotList)
	}
	return favoriteEntries(records)
}

func favoriteEntries(records []favoriteRecord) ([]model.FavoriteEntry, error) {
	entries := make([]model.FavoriteEntry, 0, len(records))
	for i, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, formatErrf(ShapeFavorites, "record %d: missing id", i)
		}
		title, category := r.Title, r.Category
		if category == "" {
			title, category = splitLegacyTitle(title)
		}
		entries = append(entries, model.FavoriteEntry{
			Ref:      model.VideoRef{ID: id, Title: title},
			Category: category,
		}.Normalize())
	}
	return entries, nil
}

// EncodeHistory renders history entries as a JSON array, newest first.
func EncodeHistory(entries []model.HistoryEntry) (string, error) {
	records := make([]historyRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, historyRecord{
			Title:        e.Ref.Title,
			ID:           e.Ref.ID,
			Timestamp:    toMillis(e.LastPlayedAt),
			LastPosition: e.LastPosition,
		})
	}
	return marshal(records)
}

// DecodeHistory parses a JSON array of history records.
func DecodeHistory(data string) ([]model.HistoryEntry, error) {
	var records []historyRecord
	if err := unmarshal(data, &records, ShapeHistory); err != nil {
		return nil, err
	}

	entries := make([]model.HistoryEntry, 0, len(records))
	for i, r := range records {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, formatErrf(ShapeHistory, "record %d: missing id", i)
		}
		pos := r.LastPosition
		if pos < 0 {
			pos = 0
		}
		entries = append(entries, model.HistoryEntry{
			Ref:          model.VideoRef{ID: id, Title: r.Title},
			LastPosition: pos,
			LastPlayedAt: fromMillis(r.Timestamp),
		})
	}
	return entries, nil
}

// EncodeSession renders the last playback state as a JSON object.
func EncodeSession(state model.SessionState) (string, error) {
	return marshal(sessionRecord{
		VideoID:      state.Ref.ID,
		VideoTitle:   state.Ref.Title,
		Position:     state.Position,
		PlaybackRate: state.PlaybackRate,
		Timestamp:    toMillis(state.SavedAt),
	})
}

// DecodeSession parses a persisted playback state.
func DecodeSession(data string) (model.SessionState, error) {
	var r sessionRecord
	if strings.TrimSpace(data) == "null" {
		return model.SessionState{}, formatErr(ShapeSession, errEmptyInput)
	}
	if err := unmarshal(data, &r, ShapeSession); err != nil {
		return model.SessionState{}, err
	}
	if strings.TrimSpace(r.VideoID) == "" {
		return model.SessionState{}, formatErrf(ShapeSession, "missing videoId")
	}
	return model.SessionState{
		Ref:          model.VideoRef{ID: r.VideoID, Title: r.VideoTitle},
		Position:     max(r.Position, 0),
		PlaybackRate: model.ClampRate(r.PlaybackRate),
		SavedAt:      fromMillis(r.Timestamp),
	}, nil
}

// splitLegacyTitle separates "Title [Category]" into its parts
func splitLegacyTitle(title string) (string, string) {
	m := legacyCategoryTitle.FindStringSubmatch(title)
	if m == nil {
		return title, ""
	}
	return m[1], strings.TrimSpace(m[2])
}

func marshal(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshal(data string, v any, shape string) error {
	if strings.TrimSpace(data) == "" {
		return formatErr(shape, errEmptyInput)
	}
	if err := json.Unmarshal([]byte(data), v); err != nil {
		return formatErr(shape, err)
	}
	return nil
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
