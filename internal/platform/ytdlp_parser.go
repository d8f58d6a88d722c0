package platform

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ytget/ytdlp/v2"
	"github.com/ytget/yt-player/internal/model"
)

// fetchPlaylistItemsYTDLP reads every item of playlistID through the ytdlp
// library. A limit of 0 means no limit.
func fetchPlaylistItemsYTDLP(ctx context.Context, playlistID string) ([]model.VideoRef, error) {
	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	refs := make([]model.VideoRef, 0, len(items))
	for _, it := range items {
		refs = append(refs, model.VideoRef{ID: it.VideoID, Title: it.Title})
	}
	return refs, nil
}

// flatPlaylistEntry is one line of `yt-dlp --flat-playlist -j` output.
type flatPlaylistEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ParseFlatPlaylistJSON reads JSON-lines produced by
// `yt-dlp --flat-playlist -j`. Lines that do not decode, or that carry no
// valid video id, are skipped.
func ParseFlatPlaylistJSON(r io.Reader) ([]model.VideoRef, error) {
	var refs []model.VideoRef
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry flatPlaylistEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		if !model.IsValidVideoID(entry.ID) {
			continue
		}
		refs = append(refs, model.VideoRef{ID: entry.ID, Title: strings.TrimSpace(entry.Title)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read playlist dump: %w", err)
	}
	return refs, nil
}
