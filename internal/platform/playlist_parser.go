package platform

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ytget/yt-player/internal/model"
)

// Timeout constants
const (
	DefaultPlaylistParseTimeout = 60 * time.Second
)

// Default values
const (
	DefaultPlaylistTitle = "Untitled Playlist"
	PlaylistSuffix       = " Playlist"
	MinPrefixLength      = 10
	MaxTitleLength       = 50
	TitleTruncateSuffix  = "..."
)

// ItemFetcher loads the videos of a playlist id.
type ItemFetcher func(ctx context.Context, playlistID string) ([]model.VideoRef, error)

// PlaylistParserService resolves playlist URLs into catalog-ready playlists.
type PlaylistParserService struct {
	timeout time.Duration
	fetch   ItemFetcher
}

// NewPlaylistParserService creates a parser backed by the ytdlp library.
func NewPlaylistParserService() *PlaylistParserService {
	return NewPlaylistParserServiceWithFetcher(fetchPlaylistItemsYTDLP)
}

// NewPlaylistParserServiceWithFetcher creates a parser with a custom fetcher.
func NewPlaylistParserServiceWithFetcher(fetch ItemFetcher) *PlaylistParserService {
	return &PlaylistParserService{
		timeout: DefaultPlaylistParseTimeout,
		fetch:   fetch,
	}
}

// SetTimeout sets the timeout for playlist parsing
func (p *PlaylistParserService) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// FetchPlaylist resolves url and returns its videos, deduplicated by id and
// in playlist order.
func (p *PlaylistParserService) FetchPlaylist(ctx context.Context, url string) (*model.Playlist, error) {
	playlistID, err := ExtractPlaylistID(url)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	refs, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	playlist := model.NewPlaylist(url)
	playlist.ID = playlistID
	for _, ref := range refs {
		if !model.IsValidVideoID(ref.ID) {
			continue
		}
		playlist.AddVideo(ref)
	}
	playlist.Title = playlistTitle(playlist.Videos)
	if playlist.Len() == 0 {
		playlist.Title = fmt.Sprintf("Playlist %s", playlistID)
	}
	return playlist, nil
}

// playlistTitle derives a title from the common prefix of the first two
// videos, or from the first title alone.
func playlistTitle(videos []model.VideoRef) string {
	if len(videos) == 0 {
		return DefaultPlaylistTitle
	}
	if len(videos) > 1 {
		prefix := commonPrefix(videos[0].Title, videos[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	first := videos[0].Title
	if len(first) > MaxTitleLength {
		first = first[:MaxTitleLength] + TitleTruncateSuffix
	}
	return first + PlaylistSuffix
}

func commonPrefix(s1, s2 string) string {
	n := min(len(s1), len(s2))
	for i := 0; i < n; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:n]
}
