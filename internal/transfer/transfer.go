package transfer

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/ytget/yt-player/internal/catalog"
	"github.com/ytget/yt-player/internal/codec"
	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/platform"
)

// ExportFilePermissions is the mode of files written by ExportFile.
const ExportFilePermissions = 0644

// PlaylistSource resolves a playlist URL into its videos.
type PlaylistSource interface {
	FetchPlaylist(ctx context.Context, url string) (*model.Playlist, error)
}

// Service moves favorites in and out of the catalog.
type Service struct {
	favorites *catalog.Favorites
	playlists PlaylistSource
	logger    zerolog.Logger
}

// NewService creates a Service. playlists may be nil when playlist import is
// not offered.
func NewService(favorites *catalog.Favorites, playlists PlaylistSource, logger zerolog.Logger) *Service {
	return &Service{favorites: favorites, playlists: playlists, logger: logger}
}

// ExportFavorites encodes the full favorites list.
func (s *Service) ExportFavorites() ([]byte, error) {
	raw, err := codec.EncodeFavorites(s.favorites.Entries())
	if err != nil {
		return nil, fmt.Errorf("encode favorites: %w", err)
	}
	return []byte(raw), nil
}

// ImportFavorites decodes data and applies it with mode. Data that does not
// decode returns an error matching model.ErrFormat and leaves the list as is.
func (s *Service) ImportFavorites(ctx context.Context, data []byte, mode model.ImportMode) (model.ImportResult, error) {
	entries, err := codec.DecodeFavoritesImport(string(data))
	if err != nil {
		s.logger.Warn().Err(err).Int("bytes", len(data)).Msg("rejected favorites import")
		return model.ImportResult{}, err
	}
	return s.apply(ctx, entries, mode, "bytes"), nil
}

// ExportFile writes the favorites to path, replacing it atomically.
func (s *Service) ExportFile(path string) (int, error) {
	data, err := s.ExportFavorites()
	if err != nil {
		return 0, err
	}
	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(path)); err != nil {
		return 0, fmt.Errorf("create export dir: %w", err)
	}
	if err := renameio.WriteFile(path, data, ExportFilePermissions); err != nil {
		return 0, fmt.Errorf("write export %s: %w", path, err)
	}
	n := s.favorites.Len()
	s.logger.Info().Str("path", path).Int("entries", n).Msg("favorites exported")
	return n, nil
}

// ImportFile reads path and imports it with mode.
func (s *Service) ImportFile(ctx context.Context, path string, mode model.ImportMode) (model.ImportResult, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user picked the file
	if err != nil {
		return model.ImportResult{}, fmt.Errorf("read import %s: %w", path, err)
	}
	return s.ImportFavorites(ctx, data, mode)
}

// ImportReader imports favorites from r, as handed over by a file picker.
func (s *Service) ImportReader(ctx context.Context, r io.Reader, mode model.ImportMode) (model.ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return model.ImportResult{}, fmt.Errorf("read import: %w", err)
	}
	return s.ImportFavorites(ctx, data, mode)
}

// ImportPlaylist fetches a YouTube playlist and files its videos under
// category.
func (s *Service) ImportPlaylist(ctx context.Context, url, category string, mode model.ImportMode) (model.ImportResult, error) {
	if s.playlists == nil {
		return model.ImportResult{}, fmt.Errorf("playlist import is not configured")
	}
	playlist, err := s.playlists.FetchPlaylist(ctx, url)
	if err != nil {
		return model.ImportResult{}, fmt.Errorf("fetch playlist: %w", err)
	}
	if category == "" {
		category = playlist.Title
	}
	return s.apply(ctx, playlist.Favorites(category), mode, "playlist:"+playlist.ID), nil
}

// ImportPlaylistDump imports the output of `yt-dlp --flat-playlist -j`.
func (s *Service) ImportPlaylistDump(ctx context.Context, r io.Reader, category string, mode model.ImportMode) (model.ImportResult, error) {
	refs, err := platform.ParseFlatPlaylistJSON(r)
	if err != nil {
		return model.ImportResult{}, err
	}
	playlist := model.NewPlaylist("")
	for _, ref := range refs {
		playlist.AddVideo(ref)
	}
	return s.apply(ctx, playlist.Favorites(category), mode, "dump"), nil
}

func (s *Service) apply(ctx context.Context, entries []model.FavoriteEntry, mode model.ImportMode, source string) model.ImportResult {
	logger := s.logger.With().
		Str("batch_id", uuid.NewString()).
		Str("source", source).
		Str("mode", mode.String()).
		Logger()

	var res model.ImportResult
	switch mode {
	case model.ImportReplace:
		res.Added = s.favorites.Replace(ctx, entries)
	default:
		res.Added = s.favorites.MergeByID(ctx, entries)
	}
	res.Total = s.favorites.Len()

	logger.Info().
		Int("incoming", len(entries)).
		Int("added", res.Added).
		Int("total", res.Total).
		Msg("favorites imported")
	return res
}
