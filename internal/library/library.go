package library

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"github.com/ytget/yt-player/internal/catalog"
	"github.com/ytget/yt-player/internal/session"
	"github.com/ytget/yt-player/internal/store"
	"github.com/ytget/yt-player/internal/transfer"
)

// Options configures Open.
type Options struct {
	Now           func() time.Time
	RestoreWindow time.Duration
	Playlists     transfer.PlaylistSource
	Logger        zerolog.Logger
}

// Library bundles the catalog, session and transfer services over one store.
// Its lifetime is tied to whatever owns the player screen.
type Library struct {
	Store     store.Store
	History   *catalog.History
	Favorites *catalog.Favorites
	Session   *session.Session
	Transfer  *transfer.Service

	logger zerolog.Logger
}

// Open builds the bundle and hydrates History and Favorites from st.
func Open(ctx context.Context, st store.Store, opts Options) *Library {
	logger := opts.Logger
	var clock catalog.Clock
	sessionOpts := []session.Option{session.WithRestoreWindow(opts.RestoreWindow)}
	if opts.Now != nil {
		clock = opts.Now
		sessionOpts = append(sessionOpts, session.WithClock(opts.Now))
	}

	favorites := catalog.NewFavorites(st, logger.With().Str("component", "catalog").Logger())
	lib := &Library{
		Store:     st,
		History:   catalog.NewHistory(st, clock, logger.With().Str("component", "catalog").Logger()),
		Favorites: favorites,
		Session:   session.New(st, logger.With().Str("component", "session").Logger(), sessionOpts...),
		Transfer:  transfer.NewService(favorites, opts.Playlists, logger.With().Str("component", "transfer").Logger()),
		logger:    logger,
	}
	lib.Hydrate(ctx)
	return lib
}

// Hydrate reloads History and Favorites from the store.
func (l *Library) Hydrate(ctx context.Context) {
	l.History.Hydrate(ctx)
	l.Favorites.Hydrate(ctx)
	l.logger.Debug().
		Int("history", l.History.Len()).
		Int("favorites", l.Favorites.Len()).
		Msg("library hydrated")
}

// NewAutosaver wires an autosaver for probe into this library.
func (l *Library) NewAutosaver(probe session.Probe, interval time.Duration) *session.Autosaver {
	return session.NewAutosaver(l.Session, l.History, probe, interval, l.logger.With().Str("component", "autosave").Logger())
}

// Watch re-hydrates when another process rewrites the backing store and then
// calls onChange. Only the file backend reports external changes; for the
// others Watch blocks until ctx is done.
func (l *Library) Watch(ctx context.Context, onChange func()) error {
	fs, ok := l.Store.(*store.FileStore)
	if !ok {
		<-ctx.Done()
		return nil
	}
	return fs.Watch(ctx, func() {
		l.logger.Info().Str("path", fs.Path()).Msg("store changed on disk, reloading")
		l.Hydrate(ctx)
		if onChange != nil {
			onChange()
		}
	})
}

// Close closes the store.
func (l *Library) Close() error {
	if l.Store == nil {
		return errors.New("library not open")
	}
	return l.Store.Close()
}
