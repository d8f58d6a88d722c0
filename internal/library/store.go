package library

import (
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"
	"github.com/ytget/yt-player/internal/config"
	"github.com/ytget/yt-player/internal/store"
)

// File names inside StorageConfig.Path
const (
	FileStoreName   = "store.json"
	SQLiteStoreName = "yt-player.db"
	BadgerDirName   = "badger"
)

// OpenStore creates the backend selected by cfg. prefs is only required for
// the prefs backend.
func OpenStore(cfg config.StorageConfig, prefs fyne.Preferences, logger zerolog.Logger) (store.Store, error) {
	logger = logger.With().Str("backend", cfg.Backend).Logger()

	switch cfg.Backend {
	case config.BackendPrefs:
		if prefs == nil {
			return nil, fmt.Errorf("prefs backend requires application preferences")
		}
		return store.NewPrefsStore(prefs), nil
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	case config.BackendFile:
		path := filepath.Join(cfg.Path, FileStoreName)
		logger.Debug().Str("path", path).Msg("opening file store")
		return store.NewFileStore(path, logger)
	case config.BackendSQLite:
		path := filepath.Join(cfg.Path, SQLiteStoreName)
		logger.Debug().Str("path", path).Msg("opening sqlite store")
		return store.NewSQLiteStore(path, store.DefaultSQLiteConfig())
	case config.BackendBadger:
		dir := filepath.Join(cfg.Path, BadgerDirName)
		logger.Debug().Str("path", dir).Msg("opening badger store")
		return store.OpenBadgerStore(dir)
	case config.BackendRedis:
		return store.NewRedisStore(store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		}, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
