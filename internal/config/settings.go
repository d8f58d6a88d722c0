package config

import (
	"path/filepath"
	"time"

	"fyne.io/fyne/v2"
	"github.com/ytget/yt-player/internal/platform"
)

// Storage backends
const (
	BackendPrefs  = "prefs"
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage           = "app_language"
	KeyStorageBackend     = "storage_backend"
	KeyStoragePath        = "storage_path"
	KeyRedisAddr          = "redis_addr"
	KeyAutosaveSeconds    = "autosave_interval_seconds"
	KeyRestoreWindowHours = "restore_window_hours"
	KeyQuickSaveCategory  = "quick_save_category"
	KeyLastVideoID        = "last_video_id"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultStorageBackend     = BackendPrefs
	DefaultAutosaveSeconds    = 5
	DefaultRestoreWindowHours = 24
	DefaultQuickSaveCategory  = "Quick Save"
	DefaultVideoID            = "M7lc1UVf-VE"
)

// StorageConfig selects and locates the persistence backend.
type StorageConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path"`
	Redis   RedisConfig `yaml:"redis"`
}

// RedisConfig is used when Backend is "redis".
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetStorageBackend returns the configured storage backend
func (s *Settings) GetStorageBackend() string {
	backend := s.app.Preferences().String(KeyStorageBackend)
	if !IsValidBackend(backend) {
		s.SetStorageBackend(DefaultStorageBackend)
		return DefaultStorageBackend
	}
	return backend
}

// SetStorageBackend sets the storage backend; unknown names fall back to the default
func (s *Settings) SetStorageBackend(backend string) {
	if !IsValidBackend(backend) {
		backend = DefaultStorageBackend
	}
	s.app.Preferences().SetString(KeyStorageBackend, backend)
}

// GetStoragePath returns where file-based backends keep their data
func (s *Settings) GetStoragePath() string {
	path := s.app.Preferences().String(KeyStoragePath)
	if path == "" {
		dir, err := platform.GetDataDir()
		if err != nil {
			dir = filepath.Join(".", "yt-player")
		}
		s.SetStoragePath(dir)
		return dir
	}
	return path
}

// SetStoragePath sets the storage path
func (s *Settings) SetStoragePath(path string) {
	s.app.Preferences().SetString(KeyStoragePath, path)
}

// GetRedisAddr returns the Redis address used by the redis backend
func (s *Settings) GetRedisAddr() string {
	return s.app.Preferences().StringWithFallback(KeyRedisAddr, "localhost:6379")
}

// SetRedisAddr sets the Redis address
func (s *Settings) SetRedisAddr(addr string) {
	s.app.Preferences().SetString(KeyRedisAddr, addr)
}

// StorageConfig assembles the backend selection from preferences.
func (s *Settings) StorageConfig() StorageConfig {
	return StorageConfig{
		Backend: s.GetStorageBackend(),
		Path:    s.GetStoragePath(),
		Redis:   RedisConfig{Addr: s.GetRedisAddr()},
	}
}

// GetAutosaveInterval returns how often playback state is saved
func (s *Settings) GetAutosaveInterval() time.Duration {
	seconds := s.app.Preferences().Int(KeyAutosaveSeconds)
	if seconds <= 0 {
		s.SetAutosaveInterval(DefaultAutosaveSeconds * time.Second)
		return DefaultAutosaveSeconds * time.Second
	}
	return time.Duration(seconds) * time.Second
}

// SetAutosaveInterval sets the autosave interval, clamped to 1..60 seconds
func (s *Settings) SetAutosaveInterval(d time.Duration) {
	seconds := int(d / time.Second)
	if seconds < 1 {
		seconds = 1
	}
	if seconds > 60 {
		seconds = 60
	}
	s.app.Preferences().SetInt(KeyAutosaveSeconds, seconds)
}

// GetRestoreWindow returns how long a saved session stays restorable
func (s *Settings) GetRestoreWindow() time.Duration {
	hours := s.app.Preferences().Int(KeyRestoreWindowHours)
	if hours <= 0 {
		s.app.Preferences().SetInt(KeyRestoreWindowHours, DefaultRestoreWindowHours)
		return DefaultRestoreWindowHours * time.Hour
	}
	return time.Duration(hours) * time.Hour
}

// SetRestoreWindowHours sets the restore window
func (s *Settings) SetRestoreWindowHours(hours int) {
	if hours < 1 {
		hours = 1
	}
	s.app.Preferences().SetInt(KeyRestoreWindowHours, hours)
}

// GetQuickSaveCategory returns the category used by the one-tap favorite button
func (s *Settings) GetQuickSaveCategory() string {
	category := s.app.Preferences().String(KeyQuickSaveCategory)
	if category == "" {
		s.SetQuickSaveCategory(DefaultQuickSaveCategory)
		return DefaultQuickSaveCategory
	}
	return category
}

// SetQuickSaveCategory sets the quick save category
func (s *Settings) SetQuickSaveCategory(category string) {
	if category == "" {
		category = DefaultQuickSaveCategory
	}
	s.app.Preferences().SetString(KeyQuickSaveCategory, category)
}

// GetLastVideoID returns the video opened on start when nothing is restored
func (s *Settings) GetLastVideoID() string {
	return s.app.Preferences().StringWithFallback(KeyLastVideoID, DefaultVideoID)
}

// SetLastVideoID remembers the last loaded video
func (s *Settings) SetLastVideoID(id string) {
	s.app.Preferences().SetString(KeyLastVideoID, id)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetBackendOptions returns the selectable storage backends
func (s *Settings) GetBackendOptions() []string {
	return []string{BackendPrefs, BackendFile, BackendSQLite, BackendBadger, BackendRedis}
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// IsValidBackend reports whether name is a known storage backend.
func IsValidBackend(name string) bool {
	switch name {
	case BackendPrefs, BackendMemory, BackendFile, BackendSQLite, BackendBadger, BackendRedis:
		return true
	}
	return false
}
