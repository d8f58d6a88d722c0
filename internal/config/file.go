package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ytget/yt-player/internal/platform"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "YTPLAYER_"

// DefaultConfigFileName is looked up in the user config directory.
const DefaultConfigFileName = "config.yaml"

// FileConfig is the headless configuration used by yt-player-ctl.
type FileConfig struct {
	LogLevel      string        `yaml:"logLevel"`
	Storage       StorageConfig `yaml:"storage"`
	RestoreWindow time.Duration `yaml:"restoreWindow"`
	Category      string        `yaml:"quickSaveCategory"`
}

// DefaultFileConfig returns defaults with the file backend under the data dir.
func DefaultFileConfig() FileConfig {
	dir, err := platform.GetDataDir()
	if err != nil {
		dir = "."
	}
	return FileConfig{
		LogLevel: "info",
		Storage: StorageConfig{
			Backend: BackendFile,
			Path:    dir,
		},
		RestoreWindow: DefaultRestoreWindowHours * time.Hour,
		Category:      DefaultQuickSaveCategory,
	}
}

// DefaultConfigPath returns <user config dir>/yt-player/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return DefaultConfigFileName
	}
	return filepath.Join(dir, "yt-player", DefaultConfigFileName)
}

// LoadFile reads path over the defaults, then applies environment overrides.
// A missing file is not an error.
func LoadFile(path string) (FileConfig, error) {
	cfg := DefaultFileConfig()

	if path != "" {
		data, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	if !IsValidBackend(cfg.Storage.Backend) {
		return cfg, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if cfg.RestoreWindow <= 0 {
		cfg.RestoreWindow = DefaultRestoreWindowHours * time.Hour
	}
	return cfg, nil
}

func applyEnv(cfg *FileConfig, lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
	}

	if v, ok := get("LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := get("STORAGE_BACKEND"); ok {
		cfg.Storage.Backend = strings.ToLower(v)
	}
	if v, ok := get("STORAGE_PATH"); ok {
		cfg.Storage.Path = v
	}
	if v, ok := get("REDIS_ADDR"); ok {
		cfg.Storage.Redis.Addr = v
	}
	if v, ok := get("REDIS_PASSWORD"); ok {
		cfg.Storage.Redis.Password = v
	}
	if v, ok := get("REDIS_DB"); ok {
		db, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err)
		}
		cfg.Storage.Redis.DB = db
	}
	if v, ok := get("RESTORE_WINDOW"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sRESTORE_WINDOW: %w", EnvPrefix, err)
		}
		cfg.RestoreWindow = d
	}
	return nil
}
