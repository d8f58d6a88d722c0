package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/ytget/yt-player/internal/config"
	"github.com/ytget/yt-player/internal/library"
	applog "github.com/ytget/yt-player/internal/log"
	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/platform"
)

// app holds state shared by all subcommands.
type app struct {
	configPath  string
	backend     string
	storagePath string
	logLevel    string

	out    io.Writer
	in     io.Reader
	cfg    config.FileConfig
	lib    *library.Library
	logger zerolog.Logger
}

func newApp(out io.Writer, in io.Reader) *app {
	return &app{out: out, in: in}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "yt-player-ctl",
		Short:         "Manage yt-player history, favorites and session",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open(cmd)
		},
	}
	root.SetOut(a.out)
	root.SetIn(a.in)

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", config.DefaultConfigPath(), "path to config.yaml")
	f.StringVar(&a.backend, "backend", "", "storage backend (file, sqlite, badger, redis, memory)")
	f.StringVar(&a.storagePath, "path", "", "storage directory for file-based backends")
	f.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(
		newHistoryCmd(a),
		newFavoritesCmd(a),
		newSessionCmd(a),
		newPlaylistCmd(a),
	)
	return root
}

func (a *app) open(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}
	if a.backend != "" {
		if !config.IsValidBackend(a.backend) || a.backend == config.BackendPrefs {
			return fmt.Errorf("backend %q is not available from the command line", a.backend)
		}
		cfg.Storage.Backend = a.backend
	}
	if a.storagePath != "" {
		cfg.Storage.Path = a.storagePath
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if cfg.Storage.Backend == config.BackendPrefs {
		return fmt.Errorf("the prefs backend belongs to the GUI; choose file, sqlite, badger or redis")
	}
	a.cfg = cfg

	applog.Configure(applog.Config{Level: cfg.LogLevel, Output: cmd.ErrOrStderr(), Console: true})
	a.logger = applog.WithComponent("cli")

	st, err := library.OpenStore(cfg.Storage, nil, applog.WithComponent("store"))
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Storage.Backend, err)
	}
	a.lib = library.Open(cmd.Context(), st, library.Options{
		RestoreWindow: cfg.RestoreWindow,
		Playlists:     platform.NewPlaylistParserService(),
		Logger:        a.logger,
	})
	return nil
}

// execute runs root and releases the store even when the command failed.
func (a *app) execute(root *cobra.Command) error {
	err := root.Execute()
	if cerr := a.close(); err == nil {
		err = cerr
	}
	return err
}

func (a *app) close() error {
	if a.lib == nil {
		return nil
	}
	err := a.lib.Close()
	a.lib = nil
	return err
}

// resolveRef turns a URL or id argument into a VideoRef.
func resolveRef(arg, title string) (model.VideoRef, error) {
	id, err := platform.ExtractVideoID(arg)
	if err != nil {
		return model.VideoRef{}, err
	}
	return model.VideoRef{ID: id, Title: strings.TrimSpace(title)}, nil
}

func parseMode(s string) (model.ImportMode, error) {
	mode, ok := model.ParseImportMode(s)
	if !ok {
		return mode, fmt.Errorf("unknown import mode %q (use merge or replace)", s)
	}
	return mode, nil
}
