package main

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-player/internal/config"
	"github.com/ytget/yt-player/internal/library"
	applog "github.com/ytget/yt-player/internal/log"
	"github.com/ytget/yt-player/internal/platform"
	"github.com/ytget/yt-player/internal/player"
	"github.com/ytget/yt-player/internal/session"
	"github.com/ytget/yt-player/internal/store"
	"github.com/ytget/yt-player/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.yt-player"
	AppName = "YT Player"

	WindowWidth  = 720
	WindowHeight = 520

	// shutdownTimeout bounds the final save when the app stops.
	shutdownTimeout = 3 * time.Second
)

func main() {
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewPlayerTheme())

	applog.Configure(applog.Config{Console: true})
	logger := applog.WithComponent("ui")
	logger.Info().Str("version", version).Msg("starting")

	settings := config.NewSettings(myApp)

	st, storeErr := library.OpenStore(settings.StorageConfig(), myApp.Preferences(), applog.WithComponent("store"))
	if storeErr != nil {
		logger.Error().Err(storeErr).Str("backend", settings.GetStorageBackend()).Msg("storage unavailable, falling back to preferences")
		st = store.NewPrefsStore(myApp.Preferences())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	lib := library.Open(ctx, st, library.Options{
		RestoreWindow: settings.GetRestoreWindow(),
		Playlists:     platform.NewPlaylistParserService(),
		Logger:        applog.Base(),
	})

	surface := player.NewClockSurface(func(u *url.URL) error { return myApp.OpenURL(u) })
	ctrl := player.NewController(surface, lib.History, lib.Session, applog.WithComponent("player"))
	autosaver := lib.NewAutosaver(ctrl, settings.GetAutosaveInterval())
	ctrl.SetSaver(autosaver)

	window := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	playerUI := ui.NewPlayerUI(window, myApp, settings, lib, ctrl, logger)
	if storeErr != nil {
		playerUI.ShowStorageFallback(storeErr)
	}

	go func() {
		if err := autosaver.Run(ctx); err != nil {
			logger.Debug().Err(err).Msg("autosaver stopped")
		}
	}()
	go func() {
		err := lib.Watch(ctx, func() { fyne.Do(playerUI.Reload) })
		if err != nil && ctx.Err() == nil {
			logger.Warn().Err(err).Msg("store watch stopped")
		}
	}()

	myApp.Lifecycle().SetOnStarted(func() {
		time.AfterFunc(ui.RestorePromptDelay, func() {
			fyne.Do(func() { playerUI.ShowRestorePrompt(ctx) })
		})
	})
	myApp.Lifecycle().SetOnExitedForeground(func() {
		flush(ctrl, autosaver, logger)
	})
	myApp.Lifecycle().SetOnStopped(func() {
		sctx, scancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer scancel()
		if err := ctrl.Stop(sctx); err != nil {
			logger.Warn().Err(err).Msg("stop on exit failed")
		}
		cancel()
		if err := lib.Close(); err != nil {
			logger.Warn().Err(err).Msg("close store failed")
		}
	})

	window.ShowAndRun()
}

// flush saves once when the app leaves the foreground, which on mobile may
// be the last chance before the process is killed. Playback keeps going: on
// desktop the video plays in the browser, so focus moves away all the time.
func flush(ctrl *player.Controller, autosaver *session.Autosaver, logger zerolog.Logger) {
	if !ctrl.State().Status.IsActive() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := autosaver.Flush(ctx); err != nil {
		logger.Warn().Err(err).Msg("save on background failed")
	}
}
