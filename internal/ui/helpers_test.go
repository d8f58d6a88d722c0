package ui

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-player/internal/config"
	"github.com/ytget/yt-player/internal/library"
	"github.com/ytget/yt-player/internal/player"
	"github.com/ytget/yt-player/internal/store"
)

// openedURLs records what the clock surface would open in a browser.
type openedURLs struct {
	mu   sync.Mutex
	urls []string
}

func (o *openedURLs) open(u *url.URL) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, u.String())
	return nil
}

func (o *openedURLs) last() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.urls) == 0 {
		return ""
	}
	return o.urls[len(o.urls)-1]
}

type fixture struct {
	ui       *PlayerUI
	lib      *library.Library
	ctrl     *player.Controller
	settings *config.Settings
	opened   *openedURLs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	settings := config.NewSettings(app)
	lib := library.Open(context.Background(), store.NewMemoryStore(), library.Options{Logger: zerolog.Nop()})
	opened := &openedURLs{}
	ctrl := player.NewController(player.NewClockSurface(opened.open), lib.History, lib.Session, zerolog.Nop())
	ctrl.SetSaver(lib.NewAutosaver(ctrl, settings.GetAutosaveInterval()))

	w := test.NewWindow(nil)
	t.Cleanup(w.Close)
	ui := NewPlayerUI(w, app, settings, lib, ctrl, zerolog.Nop())
	return &fixture{ui: ui, lib: lib, ctrl: ctrl, settings: settings, opened: opened}
}
