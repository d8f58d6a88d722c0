package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/ytget/yt-player/internal/config"
	"github.com/ytget/yt-player/internal/library"
	"github.com/ytget/yt-player/internal/model"
	"github.com/ytget/yt-player/internal/platform"
	"github.com/ytget/yt-player/internal/player"
)

// PlayerUI is the main window: URL bar, now-playing panel with gesture
// controls, transport and speed buttons, and continue-watching shortcuts.
type PlayerUI struct {
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	mobile       *MobileUI
	lib          *library.Library
	ctrl         *player.Controller
	logger       zerolog.Logger

	urlEntry     *widget.Entry
	openBtn      *widget.Button
	titleLabel   *widget.Label
	statusLabel  *widget.Label
	rateLabel    *widget.Label
	playPauseBtn *widget.Button
	stopBtn      *widget.Button
	rewindBtn    *widget.Button
	forwardBtn   *widget.Button
	slowerBtn    *widget.Button
	fasterBtn    *widget.Button
	favoriteBtn  *widget.Button
	continueBox  *fyne.Container

	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	historyView   *HistoryView
	favoritesView *FavoritesView
}

// NewPlayerUI builds the chrome into window and subscribes to ctrl.
func NewPlayerUI(window fyne.Window, app fyne.App, settings *config.Settings, lib *library.Library, ctrl *player.Controller, logger zerolog.Logger) *PlayerUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &PlayerUI{
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		mobile:       NewMobileUI(),
		lib:          lib,
		ctrl:         ctrl,
		logger:       logger,
	}

	window.SetTitle(localization.GetText(KeyAppTitle))
	ui.setupUI()
	ctrl.OnChange(func(st player.State) {
		fyne.Do(func() { ui.render(st) })
	})
	ui.render(ctrl.State())
	return ui
}

func (ui *PlayerUI) setupUI() {
	ui.createMenu()
	l := ui.localization

	ui.urlEntry = widget.NewEntry()
	ui.urlEntry.SetPlaceHolder(l.GetText(KeyEnterURL))
	ui.urlEntry.SetText(ui.settings.GetLastVideoID())
	ui.urlEntry.OnSubmitted = func(string) { ui.onOpenClick() }
	ui.openBtn = widget.NewButton(IconPlay, ui.onOpenClick)
	ui.openBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	left := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		img := canvas.NewImageFromResource(logo)
		img.SetMinSize(fyne.NewSize(32, 32))
		img.FillMode = canvas.ImageFillContain
		left = container.NewHBox(img, settingsBtn)
	}
	topPanel := container.NewBorder(nil, nil, left, ui.openBtn, ui.urlEntry)

	ui.notificationLabel = widget.NewLabel("")
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	ui.titleLabel = widget.NewLabel(l.GetText(KeyNothingPlaying))
	ui.titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	ui.titleLabel.Truncation = fyne.TextTruncateEllipsis
	ui.titleLabel.Alignment = fyne.TextAlignCenter
	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Alignment = fyne.TextAlignCenter
	nowPlaying := NewGesturePad(container.NewVBox(ui.titleLabel, ui.statusLabel), ui.onGesture)

	ui.playPauseBtn = widget.NewButton(IconPlay, ui.action(ui.ctrl.TogglePlayPause))
	ui.playPauseBtn.Importance = widget.HighImportance
	ui.stopBtn = widget.NewButton(IconStop, ui.action(ui.ctrl.Stop))
	ui.rewindBtn = widget.NewButton(IconRewind, ui.action(ui.ctrl.Rewind))
	ui.forwardBtn = widget.NewButton(IconForward, ui.action(ui.ctrl.Forward))
	ui.slowerBtn = widget.NewButton(IconSlower, ui.action(ui.ctrl.SpeedDown))
	ui.fasterBtn = widget.NewButton(IconFaster, ui.action(ui.ctrl.SpeedUp))
	ui.rateLabel = widget.NewLabel(model.FormatRate(model.DefaultPlaybackRate))
	ui.favoriteBtn = widget.NewButton(IconFavorite, ui.onQuickSave)

	controls := ui.mobile.ControlRows(
		[]fyne.CanvasObject{ui.rewindBtn, ui.playPauseBtn, ui.stopBtn, ui.forwardBtn},
		[]fyne.CanvasObject{ui.slowerBtn, ui.rateLabel, ui.fasterBtn, ui.favoriteBtn},
	)

	ui.continueBox = container.NewVBox()

	historyBtn := widget.NewButton(IconHistory+" "+l.GetText(KeyHistory), ui.onShowHistory)
	favoritesBtn := widget.NewButton(IconFavorites+" "+l.GetText(KeyFavorites), ui.onShowFavorites)
	bottom := container.NewGridWithColumns(2, historyBtn, favoritesBtn)

	center := container.NewVBox(
		nowPlaying,
		container.NewCenter(controls),
		widget.NewSeparator(),
		ui.continueBox,
	)

	content := container.NewBorder(
		container.NewVBox(topPanel, ui.notificationContainer),
		bottom,
		nil,
		nil,
		container.NewVScroll(center),
	)
	ui.window.SetContent(content)
	ui.refreshContinueWatching()
}

func (ui *PlayerUI) createMenu() {
	l := ui.localization

	fileMenu := fyne.NewMenu(l.GetText(KeyFile),
		fyne.NewMenuItem(l.GetText(KeyExport), ui.onExport),
		fyne.NewMenuItem(l.GetText(KeyImport), ui.onImport),
		fyne.NewMenuItem(l.GetText(KeyImportPlaylist), ui.onImportPlaylist),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(l.GetText(KeySettings), ui.onShowSettings),
	)

	viewMenu := fyne.NewMenu(l.GetText(KeyHistory),
		fyne.NewMenuItem(l.GetText(KeyHistory), ui.onShowHistory),
		fyne.NewMenuItem(l.GetText(KeyFavorites), ui.onShowFavorites),
	)

	languageMenu := fyne.NewMenu(l.GetText(KeyLanguage))
	for code, name := range l.GetAvailableLanguages() {
		item := fyne.NewMenuItem(name, func() { ui.onLanguageChange(code) })
		item.Checked = l.GetCurrentLanguage() == code
		languageMenu.Items = append(languageMenu.Items, item)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, languageMenu))
}

func (ui *PlayerUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

func (ui *PlayerUI) refreshUITexts() {
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))
	ui.urlEntry.SetPlaceHolder(ui.localization.GetText(KeyEnterURL))
	ui.render(ui.ctrl.State())
}

// action adapts a controller call to a button callback.
func (ui *PlayerUI) action(fn func(context.Context) error) func() {
	return func() {
		if err := fn(context.Background()); err != nil {
			ui.reportError(err)
		}
	}
}

func (ui *PlayerUI) reportError(err error) {
	if errors.Is(err, player.ErrNoVideo) {
		ui.showNotification(ui.localization.GetText(KeyNothingPlaying), false)
		return
	}
	ui.logger.Warn().Err(err).Msg("player action failed")
	ui.showNotification(err.Error(), false)
}

// render updates every control that reflects controller state
func (ui *PlayerUI) render(st player.State) {
	l := ui.localization
	if st.Ref.ID == "" {
		ui.titleLabel.SetText(l.GetText(KeyNothingPlaying))
	} else {
		ui.titleLabel.SetText(st.Ref.DisplayTitle())
	}

	status := DashPlaceholder
	switch st.Status {
	case model.PlaybackPlaying, model.PlaybackLoading:
		status = l.GetText(KeyPlay)
	case model.PlaybackPaused:
		status = l.GetText(KeyPause)
	case model.PlaybackStopped:
		status = l.GetText(KeyStop)
	}
	if st.Ref.ID != "" {
		status = st.Ref.ID + MiddleDotSeparator + status
	}
	ui.statusLabel.SetText(status)

	if st.Status.IsActive() {
		ui.playPauseBtn.SetText(IconPause)
	} else {
		ui.playPauseBtn.SetText(IconPlay)
	}
	ui.rateLabel.SetText(model.FormatRate(st.Rate))

	if st.Ref.ID != "" && ui.lib.Favorites.Contains(st.Ref.ID) {
		ui.favoriteBtn.Importance = widget.WarningImportance
	} else {
		ui.favoriteBtn.Importance = widget.MediumImportance
	}
	ui.favoriteBtn.Refresh()
}

func (ui *PlayerUI) onOpenClick() {
	input := strings.TrimSpace(ui.urlEntry.Text)
	if input == "" {
		ui.showNotification(ui.localization.GetText(KeyPleaseEnterURL), false)
		return
	}

	if _, err := platform.ExtractVideoID(input); err != nil {
		if _, perr := platform.ExtractPlaylistID(input); perr == nil {
			ui.importPlaylist(input, "")
			return
		}
		ui.showNotification(ui.localization.GetText(KeyInvalidURL)+": "+input, false)
		return
	}
	ui.PlayInput(input, "")
}

// PlayInput loads a URL or id and records it in history.
func (ui *PlayerUI) PlayInput(input, title string) {
	id, err := platform.ExtractVideoID(input)
	if err != nil {
		ui.showNotification(ui.localization.GetText(KeyInvalidURL)+": "+input, false)
		return
	}
	ui.Play(model.VideoRef{ID: id, Title: title})
}

// Play loads ref at its stored resume position.
func (ui *PlayerUI) Play(ref model.VideoRef) {
	if err := ui.ctrl.LoadVideo(context.Background(), ref); err != nil {
		ui.reportError(err)
		return
	}
	ui.settings.SetLastVideoID(ref.ID)
	ui.urlEntry.SetText(ref.ID)
	ui.hideNotification()
	ui.Reload()
}

// Reload refreshes everything derived from the catalog, e.g. after another
// process changed the store.
func (ui *PlayerUI) Reload() {
	ui.refreshContinueWatching()
	if ui.historyView != nil {
		ui.historyView.Reload()
	}
	if ui.favoritesView != nil {
		ui.favoritesView.Reload()
	}
	ui.render(ui.ctrl.State())
}

func (ui *PlayerUI) refreshContinueWatching() {
	ui.continueBox.RemoveAll()
	entries := ui.lib.History.ContinueWatching()
	if len(entries) == 0 {
		ui.continueBox.Refresh()
		return
	}
	header := widget.NewLabel(ui.localization.GetText(KeyContinueWatching))
	header.TextStyle = fyne.TextStyle{Bold: true}
	ui.continueBox.Add(header)
	for _, e := range entries {
		ref := e.Ref
		label := ref.DisplayTitle() + MiddleDotSeparator + model.FormatPosition(e.LastPosition)
		btn := widget.NewButton(label, func() { ui.Play(ref) })
		btn.Alignment = widget.ButtonAlignLeading
		ui.continueBox.Add(btn)
	}
	ui.continueBox.Refresh()
}

// onGesture maps pad gestures to player commands
func (ui *PlayerUI) onGesture(g GestureType) {
	switch g {
	case GestureTap:
		ui.action(ui.ctrl.TogglePlayPause)()
	case GestureSwipeLeft:
		ui.action(ui.ctrl.Rewind)()
	case GestureSwipeRight:
		ui.action(ui.ctrl.Forward)()
	case GestureSwipeUp:
		ui.action(ui.ctrl.SpeedUp)()
	case GestureSwipeDown:
		ui.action(ui.ctrl.SpeedDown)()
	case GestureLongPress:
		ui.onChooseCategory()
	}
}

// onQuickSave files the current video under the quick-save category
func (ui *PlayerUI) onQuickSave() {
	ui.addFavorite(ui.settings.GetQuickSaveCategory())
}

func (ui *PlayerUI) addFavorite(category string) {
	st := ui.ctrl.State()
	if st.Ref.ID == "" {
		ui.showNotification(ui.localization.GetText(KeyNothingPlaying), false)
		return
	}
	res, err := ui.lib.Favorites.Add(context.Background(), st.Ref, category)
	if err != nil {
		ui.reportError(err)
		return
	}
	if res == model.AlreadyExists {
		ui.showToast(ui.localization.GetText(KeyFavoriteExists), category)
		return
	}
	ui.showToast(ui.localization.GetText(KeyFavoriteAdded), model.FavoriteEntry{Category: category}.Normalize().Category)
	ui.Reload()
}

// onChooseCategory asks for a category before saving the current video
func (ui *PlayerUI) onChooseCategory() {
	if ui.ctrl.State().Ref.ID == "" {
		ui.showNotification(ui.localization.GetText(KeyNothingPlaying), false)
		return
	}
	l := ui.localization
	picker := widget.NewSelectEntry(ui.lib.Favorites.CategoryOptions(ui.settings.GetQuickSaveCategory()))
	picker.SetPlaceHolder(l.GetText(KeyNewCategory))
	picker.SetText(ui.settings.GetQuickSaveCategory())
	dialog.ShowCustomConfirm(l.GetText(KeyAddFavorite), l.GetText(KeySave), l.GetText(KeyCancel),
		widget.NewForm(widget.NewFormItem(l.GetText(KeyCategory), picker)),
		func(ok bool) {
			if ok {
				ui.addFavorite(strings.TrimSpace(picker.Text))
			}
		}, ui.window)
}

func (ui *PlayerUI) onShowHistory() {
	if ui.historyView == nil {
		ui.historyView = NewHistoryView(ui.lib.History, ui.localization, ui.logger, nil)
	}
	ui.historyView.Reload()
	ui.showListDialog(ui.localization.GetText(KeyHistory), ui.historyView.Container(), func(d dialog.Dialog) {
		ui.historyView.onPlay = func(ref model.VideoRef) {
			d.Hide()
			ui.Play(ref)
		}
	})
}

func (ui *PlayerUI) onShowFavorites() {
	if ui.favoritesView == nil {
		ui.favoritesView = NewFavoritesView(ui.lib.Favorites, ui.localization, ui.logger, nil)
	}
	ui.favoritesView.Reload()
	ui.showListDialog(ui.localization.GetText(KeyFavorites), ui.favoritesView.Container(), func(d dialog.Dialog) {
		ui.favoritesView.onPlay = func(ref model.VideoRef) {
			d.Hide()
			ui.Play(ref)
		}
	})
}

func (ui *PlayerUI) showListDialog(title string, content fyne.CanvasObject, bind func(dialog.Dialog)) {
	d := dialog.NewCustom(title, IconClose, content, ui.window)
	d.Resize(fyne.NewSize(ListDialogWidth, ListDialogHeight))
	bind(d)
	d.SetOnClosed(ui.Reload)
	d.Show()
}

func (ui *PlayerUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, func() {
		ui.refreshUITexts()
		ui.createMenu()
	}).Show()
}

func (ui *PlayerUI) onExport() {
	save := dialog.NewFileSave(func(w fyne.URIWriteCloser, err error) {
		if err != nil || w == nil {
			return
		}
		defer w.Close()
		n, err := ui.exportTo(w)
		if err != nil {
			ui.reportError(err)
			return
		}
		ui.showToast(ui.localization.GetText(KeyExported), fmt.Sprintf("%d%s%s", n, MiddleDotSeparator, w.URI().Name()))
	}, ui.window)
	save.SetFileName(platform.ExportFileName)
	save.Show()
}

func (ui *PlayerUI) exportTo(w io.Writer) (int, error) {
	data, err := ui.lib.Transfer.ExportFavorites()
	if err != nil {
		return 0, err
	}
	if _, err := w.Write(data); err != nil {
		return 0, fmt.Errorf("write export: %w", err)
	}
	return ui.lib.Favorites.Len(), nil
}

func (ui *PlayerUI) onImport() {
	open := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
		if err != nil || r == nil {
			return
		}
		ui.askImportMode(func(mode model.ImportMode, ok bool) {
			defer r.Close()
			if ok {
				ui.importFrom(r, mode)
			}
		})
	}, ui.window)
	open.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
	open.Show()
}

// askImportMode asks whether existing favorites are kept (merge) or
// dropped (replace). done gets ok=false when the user cancels.
func (ui *PlayerUI) askImportMode(done func(mode model.ImportMode, ok bool)) {
	l := ui.localization
	d := dialog.NewCustomWithoutButtons(l.GetText(KeyImport), widget.NewLabel(l.GetText(KeyImportMode)), ui.window)
	choose := func(mode model.ImportMode, ok bool) func() {
		return func() {
			d.Hide()
			done(mode, ok)
		}
	}
	merge := widget.NewButton(l.GetText(KeyMerge), choose(model.ImportMerge, true))
	merge.Importance = widget.HighImportance
	replace := widget.NewButton(l.GetText(KeyReplace), choose(model.ImportReplace, true))
	replace.Importance = widget.DangerImportance
	d.SetButtons([]fyne.CanvasObject{
		widget.NewButton(l.GetText(KeyCancel), choose(model.ImportMerge, false)),
		replace,
		merge,
	})
	d.Show()
}

func (ui *PlayerUI) importFrom(r io.Reader, mode model.ImportMode) {
	res, err := ui.lib.Transfer.ImportReader(context.Background(), r, mode)
	if err != nil {
		ui.logger.Warn().Err(err).Msg("favorites import failed")
		ui.showNotification(ui.localization.GetText(KeyImportFailed)+": "+err.Error(), false)
		return
	}
	ui.showToast(ui.localization.GetText(KeyImported), fmt.Sprintf("+%d%s%d", res.Added, MiddleDotSeparator, res.Total))
	ui.Reload()
}

func (ui *PlayerUI) onImportPlaylist() {
	l := ui.localization
	urlEntry := widget.NewEntry()
	urlEntry.SetPlaceHolder("https://www.youtube.com/playlist?list=...")
	category := widget.NewSelectEntry(ui.lib.Favorites.CategoryOptions())
	category.SetPlaceHolder(l.GetText(KeyNewCategory))
	dialog.ShowCustomConfirm(l.GetText(KeyImportPlaylist), l.GetText(KeyImport), l.GetText(KeyCancel),
		widget.NewForm(
			widget.NewFormItem("URL", urlEntry),
			widget.NewFormItem(l.GetText(KeyCategory), category),
		),
		func(ok bool) {
			if ok && strings.TrimSpace(urlEntry.Text) != "" {
				ui.importPlaylist(strings.TrimSpace(urlEntry.Text), strings.TrimSpace(category.Text))
			}
		}, ui.window)
}

// importPlaylist fetches a playlist in the background and merges it into
// favorites.
func (ui *PlayerUI) importPlaylist(url, category string) {
	ui.showNotification(ui.localization.GetText(KeyParsingStarted), true)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), PlaylistFetchLimit)
		defer cancel()
		res, err := ui.lib.Transfer.ImportPlaylist(ctx, url, category, model.ImportMerge)
		fyne.Do(func() {
			if err != nil {
				ui.logger.Warn().Err(err).Str("url", url).Msg("playlist import failed")
				ui.showNotification(ui.localization.GetText(KeyParsingFailed)+": "+err.Error(), false)
				return
			}
			ui.hideNotification()
			ui.urlEntry.SetText("")
			ui.showToast(ui.localization.GetText(KeyImported), fmt.Sprintf("+%d%s%d", res.Added, MiddleDotSeparator, res.Total))
			ui.Reload()
		})
	}()
}

// ShowRestorePrompt offers to resume the saved session if it is recent
// enough. It reports whether a prompt was shown.
func (ui *PlayerUI) ShowRestorePrompt(ctx context.Context) bool {
	state, ok := ui.lib.Session.LoadForRestorePrompt(ctx)
	if !ok {
		return false
	}
	l := ui.localization
	msg := fmt.Sprintf(l.GetText(KeyResumeMessage),
		state.Ref.DisplayTitle(), model.FormatPosition(state.Position), model.TimeAgo(state.SavedAt, time.Now()))
	d := dialog.NewConfirm(l.GetText(KeyResumeTitle), msg, func(resume bool) {
		if !resume {
			return
		}
		if err := ui.ctrl.Restore(context.Background(), state); err != nil {
			ui.reportError(err)
			return
		}
		ui.settings.SetLastVideoID(state.Ref.ID)
		ui.urlEntry.SetText(state.Ref.ID)
		ui.Reload()
	}, ui.window)
	d.SetConfirmText(l.GetText(KeyResume))
	d.SetDismissText(l.GetText(KeyDismiss))
	d.Show()
	return true
}

// ShowStorageFallback tells the user the configured backend failed to open.
func (ui *PlayerUI) ShowStorageFallback(err error) {
	ui.showNotification(ui.localization.GetText(KeyStorageFallback)+": "+err.Error(), false)
}

// showNotification displays a message in the panel under the URL bar.
// When spinning is true, a spinner shows background activity.
func (ui *PlayerUI) showNotification(message string, spinning bool) {
	ui.notificationLabel.SetText(message)
	if spinning {
		ui.notificationSpinner.Show()
	} else {
		ui.notificationSpinner.Hide()
	}
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

func (ui *PlayerUI) hideNotification() {
	ui.notificationSpinner.Hide()
	ui.notificationContainer.Hide()
}

// showToast shows a short-lived popup in the top-right corner and a system
// notification.
func (ui *PlayerUI) showToast(title, message string) {
	ui.app.SendNotification(fyne.NewNotification(title, message))

	titleLabel := widget.NewLabel(title)
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	messageLabel := widget.NewLabel(message)
	messageLabel.Truncation = fyne.TextTruncateEllipsis

	var toast *widget.PopUp
	closeBtn := widget.NewButton(IconClose, func() { toast.Hide() })
	closeBtn.Importance = widget.LowImportance

	toast = widget.NewPopUp(container.NewVBox(
		container.NewBorder(nil, nil, titleLabel, closeBtn),
		messageLabel,
	), ui.window.Canvas())

	canvasSize := ui.window.Canvas().Size()
	toast.Resize(fyne.NewSize(ToastWidth, ToastHeight))
	toast.Move(fyne.NewPos(canvasSize.Width-ToastWidth-ToastMargin, ToastMargin))
	toast.Show()

	time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(toast.Hide)
	})
}
