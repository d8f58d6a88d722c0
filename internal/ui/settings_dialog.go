package ui

import (
	"sort"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/yt-player/internal/config"
)

// SettingsDialog edits storage, autosave, resume and language preferences
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func()

	backendSelect    *widget.Select
	storagePathEntry *widget.Entry
	redisAddrEntry   *widget.Entry
	autosaveEntry    *widget.Entry
	restoreEntry     *widget.Entry
	categoryEntry    *widget.Entry
	languageSelect   *widget.Select

	// language display name to code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after the
// preferences were written.
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.storagePathEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	storagePathRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.storagePathEntry)

	sd.redisAddrEntry = widget.NewEntry()
	sd.redisAddrEntry.SetPlaceHolder("localhost:6379")

	sd.backendSelect = widget.NewSelect(sd.settings.GetBackendOptions(), func(backend string) {
		sd.updateBackendFields(backend)
	})

	sd.autosaveEntry = widget.NewEntry()
	sd.autosaveEntry.SetPlaceHolder("1-60")
	sd.restoreEntry = widget.NewEntry()
	sd.restoreEntry.SetPlaceHolder(strconv.Itoa(config.DefaultRestoreWindowHours))
	sd.categoryEntry = widget.NewEntry()
	sd.categoryEntry.SetPlaceHolder(config.DefaultQuickSaveCategory)

	sd.languageCodes = make(map[string]string)
	var languageNames []string
	for code, name := range sd.settings.GetLanguageOptions() {
		sd.languageCodes[name] = code
		languageNames = append(languageNames, name)
	}
	sort.Strings(languageNames)
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyStorageBackend), sd.backendSelect),
		widget.NewFormItem(l.GetText(KeyStoragePath), storagePathRow),
		widget.NewFormItem(l.GetText(KeyRedisAddr), sd.redisAddrEntry),
		widget.NewFormItem(l.GetText(KeyAutosave), sd.autosaveEntry),
		widget.NewFormItem(l.GetText(KeyRestoreWindow), sd.restoreEntry),
		widget.NewFormItem(l.GetText(KeyQuickSaveCategory), sd.categoryEntry),
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
	)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)
	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.backendSelect.SetSelected(sd.settings.GetStorageBackend())
	sd.storagePathEntry.SetText(sd.settings.GetStoragePath())
	sd.redisAddrEntry.SetText(sd.settings.GetRedisAddr())
	sd.autosaveEntry.SetText(strconv.Itoa(int(sd.settings.GetAutosaveInterval() / time.Second)))
	sd.restoreEntry.SetText(strconv.Itoa(int(sd.settings.GetRestoreWindow() / time.Hour)))
	sd.categoryEntry.SetText(sd.settings.GetQuickSaveCategory())
	lang := sd.settings.GetLanguage()
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[lang])
	sd.updateBackendFields(sd.settings.GetStorageBackend())
}

// updateBackendFields enables only the inputs the chosen backend reads
func (sd *SettingsDialog) updateBackendFields(backend string) {
	switch backend {
	case config.BackendFile, config.BackendSQLite, config.BackendBadger:
		sd.storagePathEntry.Enable()
	default:
		sd.storagePathEntry.Disable()
	}
	if backend == config.BackendRedis {
		sd.redisAddrEntry.Enable()
	} else {
		sd.redisAddrEntry.Disable()
	}
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.storagePathEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	sd.apply()
	if sd.onSaved != nil {
		sd.onSaved()
	}
	dialog.ShowInformation(sd.localization.GetText(KeySettings), sd.localization.GetText(KeySettingsSaved), sd.window)
}

// apply writes the form to preferences. Malformed numbers keep the old value.
func (sd *SettingsDialog) apply() {
	if backend := sd.backendSelect.Selected; backend != "" {
		sd.settings.SetStorageBackend(backend)
	}
	if path := sd.storagePathEntry.Text; path != "" {
		sd.settings.SetStoragePath(path)
	}
	if addr := sd.redisAddrEntry.Text; addr != "" {
		sd.settings.SetRedisAddr(addr)
	}

	if seconds, err := strconv.Atoi(sd.autosaveEntry.Text); err == nil {
		sd.settings.SetAutosaveInterval(time.Duration(seconds) * time.Second)
	}
	if hours, err := strconv.Atoi(sd.restoreEntry.Text); err == nil {
		sd.settings.SetRestoreWindowHours(hours)
	}
	sd.settings.SetQuickSaveCategory(sd.categoryEntry.Text)

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
		sd.localization.SetLanguage(code)
	}
}
