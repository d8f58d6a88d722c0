package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyPlay              = "play"
	KeyPause             = "pause"
	KeyStop              = "stop"
	KeyOpen              = "open"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyHistory           = "history"
	KeyFavorites         = "favorites"
	KeyContinueWatching  = "continue_watching"
	KeyClearHistory      = "clear_history"
	KeyNoHistory         = "no_history"
	KeyNoFavorites       = "no_favorites"
	KeyAddFavorite       = "add_favorite"
	KeyCategory          = "category"
	KeyNewCategory       = "new_category"
	KeyFavoriteAdded     = "favorite_added"
	KeyFavoriteExists    = "favorite_exists"
	KeyRemoveCategory    = "remove_category"
	KeyExport            = "export"
	KeyImport            = "import"
	KeyImportPlaylist    = "import_playlist"
	KeyMerge             = "merge"
	KeyReplace           = "replace"
	KeyImportMode        = "import_mode"
	KeyExported          = "exported"
	KeyImported          = "imported"
	KeyImportFailed      = "import_failed"
	KeyResumeTitle       = "resume_title"
	KeyResumeMessage     = "resume_message"
	KeyResume            = "resume"
	KeyDismiss           = "dismiss"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyBrowse            = "browse"
	KeyEnterURL          = "enter_url"
	KeyInvalidURL        = "invalid_url"
	KeyPleaseEnterURL    = "please_enter_url"
	KeyNothingPlaying    = "nothing_playing"
	KeySettingsSaved     = "settings_saved"
	KeyStorageBackend    = "storage_backend"
	KeyStoragePath       = "storage_path"
	KeyRedisAddr         = "redis_addr"
	KeyAutosave          = "autosave"
	KeyRestoreWindow     = "restore_window"
	KeyQuickSaveCategory = "quick_save_category"
	KeyParsingStarted    = "parsing_started"
	KeyParsingFailed     = "parsing_failed"
	KeyStorageFallback   = "storage_fallback"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. Unknown codes are ignored.
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key, falling back to English
// and then to the key itself.
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Player",
		KeyPlay:              "Play",
		KeyPause:             "Pause",
		KeyStop:              "Stop",
		KeyOpen:              "Open",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyHistory:           "History",
		KeyFavorites:         "Favorites",
		KeyContinueWatching:  "Continue watching",
		KeyClearHistory:      "Clear history",
		KeyNoHistory:         "No history yet",
		KeyNoFavorites:       "No favorites yet",
		KeyAddFavorite:       "Add to favorites",
		KeyCategory:          "Category",
		KeyNewCategory:       "New category",
		KeyFavoriteAdded:     "Added to favorites",
		KeyFavoriteExists:    "Already in this category",
		KeyRemoveCategory:    "Remove category",
		KeyExport:            "Export favorites",
		KeyImport:            "Import favorites",
		KeyImportPlaylist:    "Import playlist",
		KeyMerge:             "Merge",
		KeyReplace:           "Replace",
		KeyImportMode:        "Keep existing favorites?",
		KeyExported:          "Favorites exported",
		KeyImported:          "Favorites imported",
		KeyImportFailed:      "Import failed",
		KeyResumeTitle:       "Resume playback?",
		KeyResumeMessage:     "Continue %s at %s (%s)?",
		KeyResume:            "Resume",
		KeyDismiss:           "Not now",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyBrowse:            "Browse",
		KeyEnterURL:          "Enter YouTube URL or video id",
		KeyInvalidURL:        "Invalid URL",
		KeyPleaseEnterURL:    "Please enter a URL",
		KeyNothingPlaying:    "Nothing is playing",
		KeySettingsSaved:     "Settings saved. Storage changes apply on restart.",
		KeyStorageBackend:    "Storage",
		KeyStoragePath:       "Storage directory",
		KeyRedisAddr:         "Redis address",
		KeyAutosave:          "Autosave every (seconds)",
		KeyRestoreWindow:     "Offer resume within (hours)",
		KeyQuickSaveCategory: "Quick-save category",
		KeyParsingStarted:    "Fetching playlist...",
		KeyParsingFailed:     "Playlist fetch failed",
		KeyStorageFallback:   "Storage unavailable, using app preferences",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Плеер",
		KeyPlay:              "Играть",
		KeyPause:             "Пауза",
		KeyStop:              "Стоп",
		KeyOpen:              "Открыть",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyHistory:           "История",
		KeyFavorites:         "Избранное",
		KeyContinueWatching:  "Продолжить просмотр",
		KeyClearHistory:      "Очистить историю",
		KeyNoHistory:         "История пуста",
		KeyNoFavorites:       "Избранное пусто",
		KeyAddFavorite:       "В избранное",
		KeyCategory:          "Категория",
		KeyNewCategory:       "Новая категория",
		KeyFavoriteAdded:     "Добавлено в избранное",
		KeyFavoriteExists:    "Уже в этой категории",
		KeyRemoveCategory:    "Удалить категорию",
		KeyExport:            "Экспорт избранного",
		KeyImport:            "Импорт избранного",
		KeyImportPlaylist:    "Импорт плейлиста",
		KeyMerge:             "Объединить",
		KeyReplace:           "Заменить",
		KeyImportMode:        "Сохранить текущее избранное?",
		KeyExported:          "Избранное экспортировано",
		KeyImported:          "Избранное импортировано",
		KeyImportFailed:      "Ошибка импорта",
		KeyResumeTitle:       "Продолжить просмотр?",
		KeyResumeMessage:     "Продолжить %s с %s (%s)?",
		KeyResume:            "Продолжить",
		KeyDismiss:           "Не сейчас",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyBrowse:            "Обзор",
		KeyEnterURL:          "Введите URL YouTube или id видео",
		KeyInvalidURL:        "Неверный URL",
		KeyPleaseEnterURL:    "Пожалуйста, введите URL",
		KeyNothingPlaying:    "Ничего не воспроизводится",
		KeySettingsSaved:     "Настройки сохранены. Хранилище сменится после перезапуска.",
		KeyStorageBackend:    "Хранилище",
		KeyStoragePath:       "Папка хранилища",
		KeyRedisAddr:         "Адрес Redis",
		KeyAutosave:          "Автосохранение (секунды)",
		KeyRestoreWindow:     "Предлагать продолжить (часы)",
		KeyQuickSaveCategory: "Категория быстрого сохранения",
		KeyParsingStarted:    "Загрузка плейлиста...",
		KeyParsingFailed:     "Не удалось загрузить плейлист",
		KeyStorageFallback:   "Хранилище недоступно, используются настройки приложения",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YT Player",
		KeyPlay:              "Reproduzir",
		KeyPause:             "Pausar",
		KeyStop:              "Parar",
		KeyOpen:              "Abrir",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyHistory:           "Histórico",
		KeyFavorites:         "Favoritos",
		KeyContinueWatching:  "Continuar assistindo",
		KeyClearHistory:      "Limpar histórico",
		KeyNoHistory:         "Nenhum histórico",
		KeyNoFavorites:       "Nenhum favorito",
		KeyAddFavorite:       "Adicionar aos favoritos",
		KeyCategory:          "Categoria",
		KeyNewCategory:       "Nova categoria",
		KeyFavoriteAdded:     "Adicionado aos favoritos",
		KeyFavoriteExists:    "Já está nesta categoria",
		KeyRemoveCategory:    "Remover categoria",
		KeyExport:            "Exportar favoritos",
		KeyImport:            "Importar favoritos",
		KeyImportPlaylist:    "Importar playlist",
		KeyMerge:             "Mesclar",
		KeyReplace:           "Substituir",
		KeyImportMode:        "Manter favoritos existentes?",
		KeyExported:          "Favoritos exportados",
		KeyImported:          "Favoritos importados",
		KeyImportFailed:      "Falha na importação",
		KeyResumeTitle:       "Retomar reprodução?",
		KeyResumeMessage:     "Continuar %s em %s (%s)?",
		KeyResume:            "Retomar",
		KeyDismiss:           "Agora não",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyBrowse:            "Navegar",
		KeyEnterURL:          "Digite URL do YouTube ou id do vídeo",
		KeyInvalidURL:        "URL inválida",
		KeyPleaseEnterURL:    "Por favor, digite uma URL",
		KeyNothingPlaying:    "Nada em reprodução",
		KeySettingsSaved:     "Configurações salvas. O armazenamento muda após reiniciar.",
		KeyStorageBackend:    "Armazenamento",
		KeyStoragePath:       "Diretório de armazenamento",
		KeyRedisAddr:         "Endereço do Redis",
		KeyAutosave:          "Salvar a cada (segundos)",
		KeyRestoreWindow:     "Oferecer retomada em (horas)",
		KeyQuickSaveCategory: "Categoria de salvamento rápido",
		KeyParsingStarted:    "Buscando playlist...",
		KeyParsingFailed:     "Falha ao buscar playlist",
		KeyStorageFallback:   "Armazenamento indisponível, usando preferências do app",
	}
}
