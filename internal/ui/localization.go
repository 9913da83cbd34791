package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyInput             = "input"
	KeyOutput            = "output"
	KeyURL               = "url"
	KeyPaste             = "paste"
	KeyFile              = "file"
	KeyBrowse            = "browse"
	KeyFormat            = "format"
	KeyVideo             = "video"
	KeyAudio             = "audio"
	KeyRun               = "run"
	KeyStop              = "stop"
	KeyReveal            = "reveal"
	KeySettings          = "settings"
	KeyLanguage          = "language"
	KeyAutoReveal        = "auto_reveal"
	KeySave              = "save"
	KeyCancel            = "cancel"
	KeyEnterURL          = "enter_url"
	KeyChooseFile        = "choose_file"
	KeySettingsSaved     = "settings_saved"
	KeyStatusDownloading = "status_downloading"
	KeyStatusConverting  = "status_converting"
	KeyStatusCopying     = "status_copying"
	KeyStatusDone        = "status_done"
	KeyStatusFailed      = "status_failed"
	KeyStatusCancelled   = "status_cancelled"
	KeyErrorOpeningFile  = "error_opening_file"
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

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Media Downloader",
		KeyInput:             "Input",
		KeyOutput:            "Output",
		KeyURL:               "URL:",
		KeyPaste:             "Paste",
		KeyFile:              "File:",
		KeyBrowse:            "Browse",
		KeyFormat:            "Format:",
		KeyVideo:             "Video",
		KeyAudio:             "Audio",
		KeyRun:               "Run",
		KeyStop:              "Stop",
		KeyReveal:            "Show in folder",
		KeySettings:          "Settings",
		KeyLanguage:          "Language",
		KeyAutoReveal:        "Show file when done",
		KeySave:              "Save",
		KeyCancel:            "Cancel",
		KeyEnterURL:          "https://...",
		KeyChooseFile:        "Choose where to save the file",
		KeySettingsSaved:     "Settings saved",
		KeyStatusDownloading: "Downloading...",
		KeyStatusConverting:  "Converting...",
		KeyStatusCopying:     "Copying...",
		KeyStatusDone:        "Done!",
		KeyStatusFailed:      "Failed",
		KeyStatusCancelled:   "Cancelled",
		KeyErrorOpeningFile:  "Error opening file",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Загрузчик медиа",
		KeyInput:             "Источник",
		KeyOutput:            "Результат",
		KeyURL:               "URL:",
		KeyPaste:             "Вставить",
		KeyFile:              "Файл:",
		KeyBrowse:            "Обзор",
		KeyFormat:            "Формат:",
		KeyVideo:             "Видео",
		KeyAudio:             "Аудио",
		KeyRun:               "Запуск",
		KeyStop:              "Стоп",
		KeyReveal:            "Показать в папке",
		KeySettings:          "Настройки",
		KeyLanguage:          "Язык",
		KeyAutoReveal:        "Показывать файл по завершении",
		KeySave:              "Сохранить",
		KeyCancel:            "Отмена",
		KeyChooseFile:        "Выберите, куда сохранить файл",
		KeySettingsSaved:     "Настройки сохранены",
		KeyStatusDownloading: "Загрузка...",
		KeyStatusConverting:  "Конвертация...",
		KeyStatusCopying:     "Копирование...",
		KeyStatusDone:        "Готово!",
		KeyStatusFailed:      "Ошибка",
		KeyStatusCancelled:   "Отменено",
		KeyErrorOpeningFile:  "Ошибка открытия файла",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Media Downloader",
		KeyInput:             "Entrada",
		KeyOutput:            "Saída",
		KeyURL:               "URL:",
		KeyPaste:             "Colar",
		KeyFile:              "Arquivo:",
		KeyBrowse:            "Navegar",
		KeyFormat:            "Formato:",
		KeyVideo:             "Vídeo",
		KeyAudio:             "Áudio",
		KeyRun:               "Executar",
		KeyStop:              "Parar",
		KeyReveal:            "Mostrar na pasta",
		KeySettings:          "Configurações",
		KeyLanguage:          "Idioma",
		KeyAutoReveal:        "Mostrar arquivo ao concluir",
		KeySave:              "Salvar",
		KeyCancel:            "Cancelar",
		KeyChooseFile:        "Escolha onde salvar o arquivo",
		KeySettingsSaved:     "Configurações salvas",
		KeyStatusDownloading: "Baixando...",
		KeyStatusConverting:  "Convertendo...",
		KeyStatusCopying:     "Copiando...",
		KeyStatusDone:        "Concluído!",
		KeyStatusFailed:      "Falhou",
		KeyStatusCancelled:   "Cancelado",
		KeyErrorOpeningFile:  "Erro ao abrir arquivo",
	}
}
